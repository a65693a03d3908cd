package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Leaderboard periods.
const (
	PeriodAllTime = "alltime"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// LeaderboardEntry is one ranked row of a leaderboard view. Score is
// totalPoints for the all-time view and the period history sum otherwise.
type LeaderboardEntry struct {
	UserID    primitive.ObjectID `bson:"_id" json:"userId"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
	Score     int                `bson:"score" json:"score"`
	Streak    int                `bson:"streak" json:"streak"`
}
