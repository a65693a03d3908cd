package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MissionLog marks that a user completed a mission on a calendar day. Rows are
// written once and never updated or deleted; the unique (userId, missionId, day)
// index is the dedup gate that prevents double awards.
type MissionLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	MissionID string             `bson:"missionId" json:"missionId"`
	Day       string             `bson:"day" json:"day"`
	Date      time.Time          `bson:"date" json:"date"`
}
