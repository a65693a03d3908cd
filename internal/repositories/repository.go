package repositories

import (
	"context"
	"time"

	"github.com/wastewise/wastewise-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines the data access interface for users. Point and streak
// mutations are single atomic updates against the backing store; callers never
// read-modify-write the ledger fields.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)

	// AwardPoints atomically increments totalPoints and appends a history
	// entry in one update, returning the new total.
	AwardPoints(ctx context.Context, id primitive.ObjectID, points int, entry models.HistoryEntry) (int, error)

	// UpdateStreak persists a new streak value and last-login instant.
	UpdateStreak(ctx context.Context, id primitive.ObjectID, streak int, lastLogin time.Time) error

	// AwardStreakBonus resets the streak, stamps the login, and credits the
	// bonus points with its history entry, all in one update. Returns the new
	// point total.
	AwardStreakBonus(ctx context.Context, id primitive.ObjectID, lastLogin time.Time, bonus int, entry models.HistoryEntry) (int, error)

	// TopByTotalPoints returns up to limit users ordered by totalPoints
	// descending, ties broken by ascending id.
	TopByTotalPoints(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)

	// TopByPeriodPoints ranks users by the sum of history entry points with
	// from <= timestamp < to. Same ordering and tie-break as TopByTotalPoints.
	TopByPeriodPoints(ctx context.Context, from, to time.Time, limit int) ([]*models.LeaderboardEntry, error)
}

// MissionRepository defines the data access interface for the mission catalog.
type MissionRepository interface {
	FindByMissionID(ctx context.Context, missionID string) (*models.Mission, error)
	FindAll(ctx context.Context) ([]*models.Mission, error)

	// CreateIfAbsent inserts the mission unless its missionId already exists.
	// Returns true when a new catalog row was created.
	CreateIfAbsent(ctx context.Context, mission *models.Mission) (bool, error)

	EnsureIndexes(ctx context.Context) error
}

// MissionLogRepository defines the dedup ledger for mission completions.
type MissionLogRepository interface {
	// InsertIfNew writes a completion row for (userID, missionID, day) unless
	// one already exists. Returns false without error when the row was already
	// present; the unique index makes the check-and-insert a single atomic
	// write even under concurrent calls.
	InsertIfNew(ctx context.Context, userID primitive.ObjectID, missionID, day string, now time.Time) (bool, error)

	ExistsForDay(ctx context.Context, userID primitive.ObjectID, missionID, day string) (bool, error)
	ListMissionIDsForDay(ctx context.Context, userID primitive.ObjectID, day string) ([]string, error)
	EnsureIndexes(ctx context.Context) error
}
