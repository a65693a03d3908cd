package mongodb

import (
	"context"
	"time"

	"github.com/wastewise/wastewise-backend/internal/models"
	"github.com/wastewise/wastewise-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure MissionLogRepository implements the interface
var _ repositories.MissionLogRepository = (*MissionLogRepository)(nil)

// MissionLogRepository handles MongoDB operations for the mission completion
// ledger. Rows are insert-only.
type MissionLogRepository struct {
	collection *mongo.Collection
}

// NewMissionLogRepository creates a new MissionLogRepository
func NewMissionLogRepository(db *mongo.Database) *MissionLogRepository {
	return &MissionLogRepository{
		collection: db.Collection("mission_logs"),
	}
}

// InsertIfNew writes the completion row unless one exists for the same
// (userId, missionId, day). The unique index turns the check-and-insert into
// one atomic write, so two concurrent completions can never both succeed.
func (r *MissionLogRepository) InsertIfNew(ctx context.Context, userID primitive.ObjectID, missionID, day string, now time.Time) (bool, error) {
	log := models.MissionLog{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		MissionID: missionID,
		Day:       day,
		Date:      now,
	}
	_, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ExistsForDay reports whether the user already completed the mission that day
func (r *MissionLogRepository) ExistsForDay(ctx context.Context, userID primitive.ObjectID, missionID, day string) (bool, error) {
	filter := bson.M{"userId": userID, "missionId": missionID, "day": day}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListMissionIDsForDay returns the distinct mission ids the user completed on
// the given day
func (r *MissionLogRepository) ListMissionIDsForDay(ctx context.Context, userID primitive.ObjectID, day string) ([]string, error) {
	filter := bson.M{"userId": userID, "day": day}
	values, err := r.collection.Distinct(ctx, "missionId", filter)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids, nil
}

// EnsureIndexes creates the unique dedup index
func (r *MissionLogRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "missionId", Value: 1},
			{Key: "day", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}
