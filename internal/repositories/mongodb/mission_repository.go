package mongodb

import (
	"context"

	"github.com/wastewise/wastewise-backend/internal/models"
	"github.com/wastewise/wastewise-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure MissionRepository implements the interface
var _ repositories.MissionRepository = (*MissionRepository)(nil)

// MissionRepository handles MongoDB operations for the mission catalog
type MissionRepository struct {
	collection *mongo.Collection
}

// NewMissionRepository creates a new MissionRepository
func NewMissionRepository(db *mongo.Database) *MissionRepository {
	return &MissionRepository{
		collection: db.Collection("missions"),
	}
}

// FindByMissionID finds a mission by its stable trigger key
func (r *MissionRepository) FindByMissionID(ctx context.Context, missionID string) (*models.Mission, error) {
	var mission models.Mission
	err := r.collection.FindOne(ctx, bson.M{"missionId": missionID}).Decode(&mission)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &mission, nil
}

// FindAll retrieves the full mission catalog
func (r *MissionRepository) FindAll(ctx context.Context) ([]*models.Mission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "missionId", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var missions []*models.Mission
	if err = cursor.All(ctx, &missions); err != nil {
		return nil, err
	}
	if missions == nil {
		missions = []*models.Mission{}
	}
	return missions, nil
}

// CreateIfAbsent inserts the mission unless its missionId already exists. The
// unique index makes seeding idempotent even when run concurrently.
func (r *MissionRepository) CreateIfAbsent(ctx context.Context, mission *models.Mission) (bool, error) {
	mission.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, mission)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// EnsureIndexes creates the unique missionId index
func (r *MissionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "missionId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
