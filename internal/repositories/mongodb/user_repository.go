package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/wastewise/wastewise-backend/internal/models"
	"github.com/wastewise/wastewise-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure UserRepository implements the interface
var _ repositories.UserRepository = (*UserRepository)(nil)

// UserRepository handles MongoDB operations for User
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	if user.History == nil {
		user.History = []models.HistoryEntry{}
	}
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &user, nil
}

// FindAll retrieves users with pagination
func (r *UserRepository) FindAll(ctx context.Context, page, limit int) ([]*models.User, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []*models.User{}
	}
	return users, nil
}

// Update updates an existing user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	filter := bson.M{"_id": user.ID}
	update := bson.M{"$set": user}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// Delete deletes a user by ID
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Count returns the total number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// AwardPoints atomically increments totalPoints and appends the history entry
// in a single update, so concurrent awards never clobber each other. The
// updated document is returned to read the new total.
func (r *UserRepository) AwardPoints(ctx context.Context, id primitive.ObjectID, points int, entry models.HistoryEntry) (int, error) {
	if points <= 0 {
		return 0, errors.New("points to award must be positive")
	}
	filter := bson.M{"_id": id}
	update := bson.M{
		"$inc":  bson.M{"totalPoints": points},
		"$push": bson.M{"history": entry},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.User
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		return 0, err // Includes mongo.ErrNoDocuments
	}
	return updated.TotalPoints, nil
}

// UpdateStreak persists the streak counter and last-login instant
func (r *UserRepository) UpdateStreak(ctx context.Context, id primitive.ObjectID, streak int, lastLogin time.Time) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{
		"streak":        streak,
		"lastLoginDate": lastLogin,
		"updatedAt":     time.Now(),
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AwardStreakBonus credits the streak bonus and resets the counter in one
// update: streak to 0, lastLoginDate stamped, points incremented, history
// entry appended.
func (r *UserRepository) AwardStreakBonus(ctx context.Context, id primitive.ObjectID, lastLogin time.Time, bonus int, entry models.HistoryEntry) (int, error) {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$set": bson.M{
			"streak":        0,
			"lastLoginDate": lastLogin,
			"updatedAt":     time.Now(),
		},
		"$inc":  bson.M{"totalPoints": bonus},
		"$push": bson.M{"history": entry},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.User
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		return 0, err
	}
	return updated.TotalPoints, nil
}

// TopByTotalPoints returns the all-time leaderboard: totalPoints descending,
// ties broken by ascending _id so the ordering is stable across calls.
func (r *UserRepository) TopByTotalPoints(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "totalPoints", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{
			"firstName": 1,
			"lastName":  1,
			"email":     1,
			"streak":    1,
			"score":     "$totalPoints",
		})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.LeaderboardEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*models.LeaderboardEntry{}
	}
	return entries, nil
}

// TopByPeriodPoints ranks users by the sum of history entry points whose
// timestamp falls in [from, to). The score is derived from history on every
// call rather than kept as a counter, so it is always consistent with the
// ledger.
func (r *UserRepository) TopByPeriodPoints(ctx context.Context, from, to time.Time, limit int) ([]*models.LeaderboardEntry, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.M{
			"periodHistory": bson.M{
				"$filter": bson.M{
					"input": bson.M{"$ifNull": bson.A{"$history", bson.A{}}},
					"as":    "h",
					"cond": bson.M{"$and": bson.A{
						bson.M{"$gte": bson.A{"$$h.timestamp", from}},
						bson.M{"$lt": bson.A{"$$h.timestamp", to}},
					}},
				},
			},
		}}},
		{{Key: "$addFields", Value: bson.M{
			"score": bson.M{"$sum": "$periodHistory.points"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "score", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.M{
			"firstName": 1,
			"lastName":  1,
			"email":     1,
			"streak":    1,
			"score":     1,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.LeaderboardEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*models.LeaderboardEntry{}
	}
	return entries, nil
}
