package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/wastewise/wastewise-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repository fakes mirroring the store's atomicity guarantees: every
// mutation runs under one lock, and mission log insertion is check-and-insert
// in a single critical section, like the unique index in MongoDB.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *fakeUserRepo) add(user *models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.add(user)
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) FindAll(ctx context.Context, page, limit int) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].ID.Hex() < users[j].ID.Hex()
	})
	return users, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) AwardPoints(ctx context.Context, id primitive.ObjectID, points int, entry models.HistoryEntry) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return 0, mongo.ErrNoDocuments
	}
	user.TotalPoints += points
	user.History = append(user.History, entry)
	return user.TotalPoints, nil
}

func (r *fakeUserRepo) UpdateStreak(ctx context.Context, id primitive.ObjectID, streak int, lastLogin time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	user.Streak = streak
	t := lastLogin
	user.LastLoginDate = &t
	return nil
}

func (r *fakeUserRepo) AwardStreakBonus(ctx context.Context, id primitive.ObjectID, lastLogin time.Time, bonus int, entry models.HistoryEntry) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return 0, mongo.ErrNoDocuments
	}
	user.Streak = 0
	t := lastLogin
	user.LastLoginDate = &t
	user.TotalPoints += bonus
	user.History = append(user.History, entry)
	return user.TotalPoints, nil
}

func (r *fakeUserRepo) TopByTotalPoints(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := make([]*models.LeaderboardEntry, 0, len(r.users))
	for _, u := range r.users {
		entries = append(entries, &models.LeaderboardEntry{
			UserID:    u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Score:     u.TotalPoints,
			Streak:    u.Streak,
		})
	}
	sortEntries(entries)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (r *fakeUserRepo) TopByPeriodPoints(ctx context.Context, from, to time.Time, limit int) ([]*models.LeaderboardEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := make([]*models.LeaderboardEntry, 0, len(r.users))
	for _, u := range r.users {
		score := 0
		for _, h := range u.History {
			if !h.Timestamp.Before(from) && h.Timestamp.Before(to) {
				score += h.Points
			}
		}
		entries = append(entries, &models.LeaderboardEntry{
			UserID:    u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Score:     score,
			Streak:    u.Streak,
		})
	}
	sortEntries(entries)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func sortEntries(entries []*models.LeaderboardEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].UserID.Hex() < entries[j].UserID.Hex()
	})
}

type fakeMissionRepo struct {
	mu       sync.Mutex
	missions map[string]*models.Mission
}

func newFakeMissionRepo(missions ...models.Mission) *fakeMissionRepo {
	r := &fakeMissionRepo{missions: make(map[string]*models.Mission)}
	for i := range missions {
		m := missions[i]
		if m.ID.IsZero() {
			m.ID = primitive.NewObjectID()
		}
		r.missions[m.MissionID] = &m
	}
	return r
}

func (r *fakeMissionRepo) FindByMissionID(ctx context.Context, missionID string) (*models.Mission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	mission, ok := r.missions[missionID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *mission
	return &clone, nil
}

func (r *fakeMissionRepo) FindAll(ctx context.Context) ([]*models.Mission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	missions := make([]*models.Mission, 0, len(r.missions))
	for _, m := range r.missions {
		clone := *m
		missions = append(missions, &clone)
	}
	sort.Slice(missions, func(i, j int) bool {
		return missions[i].MissionID < missions[j].MissionID
	})
	return missions, nil
}

func (r *fakeMissionRepo) CreateIfAbsent(ctx context.Context, mission *models.Mission) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.missions[mission.MissionID]; ok {
		return false, nil
	}
	clone := *mission
	clone.ID = primitive.NewObjectID()
	r.missions[mission.MissionID] = &clone
	return true, nil
}

func (r *fakeMissionRepo) EnsureIndexes(ctx context.Context) error { return nil }

type logKey struct {
	userID    primitive.ObjectID
	missionID string
	day       string
}

type fakeMissionLogRepo struct {
	mu   sync.Mutex
	logs map[logKey]models.MissionLog
}

func newFakeMissionLogRepo() *fakeMissionLogRepo {
	return &fakeMissionLogRepo{logs: make(map[logKey]models.MissionLog)}
}

func (r *fakeMissionLogRepo) InsertIfNew(ctx context.Context, userID primitive.ObjectID, missionID, day string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := logKey{userID: userID, missionID: missionID, day: day}
	if _, ok := r.logs[key]; ok {
		return false, nil
	}
	r.logs[key] = models.MissionLog{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		MissionID: missionID,
		Day:       day,
		Date:      now,
	}
	return true, nil
}

func (r *fakeMissionLogRepo) ExistsForDay(ctx context.Context, userID primitive.ObjectID, missionID, day string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.logs[logKey{userID: userID, missionID: missionID, day: day}]
	return ok, nil
}

func (r *fakeMissionLogRepo) ListMissionIDsForDay(ctx context.Context, userID primitive.ObjectID, day string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for key := range r.logs {
		if key.userID == userID && key.day == day {
			ids = append(ids, key.missionID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *fakeMissionLogRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.logs)
}

func (r *fakeMissionLogRepo) EnsureIndexes(ctx context.Context) error { return nil }
