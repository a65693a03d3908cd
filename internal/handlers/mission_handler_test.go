package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wastewise/wastewise-backend/internal/models"
	"github.com/wastewise/wastewise-backend/internal/repositories"
	"github.com/wastewise/wastewise-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Minimal in-memory stores backing the handler tests.

type stubUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func (r *stubUserRepo) Create(ctx context.Context, user *models.User) error { return nil }

func (r *stubUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (r *stubUserRepo) FindAll(ctx context.Context, page, limit int) ([]*models.User, error) {
	return []*models.User{}, nil
}

func (r *stubUserRepo) Update(ctx context.Context, user *models.User) error { return nil }

func (r *stubUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

func (r *stubUserRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

func (r *stubUserRepo) AwardPoints(ctx context.Context, id primitive.ObjectID, points int, entry models.HistoryEntry) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return 0, mongo.ErrNoDocuments
	}
	u.TotalPoints += points
	u.History = append(u.History, entry)
	return u.TotalPoints, nil
}

func (r *stubUserRepo) UpdateStreak(ctx context.Context, id primitive.ObjectID, streak int, lastLogin time.Time) error {
	return nil
}

func (r *stubUserRepo) AwardStreakBonus(ctx context.Context, id primitive.ObjectID, lastLogin time.Time, bonus int, entry models.HistoryEntry) (int, error) {
	return 0, nil
}

func (r *stubUserRepo) TopByTotalPoints(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	return []*models.LeaderboardEntry{}, nil
}

func (r *stubUserRepo) TopByPeriodPoints(ctx context.Context, from, to time.Time, limit int) ([]*models.LeaderboardEntry, error) {
	return []*models.LeaderboardEntry{}, nil
}

type stubMissionRepo struct {
	missions map[string]*models.Mission
}

func (r *stubMissionRepo) FindByMissionID(ctx context.Context, missionID string) (*models.Mission, error) {
	m, ok := r.missions[missionID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *m
	return &clone, nil
}

func (r *stubMissionRepo) FindAll(ctx context.Context) ([]*models.Mission, error) {
	missions := make([]*models.Mission, 0, len(r.missions))
	for _, m := range r.missions {
		clone := *m
		missions = append(missions, &clone)
	}
	return missions, nil
}

func (r *stubMissionRepo) CreateIfAbsent(ctx context.Context, mission *models.Mission) (bool, error) {
	return false, nil
}

func (r *stubMissionRepo) EnsureIndexes(ctx context.Context) error { return nil }

type stubLogKey struct {
	user    primitive.ObjectID
	mission string
	day     string
}

type stubMissionLogRepo struct {
	mu   sync.Mutex
	logs map[stubLogKey]struct{}
}

func (r *stubMissionLogRepo) InsertIfNew(ctx context.Context, userID primitive.ObjectID, missionID, day string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := stubLogKey{user: userID, mission: missionID, day: day}
	if _, ok := r.logs[key]; ok {
		return false, nil
	}
	r.logs[key] = struct{}{}
	return true, nil
}

func (r *stubMissionLogRepo) ExistsForDay(ctx context.Context, userID primitive.ObjectID, missionID, day string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.logs[stubLogKey{user: userID, mission: missionID, day: day}]
	return ok, nil
}

func (r *stubMissionLogRepo) ListMissionIDsForDay(ctx context.Context, userID primitive.ObjectID, day string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for key := range r.logs {
		if key.user == userID && key.day == day {
			ids = append(ids, key.mission)
		}
	}
	return ids, nil
}

func (r *stubMissionLogRepo) EnsureIndexes(ctx context.Context) error { return nil }

var (
	_ repositories.UserRepository       = (*stubUserRepo)(nil)
	_ repositories.MissionRepository    = (*stubMissionRepo)(nil)
	_ repositories.MissionLogRepository = (*stubMissionLogRepo)(nil)
)

func newTestRouter(t *testing.T, userID primitive.ObjectID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := &stubUserRepo{users: map[primitive.ObjectID]*models.User{
		userID: {ID: userID, FirstName: "Ana", TotalPoints: 10, History: []models.HistoryEntry{}},
	}}
	missions := &stubMissionRepo{missions: map[string]*models.Mission{
		"read_news": {MissionID: "read_news", Name: "Read News", Points: 1},
	}}
	logs := &stubMissionLogRepo{logs: map[stubLogKey]struct{}{}}

	handler := NewMissionHandler(services.NewMissionService(missions, logs, users))

	router := gin.New()
	router.POST("/missions/complete", handler.CompleteMission)
	router.GET("/missions/completed/:userId", handler.GetCompletedMissions)
	router.GET("/missions", handler.GetAllMissions)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCompleteMissionEndpoint(t *testing.T) {
	userID := primitive.NewObjectID()
	router := newTestRouter(t, userID)
	body := `{"userId":"` + userID.Hex() + `","trigger":"read_news"}`

	w := postJSON(t, router, "/missions/complete", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp models.CompleteMissionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Points != 1 || resp.TotalPoints != 11 {
		t.Errorf("response = %+v", resp)
	}

	// Same day again: business-rule rejection.
	w = postJSON(t, router, "/missions/complete", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("repeat status = %d, want 400", w.Code)
	}
	var reject struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &reject); err != nil {
		t.Fatal(err)
	}
	if reject.Success || reject.Message == "" {
		t.Errorf("rejection payload = %+v", reject)
	}
}

func TestCompleteMissionEndpoint_InvalidMission(t *testing.T) {
	userID := primitive.NewObjectID()
	router := newTestRouter(t, userID)

	w := postJSON(t, router, "/missions/complete",
		`{"userId":"`+userID.Hex()+`","trigger":"no_such"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCompleteMissionEndpoint_BadUserID(t *testing.T) {
	router := newTestRouter(t, primitive.NewObjectID())

	w := postJSON(t, router, "/missions/complete",
		`{"userId":"not-an-id","trigger":"read_news"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetCompletedMissionsEndpoint(t *testing.T) {
	userID := primitive.NewObjectID()
	router := newTestRouter(t, userID)

	postJSON(t, router, "/missions/complete",
		`{"userId":"`+userID.Hex()+`","trigger":"read_news"}`)

	req := httptest.NewRequest(http.MethodGet, "/missions/completed/"+userID.Hex(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var completed map[string]bool
	if err := json.Unmarshal(w.Body.Bytes(), &completed); err != nil {
		t.Fatal(err)
	}
	if !completed["read_news"] {
		t.Errorf("completed = %v, want read_news true", completed)
	}
}
