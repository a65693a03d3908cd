package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wastewise/wastewise-backend/internal/models"
	"github.com/wastewise/wastewise-backend/internal/repositories"
	"github.com/wastewise/wastewise-backend/internal/timeutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MissionResult is returned by CompleteMission on success.
type MissionResult struct {
	MissionName string
	Points      int
	TotalPoints int
}

// MissionService handles mission completion, the per-day dedup ledger and the
// mission catalog.
type MissionService struct {
	missionRepo    repositories.MissionRepository
	missionLogRepo repositories.MissionLogRepository
	userRepo       repositories.UserRepository
	now            func() time.Time
}

// NewMissionService creates a new MissionService
func NewMissionService(missionRepo repositories.MissionRepository, missionLogRepo repositories.MissionLogRepository, userRepo repositories.UserRepository) *MissionService {
	return &MissionService{
		missionRepo:    missionRepo,
		missionLogRepo: missionLogRepo,
		userRepo:       userRepo,
		now:            time.Now,
	}
}

// CompleteMission awards the mission's points to the user, at most once per
// (user, mission, calendar day). Two completions on the same local date are
// the same day regardless of time; dates either side of midnight are distinct
// days even seconds apart.
//
// The dedup check and log insert are one atomic insert-or-fail against the
// unique (userId, missionId, day) index, so concurrent duplicates lose cleanly
// with ErrAlreadyCompletedToday. The award itself is a single $inc+$push
// update. A crash between the two writes leaves a logged-but-unpaid
// completion; that bias is accepted rather than paying for a multi-document
// transaction.
func (s *MissionService) CompleteMission(ctx context.Context, userID primitive.ObjectID, trigger string) (*MissionResult, error) {
	mission, err := s.missionRepo.FindByMissionID(ctx, trigger)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidMission
		}
		return nil, fmt.Errorf("find mission %q: %w", trigger, err)
	}

	now := s.now()
	inserted, err := s.missionLogRepo.InsertIfNew(ctx, userID, mission.MissionID, timeutil.DayKey(now), now)
	if err != nil {
		return nil, fmt.Errorf("record mission completion: %w", err)
	}
	if !inserted {
		return nil, ErrAlreadyCompletedToday
	}

	entry := models.HistoryEntry{
		Description: fmt.Sprintf("Completed mission: %s", mission.Name),
		Timestamp:   now,
		Points:      mission.Points,
	}
	total, err := s.userRepo.AwardPoints(ctx, userID, mission.Points, entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("award mission points: %w", err)
	}

	return &MissionResult{
		MissionName: mission.Name,
		Points:      mission.Points,
		TotalPoints: total,
	}, nil
}

// CompletedToday returns the set of mission ids the user has already completed
// this calendar day, keyed for the client to gray out finished missions.
func (s *MissionService) CompletedToday(ctx context.Context, userID primitive.ObjectID) (map[string]bool, error) {
	ids, err := s.missionLogRepo.ListMissionIDsForDay(ctx, userID, timeutil.DayKey(s.now()))
	if err != nil {
		return nil, fmt.Errorf("list completed missions: %w", err)
	}
	completed := make(map[string]bool, len(ids))
	for _, id := range ids {
		completed[id] = true
	}
	return completed, nil
}

// ListMissions returns the full mission catalog.
func (s *MissionService) ListMissions(ctx context.Context) ([]*models.Mission, error) {
	return s.missionRepo.FindAll(ctx)
}

// Seed inserts the given missions, skipping any whose missionId already
// exists. Returns the number of newly created catalog rows.
func (s *MissionService) Seed(ctx context.Context, missions []models.Mission) (int, error) {
	created := 0
	for i := range missions {
		mission := missions[i]
		ok, err := s.missionRepo.CreateIfAbsent(ctx, &mission)
		if err != nil {
			return created, fmt.Errorf("seed mission %q: %w", mission.MissionID, err)
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// DefaultMissions is the seeded catalog for the waste-management app.
func DefaultMissions() []models.Mission {
	return []models.Mission{
		{MissionID: models.MissionOpenApp, Name: "Open the App", Description: "Login once per day", Points: 1, Type: "daily"},
		{MissionID: models.MissionReadNews, Name: "Read News", Description: "Read 1 article in the dashboard", Points: 1, Type: "daily"},
		{MissionID: models.MissionReportWaste, Name: "Report Waste Incident", Description: "Submit a waste-related report", Points: 2, Type: "daily"},
		{MissionID: models.MissionCheckDisposalGuide, Name: "Check Disposal Guide", Description: "View the proper disposal guide", Points: 1, Type: "daily"},
		{MissionID: models.MissionScanQR, Name: "Scan QR Code", Description: "Scan QR code from WMD", Points: 1, Type: "one-time"},
		{MissionID: models.MissionStreak, Name: "Consistent Streak", Description: "Login 7 consecutive days", Points: 5, Type: "daily"},
	}
}
