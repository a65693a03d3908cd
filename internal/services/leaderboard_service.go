package services

import (
	"context"
	"fmt"
	"time"

	"github.com/wastewise/wastewise-backend/internal/models"
	"github.com/wastewise/wastewise-backend/internal/repositories"
	"github.com/wastewise/wastewise-backend/internal/timeutil"
)

// leaderboardSize caps every view at the top 10.
const leaderboardSize = 10

// LeaderboardService derives the ranked views. Pure read side: it never
// mutates state.
type LeaderboardService struct {
	userRepo  repositories.UserRepository
	weekStart time.Weekday
	now       func() time.Time
}

// NewLeaderboardService creates a new LeaderboardService. weekStart sets the
// boundary convention for the weekly view.
func NewLeaderboardService(userRepo repositories.UserRepository, weekStart time.Weekday) *LeaderboardService {
	return &LeaderboardService{
		userRepo:  userRepo,
		weekStart: weekStart,
		now:       time.Now,
	}
}

// Top returns the leaderboard for the given period. All-time ranks by the
// stored totalPoints counter; weekly and monthly rank by summing history entry
// points inside the current period window, so they always agree with the
// ledger. Ties order by ascending user id.
func (s *LeaderboardService) Top(ctx context.Context, period string) ([]*models.LeaderboardEntry, error) {
	switch period {
	case models.PeriodAllTime:
		entries, err := s.userRepo.TopByTotalPoints(ctx, leaderboardSize)
		if err != nil {
			return nil, fmt.Errorf("all-time leaderboard: %w", err)
		}
		return entries, nil
	case models.PeriodWeekly:
		from, to := timeutil.WeekRange(s.now(), s.weekStart)
		entries, err := s.userRepo.TopByPeriodPoints(ctx, from, to, leaderboardSize)
		if err != nil {
			return nil, fmt.Errorf("weekly leaderboard: %w", err)
		}
		return entries, nil
	case models.PeriodMonthly:
		from, to := timeutil.MonthRange(s.now())
		entries, err := s.userRepo.TopByPeriodPoints(ctx, from, to, leaderboardSize)
		if err != nil {
			return nil, fmt.Errorf("monthly leaderboard: %w", err)
		}
		return entries, nil
	default:
		return nil, ErrInvalidPeriod
	}
}
