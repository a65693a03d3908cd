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

// Streak bonus: logging in streakBonusThreshold consecutive days pays
// streakBonusPoints once and restarts the counter.
const (
	streakBonusThreshold = 7
	streakBonusPoints    = 5
)

// StreakResult is returned by EvaluateLoginStreak.
type StreakResult struct {
	Streak       int
	BonusAwarded bool
	TotalPoints  int
}

// UserService handles user-related business logic, including the login streak
// evaluation.
type UserService struct {
	userRepo repositories.UserRepository
	now      func() time.Time
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetAllUsers retrieves all users with pagination
func (s *UserService) GetAllUsers(ctx context.Context, page, limit int) ([]*models.User, error) {
	return s.userRepo.FindAll(ctx, page, limit)
}

// GetUserCount gets the total number of users
func (s *UserService) GetUserCount(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx)
}

// UpdateUser updates a user
func (s *UserService) UpdateUser(ctx context.Context, user *models.User) error {
	return s.userRepo.Update(ctx, user)
}

// DeleteUser deletes a user
func (s *UserService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	return s.userRepo.Delete(ctx, id)
}

// GetPoints returns the user's current point total and streak counter.
func (s *UserService) GetPoints(ctx context.Context, id primitive.ObjectID) (*models.PointsResponse, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.PointsResponse{
		TotalPoints: user.TotalPoints,
		Streak:      user.Streak,
		// The bonus flag is only ever true in the login response.
		BonusAwarded: false,
	}, nil
}

// GetHistory returns the user's point history, oldest first.
func (s *UserService) GetHistory(ctx context.Context, id primitive.ObjectID) ([]models.HistoryEntry, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.History == nil {
		return []models.HistoryEntry{}, nil
	}
	return user.History, nil
}

// AddPoints credits points to a user with a free-form description. Used by the
// staff adjustment endpoint; the write is a single atomic increment-and-append.
func (s *UserService) AddPoints(ctx context.Context, id primitive.ObjectID, description string, points int) (int, error) {
	entry := models.HistoryEntry{
		Description: description,
		Timestamp:   s.now(),
		Points:      points,
	}
	total, err := s.userRepo.AwardPoints(ctx, id, points, entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("add points: %w", err)
	}
	return total, nil
}

// EvaluateLoginStreak runs once per successful authentication. Both the
// previous and current login instants are truncated to local midnight before
// differencing:
//
//	no previous login  -> streak = 1
//	same calendar day  -> streak unchanged (explicit no-op)
//	exactly one day    -> streak + 1
//	more than one day  -> streak = 1
//
// A computed streak of streakBonusThreshold pays the bonus and resets the
// counter to 0. lastLoginDate is stamped on every call, whichever branch runs.
func (s *UserService) EvaluateLoginStreak(ctx context.Context, user *models.User) (*StreakResult, error) {
	now := s.now()

	streak := user.Streak
	switch {
	case user.LastLoginDate == nil:
		streak = 1
	default:
		switch days := timeutil.WholeDaysBetween(*user.LastLoginDate, now); {
		case days == 0:
			// Same-day re-login: counter stays as is.
		case days == 1:
			streak++
		default:
			streak = 1
		}
	}

	if streak >= streakBonusThreshold {
		entry := models.HistoryEntry{
			Description: "Login streak bonus",
			Timestamp:   now,
			Points:      streakBonusPoints,
		}
		total, err := s.userRepo.AwardStreakBonus(ctx, user.ID, now, streakBonusPoints, entry)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("award streak bonus: %w", err)
		}
		return &StreakResult{Streak: 0, BonusAwarded: true, TotalPoints: total}, nil
	}

	if err := s.userRepo.UpdateStreak(ctx, user.ID, streak, now); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update streak: %w", err)
	}
	return &StreakResult{Streak: streak, BonusAwarded: false, TotalPoints: user.TotalPoints}, nil
}
