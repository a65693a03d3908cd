package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/wastewise/wastewise-backend/internal/config"
	"github.com/wastewise/wastewise-backend/internal/models"
	"github.com/wastewise/wastewise-backend/internal/repositories"
	"github.com/wastewise/wastewise-backend/internal/utils"
	"github.com/wastewise/wastewise-backend/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration and login. The login flow is also the
// trigger point for the streak evaluator and the open_app auto-mission.
type AuthService struct {
	userRepo       repositories.UserRepository
	userService    *UserService
	missionService *MissionService
	cfg            *config.Config
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.UserRepository, userService *UserService, missionService *MissionService, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		userService:    userService,
		missionService: missionService,
		cfg:            cfg,
	}
}

// Register creates a new user with a bcrypt-hashed password and issues a token.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.LoginResponse, error) {
	_, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("check existing email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleResident
	}

	user := &models.User{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Gender:        req.Gender,
		ContactNumber: req.ContactNumber,
		City:          req.City,
		Barangay:      req.Barangay,
		Address:       req.Address,
		Email:         req.Email,
		Password:      string(hashed),
		Role:          role,
		Status:        "available",
		History:       []models.HistoryEntry{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &models.LoginResponse{
		ID:        user.ID.Hex(),
		Token:     token,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

// Login authenticates the user, evaluates the login streak, auto-completes
// the open_app mission and issues a token. The auto-mission is best-effort: a
// same-day duplicate or any mission failure never fails the login.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	streak, err := s.userService.EvaluateLoginStreak(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("evaluate streak: %w", err)
	}

	totalPoints := streak.TotalPoints
	if result, err := s.missionService.CompleteMission(ctx, user.ID, models.MissionOpenApp); err != nil {
		if !errors.Is(err, ErrAlreadyCompletedToday) {
			logger.Sugar.Warnw("open_app auto-mission failed", "userId", user.ID.Hex(), "error", err)
		}
	} else {
		totalPoints = result.TotalPoints
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &models.LoginResponse{
		ID:           user.ID.Hex(),
		Token:        token,
		Role:         user.Role,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Streak:       streak.Streak,
		BonusAwarded: streak.BonusAwarded,
		TotalPoints:  totalPoints,
	}, nil
}
