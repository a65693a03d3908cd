package services

import (
	"context"
	"errors"
	"testing"

	"github.com/wastewise/wastewise-backend/internal/config"
	"github.com/wastewise/wastewise-backend/internal/models"
	"github.com/wastewise/wastewise-backend/internal/utils"
)

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *config.Config) {
	t.Helper()
	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600},
	}
	users := newFakeUserRepo()
	userService := NewUserService(users)
	missionService := NewMissionService(
		newFakeMissionRepo(models.Mission{MissionID: models.MissionOpenApp, Name: "Open the App", Points: 1}),
		newFakeMissionLogRepo(),
		users,
	)
	return NewAuthService(users, userService, missionService, cfg), users, cfg
}

func registerRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		FirstName:     "Dana",
		LastName:      "Reyes",
		ContactNumber: "09170000001",
		Email:         "dana@example.com",
		Password:      "hunter22",
	}
}

func TestRegister(t *testing.T) {
	svc, users, cfg := newTestAuthService(t)

	resp, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.Role != models.RoleResident {
		t.Errorf("role = %q, want resident default", resp.Role)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	claims, err := utils.ValidateJWT(resp.Token, cfg)
	if err != nil {
		t.Fatalf("token does not validate: %v", err)
	}
	if claims["role"] != models.RoleResident {
		t.Errorf("token role claim = %v", claims["role"])
	}

	stored, err := users.FindByEmail(context.Background(), "dana@example.com")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if stored.Password == "hunter22" {
		t.Error("password stored in plaintext")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Register(context.Background(), registerRequest())
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestLogin_RunsStreakAndOpenAppMission(t *testing.T) {
	svc, users, _ := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "dana@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Streak != 1 {
		t.Errorf("streak = %d, want 1 on first login", resp.Streak)
	}
	if resp.BonusAwarded {
		t.Error("bonus should not be awarded on first login")
	}
	// The open_app auto-mission pays its point.
	if resp.TotalPoints != 1 {
		t.Errorf("totalPoints = %d, want 1", resp.TotalPoints)
	}

	// A second login the same day: streak unchanged, mission deduped.
	resp, err = svc.Login(context.Background(), &models.LoginRequest{
		Email:    "dana@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if resp.Streak != 1 {
		t.Errorf("streak after same-day re-login = %d, want 1", resp.Streak)
	}
	if resp.TotalPoints != 1 {
		t.Errorf("totalPoints after same-day re-login = %d, want 1", resp.TotalPoints)
	}

	stored, _ := users.FindByEmail(context.Background(), "dana@example.com")
	if stored.TotalPoints != 1 {
		t.Errorf("stored totalPoints = %d, want 1", stored.TotalPoints)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "dana@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}

	_, err = svc.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter22",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}
