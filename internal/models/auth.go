package models

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	Gender        string `json:"gender"`
	ContactNumber string `json:"contactNumber" binding:"required"`
	City          string `json:"city"`
	Barangay      string `json:"barangay"`
	Address       string `json:"address"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	Role          string `json:"role"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned after a successful login. Streak and BonusAwarded
// reflect the streak evaluation that runs as part of the login flow.
type LoginResponse struct {
	ID           string `json:"id"`
	Token        string `json:"token"`
	Role         string `json:"role"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Streak       int    `json:"streak"`
	BonusAwarded bool   `json:"bonusAwarded"`
	TotalPoints  int    `json:"totalPoints"`
}

// CompleteMissionRequest is the payload for POST /missions/complete.
type CompleteMissionRequest struct {
	UserID  string `json:"userId" binding:"required"`
	Trigger string `json:"trigger" binding:"required"`
}

// CompleteMissionResponse is returned when a mission award succeeds.
type CompleteMissionResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Points      int    `json:"points"`
	TotalPoints int    `json:"totalPoints"`
}

// PointsResponse is returned by GET /points.
type PointsResponse struct {
	TotalPoints  int  `json:"totalPoints"`
	Streak       int  `json:"streak"`
	BonusAwarded bool `json:"bonusAwarded"`
}

// AddPointsRequest is the payload for the staff point-adjustment endpoint.
type AddPointsRequest struct {
	UserID      string `json:"userId" binding:"required"`
	Description string `json:"description" binding:"required"`
	Points      int    `json:"points" binding:"required,gt=0"`
}
