package services

import "errors"

// Business errors surfaced to the handler layer. Store failures are returned
// as-is and map to generic server errors.
var (
	// ErrInvalidMission is returned when the trigger key matches no catalog
	// mission.
	ErrInvalidMission = errors.New("invalid mission")

	// ErrAlreadyCompletedToday is a business-rule rejection, not a failure:
	// the user already completed the mission this calendar day and no state
	// was changed.
	ErrAlreadyCompletedToday = errors.New("mission already completed today")

	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned on registration with an existing email.
	ErrEmailTaken = errors.New("user with this email already exists")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidPeriod is returned for an unknown leaderboard period.
	ErrInvalidPeriod = errors.New("invalid leaderboard period")
)
