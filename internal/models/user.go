package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryEntry is a single point-award record embedded in a user document.
// Timestamp is always a real instant; earlier revisions stored locale strings
// in some code paths, which broke period aggregation.
type HistoryEntry struct {
	Description string    `bson:"description" json:"description"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
	Points      int       `bson:"points" json:"points"`
}

// User represents a resident, driver, staff member or admin.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FirstName     string             `bson:"firstName" json:"firstName"`
	LastName      string             `bson:"lastName" json:"lastName"`
	Gender        string             `bson:"gender,omitempty" json:"gender,omitempty"`
	ContactNumber string             `bson:"contactNumber" json:"contactNumber"`
	City          string             `bson:"city,omitempty" json:"city,omitempty"`
	Barangay      string             `bson:"barangay,omitempty" json:"barangay,omitempty"`
	Address       string             `bson:"address,omitempty" json:"address,omitempty"`
	Email         string             `bson:"email" json:"email"`
	Password      string             `bson:"password" json:"-"`
	Role          string             `bson:"role" json:"role"`
	Status        string             `bson:"status,omitempty" json:"status,omitempty"`

	// Gamification ledger. TotalPoints only ever increases and always equals
	// the sum of History entry points awarded through this service.
	TotalPoints   int            `bson:"totalPoints" json:"totalPoints"`
	History       []HistoryEntry `bson:"history" json:"history"`
	Streak        int            `bson:"streak" json:"streak"`
	LastLoginDate *time.Time     `bson:"lastLoginDate,omitempty" json:"lastLoginDate,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Roles accepted by the registration endpoint.
const (
	RoleResident = "resident"
	RoleAdmin    = "admin"
	RoleDriver   = "driver"
	RoleStaff    = "staff"
)
