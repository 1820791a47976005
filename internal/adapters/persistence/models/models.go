package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Users
// ============================================================

// User represents users table
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	FirstName    string `gorm:"size:100;not null" json:"first_name"`
	LastName     string `gorm:"size:100;not null" json:"last_name"`
	Company      string `gorm:"size:200" json:"company"`
	Position     string `gorm:"size:100" json:"position"`
	Phone        string `gorm:"size:30" json:"phone"`
	Sector       string `gorm:"size:100" json:"sector"`
	Interests    string `gorm:"type:text" json:"interests"`

	Role   string `gorm:"size:20;not null;default:'visitor';index" json:"user_type"`
	Status string `gorm:"size:20;not null;default:'pending';index" json:"status"`

	// Set iff Status == rejected
	RejectionReason  *string `gorm:"size:40" json:"rejection_reason,omitempty"`
	RejectionComment *string `gorm:"type:text" json:"rejection_comment,omitempty"`

	ProfileCompletion int  `gorm:"default:0" json:"profile_completion"`
	IsAnonymous       bool `gorm:"default:false;index" json:"-"`

	// Current entitlement assignment
	CurrentPackage   *string    `gorm:"size:40" json:"package_id,omitempty"`
	PackageExpiresAt *time.Time `json:"package_expires_at,omitempty"`
	MeetingsAllowed  int        `gorm:"default:0" json:"meetings_allowed"`
	MeetingsUsed     int        `gorm:"default:0" json:"meetings_used"`

	ValidatedAt *time.Time     `json:"validated_at,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO — the wire shape for user records. The password hash is
// never part of any response.
type UserResponse struct {
	ID                uint       `json:"id"`
	Email             string     `json:"email"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	UserType          string     `json:"user_type"`
	Company           string     `json:"company,omitempty"`
	Position          string     `json:"position,omitempty"`
	Phone             string     `json:"phone,omitempty"`
	Sector            string     `json:"sector,omitempty"`
	Interests         string     `json:"interests,omitempty"`
	Status            string     `json:"status"`
	RejectionReason   *string    `json:"rejection_reason,omitempty"`
	RejectionComment  *string    `json:"rejection_comment,omitempty"`
	ProfileCompletion int        `json:"profile_completion"`
	PackageID         *string    `json:"package_id,omitempty"`
	PackageExpiresAt  *time.Time `json:"package_expires_at,omitempty"`
	ValidatedAt       *time.Time `json:"validated_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:                u.ID,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		UserType:          u.Role,
		Company:           u.Company,
		Position:          u.Position,
		Phone:             u.Phone,
		Sector:            u.Sector,
		Interests:         u.Interests,
		Status:            u.Status,
		RejectionReason:   u.RejectionReason,
		RejectionComment:  u.RejectionComment,
		ProfileCompletion: u.ProfileCompletion,
		PackageID:         u.CurrentPackage,
		PackageExpiresAt:  u.PackageExpiresAt,
		ValidatedAt:       u.ValidatedAt,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

// SummaryResponse is the compact view returned by login and /auth/me.
type SummaryResponse struct {
	ID                uint   `json:"id"`
	Email             string `json:"email"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	UserType          string `json:"user_type"`
	Company           string `json:"company,omitempty"`
	ProfileCompletion int    `json:"profile_completion"`
}

func (u *User) ToSummary() *SummaryResponse {
	return &SummaryResponse{
		ID:                u.ID,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		UserType:          u.Role,
		Company:           u.Company,
		ProfileCompletion: u.ProfileCompletion,
	}
}

// ============================================================
// Validation audit log
// ============================================================

// ValidationAction represents validation_actions table.
// Append-only: one row per admin decision, never updated.
type ValidationAction struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	Action     string    `gorm:"size:20;not null;index" json:"action"`
	AdminID    uint      `gorm:"not null" json:"admin_id"`
	AdminEmail string    `gorm:"size:120" json:"admin_email"`
	Comment    string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (ValidationAction) TableName() string {
	return "validation_actions"
}

// ============================================================
// Entitlement catalog
// ============================================================

// Package represents packages table — immutable reference data seeded at
// startup and never mutated at runtime.
type Package struct {
	ID             string    `gorm:"primaryKey;size:40" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Scope          string    `gorm:"size:20;not null;index" json:"scope"`
	Price          float64   `gorm:"type:decimal(12,2);not null" json:"price"`
	Currency       string    `gorm:"size:10;default:'EUR'" json:"currency"`
	Features       string    `gorm:"type:text" json:"-"` // JSON array
	MeetingCredits int       `gorm:"not null" json:"b2b_meetings"`
	DurationDays   int       `gorm:"not null" json:"duration_days"`
	IsActive       bool      `gorm:"default:true" json:"-"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"-"`
}

func (Package) TableName() string {
	return "packages"
}

// PackageResponse DTO
type PackageResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Scope        string   `json:"scope"`
	Price        float64  `json:"price"`
	Currency     string   `json:"currency"`
	Features     []string `json:"features"`
	B2BMeetings  int      `json:"b2b_meetings"`
	DurationDays int      `json:"duration_days"`
}

func (p *Package) ToResponse() *PackageResponse {
	var features []string
	if p.Features != "" {
		// Seeded as a JSON array; an empty list on decode failure is fine
		_ = json.Unmarshal([]byte(p.Features), &features)
	}
	return &PackageResponse{
		ID:           p.ID,
		Name:         p.Name,
		Scope:        p.Scope,
		Price:        p.Price,
		Currency:     p.Currency,
		Features:     features,
		B2BMeetings:  p.MeetingCredits,
		DurationDays: p.DurationDays,
	}
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&ValidationAction{},
		&Package{},
	)
}
