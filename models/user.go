package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	RoleCustomer = "customer"
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

type User struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Phone    string `gorm:"size:20" json:"phone"`
	Role     string `gorm:"not null;default:customer;index" json:"role"` // customer, employee, admin
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
	Language string `gorm:"size:5;default:en" json:"language"`

	// Brute-force protection
	FailedLoginAttempts int        `gorm:"not null;default:0" json:"-"`
	LockoutUntil        *time.Time `json:"-"`

	LastLoginAt *time.Time `json:"last_login_at"`
	JoinedAt    *time.Time `json:"joined_at,omitempty"` // Employees only
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

func (u *User) IsCustomer() bool { return u.Role == RoleCustomer }
func (u *User) IsEmployee() bool { return u.Role == RoleEmployee }
func (u *User) IsAdmin() bool    { return u.Role == RoleAdmin }

// IsLocked reports whether the account is locked out at the given time
func (u *User) IsLocked(now time.Time) bool {
	return u.LockoutUntil != nil && now.Before(*u.LockoutUntil)
}

// Initials returns up to two upper-case initials for avatar placeholders
func (u *User) Initials() string {
	parts := strings.Fields(u.Name)
	if len(parts) == 0 {
		return "?"
	}
	initials := string([]rune(parts[0])[:1])
	if len(parts) > 1 {
		initials += string([]rune(parts[len(parts)-1])[:1])
	}
	return strings.ToUpper(initials)
}

// IsValidRole checks if the role is one the portal knows about
func IsValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleEmployee, RoleAdmin:
		return true
	}
	return false
}
