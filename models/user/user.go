package user

import (
	"time"
)

// Role identifies what a user is allowed to do in the system.
type Role string

const (
	RoleStudent Role = "student"
	RoleOwner   Role = "owner"
	// RoleAdmin is declared but has no dedicated endpoints; registration
	// only accepts student and owner.
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleOwner, RoleAdmin:
		return true
	default:
		return false
	}
}

// Display returns the human readable role name.
func (r Role) Display() string {
	switch r {
	case RoleStudent:
		return "Student"
	case RoleOwner:
		return "Owner"
	case RoleAdmin:
		return "Admin"
	default:
		return string(r)
	}
}

// User represents an account with role management.
type User struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username       string `gorm:"type:varchar(255);not null;unique" json:"username"`
	Email          string `gorm:"type:varchar(255);not null;unique" json:"email"`
	Password       string `gorm:"type:varchar(255);not null" json:"-"`
	FirstName      string `gorm:"type:varchar(30)" json:"first_name"`
	LastName       string `gorm:"type:varchar(30)" json:"last_name"`
	Role           Role   `gorm:"type:varchar(20);not null;default:student" json:"role"`
	PhoneNumber    string `gorm:"type:varchar(15)" json:"phone_number"`
	ProfilePicture string `gorm:"type:varchar(2048)" json:"profile_picture"`
	IsVerified     bool   `gorm:"default:false" json:"is_verified"`
	IsActive       bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// FullName joins first and last name, dropping whichever is empty.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
