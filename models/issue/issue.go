package issue

import (
	"hostel-booking/models/booking"
	"hostel-booking/models/hostel"
	"hostel-booking/models/user"
	"time"
)

type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
	StatusClosed     Status = "CLOSED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	default:
		return false
	}
}

// IsPending reports whether the issue still needs owner attention.
func (s Status) IsPending() bool {
	return s == StatusOpen || s == StatusInProgress
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Issue is a maintenance report filed by a student against a hostel.
type Issue struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	UserID uint      `gorm:"not null;index" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"user"`

	HostelID uint          `gorm:"not null;index" json:"hostel_id"`
	Hostel   hostel.Hostel `gorm:"foreignKey:HostelID" json:"hostel"`

	BookingID *uint            `gorm:"index" json:"booking_id,omitempty"`
	Booking   *booking.Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`

	Title       string   `gorm:"type:varchar(200);not null" json:"title"`
	Description string   `gorm:"type:text;not null" json:"description"`
	Priority    Priority `gorm:"type:varchar(10);default:MEDIUM;index" json:"priority"`
	Status      Status   `gorm:"type:varchar(20);default:OPEN;index" json:"status"`
	Attachment  string   `gorm:"type:varchar(2048)" json:"attachment"`

	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	ResolutionNotes string     `gorm:"type:text" json:"resolution_notes"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
