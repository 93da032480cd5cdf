package notice

import (
	"hostel-booking/models/hostel"
	"hostel-booking/models/user"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	default:
		return false
	}
}

// Notice is an announcement posted by a hostel owner to its residents.
type Notice struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	HostelID uint          `gorm:"not null;index" json:"hostel_id"`
	Hostel   hostel.Hostel `gorm:"foreignKey:HostelID" json:"hostel"`

	OwnerID uint      `gorm:"not null" json:"owner_id"`
	Owner   user.User `gorm:"foreignKey:OwnerID" json:"owner"`

	Title    string   `gorm:"type:varchar(200);not null" json:"title"`
	Message  string   `gorm:"type:text;not null" json:"message"`
	Priority Priority `gorm:"type:varchar(10);default:NORMAL" json:"priority"`
	IsActive bool     `gorm:"default:true;index" json:"is_active"`

	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
