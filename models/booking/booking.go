package booking

import (
	"hostel-booking/models/hostel"
	"hostel-booking/models/room"
	"hostel-booking/models/user"
	"time"
)

// Booking ties a student, a hostel and (after approval) optionally a room
// together. Created PENDING by a student, transitioned by the hostel owner.
// Bookings are never hard-deleted.
type Booking struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	UserID uint      `gorm:"not null;index" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"user"`

	HostelID uint          `gorm:"not null;index" json:"hostel_id"`
	Hostel   hostel.Hostel `gorm:"foreignKey:HostelID" json:"hostel"`

	RoomID *uint      `gorm:"index" json:"room_id,omitempty"`
	Room   *room.Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	Status Status `gorm:"type:varchar(30);not null;default:PENDING;index" json:"status"`

	// RoomNumber is denormalized so the assignment survives room edits.
	RoomNumber     string     `gorm:"type:varchar(20)" json:"room_number"`
	BookingDate    time.Time  `gorm:"index" json:"booking_date"`
	AllocationDate *time.Time `json:"allocation_date,omitempty"`
	SemesterStart  *time.Time `json:"semester_start,omitempty"`
	SemesterEnd    *time.Time `json:"semester_end,omitempty"`
	Notes          string     `gorm:"type:text" json:"notes"`

	ApprovedByID    *uint      `json:"approved_by_id,omitempty"`
	ApprovedBy      *user.User `gorm:"foreignKey:ApprovedByID" json:"approved_by,omitempty"`
	ApprovalDate    *time.Time `json:"approval_date,omitempty"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
