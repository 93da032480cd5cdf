package booking

import (
	"time"
)

// BookingStatusEvent records one status transition of a booking. Events are
// many per booking and are only ever appended.
type BookingStatusEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	BookingID uint    `gorm:"not null;index" json:"booking_id"`
	Booking   Booking `gorm:"foreignKey:BookingID" json:"booking"`

	Status    Status    `gorm:"type:varchar(30);not null" json:"status"`
	Reason    string    `gorm:"type:text" json:"reason,omitempty"`
	CreatedBy uint      `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the BookingStatusEvent model.
func (BookingStatusEvent) TableName() string {
	return "booking_status_events"
}
