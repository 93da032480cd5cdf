package hostel

import (
	"hostel-booking/models/user"
	"time"
)

// Hostel represents an accommodation listing owned by exactly one owner user.
//
// TotalRooms and AvailableRooms are advisory counters captured at creation
// time. No write path keeps AvailableRooms consistent; the authoritative
// occupancy is derived from bookings in FINAL_ALLOCATED status.
type Hostel struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	OwnerID uint      `gorm:"not null;index" json:"owner_id"`
	Owner   user.User `gorm:"foreignKey:OwnerID" json:"owner"`

	Name             string  `gorm:"type:varchar(150);not null" json:"name"`
	Location         string  `gorm:"type:varchar(200);not null;index" json:"location"`
	Description      string  `gorm:"type:text" json:"description"`
	TotalRooms       int     `gorm:"not null" json:"total_rooms"`
	AvailableRooms   int     `gorm:"not null" json:"available_rooms"`
	PricePerMonth    float64 `gorm:"not null" json:"price_per_month"`
	PricePerSemester float64 `json:"price_per_semester"`
	Image            string  `gorm:"type:varchar(2048)" json:"image"`
	Amenities        string  `gorm:"type:text" json:"amenities"` // comma separated
	IsActive         bool    `gorm:"default:true;index" json:"is_active"`

	Images []HostelImage `gorm:"foreignKey:HostelID" json:"images"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// OwnedBy satisfies the authz ownership predicate.
func (h *Hostel) OwnedBy() uint {
	return h.OwnerID
}
