package room

import (
	"hostel-booking/models/hostel"
	"hostel-booking/models/user"
	"time"
)

// RoomType classifies how many beds a room offers.
type RoomType string

const (
	RoomTypeSingle RoomType = "SINGLE"
	RoomTypeDouble RoomType = "DOUBLE"
	RoomTypeTriple RoomType = "TRIPLE"
)

func (rt RoomType) IsValid() bool {
	switch rt {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeTriple:
		return true
	default:
		return false
	}
}

// Room belongs to exactly one hostel. AssignedTo is set only through booking
// approval; nothing prevents a later approval from reassigning an occupied
// room (last writer wins).
type Room struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	HostelID uint          `gorm:"not null;index" json:"hostel_id"`
	Hostel   hostel.Hostel `gorm:"foreignKey:HostelID" json:"hostel"`

	RoomNumber    string   `gorm:"type:varchar(20);not null" json:"room_number"`
	RoomType      RoomType `gorm:"type:varchar(20);default:DOUBLE" json:"room_type"`
	Capacity      int      `gorm:"not null;default:2" json:"capacity"`
	PricePerMonth float64  `gorm:"not null" json:"price_per_month"`
	IsOccupied    bool     `gorm:"default:false;index" json:"is_occupied"`

	AssignedToID *uint      `gorm:"index" json:"assigned_to_id,omitempty"`
	AssignedTo   *user.User `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`

	Floor     int    `json:"floor"`
	Amenities string `gorm:"type:text" json:"amenities"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
