package room

import (
	"fmt"
	"strings"

	roomModel "hostel-booking/models/room"
)

type CreateRoomRequest struct {
	HostelID      uint    `json:"hostel_id" validate:"required"`
	RoomNumber    string  `json:"room_number" validate:"required,max=20"`
	RoomType      string  `json:"room_type" validate:"omitempty,oneof=SINGLE DOUBLE TRIPLE"`
	Capacity      int     `json:"capacity" validate:"omitempty,min=1"`
	PricePerMonth float64 `json:"price_per_month" validate:"required,min=0"`
	Floor         int     `json:"floor"`
	Amenities     string  `json:"amenities"`
}

func (r *CreateRoomRequest) Validate() error {
	r.RoomNumber = strings.TrimSpace(r.RoomNumber)
	if r.HostelID == 0 {
		return fmt.Errorf("hostel_id is required")
	}
	if r.RoomNumber == "" {
		return fmt.Errorf("room_number is required")
	}
	if r.RoomType != "" && !roomModel.RoomType(r.RoomType).IsValid() {
		return fmt.Errorf("room_type must be SINGLE, DOUBLE or TRIPLE")
	}
	if r.PricePerMonth < 0 {
		return fmt.Errorf("price_per_month must not be negative")
	}
	return nil
}

// TypeOrDefault returns the requested room type, defaulting to DOUBLE.
func (r *CreateRoomRequest) TypeOrDefault() roomModel.RoomType {
	if r.RoomType == "" {
		return roomModel.RoomTypeDouble
	}
	return roomModel.RoomType(r.RoomType)
}

// CapacityOrDefault returns the requested capacity, defaulting to 2.
func (r *CreateRoomRequest) CapacityOrDefault() int {
	if r.Capacity == 0 {
		return 2
	}
	return r.Capacity
}

type UpdateRoomRequest struct {
	PricePerMonth *float64 `json:"price_per_month"`
	Amenities     *string  `json:"amenities"`
}

func (r *UpdateRoomRequest) Validate() error {
	if r.PricePerMonth != nil && *r.PricePerMonth < 0 {
		return fmt.Errorf("price_per_month must not be negative")
	}
	return nil
}
