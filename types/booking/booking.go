package booking

import (
	"fmt"
	"time"
)

type CreateBookingRequest struct {
	HostelID      uint       `json:"hostel_id" validate:"required"`
	SemesterStart *time.Time `json:"semester_start"`
	SemesterEnd   *time.Time `json:"semester_end"`
	Notes         string     `json:"notes"`
}

func (r *CreateBookingRequest) Validate() error {
	if r.HostelID == 0 {
		return fmt.Errorf("hostel_id is required")
	}
	if r.SemesterStart != nil && r.SemesterEnd != nil && r.SemesterEnd.Before(*r.SemesterStart) {
		return fmt.Errorf("semester_end must not precede semester_start")
	}
	return nil
}

// ApproveBookingRequest optionally names the room to allocate. A room id
// pointing outside the booking's hostel is ignored and the approval
// proceeds roomless.
type ApproveBookingRequest struct {
	RoomID *uint `json:"room_id"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason"`
}

// ApprovalResponse is the approve endpoint payload: the updated booking plus
// the exact number of the student's other pending bookings that were
// auto-cancelled.
type ApprovalResponse struct {
	Booking       interface{} `json:"booking"`
	AutoCancelled int         `json:"auto_cancelled"`
}
