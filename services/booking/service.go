// Package booking implements the booking lifecycle: PENDING on creation,
// then FINAL_ALLOCATED or CANCELLED through owner approval and rejection.
// AWAITING_ALLOCATION and ALLOCATED are declared states no operation
// produces.
package booking

import (
	"errors"
	"fmt"
	"time"

	"hostel-booking/errs"
	"hostel-booking/logger"
	bookingModel "hostel-booking/models/booking"
	hostelModel "hostel-booking/models/hostel"
	roomModel "hostel-booking/models/room"
	"hostel-booking/services/authz"
	"hostel-booking/types"
	bookingTypes "hostel-booking/types/booking"

	"gorm.io/gorm"
)

// Service owns all booking state transitions. Callers pass their resolved
// identity explicitly; the service never looks at request context.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create opens a PENDING booking for the caller on the given hostel.
// Students only. A second booking for the same hostel is rejected while an
// earlier one is still PENDING, ALLOCATED or FINAL_ALLOCATED. There is no
// row locking, so two concurrent creates for the same user and hostel can
// both pass this check; that race is accepted behavior.
func (s *Service) Create(caller types.Identity, req *bookingTypes.CreateBookingRequest) (*bookingModel.Booking, error) {
	if !caller.IsStudent() {
		return nil, errs.Authorization("Only students can book hostels")
	}
	if err := req.Validate(); err != nil {
		return nil, errs.Validation(err.Error())
	}

	var hostel hostelModel.Hostel
	if err := s.db.First(&hostel, req.HostelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Hostel not found")
		}
		return nil, err
	}

	var existing bookingModel.Booking
	err := s.db.Where("user_id = ? AND hostel_id = ? AND status IN ?",
		caller.UserID, hostel.ID, bookingModel.ActiveStatuses()).First(&existing).Error
	if err == nil {
		return nil, errs.Conflict("You already have a booking for this hostel")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	booking := bookingModel.Booking{
		UserID:        caller.UserID,
		HostelID:      hostel.ID,
		Status:        bookingModel.StatusPending,
		BookingDate:   time.Now(),
		SemesterStart: req.SemesterStart,
		SemesterEnd:   req.SemesterEnd,
		Notes:         req.Notes,
		IsActive:      true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		return s.recordEvent(tx, booking.ID, bookingModel.StatusPending, "", caller.UserID)
	})
	if err != nil {
		return nil, err
	}

	logger.Success(fmt.Sprintf("Booking %d created for hostel %d", booking.ID, hostel.ID))
	return s.load(booking.ID)
}

// Approve transitions a booking to FINAL_ALLOCATED and runs the allocation
// side effects. Only the owner of the booking's hostel may approve. A room
// id is honored only when the room belongs to the same hostel; otherwise the
// approval proceeds without a room, exactly like a missing room id.
//
// There is deliberately no precondition on the current status: approving an
// already approved booking succeeds, overwrites the approval fields and the
// room attachment, and re-runs the auto-cancellation sweep. The whole sequence runs inside one
// transaction, so a crash cannot leave the booking allocated with the room
// unmarked.
//
// Every other PENDING booking of the same student, across all hostels, is
// cancelled with bookingModel.AutoCancelReason. The count of cancelled
// peers is returned alongside the updated booking.
func (s *Service) Approve(caller types.Identity, bookingID uint, roomID *uint) (*bookingModel.Booking, int, error) {
	booking, err := s.loadWithHostel(bookingID)
	if err != nil {
		return nil, 0, err
	}
	if err := authz.RequireOwner(caller, &booking.Hostel); err != nil {
		return nil, 0, err
	}

	var room *roomModel.Room
	if roomID != nil {
		var r roomModel.Room
		err := s.db.Where("id = ? AND hostel_id = ?", *roomID, booking.HostelID).First(&r).Error
		if err == nil {
			room = &r
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, err
		}
	}

	autoCancelled := 0
	now := time.Now()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		booking.Status = bookingModel.StatusFinalAllocated
		booking.ApprovedByID = &caller.UserID
		booking.ApprovalDate = &now
		booking.AllocationDate = &now
		// The resolved room is assigned unconditionally: a re-approval
		// without a room id (or with one that misses) clears a previous
		// attachment rather than keeping it.
		booking.RoomID = nil
		booking.RoomNumber = ""
		if room != nil {
			booking.RoomID = &room.ID
			booking.RoomNumber = room.RoomNumber
		}
		if err := tx.Save(booking).Error; err != nil {
			return err
		}
		if err := s.recordEvent(tx, booking.ID, bookingModel.StatusFinalAllocated, "", caller.UserID); err != nil {
			return err
		}

		if room != nil {
			room.IsOccupied = true
			room.AssignedToID = &booking.UserID
			if err := tx.Save(room).Error; err != nil {
				return err
			}
		}

		var peers []bookingModel.Booking
		if err := tx.Where("user_id = ? AND status = ? AND id <> ?",
			booking.UserID, bookingModel.StatusPending, booking.ID).Find(&peers).Error; err != nil {
			return err
		}
		for i := range peers {
			peers[i].Status = bookingModel.StatusCancelled
			peers[i].RejectionReason = bookingModel.AutoCancelReason
			if err := tx.Save(&peers[i]).Error; err != nil {
				return err
			}
			if err := s.recordEvent(tx, peers[i].ID, bookingModel.StatusCancelled, bookingModel.AutoCancelReason, caller.UserID); err != nil {
				return err
			}
			autoCancelled++
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	logger.Infof("Approved booking %d, auto-cancelled %d other pending bookings for user %d",
		booking.ID, autoCancelled, booking.UserID)

	loaded, err := s.load(booking.ID)
	if err != nil {
		return nil, 0, err
	}
	return loaded, autoCancelled, nil
}

// Reject cancels a booking with the supplied reason, recorded verbatim.
// Only the owner of the booking's hostel may reject. Rooms are never
// touched, and like Approve there is no precondition on the current status.
func (s *Service) Reject(caller types.Identity, bookingID uint, reason string) (*bookingModel.Booking, error) {
	booking, err := s.loadWithHostel(bookingID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(caller, &booking.Hostel); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		booking.Status = bookingModel.StatusCancelled
		booking.RejectionReason = reason
		if err := tx.Save(booking).Error; err != nil {
			return err
		}
		return s.recordEvent(tx, booking.ID, bookingModel.StatusCancelled, reason, caller.UserID)
	})
	if err != nil {
		return nil, err
	}

	return s.load(booking.ID)
}

// AvailableRooms derives availability from bookings: total rooms minus
// FINAL_ALLOCATED count. The stored counter on the hostel is advisory only
// and is used solely as a fallback when the count fails.
func (s *Service) AvailableRooms(h *hostelModel.Hostel) int {
	var allocated int64
	err := s.db.Model(&bookingModel.Booking{}).
		Where("hostel_id = ? AND status = ?", h.ID, bookingModel.StatusFinalAllocated).
		Count(&allocated).Error
	if err != nil {
		return h.AvailableRooms
	}
	return h.TotalRooms - int(allocated)
}

func (s *Service) recordEvent(tx *gorm.DB, bookingID uint, status bookingModel.Status, reason string, by uint) error {
	event := bookingModel.BookingStatusEvent{
		BookingID: bookingID,
		Status:    status,
		Reason:    reason,
		CreatedBy: by,
	}
	return tx.Create(&event).Error
}

func (s *Service) loadWithHostel(id uint) (*bookingModel.Booking, error) {
	var booking bookingModel.Booking
	if err := s.db.Preload("Hostel").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Booking not found")
		}
		return nil, err
	}
	return &booking, nil
}

func (s *Service) load(id uint) (*bookingModel.Booking, error) {
	var booking bookingModel.Booking
	err := s.db.Preload("User").Preload("Hostel").Preload("Room").Preload("ApprovedBy").
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
