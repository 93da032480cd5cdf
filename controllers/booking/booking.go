package booking

import (
	"errors"

	"hostel-booking/errs"
	"hostel-booking/logger"
	bookingModel "hostel-booking/models/booking"
	hostelModel "hostel-booking/models/hostel"
	"hostel-booking/services/authz"
	bookingService "hostel-booking/services/booking"
	"hostel-booking/types"
	bookingTypes "hostel-booking/types/booking"
	"hostel-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BookingController exposes the booking lifecycle over HTTP; all state
// transitions live in the booking service.
type BookingController struct {
	DB      *gorm.DB
	Service *bookingService.Service
	Logger  *logger.AsyncLogger
}

func NewBookingController(db *gorm.DB, service *bookingService.Service, asyncLogger *logger.AsyncLogger) *BookingController {
	return &BookingController{DB: db, Service: service, Logger: asyncLogger}
}

func respondServiceError(c *fiber.Ctx, err error) error {
	status := errs.HTTPStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		logger.Error("Booking operation failed", err)
		msg = "Internal server error"
	}
	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: msg,
	})
}

// Store creates a PENDING booking for the calling student.
func (bc *BookingController) Store(c *fiber.Ctx) error {
	var req bookingTypes.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ident, _ := utils.CurrentIdentity(c)
	booking, err := bc.Service.Create(ident, &req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Booking created successfully",
		Data:    booking,
	})
}

// My lists the caller's bookings, newest first.
func (bc *BookingController) My(c *fiber.Ctx) error {
	ident, _ := utils.CurrentIdentity(c)

	var bookings []bookingModel.Booking
	err := bc.DB.Preload("Hostel").Preload("Room").Preload("ApprovedBy").
		Where("user_id = ?", ident.UserID).
		Order("booking_date DESC").
		Find(&bookings).Error
	if err != nil {
		logger.Error("Failed to list bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to list bookings",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bookings fetched successfully",
		Data:    fiber.Map{"bookings": bookings},
	})
}

// ByHostel lists a hostel's bookings for its owner, with pending and
// allocated counts.
func (bc *BookingController) ByHostel(c *fiber.Ctx) error {
	hostelID, err := c.ParamsInt("hostelID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid hostel id",
		})
	}

	var hostel hostelModel.Hostel
	if err := bc.DB.First(&hostel, hostelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Hostel not found",
			})
		}
		logger.Error("Failed to load hostel", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load hostel",
		})
	}

	ident, _ := utils.CurrentIdentity(c)
	if err := authz.RequireOwner(ident, &hostel); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: err.Error(),
		})
	}

	var bookings []bookingModel.Booking
	err = bc.DB.Preload("User").Preload("Room").
		Where("hostel_id = ?", hostel.ID).
		Order("booking_date DESC").
		Find(&bookings).Error
	if err != nil {
		logger.Error("Failed to list bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to list bookings",
		})
	}

	pending, allocated := 0, 0
	for _, b := range bookings {
		switch b.Status {
		case bookingModel.StatusPending:
			pending++
		case bookingModel.StatusAllocated:
			allocated++
		}
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bookings fetched successfully",
		Data: fiber.Map{
			"bookings":  bookings,
			"total":     len(bookings),
			"pending":   pending,
			"allocated": allocated,
		},
	})
}

// Approve finalizes a booking, optionally allocating a room, and reports
// how many other pending bookings of the student were auto-cancelled.
func (bc *BookingController) Approve(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid booking id",
		})
	}

	var req bookingTypes.ApproveBookingRequest
	// Approval without a body is allowed: room assignment is optional.
	if err := c.BodyParser(&req); err != nil {
		req.RoomID = nil
	}

	ident, _ := utils.CurrentIdentity(c)
	booking, autoCancelled, err := bc.Service.Approve(ident, uint(id), req.RoomID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking approved successfully",
		Data: bookingTypes.ApprovalResponse{
			Booking:       booking,
			AutoCancelled: autoCancelled,
		},
	})
}

// Reject cancels a booking with the owner's reason.
func (bc *BookingController) Reject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid booking id",
		})
	}

	var req bookingTypes.RejectBookingRequest
	if err := c.BodyParser(&req); err != nil {
		req.Reason = ""
	}

	ident, _ := utils.CurrentIdentity(c)
	booking, err := bc.Service.Reject(ident, uint(id), req.Reason)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking rejected successfully",
		Data:    booking,
	})
}
