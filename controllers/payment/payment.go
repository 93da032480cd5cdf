package payment

import (
	"errors"

	"hostel-booking/logger"
	bookingModel "hostel-booking/models/booking"
	hostelModel "hostel-booking/models/hostel"
	paymentModel "hostel-booking/models/payment"
	userModel "hostel-booking/models/user"
	"hostel-booking/services/authz"
	"hostel-booking/types"
	paymentTypes "hostel-booking/types/payment"
	"hostel-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PaymentController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewPaymentController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *PaymentController {
	return &PaymentController{DB: db, Logger: asyncLogger}
}

func (pc *PaymentController) loadBooking(id uint) (*bookingModel.Booking, error) {
	var booking bookingModel.Booking
	if err := pc.DB.Preload("Hostel").First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// createPayment persists the payment with a generated transaction id when
// none was supplied. There is no gateway, so the payment is SUCCESS on write.
func (pc *PaymentController) createPayment(req *paymentTypes.RecordPaymentRequest) (*paymentModel.Payment, error) {
	txnID := req.TransactionID
	if txnID == "" {
		txnID = utils.GenerateTransactionID()
	}
	payment := paymentModel.Payment{
		BookingID:     req.BookingID,
		Amount:        req.Amount,
		PaymentMethod: req.MethodOrDefault(),
		TransactionID: txnID,
		Status:        paymentModel.StatusSuccess,
	}
	if err := pc.DB.Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// Store records a payment against a booking. Only the owner of the
// booking's hostel may record.
func (pc *PaymentController) Store(c *fiber.Ctx) error {
	var req paymentTypes.RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	booking, err := pc.loadBooking(req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Booking not found",
			})
		}
		logger.Error("Failed to load booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load booking",
		})
	}

	ident, _ := utils.CurrentIdentity(c)
	if err := authz.RequireOwner(ident, &booking.Hostel); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: err.Error(),
		})
	}

	payment, err := pc.createPayment(&req)
	if err != nil {
		logger.Error("Failed to record payment", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to record payment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Payment recorded successfully",
		Data:    payment,
	})
}

// Make lets a student pay for their own booking.
func (pc *PaymentController) Make(c *fiber.Ctx) error {
	ident, _ := utils.CurrentIdentity(c)
	if err := authz.RequireRole(ident, userModel.RoleStudent, "Only students can make payments"); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: err.Error(),
		})
	}

	var req paymentTypes.RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	booking, err := pc.loadBooking(req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Booking not found",
			})
		}
		logger.Error("Failed to load booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load booking",
		})
	}

	if booking.UserID != ident.UserID {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: "Unauthorized",
		})
	}

	payment, err := pc.createPayment(&req)
	if err != nil {
		logger.Error("Failed to record payment", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to record payment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Payment successful",
		Data:    payment,
	})
}

// My lists payments on the caller's bookings, newest first.
func (pc *PaymentController) My(c *fiber.Ctx) error {
	ident, _ := utils.CurrentIdentity(c)

	var payments []paymentModel.Payment
	err := pc.DB.Preload("Booking").Preload("Booking.Hostel").
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Where("bookings.user_id = ?", ident.UserID).
		Order("payments.created_at DESC").
		Find(&payments).Error
	if err != nil {
		logger.Error("Failed to list payments", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to list payments",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payments fetched successfully",
		Data:    fiber.Map{"payments": payments},
	})
}

// ByHostel lists a hostel's payments for its owner plus the SUCCESS total.
func (pc *PaymentController) ByHostel(c *fiber.Ctx) error {
	hostelID, err := c.ParamsInt("hostelID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid hostel id",
		})
	}

	var hostel hostelModel.Hostel
	if err := pc.DB.First(&hostel, hostelID).Error; err != nil {
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

	var payments []paymentModel.Payment
	err = pc.DB.Preload("Booking").Preload("Booking.User").
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Where("bookings.hostel_id = ?", hostel.ID).
		Order("payments.created_at DESC").
		Find(&payments).Error
	if err != nil {
		logger.Error("Failed to list payments", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to list payments",
		})
	}

	totalCollected := 0.0
	for _, p := range payments {
		if p.Status == paymentModel.StatusSuccess {
			totalCollected += p.Amount
		}
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payments fetched successfully",
		Data: fiber.Map{
			"payments":        payments,
			"total":           len(payments),
			"total_collected": totalCollected,
		},
	})
}
