package dashboard

import (
	"errors"
	"time"

	"hostel-booking/logger"
	bookingModel "hostel-booking/models/booking"
	hostelModel "hostel-booking/models/hostel"
	issueModel "hostel-booking/models/issue"
	paymentModel "hostel-booking/models/payment"
	roomModel "hostel-booking/models/room"
	userModel "hostel-booking/models/user"
	"hostel-booking/services/authz"
	"hostel-booking/types"
	"hostel-booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// DashboardController aggregates per-role statistics. Everything is
// recomputed from the database on each request.
type DashboardController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewDashboardController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *DashboardController {
	return &DashboardController{DB: db, Logger: asyncLogger}
}

func (dc *DashboardController) internalError(c *fiber.Ctx, msg string, err error) error {
	logger.Error(msg, err)
	return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
		Status:  fiber.StatusInternalServerError,
		Message: msg,
	})
}

// successPaymentTotal sums SUCCESS payments over the given booking filter.
func (dc *DashboardController) successPaymentTotal(where string, args ...interface{}) (float64, error) {
	var total float64
	err := dc.DB.Model(&paymentModel.Payment{}).
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Where("payments.status = ?", paymentModel.StatusSuccess).
		Where(where, args...).
		Select("COALESCE(SUM(payments.amount), 0)").
		Scan(&total).Error
	return total, err
}

// Student returns the caller's booking, issue and payment aggregates plus
// their three most recent bookings.
func (dc *DashboardController) Student(c *fiber.Ctx) error {
	ident, _ := utils.CurrentIdentity(c)
	if err := authz.RequireRole(ident, userModel.RoleStudent, "Only students can access this"); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: err.Error(),
		})
	}

	var user userModel.User
	if err := dc.DB.First(&user, ident.UserID).Error; err != nil {
		return dc.internalError(c, "Failed to load user", err)
	}

	var bookings []bookingModel.Booking
	err := dc.DB.Preload("Hostel").Preload("Room").
		Where("user_id = ?", ident.UserID).
		Order("booking_date DESC").
		Find(&bookings).Error
	if err != nil {
		return dc.internalError(c, "Failed to load bookings", err)
	}

	var active *bookingModel.Booking
	for i := range bookings {
		if bookings[i].Status == bookingModel.StatusAllocated ||
			bookings[i].Status == bookingModel.StatusFinalAllocated {
			active = &bookings[i]
			break
		}
	}

	var pendingIssues, resolvedIssues int64
	if err := dc.DB.Model(&issueModel.Issue{}).
		Where("user_id = ? AND status IN ?", ident.UserID,
			[]issueModel.Status{issueModel.StatusOpen, issueModel.StatusInProgress}).
		Count(&pendingIssues).Error; err != nil {
		return dc.internalError(c, "Failed to count issues", err)
	}
	if err := dc.DB.Model(&issueModel.Issue{}).
		Where("user_id = ? AND status = ?", ident.UserID, issueModel.StatusResolved).
		Count(&resolvedIssues).Error; err != nil {
		return dc.internalError(c, "Failed to count issues", err)
	}

	totalPaid, err := dc.successPaymentTotal("bookings.user_id = ?", ident.UserID)
	if err != nil {
		return dc.internalError(c, "Failed to sum payments", err)
	}

	recent := bookings
	if len(recent) > 3 {
		recent = recent[:3]
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Dashboard fetched successfully",
		Data: fiber.Map{
			"user":            user,
			"total_bookings":  len(bookings),
			"active_booking":  active,
			"pending_issues":  pendingIssues,
			"resolved_issues": resolvedIssues,
			"total_paid":      totalPaid,
			"recent_bookings": recent,
		},
	})
}

// Owner returns fleet-wide statistics across the caller's hostels: allocated
// students, room occupancy, pending work and revenue, including the
// month-to-date slice.
func (dc *DashboardController) Owner(c *fiber.Ctx) error {
	ident, _ := utils.CurrentIdentity(c)
	if err := authz.RequireRole(ident, userModel.RoleOwner, "Only owners can access this"); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: err.Error(),
		})
	}

	var user userModel.User
	if err := dc.DB.First(&user, ident.UserID).Error; err != nil {
		return dc.internalError(c, "Failed to load user", err)
	}

	var hostels []hostelModel.Hostel
	if err := dc.DB.Preload("Images").Where("owner_id = ?", ident.UserID).Find(&hostels).Error; err != nil {
		return dc.internalError(c, "Failed to load hostels", err)
	}

	hostelIDs := make([]uint, 0, len(hostels))
	for _, h := range hostels {
		hostelIDs = append(hostelIDs, h.ID)
	}

	var totalStudents, pendingBookings, totalRooms, occupiedRooms, pendingIssues int64
	var totalRevenue, monthRevenue float64
	if len(hostelIDs) > 0 {
		if err := dc.DB.Model(&bookingModel.Booking{}).
			Where("hostel_id IN ? AND status = ?", hostelIDs, bookingModel.StatusFinalAllocated).
			Count(&totalStudents).Error; err != nil {
			return dc.internalError(c, "Failed to count bookings", err)
		}
		if err := dc.DB.Model(&bookingModel.Booking{}).
			Where("hostel_id IN ? AND status = ?", hostelIDs, bookingModel.StatusPending).
			Count(&pendingBookings).Error; err != nil {
			return dc.internalError(c, "Failed to count bookings", err)
		}
		if err := dc.DB.Model(&roomModel.Room{}).
			Where("hostel_id IN ?", hostelIDs).
			Count(&totalRooms).Error; err != nil {
			return dc.internalError(c, "Failed to count rooms", err)
		}
		if err := dc.DB.Model(&roomModel.Room{}).
			Where("hostel_id IN ? AND is_occupied = ?", hostelIDs, true).
			Count(&occupiedRooms).Error; err != nil {
			return dc.internalError(c, "Failed to count rooms", err)
		}
		if err := dc.DB.Model(&issueModel.Issue{}).
			Where("hostel_id IN ? AND status IN ?", hostelIDs,
				[]issueModel.Status{issueModel.StatusOpen, issueModel.StatusInProgress}).
			Count(&pendingIssues).Error; err != nil {
			return dc.internalError(c, "Failed to count issues", err)
		}

		var err error
		totalRevenue, err = dc.successPaymentTotal("bookings.hostel_id IN ?", hostelIDs)
		if err != nil {
			return dc.internalError(c, "Failed to sum payments", err)
		}
		monthStart := now.With(time.Now()).BeginningOfMonth()
		monthRevenue, err = dc.successPaymentTotal(
			"bookings.hostel_id IN ? AND payments.created_at >= ?", hostelIDs, monthStart)
		if err != nil {
			return dc.internalError(c, "Failed to sum payments", err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Dashboard fetched successfully",
		Data: fiber.Map{
			"user":                     user,
			"total_hostels":            len(hostels),
			"total_students":           totalStudents,
			"total_rooms":              totalRooms,
			"occupied_rooms":           occupiedRooms,
			"available_rooms":          totalRooms - occupiedRooms,
			"pending_booking_requests": pendingBookings,
			"total_revenue":            totalRevenue,
			"month_revenue":            monthRevenue,
			"pending_issues":           pendingIssues,
			"hostels":                  hostels,
		},
	})
}

// HostelStats returns detailed per-hostel statistics for its owner.
func (dc *DashboardController) HostelStats(c *fiber.Ctx) error {
	hostelID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid hostel id",
		})
	}

	var hostel hostelModel.Hostel
	if err := dc.DB.Preload("Images").First(&hostel, hostelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Hostel not found",
			})
		}
		return dc.internalError(c, "Failed to load hostel", err)
	}

	ident, _ := utils.CurrentIdentity(c)
	if err := authz.RequireOwner(ident, &hostel); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: err.Error(),
		})
	}

	countBookings := func(status bookingModel.Status) (int64, error) {
		var n int64
		err := dc.DB.Model(&bookingModel.Booking{}).
			Where("hostel_id = ? AND status = ?", hostel.ID, status).
			Count(&n).Error
		return n, err
	}

	totalStudents, err := countBookings(bookingModel.StatusFinalAllocated)
	if err != nil {
		return dc.internalError(c, "Failed to count bookings", err)
	}
	pendingApprovals, err := countBookings(bookingModel.StatusPending)
	if err != nil {
		return dc.internalError(c, "Failed to count bookings", err)
	}
	cancelled, err := countBookings(bookingModel.StatusCancelled)
	if err != nil {
		return dc.internalError(c, "Failed to count bookings", err)
	}

	var totalRooms, occupiedRooms int64
	if err := dc.DB.Model(&roomModel.Room{}).
		Where("hostel_id = ?", hostel.ID).
		Count(&totalRooms).Error; err != nil {
		return dc.internalError(c, "Failed to count rooms", err)
	}
	if err := dc.DB.Model(&roomModel.Room{}).
		Where("hostel_id = ? AND is_occupied = ?", hostel.ID, true).
		Count(&occupiedRooms).Error; err != nil {
		return dc.internalError(c, "Failed to count rooms", err)
	}

	var openIssues, resolvedIssues int64
	if err := dc.DB.Model(&issueModel.Issue{}).
		Where("hostel_id = ? AND status IN ?", hostel.ID,
			[]issueModel.Status{issueModel.StatusOpen, issueModel.StatusInProgress}).
		Count(&openIssues).Error; err != nil {
		return dc.internalError(c, "Failed to count issues", err)
	}
	if err := dc.DB.Model(&issueModel.Issue{}).
		Where("hostel_id = ? AND status = ?", hostel.ID, issueModel.StatusResolved).
		Count(&resolvedIssues).Error; err != nil {
		return dc.internalError(c, "Failed to count issues", err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Hostel statistics fetched successfully",
		Data: fiber.Map{
			"hostel":             hostel,
			"total_rooms":        totalRooms,
			"occupied_rooms":     occupiedRooms,
			"available_rooms":    totalRooms - occupiedRooms,
			"total_students":     totalStudents,
			"pending_approvals":  pendingApprovals,
			"cancelled_bookings": cancelled,
			"open_issues":        openIssues,
			"resolved_issues":    resolvedIssues,
		},
	})
}
