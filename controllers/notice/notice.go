package notice

import (
	"errors"

	"hostel-booking/logger"
	hostelModel "hostel-booking/models/hostel"
	noticeModel "hostel-booking/models/notice"
	"hostel-booking/services/authz"
	"hostel-booking/types"
	noticeTypes "hostel-booking/types/notice"
	"hostel-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type NoticeController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewNoticeController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *NoticeController {
	return &NoticeController{DB: db, Logger: asyncLogger}
}

// Store posts a notice to a hostel. Only the hostel's owner may post.
func (nc *NoticeController) Store(c *fiber.Ctx) error {
	var req noticeTypes.SendNoticeRequest
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

	var hostel hostelModel.Hostel
	if err := nc.DB.First(&hostel, req.HostelID).Error; err != nil {
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

	notice := noticeModel.Notice{
		HostelID:  hostel.ID,
		OwnerID:   ident.UserID,
		Title:     req.Title,
		Message:   req.Message,
		Priority:  req.PriorityOrDefault(),
		IsActive:  true,
		ExpiresAt: req.ExpiresAt,
	}
	if err := nc.DB.Create(&notice).Error; err != nil {
		logger.Error("Failed to create notice", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create notice",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Notice sent successfully",
		Data:    notice,
	})
}

// ByHostel lists a hostel's active notices, newest first. Public.
func (nc *NoticeController) ByHostel(c *fiber.Ctx) error {
	hostelID, err := c.ParamsInt("hostelID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid hostel id",
		})
	}

	var notices []noticeModel.Notice
	err = nc.DB.Where("hostel_id = ? AND is_active = ?", hostelID, true).
		Order("created_at DESC").
		Find(&notices).Error
	if err != nil {
		logger.Error("Failed to list notices", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to list notices",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Notices fetched successfully",
		Data:    fiber.Map{"notices": notices},
	})
}
