package issue

import (
	"errors"
	"time"

	"hostel-booking/logger"
	hostelModel "hostel-booking/models/hostel"
	issueModel "hostel-booking/models/issue"
	userModel "hostel-booking/models/user"
	"hostel-booking/services/authz"
	"hostel-booking/types"
	issueTypes "hostel-booking/types/issue"
	"hostel-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type IssueController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewIssueController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *IssueController {
	return &IssueController{DB: db, Logger: asyncLogger}
}

// Store files a maintenance issue against a hostel. Students only.
func (ic *IssueController) Store(c *fiber.Ctx) error {
	var req issueTypes.ReportIssueRequest
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

	ident, _ := utils.CurrentIdentity(c)
	if err := authz.RequireRole(ident, userModel.RoleStudent, "Only students can report issues"); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: err.Error(),
		})
	}

	var hostel hostelModel.Hostel
	if err := ic.DB.First(&hostel, req.HostelID).Error; err != nil {
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

	issue := issueModel.Issue{
		UserID:      ident.UserID,
		HostelID:    hostel.ID,
		BookingID:   req.BookingID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.PriorityOrDefault(),
		Status:      issueModel.StatusOpen,
		Attachment:  req.Attachment,
	}
	if err := ic.DB.Create(&issue).Error; err != nil {
		logger.Error("Failed to create issue", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create issue",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Issue reported successfully",
		Data:    issue,
	})
}

// My lists the caller's reported issues, newest first.
func (ic *IssueController) My(c *fiber.Ctx) error {
	ident, _ := utils.CurrentIdentity(c)

	var issues []issueModel.Issue
	err := ic.DB.Preload("Hostel").
		Where("user_id = ?", ident.UserID).
		Order("created_at DESC").
		Find(&issues).Error
	if err != nil {
		logger.Error("Failed to list issues", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to list issues",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Issues fetched successfully",
		Data:    fiber.Map{"issues": issues},
	})
}

// ByHostel lists a hostel's issues for its owner, with a count of those
// still open or in progress.
func (ic *IssueController) ByHostel(c *fiber.Ctx) error {
	hostelID, err := c.ParamsInt("hostelID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid hostel id",
		})
	}

	var hostel hostelModel.Hostel
	if err := ic.DB.First(&hostel, hostelID).Error; err != nil {
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

	var issues []issueModel.Issue
	err = ic.DB.Preload("User").
		Where("hostel_id = ?", hostel.ID).
		Order("created_at DESC").
		Find(&issues).Error
	if err != nil {
		logger.Error("Failed to list issues", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to list issues",
		})
	}

	pending := 0
	for _, i := range issues {
		if i.Status.IsPending() {
			pending++
		}
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Issues fetched successfully",
		Data: fiber.Map{
			"issues":  issues,
			"total":   len(issues),
			"pending": pending,
		},
	})
}

// Resolve marks an issue RESOLVED with the owner's notes.
func (ic *IssueController) Resolve(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid issue id",
		})
	}

	var req issueTypes.ResolveIssueRequest
	if err := c.BodyParser(&req); err != nil {
		req.Notes = ""
	}

	var issue issueModel.Issue
	if err := ic.DB.Preload("Hostel").First(&issue, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Issue not found",
			})
		}
		logger.Error("Failed to load issue", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load issue",
		})
	}

	ident, _ := utils.CurrentIdentity(c)
	if err := authz.RequireOwner(ident, &issue.Hostel); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: err.Error(),
		})
	}

	resolvedAt := time.Now()
	issue.Status = issueModel.StatusResolved
	issue.ResolutionNotes = req.Notes
	issue.ResolvedAt = &resolvedAt
	if err := ic.DB.Save(&issue).Error; err != nil {
		logger.Error("Failed to resolve issue", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to resolve issue",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Issue resolved successfully",
		Data:    issue,
	})
}
