package hostel

import (
	"errors"
	"fmt"

	"hostel-booking/logger"
	hostelModel "hostel-booking/models/hostel"
	roomModel "hostel-booking/models/room"
	userModel "hostel-booking/models/user"
	"hostel-booking/services/authz"
	bookingService "hostel-booking/services/booking"
	"hostel-booking/services/media"
	"hostel-booking/types"
	hostelTypes "hostel-booking/types/hostel"
	"hostel-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HostelController handles hostel catalog requests.
type HostelController struct {
	DB       *gorm.DB
	Bookings *bookingService.Service
	Logger   *logger.AsyncLogger
}

func NewHostelController(db *gorm.DB, bookings *bookingService.Service, asyncLogger *logger.AsyncLogger) *HostelController {
	return &HostelController{DB: db, Bookings: bookings, Logger: asyncLogger}
}

// hostelView overrides the stored advisory counter with the availability
// derived from bookings.
type hostelView struct {
	hostelModel.Hostel
	AvailableRooms int `json:"available_rooms"`
}

func (hc *HostelController) view(h hostelModel.Hostel) hostelView {
	return hostelView{Hostel: h, AvailableRooms: hc.Bookings.AvailableRooms(&h)}
}

func (hc *HostelController) views(hostels []hostelModel.Hostel) []hostelView {
	out := make([]hostelView, 0, len(hostels))
	for _, h := range hostels {
		out = append(out, hc.view(h))
	}
	return out
}

// Store creates a hostel for the calling owner. Inline data-URI images are
// persisted by the media service; pre-uploaded URLs are stored as-is.
func (hc *HostelController) Store(c *fiber.Ctx) error {
	ident, _ := utils.CurrentIdentity(c)
	if err := authz.RequireRole(ident, userModel.RoleOwner, "Only owners can add hostels"); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: err.Error(),
		})
	}

	var req hostelTypes.CreateHostelRequest
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

	hostel := hostelModel.Hostel{
		OwnerID:          ident.UserID,
		Name:             req.Name,
		Location:         req.Location,
		Description:      req.Description,
		TotalRooms:       req.TotalRooms,
		AvailableRooms:   req.TotalRooms,
		PricePerMonth:    req.PricePerMonth,
		PricePerSemester: req.PricePerSemester,
		Amenities:        req.Amenities,
		IsActive:         true,
	}

	for idx, img := range req.Images {
		url := img.ImageURL
		if url == "" && img.Data != "" {
			saved, err := media.SaveDataURI(img.Data, idx)
			if err != nil {
				logger.Error("Failed to save hostel image", err)
				continue
			}
			url = saved
		}
		if url == "" {
			continue
		}
		caption := img.Caption
		if caption == "" {
			caption = fmt.Sprintf("Hostel Image %d", idx+1)
		}
		hostel.Images = append(hostel.Images, hostelModel.HostelImage{
			ImageURL:  url,
			Caption:   caption,
			IsPrimary: img.IsPrimary || idx == 0,
			SortOrder: idx,
		})
	}
	if len(hostel.Images) > 0 {
		hostel.Image = hostel.Images[0].ImageURL
	}

	if err := hc.DB.Create(&hostel).Error; err != nil {
		logger.Error("Failed to create hostel", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save hostel",
		})
	}

	logger.Success(fmt.Sprintf("Hostel created successfully with ID: %d", hostel.ID))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Hostel added successfully",
		Data:    hc.view(hostel),
	})
}

// Index lists all active hostels. Public.
func (hc *HostelController) Index(c *fiber.Ctx) error {
	var hostels []hostelModel.Hostel
	if err := hc.DB.Preload("Owner").Preload("Images").Where("is_active = ?", true).Find(&hostels).Error; err != nil {
		logger.Error("Failed to list hostels", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to list hostels",
		})
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Hostels fetched successfully",
		Data:    hc.views(hostels),
	})
}

// My lists hostels owned by the caller.
func (hc *HostelController) My(c *fiber.Ctx) error {
	ident, _ := utils.CurrentIdentity(c)
	if err := authz.RequireRole(ident, userModel.RoleOwner, "Only owners can view their hostels"); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: err.Error(),
		})
	}

	var hostels []hostelModel.Hostel
	if err := hc.DB.Preload("Images").Where("owner_id = ?", ident.UserID).Find(&hostels).Error; err != nil {
		logger.Error("Failed to list hostels", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to list hostels",
		})
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Hostels fetched successfully",
		Data:    hc.views(hostels),
	})
}

// Show returns one hostel with its rooms and computed availability. Public.
func (hc *HostelController) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid hostel id",
		})
	}

	var hostel hostelModel.Hostel
	if err := hc.DB.Preload("Owner").Preload("Images").First(&hostel, id).Error; err != nil {
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

	var rooms []roomModel.Room
	if err := hc.DB.Preload("AssignedTo").Where("hostel_id = ?", hostel.ID).Find(&rooms).Error; err != nil {
		logger.Error("Failed to load rooms", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load rooms",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Hostel fetched successfully",
		Data: fiber.Map{
			"hostel":          hc.view(hostel),
			"rooms":           rooms,
			"total_rooms":     hostel.TotalRooms,
			"available_rooms": hc.Bookings.AvailableRooms(&hostel),
		},
	})
}

// Update replaces the provided fields on a hostel the caller owns.
func (hc *HostelController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid hostel id",
		})
	}

	var hostel hostelModel.Hostel
	if err := hc.DB.First(&hostel, id).Error; err != nil {
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

	var req hostelTypes.UpdateHostelRequest
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

	if req.Name != nil {
		hostel.Name = *req.Name
	}
	if req.Location != nil {
		hostel.Location = *req.Location
	}
	if req.Description != nil {
		hostel.Description = *req.Description
	}
	if req.PricePerMonth != nil {
		hostel.PricePerMonth = *req.PricePerMonth
	}
	if req.Amenities != nil {
		hostel.Amenities = *req.Amenities
	}

	if err := hc.DB.Save(&hostel).Error; err != nil {
		logger.Error("Failed to update hostel", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update hostel",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Hostel updated successfully",
		Data:    hc.view(hostel),
	})
}
