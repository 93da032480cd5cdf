package room

import (
	"errors"
	"fmt"

	"hostel-booking/logger"
	hostelModel "hostel-booking/models/hostel"
	roomModel "hostel-booking/models/room"
	userModel "hostel-booking/models/user"
	"hostel-booking/services/authz"
	"hostel-booking/types"
	roomTypes "hostel-booking/types/room"
	"hostel-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RoomController handles room catalog requests.
type RoomController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewRoomController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *RoomController {
	return &RoomController{DB: db, Logger: asyncLogger}
}

// Store adds a room to a hostel the caller owns.
func (rc *RoomController) Store(c *fiber.Ctx) error {
	ident, _ := utils.CurrentIdentity(c)
	if err := authz.RequireRole(ident, userModel.RoleOwner, "Only owners can add rooms"); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: err.Error(),
		})
	}

	var req roomTypes.CreateRoomRequest
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
	if err := rc.DB.First(&hostel, req.HostelID).Error; err != nil || !authz.CanManage(ident, &hostel) {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: "Hostel not found or unauthorized",
		})
	}

	room := roomModel.Room{
		HostelID:      hostel.ID,
		RoomNumber:    req.RoomNumber,
		RoomType:      req.TypeOrDefault(),
		Capacity:      req.CapacityOrDefault(),
		PricePerMonth: req.PricePerMonth,
		Floor:         req.Floor,
		Amenities:     req.Amenities,
	}
	if err := rc.DB.Create(&room).Error; err != nil {
		logger.Error("Failed to create room", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save room",
		})
	}

	logger.Success(fmt.Sprintf("Room created successfully with ID: %d", room.ID))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Room added successfully",
		Data:    room,
	})
}

// ByHostel lists all rooms of a hostel with the occupied count. Public.
func (rc *RoomController) ByHostel(c *fiber.Ctx) error {
	hostelID, err := c.ParamsInt("hostelID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid hostel id",
		})
	}

	var hostel hostelModel.Hostel
	if err := rc.DB.First(&hostel, hostelID).Error; err != nil {
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
	if err := rc.DB.Preload("AssignedTo").Where("hostel_id = ?", hostel.ID).Find(&rooms).Error; err != nil {
		logger.Error("Failed to load rooms", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load rooms",
		})
	}

	occupied := 0
	for _, r := range rooms {
		if r.IsOccupied {
			occupied++
		}
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Rooms fetched successfully",
		Data: fiber.Map{
			"rooms":    rooms,
			"total":    len(rooms),
			"occupied": occupied,
		},
	})
}

// Update changes price and amenities on a room whose hostel the caller owns.
func (rc *RoomController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid room id",
		})
	}

	var room roomModel.Room
	if err := rc.DB.Preload("Hostel").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Room not found",
			})
		}
		logger.Error("Failed to load room", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load room",
		})
	}

	ident, _ := utils.CurrentIdentity(c)
	if err := authz.RequireOwner(ident, &room.Hostel); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: err.Error(),
		})
	}

	var req roomTypes.UpdateRoomRequest
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

	if req.PricePerMonth != nil {
		room.PricePerMonth = *req.PricePerMonth
	}
	if req.Amenities != nil {
		room.Amenities = *req.Amenities
	}

	if err := rc.DB.Save(&room).Error; err != nil {
		logger.Error("Failed to update room", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update room",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Room updated successfully",
		Data:    room,
	})
}
