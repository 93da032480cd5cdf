package user

import (
	"errors"

	"hostel-booking/logger"
	userModel "hostel-booking/models/user"
	"hostel-booking/types"
	"hostel-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Profile returns the authenticated user's account.
func Profile(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, ok := utils.CurrentIdentity(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Invalid user claims",
			})
		}

		var u userModel.User
		if err := db.First(&u, ident.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
					Status:  fiber.StatusNotFound,
					Message: "User not found",
				})
			}
			logger.Error("Error fetching user", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Error fetching user",
			})
		}

		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Status:  fiber.StatusOK,
			Message: "User fetched successfully",
			Data:    u,
		})
	}
}
