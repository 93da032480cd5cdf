package middleware

import (
	"hostel-booking/models/user"
	"hostel-booking/types"
	"hostel-booking/utils"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the bearer token and stores the resolved identity in
// locals. Role and ownership checks happen in the operations themselves; the
// middleware only authenticates.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := utils.ExtractBearerToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: err.Error(),
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Invalid or expired token",
				Status:  fiber.StatusUnauthorized,
			})
		}

		c.Locals("identity", types.Identity{
			UserID: claims.UserID,
			Role:   user.Role(claims.Role),
			Email:  claims.Email,
		})
		return c.Next()
	}
}
