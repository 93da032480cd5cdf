package auth

import (
	"errors"
	"strings"

	"hostel-booking/logger"
	userModel "hostel-booking/models/user"
	"hostel-booking/types"
	authTypes "hostel-booking/types/auth"
	"hostel-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthController handles registration, login and profile requests.
type AuthController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewAuthController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{DB: db, Logger: asyncLogger}
}

// Register creates a new student or owner account and returns an access
// token for it.
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req authTypes.RegisterRequest
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

	username := req.Username
	if username == "" {
		username = req.Email
	}

	var existing userModel.User
	err := ac.DB.Where("email = ? OR username = ?", req.Email, username).First(&existing).Error
	if err == nil {
		msg := "Email already registered"
		if existing.Email != req.Email {
			msg = "Username already taken"
		}
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: msg,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Database error while checking existing user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Registration failed",
		})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Registration failed",
		})
	}

	newUser := userModel.User{
		Username:    username,
		Email:       req.Email,
		Password:    hash,
		FirstName:   strings.TrimSpace(req.Name),
		Role:        req.RoleOrDefault(),
		PhoneNumber: req.PhoneNumber,
		IsActive:    true,
	}
	if err := ac.DB.Create(&newUser).Error; err != nil {
		logger.Error("Failed to create user", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Registration failed",
		})
	}

	token, err := utils.GenerateToken(&newUser)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Registration failed",
		})
	}

	logger.Success("User registered: " + newUser.Email)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "User registered successfully",
		Token:   token,
		Data:    newUser,
	})
}

// Login authenticates by email and password and returns an access token.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
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

	var u userModel.User
	if err := ac.DB.Where("email = ?", req.Email).First(&u).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}
	if !utils.CheckPassword(u.Password, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}

	token, err := utils.GenerateToken(&u)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Login failed",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Login successful",
		Token:   token,
		Data:    u,
	})
}
