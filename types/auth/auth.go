package auth

import (
	"fmt"
	"strings"

	"hostel-booking/models/user"
)

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Name        string `json:"name" validate:"required,min=1,max=60"`
	Role        string `json:"role" validate:"omitempty,oneof=student owner"`
	Username    string `json:"username" validate:"omitempty,max=255"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=15"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	if r.Email == "" || r.Password == "" || r.Name == "" {
		return fmt.Errorf("email, password, and name are required")
	}
	if len(r.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	role := user.Role(strings.ToLower(r.Role))
	if r.Role != "" && role != user.RoleStudent && role != user.RoleOwner {
		return fmt.Errorf("role must be 'student' or 'owner'")
	}
	return nil
}

// RoleOrDefault returns the normalized requested role, defaulting to student.
func (r *RegisterRequest) RoleOrDefault() user.Role {
	if r.Role == "" {
		return user.RoleStudent
	}
	return user.Role(strings.ToLower(r.Role))
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" || r.Password == "" {
		return fmt.Errorf("email and password required")
	}
	return nil
}
