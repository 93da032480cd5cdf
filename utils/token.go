package utils

import (
	"fmt"
	"os"
	"strings"
	"time"

	"hostel-booking/models/user"
	"hostel-booking/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the resolved caller identity inside the access token.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateToken issues a signed HS256 access token for the given user.
func GenerateToken(u *user.User) (string, error) {
	claims := Claims{
		UserID: u.ID,
		Role:   u.Role.String(),
		Email:  u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseToken validates a token string and returns its claims.
func ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}

// ExtractBearerToken pulls the raw token out of the Authorization header,
// falling back to the access cookie.
func ExtractBearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return "", fmt.Errorf("invalid authorization header format")
		}
		return tokenParts[1], nil
	}
	if token := c.Cookies("access"); token != "" {
		return token, nil
	}
	return "", fmt.Errorf("authorization token missing")
}

// CurrentIdentity returns the identity stored by the auth middleware.
func CurrentIdentity(c *fiber.Ctx) (types.Identity, bool) {
	ident, ok := c.Locals("identity").(types.Identity)
	return ident, ok
}
