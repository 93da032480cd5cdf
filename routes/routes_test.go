package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hostel-booking/database"
	hostelModel "hostel-booking/models/hostel"
	userModel "hostel-booking/models/user"
	"hostel-booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	app := fiber.New()
	SetupRoutes(app, db)
	return app, db
}

func seedOwnerWithHostel(t *testing.T, db *gorm.DB) (*userModel.User, *hostelModel.Hostel, string) {
	t.Helper()
	owner := userModel.User{
		Username: "owner",
		Email:    "owner@example.com",
		Password: "hashed",
		Role:     userModel.RoleOwner,
		IsActive: true,
	}
	require.NoError(t, db.Create(&owner).Error)

	h := hostelModel.Hostel{
		OwnerID:        owner.ID,
		Name:           "Sunrise Hostel",
		Location:       "Campus East",
		TotalRooms:     10,
		AvailableRooms: 10,
		PricePerMonth:  5000,
		IsActive:       true,
	}
	require.NoError(t, db.Create(&h).Error)

	token, err := utils.GenerateToken(&owner)
	require.NoError(t, err)
	return &owner, &h, token
}

func get(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestPublicCatalogNeedsNoToken(t *testing.T) {
	app, db := newTestApp(t)
	_, h, _ := seedOwnerWithHostel(t, db)

	assert.Equal(t, http.StatusOK, get(t, app, "/api/hostels", "").StatusCode)
	assert.Equal(t, http.StatusOK, get(t, app, fmt.Sprintf("/api/hostels/%d", h.ID), "").StatusCode)
	assert.Equal(t, http.StatusOK, get(t, app, fmt.Sprintf("/api/rooms/hostel/%d", h.ID), "").StatusCode)
	assert.Equal(t, http.StatusOK, get(t, app, fmt.Sprintf("/api/notices/%d", h.ID), "").StatusCode)
}

func TestMyHostelsNotCapturedByDetailRoute(t *testing.T) {
	app, db := newTestApp(t)
	_, _, token := seedOwnerWithHostel(t, db)

	// Without a token the route rejects instead of parsing "my" as an id.
	assert.Equal(t, http.StatusUnauthorized, get(t, app, "/api/hostels/my", "").StatusCode)
	assert.Equal(t, http.StatusOK, get(t, app, "/api/hostels/my", token).StatusCode)
}

func TestProtectedRoutesStillRequireToken(t *testing.T) {
	app, db := newTestApp(t)
	seedOwnerWithHostel(t, db)

	assert.Equal(t, http.StatusUnauthorized, get(t, app, "/api/bookings/my", "").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, get(t, app, "/api/dashboard/owner", "").StatusCode)
}
