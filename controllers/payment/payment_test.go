package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hostel-booking/database"
	"hostel-booking/logger"
	"hostel-booking/middleware"
	bookingModel "hostel-booking/models/booking"
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

	controller := NewPaymentController(db, logger.NewAsyncLogger(db))

	app := fiber.New()
	authed := app.Use(middleware.RequireAuth())
	authed.Post("/api/payments/make", controller.Make)
	authed.Post("/api/payments/record", controller.Store)
	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, role userModel.Role, name string) (*userModel.User, string) {
	t.Helper()
	u := userModel.User{
		Username: name,
		Email:    name + "@example.com",
		Password: "hashed",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(&u).Error)
	token, err := utils.GenerateToken(&u)
	require.NoError(t, err)
	return &u, token
}

func seedBooking(t *testing.T, db *gorm.DB, student, owner *userModel.User) *bookingModel.Booking {
	t.Helper()
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

	b := bookingModel.Booking{
		UserID:      student.ID,
		HostelID:    h.ID,
		Status:      bookingModel.StatusFinalAllocated,
		BookingDate: time.Now(),
		IsActive:    true,
	}
	require.NoError(t, db.Create(&b).Error)
	return &b
}

func postJSON(t *testing.T, app *fiber.App, path, token string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	return resp, decoded
}

func TestMakeRejectsNonStudents(t *testing.T) {
	app, db := newTestApp(t)
	owner, ownerToken := seedUser(t, db, userModel.RoleOwner, "owner")
	student, _ := seedUser(t, db, userModel.RoleStudent, "student")
	b := seedBooking(t, db, student, owner)

	resp, envelope := postJSON(t, app, "/api/payments/make", ownerToken, fiber.Map{
		"booking_id": b.ID,
		"amount":     5000,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Only students can make payments", envelope["message"])
}

func TestMakeGeneratesTransactionID(t *testing.T) {
	app, db := newTestApp(t)
	owner, _ := seedUser(t, db, userModel.RoleOwner, "owner")
	student, studentToken := seedUser(t, db, userModel.RoleStudent, "student")
	b := seedBooking(t, db, student, owner)

	resp, envelope := postJSON(t, app, "/api/payments/make", studentToken, fiber.Map{
		"booking_id":     b.ID,
		"amount":         5000,
		"payment_method": "MPESA",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "SUCCESS", data["status"])
	assert.Regexp(t, `^PAY-[0-9A-F]{12}$`, data["transaction_id"])
}

func TestMakeRejectsForeignBooking(t *testing.T) {
	app, db := newTestApp(t)
	owner, _ := seedUser(t, db, userModel.RoleOwner, "owner")
	student, _ := seedUser(t, db, userModel.RoleStudent, "student")
	_, otherToken := seedUser(t, db, userModel.RoleStudent, "other")
	b := seedBooking(t, db, student, owner)

	resp, _ := postJSON(t, app, "/api/payments/make", otherToken, fiber.Map{
		"booking_id": b.ID,
		"amount":     5000,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRecordRequiresHostelOwner(t *testing.T) {
	app, db := newTestApp(t)
	owner, ownerToken := seedUser(t, db, userModel.RoleOwner, "owner")
	_, strangerToken := seedUser(t, db, userModel.RoleOwner, "stranger")
	student, _ := seedUser(t, db, userModel.RoleStudent, "student")
	b := seedBooking(t, db, student, owner)

	resp, _ := postJSON(t, app, "/api/payments/record", strangerToken, fiber.Map{
		"booking_id": b.ID,
		"amount":     5000,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = postJSON(t, app, "/api/payments/record", ownerToken, fiber.Map{
		"booking_id": b.ID,
		"amount":     5000,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}
