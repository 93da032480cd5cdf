package routes

import (
	"hostel-booking/controllers/auth"
	"hostel-booking/controllers/booking"
	"hostel-booking/controllers/dashboard"
	"hostel-booking/controllers/hostel"
	"hostel-booking/controllers/issue"
	"hostel-booking/controllers/notice"
	"hostel-booking/controllers/payment"
	"hostel-booking/controllers/room"
	"hostel-booking/controllers/user"
	"hostel-booking/logger"
	"hostel-booking/middleware"
	bookingService "hostel-booking/services/booking"
	"hostel-booking/services/media"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	bookings := bookingService.NewService(db)

	authController := auth.NewAuthController(db, asyncLogger)
	hostelController := hostel.NewHostelController(db, bookings, asyncLogger)
	roomController := room.NewRoomController(db, asyncLogger)
	bookingController := booking.NewBookingController(db, bookings, asyncLogger)
	issueController := issue.NewIssueController(db, asyncLogger)
	noticeController := notice.NewNoticeController(db, asyncLogger)
	paymentController := payment.NewPaymentController(db, asyncLogger)
	dashboardController := dashboard.NewDashboardController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "hostel-booking", "status": "ok"})
	})

	// Uploaded hostel images
	app.Static("/media", media.Dir())

	api := app.Group("/api", middleware.RequestLogger(asyncLogger))

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authController.Register)
	authGroup.Post("/login", authController.Login)

	api.Get("/hostels", hostelController.Index)
	// "my" must sit above ":id" so it is not captured as a hostel id.
	api.Get("/hostels/my", middleware.RequireAuth(), hostelController.My)
	api.Get("/hostels/:id", hostelController.Show)
	api.Get("/rooms/hostel/:hostelID", roomController.ByHostel)
	api.Get("/notices/:hostelID", noticeController.ByHostel)

	/*=============================================================================
	| Protected Routes
	===============================================================================*/
	authed := api.Use(middleware.RequireAuth())

	authed.Get("/auth/profile", user.Profile(db))

	hostels := authed.Group("/hostels")
	hostels.Post("/add", hostelController.Store)
	hostels.Put("/:id/update", hostelController.Update)

	rooms := authed.Group("/rooms")
	rooms.Post("/add", roomController.Store)
	rooms.Put("/:id/update", roomController.Update)

	bookingGroup := authed.Group("/bookings")
	bookingGroup.Post("/book", bookingController.Store)
	bookingGroup.Get("/my", bookingController.My)
	bookingGroup.Get("/owner/:hostelID", bookingController.ByHostel)
	bookingGroup.Post("/:id/approve", bookingController.Approve)
	bookingGroup.Post("/:id/reject", bookingController.Reject)

	issues := authed.Group("/issues")
	issues.Post("/report", issueController.Store)
	issues.Get("/my", issueController.My)
	issues.Get("/owner/:hostelID", issueController.ByHostel)
	issues.Post("/:id/resolve", issueController.Resolve)

	authed.Post("/notices/send", noticeController.Store)

	payments := authed.Group("/payments")
	payments.Post("/record", paymentController.Store)
	payments.Post("/make", paymentController.Make)
	payments.Get("/my", paymentController.My)
	payments.Get("/hostel/:hostelID", paymentController.ByHostel)

	authed.Get("/dashboard/student", dashboardController.Student)
	authed.Get("/dashboard/owner", dashboardController.Owner)
	authed.Get("/analytics/hostel/:id", dashboardController.HostelStats)
}
