package booking

import (
	"fmt"
	"strings"
	"testing"

	"hostel-booking/database"
	"hostel-booking/errs"
	bookingModel "hostel-booking/models/booking"
	hostelModel "hostel-booking/models/hostel"
	roomModel "hostel-booking/models/room"
	userModel "hostel-booking/models/user"
	"hostel-booking/types"
	bookingTypes "hostel-booking/types/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role userModel.Role) *userModel.User {
	t.Helper()
	n := fmt.Sprintf("%s-%d", role, seq(db))
	u := userModel.User{
		Username: n,
		Email:    n + "@example.com",
		Password: "hashed",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

// seq hands out distinct fixture suffixes per database.
func seq(db *gorm.DB) int64 {
	var n int64
	db.Model(&userModel.User{}).Count(&n)
	return n
}

func seedHostel(t *testing.T, db *gorm.DB, owner *userModel.User, totalRooms int) *hostelModel.Hostel {
	t.Helper()
	h := hostelModel.Hostel{
		OwnerID:        owner.ID,
		Name:           "Sunrise Hostel",
		Location:       "Campus East",
		TotalRooms:     totalRooms,
		AvailableRooms: totalRooms,
		PricePerMonth:  5000,
		IsActive:       true,
	}
	require.NoError(t, db.Create(&h).Error)
	return &h
}

func seedRoom(t *testing.T, db *gorm.DB, h *hostelModel.Hostel, number string) *roomModel.Room {
	t.Helper()
	r := roomModel.Room{
		HostelID:      h.ID,
		RoomNumber:    number,
		RoomType:      roomModel.RoomTypeDouble,
		Capacity:      2,
		PricePerMonth: 2500,
	}
	require.NoError(t, db.Create(&r).Error)
	return &r
}

func ident(u *userModel.User) types.Identity {
	return types.Identity{UserID: u.ID, Role: u.Role, Email: u.Email}
}

func TestCreateRequiresStudent(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, userModel.RoleOwner)
	hostel := seedHostel(t, db, owner, 10)

	_, err := svc.Create(ident(owner), &bookingTypes.CreateBookingRequest{HostelID: hostel.ID})
	require.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))
	assert.Equal(t, "Only students can book hostels", err.Error())
}

func TestCreateHostelNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	student := seedUser(t, db, userModel.RoleStudent)

	_, err := svc.Create(ident(student), &bookingTypes.CreateBookingRequest{HostelID: 999})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, "Hostel not found", err.Error())
}

func TestCreateStartsPendingWithEvent(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, userModel.RoleOwner)
	student := seedUser(t, db, userModel.RoleStudent)
	hostel := seedHostel(t, db, owner, 10)

	b, err := svc.Create(ident(student), &bookingTypes.CreateBookingRequest{
		HostelID: hostel.ID,
		Notes:    "near the stairs please",
	})
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusPending, b.Status)
	assert.Equal(t, student.ID, b.UserID)
	assert.Nil(t, b.RoomID)
	assert.True(t, b.IsActive)
	assert.False(t, b.BookingDate.IsZero())

	var events []bookingModel.BookingStatusEvent
	require.NoError(t, db.Where("booking_id = ?", b.ID).Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, bookingModel.StatusPending, events[0].Status)
}

func TestCreateDuplicateActiveBookingConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, userModel.RoleOwner)
	student := seedUser(t, db, userModel.RoleStudent)
	hostel := seedHostel(t, db, owner, 10)

	_, err := svc.Create(ident(student), &bookingTypes.CreateBookingRequest{HostelID: hostel.ID})
	require.NoError(t, err)

	_, err = svc.Create(ident(student), &bookingTypes.CreateBookingRequest{HostelID: hostel.ID})
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
	assert.Equal(t, "You already have a booking for this hostel", err.Error())
}

func TestCreateAllowedAgainAfterCancellation(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, userModel.RoleOwner)
	student := seedUser(t, db, userModel.RoleStudent)
	hostel := seedHostel(t, db, owner, 10)

	b, err := svc.Create(ident(student), &bookingTypes.CreateBookingRequest{HostelID: hostel.ID})
	require.NoError(t, err)
	_, err = svc.Reject(ident(owner), b.ID, "no vacancy")
	require.NoError(t, err)

	// A cancelled booking no longer blocks a fresh one.
	_, err = svc.Create(ident(student), &bookingTypes.CreateBookingRequest{HostelID: hostel.ID})
	require.NoError(t, err)
}

func TestApproveAllocatesRoomAndAutoCancelsPeers(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ownerA := seedUser(t, db, userModel.RoleOwner)
	ownerB := seedUser(t, db, userModel.RoleOwner)
	student := seedUser(t, db, userModel.RoleStudent)
	hostelA := seedHostel(t, db, ownerA, 10)
	hostelB := seedHostel(t, db, ownerB, 10)
	room := seedRoom(t, db, hostelA, "A-101")

	bookingA, err := svc.Create(ident(student), &bookingTypes.CreateBookingRequest{HostelID: hostelA.ID})
	require.NoError(t, err)
	bookingB, err := svc.Create(ident(student), &bookingTypes.CreateBookingRequest{HostelID: hostelB.ID})
	require.NoError(t, err)

	approved, autoCancelled, err := svc.Approve(ident(ownerA), bookingA.ID, &room.ID)
	require.NoError(t, err)

	assert.Equal(t, bookingModel.StatusFinalAllocated, approved.Status)
	require.NotNil(t, approved.RoomID)
	assert.Equal(t, room.ID, *approved.RoomID)
	assert.Equal(t, "A-101", approved.RoomNumber)
	require.NotNil(t, approved.ApprovedByID)
	assert.Equal(t, ownerA.ID, *approved.ApprovedByID)
	assert.NotNil(t, approved.ApprovalDate)
	assert.NotNil(t, approved.AllocationDate)

	var gotRoom roomModel.Room
	require.NoError(t, db.First(&gotRoom, room.ID).Error)
	assert.True(t, gotRoom.IsOccupied)
	require.NotNil(t, gotRoom.AssignedToID)
	assert.Equal(t, student.ID, *gotRoom.AssignedToID)

	// The pending booking at the other hostel went down with it, even
	// though its owner never acted.
	assert.Equal(t, 1, autoCancelled)
	var gotB bookingModel.Booking
	require.NoError(t, db.First(&gotB, bookingB.ID).Error)
	assert.Equal(t, bookingModel.StatusCancelled, gotB.Status)
	assert.Equal(t, bookingModel.AutoCancelReason, gotB.RejectionReason)

	var events []bookingModel.BookingStatusEvent
	require.NoError(t, db.Where("booking_id = ?", bookingB.ID).Order("id").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, bookingModel.StatusCancelled, events[1].Status)
	assert.Equal(t, bookingModel.AutoCancelReason, events[1].Reason)
}

func TestApproveWithoutRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, userModel.RoleOwner)
	student := seedUser(t, db, userModel.RoleStudent)
	hostel := seedHostel(t, db, owner, 10)

	b, err := svc.Create(ident(student), &bookingTypes.CreateBookingRequest{HostelID: hostel.ID})
	require.NoError(t, err)

	approved, autoCancelled, err := svc.Approve(ident(owner), b.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusFinalAllocated, approved.Status)
	assert.Nil(t, approved.RoomID)
	assert.Equal(t, 0, autoCancelled)
}

func TestApproveIgnoresRoomFromAnotherHostel(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ownerA := seedUser(t, db, userModel.RoleOwner)
	ownerB := seedUser(t, db, userModel.RoleOwner)
	student := seedUser(t, db, userModel.RoleStudent)
	hostelA := seedHostel(t, db, ownerA, 10)
	hostelB := seedHostel(t, db, ownerB, 10)
	foreignRoom := seedRoom(t, db, hostelB, "B-201")

	b, err := svc.Create(ident(student), &bookingTypes.CreateBookingRequest{HostelID: hostelA.ID})
	require.NoError(t, err)

	approved, _, err := svc.Approve(ident(ownerA), b.ID, &foreignRoom.ID)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusFinalAllocated, approved.Status)
	assert.Nil(t, approved.RoomID)

	var gotRoom roomModel.Room
	require.NoError(t, db.First(&gotRoom, foreignRoom.ID).Error)
	assert.False(t, gotRoom.IsOccupied)
}

func TestApproveRequiresHostelOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, userModel.RoleOwner)
	otherOwner := seedUser(t, db, userModel.RoleOwner)
	student := seedUser(t, db, userModel.RoleStudent)
	hostel := seedHostel(t, db, owner, 10)

	b, err := svc.Create(ident(student), &bookingTypes.CreateBookingRequest{HostelID: hostel.ID})
	require.NoError(t, err)

	_, _, err = svc.Approve(ident(otherOwner), b.ID, nil)
	require.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))

	_, _, err = svc.Approve(ident(student), b.ID, nil)
	require.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))
}

func TestApproveMissingBooking(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, userModel.RoleOwner)

	_, _, err := svc.Approve(ident(owner), 424242, nil)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, "Booking not found", err.Error())
}

func TestReapprovalSucceeds(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, userModel.RoleOwner)
	student := seedUser(t, db, userModel.RoleStudent)
	hostel := seedHostel(t, db, owner, 10)

	b, err := svc.Create(ident(student), &bookingTypes.CreateBookingRequest{HostelID: hostel.ID})
	require.NoError(t, err)

	_, _, err = svc.Approve(ident(owner), b.ID, nil)
	require.NoError(t, err)

	// No status precondition: approving again overwrites the approval
	// fields and sweeps for pending peers (there are none left).
	approved, autoCancelled, err := svc.Approve(ident(owner), b.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusFinalAllocated, approved.Status)
	assert.Equal(t, 0, autoCancelled)
}

func TestReapprovalWithoutRoomClearsAttachment(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, userModel.RoleOwner)
	student := seedUser(t, db, userModel.RoleStudent)
	hostel := seedHostel(t, db, owner, 10)
	room := seedRoom(t, db, hostel, "A-103")

	b, err := svc.Create(ident(student), &bookingTypes.CreateBookingRequest{HostelID: hostel.ID})
	require.NoError(t, err)

	approved, _, err := svc.Approve(ident(owner), b.ID, &room.ID)
	require.NoError(t, err)
	require.NotNil(t, approved.RoomID)

	// The room is assigned from scratch on every approval, so approving
	// again without one drops the earlier attachment.
	approved, _, err = svc.Approve(ident(owner), b.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, approved.RoomID)
	assert.Empty(t, approved.RoomNumber)

	// The room itself stays marked occupied; approval never un-assigns it.
	var gotRoom roomModel.Room
	require.NoError(t, db.First(&gotRoom, room.ID).Error)
	assert.True(t, gotRoom.IsOccupied)
}

func TestRejectRecordsReasonVerbatim(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, userModel.RoleOwner)
	student := seedUser(t, db, userModel.RoleStudent)
	hostel := seedHostel(t, db, owner, 10)
	room := seedRoom(t, db, hostel, "A-102")

	b, err := svc.Create(ident(student), &bookingTypes.CreateBookingRequest{HostelID: hostel.ID})
	require.NoError(t, err)

	rejected, err := svc.Reject(ident(owner), b.ID, "  over capacity  ")
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusCancelled, rejected.Status)
	assert.Equal(t, "  over capacity  ", rejected.RejectionReason)

	// Rejection never touches rooms.
	var gotRoom roomModel.Room
	require.NoError(t, db.First(&gotRoom, room.ID).Error)
	assert.False(t, gotRoom.IsOccupied)
}

func TestRejectRequiresHostelOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, userModel.RoleOwner)
	otherOwner := seedUser(t, db, userModel.RoleOwner)
	student := seedUser(t, db, userModel.RoleStudent)
	hostel := seedHostel(t, db, owner, 10)

	b, err := svc.Create(ident(student), &bookingTypes.CreateBookingRequest{HostelID: hostel.ID})
	require.NoError(t, err)

	_, err = svc.Reject(ident(otherOwner), b.ID, "not yours")
	require.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))
}

func TestAvailableRoomsDerivedFromAllocations(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, userModel.RoleOwner)
	hostel := seedHostel(t, db, owner, 5)

	for i := 0; i < 2; i++ {
		student := seedUser(t, db, userModel.RoleStudent)
		b, err := svc.Create(ident(student), &bookingTypes.CreateBookingRequest{HostelID: hostel.ID})
		require.NoError(t, err)
		_, _, err = svc.Approve(ident(owner), b.ID, nil)
		require.NoError(t, err)
	}

	// The stored counter was never maintained; availability comes from
	// counting FINAL_ALLOCATED bookings.
	assert.Equal(t, 3, svc.AvailableRooms(hostel))
}
