package payment

import (
	"hostel-booking/models/booking"
	"time"
)

type Method string

const (
	MethodMpesa Method = "MPESA"
	MethodCard  Method = "CARD"
	MethodBank  Method = "BANK"
)

func (m Method) IsValid() bool {
	switch m {
	case MethodMpesa, MethodCard, MethodBank:
		return true
	default:
		return false
	}
}

// Status of a payment. There is no gateway integration: every creation path
// records the payment directly as SUCCESS. PENDING and FAILED stay declared
// for data compatibility.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed:
		return true
	default:
		return false
	}
}

// Payment records money received against exactly one booking.
type Payment struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	BookingID uint            `gorm:"not null;index" json:"booking_id"`
	Booking   booking.Booking `gorm:"foreignKey:BookingID" json:"booking"`

	Amount        float64 `gorm:"not null" json:"amount"`
	PaymentMethod Method  `gorm:"type:varchar(10);default:MPESA" json:"payment_method"`
	TransactionID string  `gorm:"type:varchar(100);unique" json:"transaction_id"`
	Status        Status  `gorm:"type:varchar(10);default:PENDING;index" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
