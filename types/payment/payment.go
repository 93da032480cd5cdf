package payment

import (
	"fmt"
	"strings"

	paymentModel "hostel-booking/models/payment"
)

type RecordPaymentRequest struct {
	BookingID     uint    `json:"booking_id" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,min=0"`
	PaymentMethod string  `json:"payment_method" validate:"omitempty,oneof=MPESA CARD BANK"`
	TransactionID string  `json:"transaction_id"`
}

func (r *RecordPaymentRequest) Validate() error {
	r.TransactionID = strings.TrimSpace(r.TransactionID)
	if r.BookingID == 0 {
		return fmt.Errorf("booking_id is required")
	}
	if r.Amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}
	if r.PaymentMethod != "" && !paymentModel.Method(r.PaymentMethod).IsValid() {
		return fmt.Errorf("payment_method must be MPESA, CARD or BANK")
	}
	return nil
}

// MethodOrDefault returns the requested method, defaulting to MPESA.
func (r *RecordPaymentRequest) MethodOrDefault() paymentModel.Method {
	if r.PaymentMethod == "" {
		return paymentModel.MethodMpesa
	}
	return paymentModel.Method(r.PaymentMethod)
}
