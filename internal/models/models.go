package models

import "time"

// Payment status values. A record only ever moves forward:
// pending -> confirmed (free membership path) or pending -> paid (webhook).
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPaid      = "paid"
)

// CurrencyZAR is the only currency the club charges in. Amounts are cents.
const CurrencyZAR = "ZAR"

// Registration is a membership signup recorded before the member is sent to
// the Yoco checkout page.
type Registration struct {
	ID             int64      `json:"id"`
	FullName       string     `json:"full_name"`
	Email          string     `json:"email"`
	Whatsapp       string     `json:"whatsapp"`
	Plan           string     `json:"plan"`
	Description    string     `json:"description"`
	MonthlyRate    int        `json:"monthly_rate"`
	FirstPayment   int        `json:"first_payment"`
	UtrDupr        *string    `json:"utr_dupr,omitempty"`
	PaymentStatus  string     `json:"payment_status"`
	Currency       string     `json:"currency"`
	YocoCheckoutID *string    `json:"yoco_checkout_id,omitempty"`
	ConfirmedAt    *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Booking is a court reservation awaiting payment. The booking time is stored
// as the caller supplied it; the frontend owns slot semantics.
type Booking struct {
	ID             int64      `json:"id"`
	CourtID        string     `json:"court_id"`
	CourtName      string     `json:"court_name"`
	BookingTime    string     `json:"booking_time"`
	Sport          string     `json:"sport"`
	UserID         string     `json:"user_id"`
	UserEmail      string     `json:"user_email"`
	PaymentStatus  string     `json:"payment_status"`
	Amount         int        `json:"amount"`
	Currency       string     `json:"currency"`
	YocoCheckoutID *string    `json:"yoco_checkout_id,omitempty"`
	YocoPaymentID  *string    `json:"yoco_payment_id,omitempty"`
	ConfirmedAt    *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
