package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/queenswoodclub/booking-backend/internal/models"
	"github.com/queenswoodclub/booking-backend/internal/yoco"
)

// BookingStore defines the storage operations the booking handlers need.
type BookingStore interface {
	CreateBooking(ctx context.Context, b *models.Booking) error
	SetBookingCheckoutID(ctx context.Context, id int64, checkoutID string) error
	MarkBookingPaid(ctx context.Context, id int64, paymentID string, confirmedAt time.Time) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
}

// bookingAmount is the flat court booking fee (R150.00 in cents), regardless
// of court, sport or time slot.
const bookingAmount = 15000

const bookingCheckoutFallbackError = "Failed to create Yoco checkout"

type bookingCheckoutPayload struct {
	Court struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"court"`
	Time      string `json:"time"`
	Sport     string `json:"sport"`
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`
}

// CreateBookingCheckout creates an HTTP handler that records a pending court
// booking and sends the player to a Yoco checkout page.
func CreateBookingCheckout(store BookingStore, checkout CheckoutClient, sitePath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload bookingCheckoutPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, "invalid JSON payload")
			return
		}

		booking := &models.Booking{
			CourtID:       payload.Court.ID,
			CourtName:     payload.Court.Name,
			BookingTime:   payload.Time,
			Sport:         payload.Sport,
			UserID:        payload.UserID,
			UserEmail:     payload.UserEmail,
			PaymentStatus: models.StatusPending,
			Amount:        bookingAmount,
			Currency:      models.CurrencyZAR,
		}

		if err := store.CreateBooking(ctx, booking); err != nil {
			log.Printf("CreateBookingCheckout: failed to create booking: %v", err)
			writeError(w, err.Error())
			return
		}

		base := fmt.Sprintf("https://%s%s", r.Host, sitePath)
		session, err := checkout.CreateCheckout(ctx, yoco.CheckoutRequest{
			Amount:     bookingAmount,
			Currency:   models.CurrencyZAR,
			ExternalID: fmt.Sprintf("%d", booking.ID),
			SuccessURL: fmt.Sprintf("%s?status=success&bookingId=%d", base, booking.ID),
			CancelURL:  base + "?status=cancel",
			FailureURL: base + "?status=failure",
			Metadata: map[string]any{
				"bookingId": booking.ID,
				"court":     payload.Court.Name,
				"time":      payload.Time,
			},
		})
		if err != nil {
			log.Printf("CreateBookingCheckout: Yoco error for booking %d: %v", booking.ID, err)
			writeError(w, providerMessage(err, bookingCheckoutFallbackError))
			return
		}

		if err := store.SetBookingCheckoutID(ctx, booking.ID, session.ID); err != nil {
			log.Printf("CreateBookingCheckout: failed to store checkout id for booking %d: %v", booking.ID, err)
			writeError(w, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"redirectUrl": session.RedirectURL})
	}
}
