package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/queenswoodclub/booking-backend/internal/store"
)

// WebhookEventStore records received webhook envelopes for debugging.
type WebhookEventStore interface {
	LogWebhookEvent(ctx context.Context, id, eventType string, payload []byte) error
}

// eventPaymentSucceeded is the only Yoco event type that triggers a write.
const eventPaymentSucceeded = "payment.succeeded"

const maxWebhookBody = 65536

type webhookEnvelope struct {
	Type    string `json:"type"`
	Payload struct {
		ID         string `json:"id"`
		ExternalID string `json:"externalId"`
	} `json:"payload"`
}

// YocoWebhook creates an HTTP handler for Yoco payment-status callbacks. A
// payment.succeeded event marks the referenced booking paid; every other
// event type is acknowledged without a data-store write. Registrations are
// confirmed out of band and are never touched here.
func YocoWebhook(bookings BookingStore, events WebhookEventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			writeError(w, "failed to read body")
			return
		}

		var event webhookEnvelope
		if err := json.Unmarshal(body, &event); err != nil {
			log.Printf("[webhook] failed to parse event: %v", err)
			writeError(w, "invalid webhook payload")
			return
		}

		log.Printf("[webhook] received event type=%s externalId=%s", event.Type, event.Payload.ExternalID)

		if err := events.LogWebhookEvent(ctx, uuid.NewString(), event.Type, body); err != nil {
			// Logging is best effort; processing continues.
			log.Printf("[webhook] failed to log event: %v", err)
		}

		if event.Type == eventPaymentSucceeded {
			bookingID, err := strconv.ParseInt(event.Payload.ExternalID, 10, 64)
			if err != nil {
				log.Printf("[webhook] invalid externalId %q: %v", event.Payload.ExternalID, err)
				writeError(w, "invalid externalId")
				return
			}

			err = bookings.MarkBookingPaid(ctx, bookingID, event.Payload.ID, time.Now().UTC())
			switch {
			case errors.Is(err, store.ErrBookingNotFound):
				// No matching booking. The provider is still acknowledged so
				// it does not retry forever.
				log.Printf("[webhook] no booking matches externalId %d", bookingID)
			case err != nil:
				log.Printf("[webhook] failed to mark booking %d paid: %v", bookingID, err)
				writeError(w, err.Error())
				return
			default:
				log.Printf("[webhook] booking %d confirmed via webhook", bookingID)
			}
		}

		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
	}
}
