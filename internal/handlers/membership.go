package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/queenswoodclub/booking-backend/internal/models"
	"github.com/queenswoodclub/booking-backend/internal/pricing"
	"github.com/queenswoodclub/booking-backend/internal/yoco"
)

// RegistrationStore defines the storage operations the membership checkout
// handler needs.
type RegistrationStore interface {
	CreateRegistration(ctx context.Context, r *models.Registration) error
	ConfirmRegistration(ctx context.Context, id int64) error
	SetRegistrationCheckoutID(ctx context.Context, id int64, checkoutID string) error
	GetRegistration(ctx context.Context, id int64) (*models.Registration, error)
}

// CheckoutClient defines the single Yoco operation the checkout handlers use.
type CheckoutClient interface {
	CreateCheckout(ctx context.Context, req yoco.CheckoutRequest) (*yoco.Checkout, error)
}

type membershipCheckoutPayload struct {
	Plan         string  `json:"plan"`
	BillingCycle string  `json:"billingCycle"`
	FullName     string  `json:"fullName"`
	Email        string  `json:"email"`
	Whatsapp     string  `json:"whatsapp"`
	UtrDupr      *string `json:"utrDupr"`
}

const membershipCheckoutFallbackError = "Failed to create Yoco checkout session"

// CreateMembershipCheckout creates an HTTP handler that records a membership
// registration and sends the member to a Yoco checkout page. League
// registrations are free and confirm immediately without a provider call.
func CreateMembershipCheckout(store RegistrationStore, checkout CheckoutClient, sitePath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload membershipCheckoutPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, "invalid JSON payload")
			return
		}

		resolved, err := pricing.Resolve(payload.Plan, payload.BillingCycle)
		if err != nil {
			log.Printf("CreateMembershipCheckout: %v", err)
			writeError(w, err.Error())
			return
		}

		reg := &models.Registration{
			FullName:      payload.FullName,
			Email:         payload.Email,
			Whatsapp:      payload.Whatsapp,
			Plan:          resolved.Key,
			Description:   resolved.Description,
			MonthlyRate:   resolved.Monthly,
			FirstPayment:  resolved.FirstPayment,
			UtrDupr:       payload.UtrDupr,
			PaymentStatus: models.StatusPending,
			Currency:      models.CurrencyZAR,
		}

		if err := store.CreateRegistration(ctx, reg); err != nil {
			log.Printf("CreateMembershipCheckout: failed to create registration: %v", err)
			writeError(w, err.Error())
			return
		}

		// Free league path: no checkout session, confirm right away.
		if resolved.FirstPayment == 0 {
			if err := store.ConfirmRegistration(ctx, reg.ID); err != nil {
				log.Printf("CreateMembershipCheckout: failed to confirm registration %d: %v", reg.ID, err)
				writeError(w, err.Error())
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"message": "League registration confirmed!",
			})
			return
		}

		base := fmt.Sprintf("https://%s%s", r.Host, sitePath)
		session, err := checkout.CreateCheckout(ctx, yoco.CheckoutRequest{
			Amount:     resolved.FirstPayment,
			Currency:   models.CurrencyZAR,
			ExternalID: fmt.Sprintf("%d", reg.ID),
			SuccessURL: fmt.Sprintf("%s?status=reg_success&regId=%d", base, reg.ID),
			CancelURL:  base + "?status=reg_cancel",
			FailureURL: base + "?status=reg_failure",
			Metadata: map[string]any{
				"registrationId": reg.ID,
				"plan":           resolved.Key,
				"name":           payload.FullName,
				"email":          payload.Email,
				"planFee":        resolved.Monthly,
				"joiningFee":     pricing.JoiningFee,
			},
		})
		if err != nil {
			log.Printf("CreateMembershipCheckout: Yoco error for registration %d: %v", reg.ID, err)
			writeError(w, providerMessage(err, membershipCheckoutFallbackError))
			return
		}

		if err := store.SetRegistrationCheckoutID(ctx, reg.ID, session.ID); err != nil {
			log.Printf("CreateMembershipCheckout: failed to store checkout id for registration %d: %v", reg.ID, err)
			writeError(w, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"redirectUrl": session.RedirectURL})
	}
}

// providerMessage extracts the provider-reported error text from a Yoco call
// failure, falling back when the provider gave none.
func providerMessage(err error, fallback string) string {
	var apiErr *yoco.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
