package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/queenswoodclub/booking-backend/internal/store"
)

// GetRegistration creates an HTTP handler that returns a membership
// registration by id. The post-payment landing page uses it to show the
// registration state behind the regId query parameter.
func GetRegistration(registrations RegistrationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, "invalid registration id")
			return
		}

		reg, err := registrations.GetRegistration(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrRegistrationNotFound) {
				writeError(w, "registration not found")
				return
			}
			log.Printf("GetRegistration: failed for id %d: %v", id, err)
			writeError(w, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, reg)
	}
}

// GetBooking creates an HTTP handler that returns a booking by id.
func GetBooking(bookings BookingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, "invalid booking id")
			return
		}

		booking, err := bookings.GetBooking(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrBookingNotFound) {
				writeError(w, "booking not found")
				return
			}
			log.Printf("GetBooking: failed for id %d: %v", id, err)
			writeError(w, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, booking)
	}
}
