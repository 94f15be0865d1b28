package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/queenswoodclub/booking-backend/internal/models"
)

func TestGetBookingByID(t *testing.T) {
	bookings := &mockBookingStore{
		booking: &models.Booking{ID: 12, CourtName: "Court 3", PaymentStatus: models.StatusPaid},
	}

	router := chi.NewRouter()
	router.Get("/bookings/{id}", GetBooking(bookings))

	req := httptest.NewRequest(http.MethodGet, "/bookings/12", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rr.Code, rr.Body.String())
	}

	var got models.Booking
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != 12 || got.PaymentStatus != models.StatusPaid {
		t.Fatalf("unexpected booking: %+v", got)
	}
}

func TestGetBookingNotFound(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/bookings/{id}", GetBooking(&mockBookingStore{}))

	req := httptest.NewRequest(http.MethodGet, "/bookings/404", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestGetBookingInvalidID(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/bookings/{id}", GetBooking(&mockBookingStore{}))

	req := httptest.NewRequest(http.MethodGet, "/bookings/abc", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestGetRegistrationByID(t *testing.T) {
	registrations := &mockRegistrationStore{
		registration: &models.Registration{ID: 42, Plan: "adult-monthly", PaymentStatus: models.StatusPending},
	}

	router := chi.NewRouter()
	router.Get("/registrations/{id}", GetRegistration(registrations))

	req := httptest.NewRequest(http.MethodGet, "/registrations/42", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rr.Code, rr.Body.String())
	}

	var got models.Registration
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != 42 || got.Plan != "adult-monthly" {
		t.Fatalf("unexpected registration: %+v", got)
	}
}

func TestPlansListing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/plans", nil)
	rr := httptest.NewRecorder()
	Plans().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}

	var resp struct {
		Plans []struct {
			Key     string `json:"key"`
			Monthly int    `json:"monthly"`
		} `json:"plans"`
		JoiningFee int `json:"joiningFee"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Plans) != 7 {
		t.Fatalf("expected 7 plans, got %d", len(resp.Plans))
	}
	if resp.JoiningFee != 9000 {
		t.Fatalf("joining fee = %d, want 9000", resp.JoiningFee)
	}
}
