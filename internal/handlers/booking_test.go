package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/queenswoodclub/booking-backend/internal/models"
	"github.com/queenswoodclub/booking-backend/internal/store"
	"github.com/queenswoodclub/booking-backend/internal/yoco"
)

type mockBookingStore struct {
	created     *models.Booking
	checkoutIDs map[int64]string
	paid        map[int64]string
	paidAt      map[int64]time.Time
	booking     *models.Booking
	markPaidErr error
}

func (m *mockBookingStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	b.ID = 12
	b.CreatedAt = time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	m.created = b
	return nil
}

func (m *mockBookingStore) SetBookingCheckoutID(ctx context.Context, id int64, checkoutID string) error {
	if m.checkoutIDs == nil {
		m.checkoutIDs = map[int64]string{}
	}
	m.checkoutIDs[id] = checkoutID
	return nil
}

func (m *mockBookingStore) MarkBookingPaid(ctx context.Context, id int64, paymentID string, confirmedAt time.Time) error {
	if m.markPaidErr != nil {
		return m.markPaidErr
	}
	if m.paid == nil {
		m.paid = map[int64]string{}
		m.paidAt = map[int64]time.Time{}
	}
	m.paid[id] = paymentID
	m.paidAt[id] = confirmedAt
	return nil
}

func (m *mockBookingStore) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	if m.booking == nil {
		return nil, store.ErrBookingNotFound
	}
	return m.booking, nil
}

func TestBookingCheckoutSuccess(t *testing.T) {
	bookings := &mockBookingStore{}
	client := &mockCheckoutClient{
		checkout: &yoco.Checkout{ID: "ch_court", RedirectURL: "https://pay.yoco.com/ch_court"},
	}

	rr := postJSON(t, CreateBookingCheckout(bookings, client, "/queenswood-tennis"),
		"/create-yoco-checkout",
		`{"court":{"id":"court-3","name":"Court 3"},"time":"2025-06-14T08:00:00Z","sport":"tennis","userId":"user-abc","userEmail":"player@example.com"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rr.Code, rr.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["redirectUrl"] != "https://pay.yoco.com/ch_court" {
		t.Fatalf("unexpected redirectUrl: %q", resp["redirectUrl"])
	}

	if bookings.created == nil {
		t.Fatal("expected booking to be created")
	}
	if bookings.created.Amount != 15000 {
		t.Fatalf("booking amount = %d, want 15000", bookings.created.Amount)
	}
	if bookings.created.Currency != models.CurrencyZAR {
		t.Fatalf("unexpected currency: %q", bookings.created.Currency)
	}
	if bookings.created.PaymentStatus != models.StatusPending {
		t.Fatalf("unexpected status: %q", bookings.created.PaymentStatus)
	}

	if client.lastRequest.Amount != 15000 {
		t.Fatalf("checkout amount = %d, want 15000", client.lastRequest.Amount)
	}
	if client.lastRequest.ExternalID != "12" {
		t.Fatalf("unexpected externalId: %q", client.lastRequest.ExternalID)
	}
	wantSuccess := "https://club.example/queenswood-tennis?status=success&bookingId=12"
	if client.lastRequest.SuccessURL != wantSuccess {
		t.Fatalf("success URL = %q, want %q", client.lastRequest.SuccessURL, wantSuccess)
	}
	if client.lastRequest.Metadata["court"] != "Court 3" {
		t.Fatalf("unexpected court metadata: %v", client.lastRequest.Metadata["court"])
	}

	if got := bookings.checkoutIDs[12]; got != "ch_court" {
		t.Fatalf("stored checkout id = %q, want ch_court", got)
	}
}

func TestBookingCheckoutChargesFixedAmount(t *testing.T) {
	// The fee does not depend on sport, court or slot.
	bookings := &mockBookingStore{}
	client := &mockCheckoutClient{
		checkout: &yoco.Checkout{ID: "ch_x", RedirectURL: "https://pay.yoco.com/ch_x"},
	}

	rr := postJSON(t, CreateBookingCheckout(bookings, client, "/queenswood-tennis"),
		"/create-yoco-checkout",
		`{"court":{"id":"padel-1","name":"Padel 1"},"time":"19:00","sport":"padel","userId":"u2","userEmail":"p2@example.com"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if bookings.created.Amount != 15000 || client.lastRequest.Amount != 15000 {
		t.Fatalf("amount must be fixed at 15000, got store=%d provider=%d",
			bookings.created.Amount, client.lastRequest.Amount)
	}
}

func TestBookingCheckoutProviderFailure(t *testing.T) {
	bookings := &mockBookingStore{}
	client := &mockCheckoutClient{
		err: &yoco.APIError{StatusCode: 500},
	}

	rr := postJSON(t, CreateBookingCheckout(bookings, client, "/queenswood-tennis"),
		"/create-yoco-checkout",
		`{"court":{"id":"court-1","name":"Court 1"},"time":"08:00","sport":"tennis","userId":"u1","userEmail":"p1@example.com"}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "Failed to create Yoco checkout" {
		t.Fatalf("unexpected fallback message: %q", resp["error"])
	}

	if len(bookings.checkoutIDs) != 0 {
		t.Fatal("checkout id must not be stored on provider failure")
	}
	if bookings.created.PaymentStatus != models.StatusPending {
		t.Fatalf("booking should stay pending, got %q", bookings.created.PaymentStatus)
	}
}

func TestBookingCheckoutStoreError(t *testing.T) {
	client := &mockCheckoutClient{}
	failing := &failingBookingStore{err: errors.New("insert failed")}

	rr := postJSON(t, CreateBookingCheckout(failing, client, "/queenswood-tennis"),
		"/create-yoco-checkout",
		`{"court":{"id":"court-1","name":"Court 1"},"time":"08:00","sport":"tennis","userId":"u1","userEmail":"p1@example.com"}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if client.lastRequest != nil {
		t.Fatal("provider must not be called when the insert fails")
	}
}

type failingBookingStore struct {
	mockBookingStore
	err error
}

func (f *failingBookingStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	return f.err
}
