package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/queenswoodclub/booking-backend/internal/models"
)

// ErrRegistrationNotFound is returned when a membership registration is not found
var ErrRegistrationNotFound = errors.New("registration not found")

// ErrBookingNotFound is returned when a booking is not found
var ErrBookingNotFound = errors.New("booking not found")

// Store provides database-backed accessors for registrations, bookings and
// the webhook/request logs.
type Store struct {
	db *sql.DB
}

// New creates a Store using the provided sql.DB connection.
func New(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}
	return &Store{db: db}, nil
}

// CreateRegistration inserts a pending membership registration and fills in
// the store-assigned id and creation time.
func (s *Store) CreateRegistration(ctx context.Context, r *models.Registration) error {
	query := `
		INSERT INTO membership_registrations
			(full_name, email, whatsapp, plan, description, monthly_rate, first_payment,
			 utr_dupr, payment_status, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		r.FullName, r.Email, r.Whatsapp, r.Plan, r.Description,
		r.MonthlyRate, r.FirstPayment, r.UtrDupr, r.PaymentStatus, r.Currency,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

// ConfirmRegistration moves a registration to confirmed and stamps the
// confirmation time. Used for the free league path.
func (s *Store) ConfirmRegistration(ctx context.Context, id int64) error {
	query := `
		UPDATE membership_registrations
		SET payment_status = $2, confirmed_at = now()
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, id, models.StatusConfirmed)
	if err != nil {
		return fmt.Errorf("confirm registration: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrRegistrationNotFound
	}
	return nil
}

// SetRegistrationCheckoutID attaches the Yoco checkout session id to a
// registration after the session has been created.
func (s *Store) SetRegistrationCheckoutID(ctx context.Context, id int64, checkoutID string) error {
	query := `UPDATE membership_registrations SET yoco_checkout_id = $2 WHERE id = $1`
	if _, err := s.db.ExecContext(ctx, query, id, checkoutID); err != nil {
		return fmt.Errorf("set registration checkout id: %w", err)
	}
	return nil
}

// GetRegistration returns a registration by id.
func (s *Store) GetRegistration(ctx context.Context, id int64) (*models.Registration, error) {
	query := `
		SELECT id, full_name, email, whatsapp, plan, description, monthly_rate,
			first_payment, utr_dupr, payment_status, currency, yoco_checkout_id,
			confirmed_at, created_at
		FROM membership_registrations
		WHERE id = $1
	`

	var r models.Registration
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&r.ID, &r.FullName, &r.Email, &r.Whatsapp, &r.Plan, &r.Description,
		&r.MonthlyRate, &r.FirstPayment, &r.UtrDupr, &r.PaymentStatus,
		&r.Currency, &r.YocoCheckoutID, &r.ConfirmedAt, &r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return &r, nil
}

// CreateBooking inserts a pending court booking and fills in the
// store-assigned id and creation time.
func (s *Store) CreateBooking(ctx context.Context, b *models.Booking) error {
	query := `
		INSERT INTO bookings
			(court_id, court_name, booking_time, sport, user_id, user_email,
			 payment_status, amount, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		b.CourtID, b.CourtName, b.BookingTime, b.Sport, b.UserID, b.UserEmail,
		b.PaymentStatus, b.Amount, b.Currency,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// SetBookingCheckoutID attaches the Yoco checkout session id to a booking.
func (s *Store) SetBookingCheckoutID(ctx context.Context, id int64, checkoutID string) error {
	query := `UPDATE bookings SET yoco_checkout_id = $2 WHERE id = $1`
	if _, err := s.db.ExecContext(ctx, query, id, checkoutID); err != nil {
		return fmt.Errorf("set booking checkout id: %w", err)
	}
	return nil
}

// MarkBookingPaid records a successful payment against a booking: status
// becomes paid, the Yoco payment id is stored and the confirmation time is
// stamped. Returns ErrBookingNotFound when no booking matches.
func (s *Store) MarkBookingPaid(ctx context.Context, id int64, paymentID string, confirmedAt time.Time) error {
	query := `
		UPDATE bookings
		SET payment_status = $2, yoco_payment_id = $3, confirmed_at = $4
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, id, models.StatusPaid, paymentID, confirmedAt)
	if err != nil {
		return fmt.Errorf("mark booking paid: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// GetBooking returns a booking by id.
func (s *Store) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `
		SELECT id, court_id, court_name, booking_time, sport, user_id, user_email,
			payment_status, amount, currency, yoco_checkout_id, yoco_payment_id,
			confirmed_at, created_at
		FROM bookings
		WHERE id = $1
	`

	var b models.Booking
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.CourtID, &b.CourtName, &b.BookingTime, &b.Sport,
		&b.UserID, &b.UserEmail, &b.PaymentStatus, &b.Amount, &b.Currency,
		&b.YocoCheckoutID, &b.YocoPaymentID, &b.ConfirmedAt, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

// LogWebhookEvent records a received provider webhook for debugging. The log
// is append-only and never consulted when processing events.
func (s *Store) LogWebhookEvent(ctx context.Context, id, eventType string, payload []byte) error {
	query := `INSERT INTO webhook_events (id, event_type, payload) VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, id, eventType, payload); err != nil {
		return fmt.Errorf("log webhook event: %w", err)
	}
	return nil
}

// RecordRequest stores one request metrics row. Written asynchronously by the
// request tracking middleware.
func (s *Store) RecordRequest(ctx context.Context, method, path string, statusCode, durationMs int) error {
	query := `
		INSERT INTO request_log (method, path, status_code, duration_ms)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.db.ExecContext(ctx, query, method, path, statusCode, durationMs); err != nil {
		return fmt.Errorf("record request: %w", err)
	}
	return nil
}
