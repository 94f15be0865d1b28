package handlers

import (
	"net/http"

	"github.com/queenswoodclub/booking-backend/internal/pricing"
)

// Plans returns the static membership price table so the frontend renders
// pricing from the same source the checkout charges from.
func Plans() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"plans":      pricing.List(),
			"joiningFee": pricing.JoiningFee,
		})
	}
}
