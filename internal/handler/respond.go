package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/sritelangana/storefront/internal/domain/cart"
	"github.com/sritelangana/storefront/internal/domain/catalog"
	"github.com/sritelangana/storefront/internal/domain/giftbox"
	"github.com/sritelangana/storefront/internal/domain/newsletter"
	"github.com/sritelangana/storefront/internal/domain/order"
	"github.com/sritelangana/storefront/internal/domain/review"
)

// errorBody is the JSON shape every error response carries.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorBody{Code: status, Message: message})
}

// respondDomainError converts a domain error to an HTTP error response.
// Unknown errors become a logged 500 with an opaque body.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch status := domainStatus(err); status {
	case http.StatusInternalServerError:
		zctx.From(r.Context()).Error("request failed", zap.Error(err))
		respondError(w, status, "internal error")
	default:
		respondError(w, status, err.Error())
	}
}

// domainStatus maps domain errors to HTTP status codes. Validation failures
// are 422, lookups that miss are 404, duplicate actions are 409; an empty
// cart at checkout is a plain 400.
func domainStatus(err error) int {
	switch {
	case errors.Is(err, order.ErrEmptyCart):
		return http.StatusBadRequest

	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, order.ErrNotFound),
		errors.Is(err, review.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, newsletter.ErrAlreadySubscribed),
		errors.Is(err, review.ErrAlreadyMarked):
		return http.StatusConflict

	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, order.ErrMissingCustomer),
		errors.Is(err, order.ErrMissingAddress),
		errors.Is(err, review.ErrInvalidRating),
		errors.Is(err, review.ErrMissingFields),
		errors.Is(err, newsletter.ErrInvalidEmail),
		errors.Is(err, giftbox.ErrTooFewProducts),
		errors.Is(err, giftbox.ErrTooManyProducts),
		errors.Is(err, giftbox.ErrDuplicateProduct):
		return http.StatusUnprocessableEntity
	}

	var unavailable *giftbox.UnavailableProductError
	if errors.As(err, &unavailable) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// decodeBody parses the request body into v; a malformed body is reported as
// a 400 and false is returned.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
