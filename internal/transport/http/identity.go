package http

import (
	"errors"
	"net/http"

	"github.com/akshay-rawal/Quiz-Game/internal/auth"
	"github.com/akshay-rawal/Quiz-Game/internal/domain"
)

// defaultGuestSession scopes guests that did not send a session id. Clients
// are expected to issue their own X-Session-Id so state is not shared.
const defaultGuestSession = "default"

func isGuestRequest(r *http.Request) bool {
	return r.Header.Get("X-Guest") == "true" || r.URL.Query().Get("guest") == "true"
}

func guestSessionID(r *http.Request) string {
	if id := r.Header.Get("X-Session-Id"); id != "" {
		return id
	}
	if id := r.URL.Query().Get("sessionId"); id != "" {
		return id
	}
	return defaultGuestSession
}

// resolveIdentity produces the caller's identity: the guest bypass when the
// guest flag is present, otherwise a verified bearer token.
func (h *Handler) resolveIdentity(r *http.Request) (domain.Identity, *httpError) {
	if isGuestRequest(r) {
		return domain.Identity{UserID: domain.GuestUserID, Guest: true, SessionID: guestSessionID(r)}, nil
	}

	userID, err := h.auth.ParseBearer(r.Header.Get("Authorization"))
	if err != nil {
		return domain.Identity{}, authError(err)
	}
	return domain.Identity{UserID: userID}, nil
}

func authError(err error) *httpError {
	switch {
	case errors.Is(err, auth.ErrMissingSecret):
		return &httpError{status: http.StatusInternalServerError, message: "JWT secret is not configured."}
	case errors.Is(err, auth.ErrMalformedHeader):
		return &httpError{status: http.StatusUnauthorized, message: "Access denied. Invalid token format."}
	case errors.Is(err, auth.ErrTokenExpired):
		return &httpError{status: http.StatusUnauthorized, message: "Token expired. Please log in again."}
	default:
		return &httpError{status: http.StatusUnauthorized, message: "Invalid token. Please log in again."}
	}
}
