package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AnshRaj112/natpac-travel-backend/internal/errs"
	"github.com/AnshRaj112/natpac-travel-backend/internal/middleware"
	"github.com/AnshRaj112/natpac-travel-backend/internal/services"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserView is the public part of a session: never the password hash.
type UserView struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Consent *bool  `json:"consent"`
}

type AuthResponse struct {
	Message      string   `json:"message"`
	Token        string   `json:"token"`
	User         UserView `json:"user"`
	FallbackMode bool     `json:"fallbackMode,omitempty"`
}

func viewOf(c *services.Claims) UserView {
	return UserView{ID: c.ID, Email: c.Email, Name: c.Name, Consent: c.Consent}
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, w, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.auth.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, AuthResponse{
		Message: "User registered successfully",
		Token:   res.Token,
		User:    viewOf(&res.Claims),
	})
}

// Login handles user login. When the database is down the demo accounts
// still work and the response carries fallbackMode.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, w, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	msg := "Login successful"
	if res.FallbackMode {
		msg = "Login successful (demo mode: database unavailable)"
	}
	writeJSON(w, http.StatusOK, AuthResponse{
		Message:      msg,
		Token:        res.Token,
		User:         viewOf(&res.Claims),
		FallbackMode: res.FallbackMode,
	})
}

type consentRequest struct {
	Consent json.RawMessage `json:"consent"`
}

// UpdateConsent records the caller's data-collection decision. Only a JSON
// boolean is accepted.
func (h *Handler) UpdateConsent(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		h.fail(w, r, errs.ErrUnauthorized)
		return
	}

	var req consentRequest
	if err := decodeJSON(r, w, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	var consent bool
	switch string(bytes.TrimSpace(req.Consent)) {
	case "true":
		consent = true
	case "false":
		consent = false
	default:
		writeError(w, http.StatusBadRequest, "Consent must be a boolean value")
		return
	}

	if err := h.auth.UpdateConsent(r.Context(), claims, consent); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Consent updated successfully",
		"consent": consent,
	})
}

// Me returns the caller's stored profile. While the database is unreachable
// it answers from the token claims instead.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		h.fail(w, r, errs.ErrUnauthorized)
		return
	}
	u, err := h.auth.CurrentUser(r.Context(), claims)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"user": UserView{ID: u.ID, Email: u.Email, Name: u.Name, Consent: u.Consent}})
	case errors.Is(err, errs.ErrNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, errs.ErrUnavailable):
		writeJSON(w, http.StatusOK, map[string]any{"user": viewOf(claims)})
	default:
		h.fail(w, r, err)
	}
}
