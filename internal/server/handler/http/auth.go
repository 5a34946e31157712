// Package http provides the HTTP handlers of the vaccination tracker:
// registration, login, logout, current-account lookup and the
// ownership-scoped family member and vaccination record endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/famtrack/vaxtrack/internal/auth"
	"github.com/famtrack/vaxtrack/internal/common"
	"github.com/famtrack/vaxtrack/internal/middleware"
	"github.com/famtrack/vaxtrack/internal/models"
)

// AuthService defines the interface for authentication operations required
// by the HTTP handlers.
type AuthService interface {
	// Register creates an account and issues a session token for it.
	Register(ctx context.Context, username, name, email, password string) (*models.User, string, error)
	// Login verifies credentials and issues a session token.
	Login(ctx context.Context, username, password string) (*models.User, string, error)
}

// AuthHandler handles HTTP requests for registration, login, logout and the
// current-account endpoint.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// TokenTTL is the session lifetime used for the cookie max-age.
	TokenTTL time.Duration
	// SecureCookies controls the Secure flag on the session cookie.
	SecureCookies bool
}

// RegisterRequest represents the JSON payload for account registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the body returned by register and login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register handles account registration requests.
// It expects a JSON body with non-empty username, name and password fields.
// On success it sets the session cookie and returns the bearer token; a
// taken username produces 400.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Username == "" || req.Name == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	_, token, err := h.AuthService.Register(r.Context(), req.Username, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			http.Error(w, "username already taken", http.StatusBadRequest)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	auth.SetSessionCookie(w, token, h.TokenTTL, h.SecureCookies)
	writeJSON(w, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Login handles login requests. A wrong password and an unknown username
// produce the same 401 response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Username == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	_, token, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			http.Error(w, "invalid username or password", http.StatusUnauthorized)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	auth.SetSessionCookie(w, token, h.TokenTTL, h.SecureCookies)
	writeJSON(w, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Logout clears the session cookie. Tokens are stateless, so there is no
// server-side session to invalidate.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.SecureCookies)
	writeJSON(w, map[string]string{"status": "ok"})
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	account := middleware.AccountFromContext(r.Context())
	if account == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, account)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
