package auth

import (
	"net/http"
	"time"
)

// CookieName is the name of the session cookie carrying the token.
const CookieName = "access_token"

// SetSessionCookie binds the token to an HTTP-only, SameSite=Lax cookie
// whose lifetime equals the token TTL. secure controls the Secure flag and
// follows deployment configuration.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie issues a deletion directive for the session cookie.
// Its attributes must mirror SetSessionCookie: clients ignore deletion
// directives whose attributes do not match the original cookie.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionTokenFromRequest extracts the session token from the request
// cookie. Returns an empty string when the cookie is absent.
func SessionTokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
