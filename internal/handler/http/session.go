package http

import (
	"net/http"

	"github.com/MKhiriev/clean-auth/internal/utils"
	"github.com/MKhiriev/clean-auth/models"
)

const oauthStateCookie = "oauth_state"

// setSessionCookie stores the signed token in an HttpOnly cookie that lives
// as long as the token itself.
func (h *Handler) setSessionCookie(w http.ResponseWriter, token models.Token) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.settings.cookieName,
		Value:    token.SignedString,
		Path:     "/",
		MaxAge:   int(h.settings.tokenDuration.Seconds()),
		HttpOnly: true,
		Secure:   h.settings.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.settings.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.settings.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

// tokenFromRequest prefers the "Authorization: Bearer" header and falls back
// to the session cookie.
func (h *Handler) tokenFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		return utils.ParseBearerToken(header)
	}

	cookie, err := r.Cookie(h.settings.cookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrNoSessionToken
	}
	return cookie.Value, nil
}

// writeAuthResult sets the session cookie and answers with the public user
// and the token.
func (h *Handler) writeAuthResult(w http.ResponseWriter, r *http.Request, result models.AuthResult) {
	h.setSessionCookie(w, result.Token)

	if _, err := utils.WriteJSON(w, models.AuthResponse{
		Success: true,
		User:    result.User.Public(),
		Token:   result.Token.SignedString,
	}, http.StatusOK); err != nil {
		writeError(w, r, err)
	}
}
