package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/clean-auth/internal/app"
	"github.com/MKhiriev/clean-auth/internal/logger"
	"github.com/MKhiriev/clean-auth/internal/service"
	"github.com/MKhiriev/clean-auth/internal/utils"
	"github.com/MKhiriev/clean-auth/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var request models.LoginRequest
	if err := utils.ReadJSON(w, r, &request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}

	result, err := h.services.AuthService.Login(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("user_id", result.User.UserID).Msg("user logged in with password")
	h.writeAuthResult(w, r, result)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var request models.RegisterRequest
	if err := utils.ReadJSON(w, r, &request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}

	result, err := h.services.AuthService.Register(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("user_id", result.User.UserID).Msg("user registered")
	h.writeAuthResult(w, r, result)
}

func (h *Handler) sendOTP(w http.ResponseWriter, r *http.Request) {
	var request models.SendOTPRequest
	if err := utils.ReadJSON(w, r, &request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}

	if err := h.services.AuthService.SendOTP(r.Context(), request); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Success: true, Message: app.MsgOTPSent}, http.StatusOK)
}

func (h *Handler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var request models.VerifyOTPRequest
	if err := utils.ReadJSON(w, r, &request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}

	result, err := h.services.AuthService.VerifyOTP(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("user_id", result.User.UserID).Msg("user logged in with otp")
	h.writeAuthResult(w, r, result)
}

// me returns the user the session token belongs to.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoSessionToken)
		return
	}

	user, err := h.services.AuthService.CurrentUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.UserResponse{Success: true, User: user.Public()}, http.StatusOK)
}

// logout clears the session cookie. Tokens are stateless, so a copy kept by
// the client stays valid until it expires.
func (h *Handler) logout(w http.ResponseWriter, _ *http.Request) {
	h.clearSessionCookie(w)
	utils.WriteJSON(w, models.MessageResponse{Success: true, Message: app.MsgLoggedOut}, http.StatusOK)
}
