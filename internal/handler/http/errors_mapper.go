package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/clean-auth/internal/app"
	"github.com/MKhiriev/clean-auth/internal/logger"
	"github.com/MKhiriev/clean-auth/internal/service"
	"github.com/MKhiriev/clean-auth/internal/utils"
	"github.com/MKhiriev/clean-auth/models"
)

type errorResponse struct {
	status  int
	message string
}

// errorResponses is checked in order; the first match wins.
var errorResponses = []struct {
	target   error
	response errorResponse
}{
	{service.ErrPasswordPolicy, errorResponse{http.StatusBadRequest, app.MsgPasswordPolicy}},
	{service.ErrInvalidDataProvided, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{service.ErrUserExists, errorResponse{http.StatusBadRequest, app.MsgUserExists}},
	{service.ErrInvalidCredentials, errorResponse{http.StatusUnauthorized, app.MsgInvalidCredentials}},
	{service.ErrNoPasswordSet, errorResponse{http.StatusUnauthorized, app.MsgNoPasswordSet}},
	{service.ErrInvalidOrExpiredCode, errorResponse{http.StatusUnauthorized, app.MsgInvalidOrExpiredCode}},
	{service.ErrTokenIsExpiredOrInvalid, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},
	{service.ErrUserNotFound, errorResponse{http.StatusUnauthorized, app.MsgUnauthorized}},
	{ErrNoSessionToken, errorResponse{http.StatusUnauthorized, app.MsgUnauthorized}},
	{ErrRateLimited, errorResponse{http.StatusTooManyRequests, app.MsgTooManyRequests}},
	{service.ErrDeliveryFailed, errorResponse{http.StatusInternalServerError, app.MsgDeliveryFailed}},
}

func responseFromError(err error) errorResponse {
	for _, e := range errorResponses {
		if errors.Is(err, e.target) {
			return e.response
		}
	}
	return errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}
}

// writeError logs err and answers with the status and client message mapped
// from it. Internal details never reach the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := responseFromError(err)

	log := logger.FromRequest(r)
	if resp.status >= http.StatusInternalServerError {
		log.Err(err).Int("status", resp.status).Msg("request failed")
	} else {
		log.Warn().Err(err).Int("status", resp.status).Msg("request rejected")
	}

	utils.WriteJSON(w, models.MessageResponse{Success: false, Message: resp.message}, resp.status)
}
