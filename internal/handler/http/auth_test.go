package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/clean-auth/internal/app"
	"github.com/MKhiriev/clean-auth/internal/ratelimit"
	"github.com/MKhiriev/clean-auth/internal/service"
	"github.com/MKhiriev/clean-auth/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) models.MessageResponse {
	t.Helper()
	var resp models.MessageResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

func assertSessionCookie(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	c := findCookie(rr, testCookieName)
	require.NotNil(t, c, "session cookie must be set")
	assert.Equal(t, testSigned, c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, int(testTokenMaxAge.Seconds()), c.MaxAge)
}

// ---- POST /auth/login ----

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)
	f.limiter.EXPECT().Allow(gomock.Any(), ratelimit.Key(groupLogin, testClientIP)).Return(true, nil)
	f.auth.EXPECT().
		Login(gomock.Any(), models.LoginRequest{Email: testEmail, Password: "Passw0rd1"}).
		Return(testAuthResult(), nil)

	rr := f.postJSON("/auth/login", `{"email":"ann@example.com","password":"Passw0rd1"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"success": true,
		"user": {"id": "`+testUserID+`", "firstName": "Ann", "lastName": "Lee", "email": "ann@example.com"},
		"token": "`+testSigned+`"
	}`, rr.Body.String())
	assertSessionCookie(t, rr)
}

func TestLogin_ResponseNeverContainsPasswordHash(t *testing.T) {
	f := newFixture(t)
	f.allow()
	result := testAuthResult()
	result.User.PasswordHash = "$2a$12$secret-hash"
	f.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(result, nil)

	rr := f.postJSON("/auth/login", `{"email":"ann@example.com","password":"Passw0rd1"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "secret-hash")
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "malformed JSON",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    app.MsgInvalidDataProvided,
		},
		{
			name:       "empty body",
			body:       ``,
			wantStatus: http.StatusBadRequest,
			wantMsg:    app.MsgInvalidDataProvided,
		},
		{
			name:       "validation error",
			body:       `{"email":"nope","password":"x"}`,
			serviceErr: fmt.Errorf("%w: invalid email", service.ErrInvalidDataProvided),
			wantStatus: http.StatusBadRequest,
			wantMsg:    app.MsgInvalidDataProvided,
		},
		{
			name:       "invalid credentials",
			body:       `{"email":"ann@example.com","password":"Wrong1234"}`,
			serviceErr: service.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    app.MsgInvalidCredentials,
		},
		{
			name:       "no password set",
			body:       `{"email":"ann@example.com","password":"Passw0rd1"}`,
			serviceErr: service.ErrNoPasswordSet,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    app.MsgNoPasswordSet,
		},
		{
			name:       "store failure is not leaked",
			body:       `{"email":"ann@example.com","password":"Passw0rd1"}`,
			serviceErr: errors.New("pq: connection refused on 10.0.0.5"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    app.MsgInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.allow()
			if tt.serviceErr != nil {
				f.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.AuthResult{}, tt.serviceErr)
			}

			rr := f.postJSON("/auth/login", tt.body)

			assert.Equal(t, tt.wantStatus, rr.Code)
			resp := decodeMessage(t, rr)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantMsg, resp.Message)
			assert.Nil(t, findCookie(rr, testCookieName))
		})
	}
}

func TestLogin_RateLimited(t *testing.T) {
	f := newFixture(t)
	f.limiter.EXPECT().Allow(gomock.Any(), ratelimit.Key(groupLogin, testClientIP)).Return(false, nil)

	rr := f.postJSON("/auth/login", `{"email":"ann@example.com","password":"Passw0rd1"}`)

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, app.MsgTooManyRequests, decodeMessage(t, rr).Message)
}

func TestLogin_LimiterFailureRejects(t *testing.T) {
	f := newFixture(t)
	f.limiter.EXPECT().Allow(gomock.Any(), gomock.Any()).Return(false, ratelimit.ErrLimiterFailure)

	rr := f.postJSON("/auth/login", `{"email":"ann@example.com","password":"Passw0rd1"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestLogin_WrongMethodIsHidden(t *testing.T) {
	f := newFixture(t)

	rr := f.do(httptest.NewRequest(http.MethodGet, "/auth/login", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// ---- POST /auth/register ----

func TestRegister_Success(t *testing.T) {
	f := newFixture(t)
	f.limiter.EXPECT().Allow(gomock.Any(), ratelimit.Key(groupRegister, testClientIP)).Return(true, nil)
	f.auth.EXPECT().
		Register(gomock.Any(), models.RegisterRequest{FirstName: "Ann", LastName: "Lee", Email: testEmail, Password: "Passw0rd1"}).
		Return(testAuthResult(), nil)

	rr := f.postJSON("/auth/register", `{"firstName":"Ann","lastName":"Lee","email":"ann@example.com","password":"Passw0rd1"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp models.AuthResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, testUser().Public(), resp.User)
	assert.Equal(t, testSigned, resp.Token)
	assertSessionCookie(t, rr)
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantMsg    string
	}{
		{"user exists", service.ErrUserExists, http.StatusBadRequest, app.MsgUserExists},
		{"password policy", fmt.Errorf("%w: too short", service.ErrPasswordPolicy), http.StatusBadRequest, app.MsgPasswordPolicy},
		{"missing field", fmt.Errorf("%w: empty last name", service.ErrInvalidDataProvided), http.StatusBadRequest, app.MsgInvalidDataProvided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.allow()
			f.auth.EXPECT().Register(gomock.Any(), gomock.Any()).Return(models.AuthResult{}, tt.serviceErr)

			rr := f.postJSON("/auth/register", `{"firstName":"Ann","lastName":"Lee","email":"ann@example.com","password":"short"}`)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMsg, decodeMessage(t, rr).Message)
		})
	}
}

// ---- POST /auth/send-otp ----

func TestSendOTP_Success(t *testing.T) {
	f := newFixture(t)
	f.limiter.EXPECT().Allow(gomock.Any(), ratelimit.Key(groupOTP, testClientIP)).Return(true, nil)
	f.auth.EXPECT().SendOTP(gomock.Any(), models.SendOTPRequest{Email: testEmail}).Return(nil)

	rr := f.postJSON("/auth/send-otp", `{"email":"ann@example.com"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.MessageResponse{Success: true, Message: app.MsgOTPSent}, decodeMessage(t, rr))
	assert.Nil(t, findCookie(rr, testCookieName))
}

func TestSendOTP_DeliveryFailed(t *testing.T) {
	f := newFixture(t)
	f.allow()
	f.auth.EXPECT().SendOTP(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("%w: %w", service.ErrDeliveryFailed, errors.New("smtp: 421")))

	rr := f.postJSON("/auth/send-otp", `{"email":"ann@example.com"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, app.MsgDeliveryFailed, decodeMessage(t, rr).Message)
}

// ---- POST /auth/verify-otp ----

func TestVerifyOTP_Success(t *testing.T) {
	f := newFixture(t)
	f.limiter.EXPECT().Allow(gomock.Any(), ratelimit.Key(groupOTP, testClientIP)).Return(true, nil)
	f.auth.EXPECT().
		VerifyOTP(gomock.Any(), models.VerifyOTPRequest{Email: testEmail, OTP: "123456"}).
		Return(testAuthResult(), nil)

	rr := f.postJSON("/auth/verify-otp", `{"email":"ann@example.com","otp":"123456"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assertSessionCookie(t, rr)
}

func TestVerifyOTP_InvalidOrExpired(t *testing.T) {
	f := newFixture(t)
	f.allow()
	f.auth.EXPECT().VerifyOTP(gomock.Any(), gomock.Any()).Return(models.AuthResult{}, service.ErrInvalidOrExpiredCode)

	rr := f.postJSON("/auth/verify-otp", `{"email":"ann@example.com","otp":"000000"}`)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, app.MsgInvalidOrExpiredCode, decodeMessage(t, rr).Message)
}

// ---- GET /auth/me ----

func TestMe(t *testing.T) {
	tests := []struct {
		name       string
		prepare    func(r *http.Request)
		parsed     bool
		parseErr   error
		wantStatus int
	}{
		{
			name:       "bearer header",
			prepare:    func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+testSigned) },
			parsed:     true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "session cookie",
			prepare:    func(r *http.Request) { r.AddCookie(&http.Cookie{Name: testCookieName, Value: testSigned}) },
			parsed:     true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "no token",
			prepare:    func(*http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "non-bearer scheme",
			prepare:    func(r *http.Request) { r.Header.Set("Authorization", "Basic dXNlcjpwYXNz") },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			prepare:    func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+testSigned) },
			parsed:     true,
			parseErr:   service.ErrTokenIsExpiredOrInvalid,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.parsed {
				f.auth.EXPECT().ParseToken(gomock.Any(), testSigned).
					Return(models.Token{SignedString: testSigned, UserID: testUserID}, tt.parseErr)
			}
			if tt.wantStatus == http.StatusOK {
				f.auth.EXPECT().CurrentUser(gomock.Any(), testUserID).Return(testUser(), nil)
			}

			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			tt.prepare(req)
			rr := f.do(req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var resp models.UserResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, models.UserResponse{Success: true, User: testUser().Public()}, resp)
			}
		})
	}
}

func TestMe_UserDeleted(t *testing.T) {
	f := newFixture(t)
	f.auth.EXPECT().ParseToken(gomock.Any(), testSigned).Return(models.Token{UserID: testUserID}, nil)
	f.auth.EXPECT().CurrentUser(gomock.Any(), testUserID).Return(models.User{}, service.ErrUserNotFound)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+testSigned)
	rr := f.do(req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// ---- POST /auth/logout ----

func TestLogout_ClearsCookie(t *testing.T) {
	f := newFixture(t)

	rr := f.postJSON("/auth/logout", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	c := findCookie(rr, testCookieName)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Less(t, c.MaxAge, 0)
	assert.Equal(t, models.MessageResponse{Success: true, Message: app.MsgLoggedOut}, decodeMessage(t, rr))
}

// ---- gzip on JSON routes ----

func TestLogin_GzipResponse(t *testing.T) {
	f := newFixture(t)
	f.allow()
	f.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(testAuthResult(), nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Body = gzipBody(t, `{"email":"ann@example.com","password":"Passw0rd1"}`)
	req.Header.Set("Content-Encoding", "gzip")
	req.Header.Set("Accept-Encoding", "gzip")
	rr := f.do(req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal([]byte(gunzip(t, rr.Body.Bytes())), &resp))
	assert.Equal(t, testSigned, resp.Token)
}
