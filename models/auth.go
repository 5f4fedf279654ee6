package models

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// SendOTPRequest is the body of POST /auth/send-otp.
type SendOTPRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest is the body of POST /auth/verify-otp.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ProviderProfile is an identity assertion already verified by a trusted
// identity provider (e.g. Google). It is the only input of federated login.
type ProviderProfile struct {
	Provider      string `json:"provider"`
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

// AuthResult is the outcome of every successful authentication pathway.
type AuthResult struct {
	User  User
	Token Token
}

// AuthResponse is the JSON body returned by successful login, register and
// verify-otp calls.
type AuthResponse struct {
	Success bool       `json:"success"`
	User    PublicUser `json:"user"`
	Token   string     `json:"token"`
}

// UserResponse is the JSON body returned by GET /auth/me.
type UserResponse struct {
	Success bool       `json:"success"`
	User    PublicUser `json:"user"`
}

// MessageResponse is the generic JSON body for acknowledgements and errors.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is the JSON body returned by GET /health.
type HealthResponse struct {
	Success  bool   `json:"success"`
	Database string `json:"database"`
	Version  string `json:"version,omitempty"`
}
