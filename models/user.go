package models

import "time"

// Placeholder display names assigned to accounts created without a
// registration form (OTP login, or a provider profile lacking names).
const (
	PlaceholderFirstName = "User"
	PlaceholderLastName  = "Name"
)

// User represents an account entity used for authentication.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the opaque unique identifier of the user (UUIDv7 string).
	// It is generated by the service layer at creation and never changes.
	UserID string `json:"id"`

	// Email is the unique contact address of the user and the natural
	// lookup key. Matching is exact, as stored.
	Email string `json:"email"`

	// FirstName and LastName are display name fields.
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// An empty value means no password was ever set (OTP or federated
	// accounts); it is persisted as NULL.
	PasswordHash string `json:"-"`

	// IsActive and EmailVerified are account flags. Every current
	// creation pathway sets both to true.
	IsActive      bool `json:"-"`
	EmailVerified bool `json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// HasPassword reports whether the user can authenticate with a password.
func (u User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Public returns the subset of user fields that may be sent to clients.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.UserID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// PublicUser is the wire representation of a user.
type PublicUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}
