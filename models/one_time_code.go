package models

import "time"

// ContactType discriminates the kind of address a one-time code is sent to.
type ContactType string

// Purpose discriminates what a one-time code may be used for, so that the
// same contact can hold codes for different purposes without collision.
type Purpose string

const (
	ContactTypeEmail ContactType = "email"

	PurposeLogin Purpose = "login"
)

// OneTimeCode is a single-use, time-boxed numeric code issued to a contact
// address. At most one row exists per (ContactType, Contact, Purpose); a new
// send overwrites it.
type OneTimeCode struct {
	ID int64 `json:"-"`

	Contact     string      `json:"contact"`
	ContactType ContactType `json:"type"`
	Code        string      `json:"-"`
	Purpose     Purpose     `json:"purpose"`

	ExpiresAt time.Time `json:"expires_at"`
	IsUsed    bool      `json:"is_used"`

	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
	UsedAt    *time.Time `json:"-"`
}

// IsLive reports whether the code is unused and not yet expired at now.
func (c OneTimeCode) IsLive(now time.Time) bool {
	return !c.IsUsed && now.Before(c.ExpiresAt)
}

// TableName returns the name of the database table
// associated with the OneTimeCode model.
func (c OneTimeCode) TableName() string {
	return "one_time_codes"
}
