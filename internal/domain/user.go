package domain

import "time"

// User represents an account on the portal. Staff users may operate the
// admin console; everyone else browses and applies.
type User struct {
	ID         int64
	Email      string
	FirstName  string
	LastName   string
	IsStaff    bool
	DateJoined time.Time
}

// Name returns a display name, falling back to the email address when the
// profile has no name fields set.
func (u User) Name() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

// JoinedSince reports whether the account was created at or after the given
// instant. Used for the new-users-this-month counter.
func (u User) JoinedSince(t time.Time) bool {
	return !u.DateJoined.Before(t)
}
