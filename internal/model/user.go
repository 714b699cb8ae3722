// Package model defines the data structures used throughout the application.
package model

// User represents a registered account.
//
// The ID is assigned by the database (INTEGER PRIMARY KEY — SQLite hands out
// rowids). PasswordHash is the full bcrypt output; salt and cost are embedded
// in the string, so no separate salt column is needed.
//
// PasswordHash is tagged `json:"-"` so it can never leak into a response,
// no matter which handler serializes a User.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}
