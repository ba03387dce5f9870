// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Username identifies the user at sign-in. It must be unique across all users.
	Username string `gorm:"uniqueIndex;size:20;not null"`

	// PasswordHash is the salted hash of the password.
	// This should never store plaintext passwords.
	PasswordHash string `gorm:"size:255;not null"`

	// Salt is generated once at sign-up and never changes.
	Salt string `gorm:"size:64;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
