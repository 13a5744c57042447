package models

import (
	"time"
)

// User is an account in the identity layer. The folder/file core only
// ever sees its ID as an opaque owner string.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
