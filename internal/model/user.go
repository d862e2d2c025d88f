// File: internal/model/user.go
package model

import "github.com/google/uuid"

// User is a registered account. Token is nil for administrators; regular
// members get a unique token at registration and keep it for life.
type User struct {
	ID               int        `db:"id" json:"id"`
	Username         string     `db:"username" json:"username"`
	PasswordHash     string     `db:"password_hash" json:"-"`
	IsAdmin          bool       `db:"is_admin" json:"is_admin"`
	Token            *uuid.UUID `db:"qr_token" json:"-"`
	FirstName        string     `db:"first_name" json:"first_name"`
	PaternalLastName string     `db:"paternal_last_name" json:"paternal_last_name"`
	MaternalLastName string     `db:"maternal_last_name" json:"maternal_last_name"`
	Gender           string     `db:"gender" json:"gender"`
	PhoneNumber      string     `db:"phone_number" json:"phone_number"`
}
