package model

import "time"

// UserEntity represents the user table entity. ID is the external
// auth subject, not generated locally.
type UserEntity struct {
	ID        string     `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Role      string     `db:"role" json:"role"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// SyncUserRequest for the identity sync endpoint. ID comes from the
// bearer token subject, the rest from the body.
type SyncUserRequest struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required"`
	Role string `json:"role"`
}
