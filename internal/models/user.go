package models

import "time"

// User mirrors the users table.
type User struct {
	UserID       int64  `json:"userID"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Role         string `json:"role"`
	AuditFields
}

// AuditFields holds row timestamps shared by all tables.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
