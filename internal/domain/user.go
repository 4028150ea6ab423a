package domain

import "time"

// User is a registered account. Records are never mutated after signup.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	DateOfBirth  string
	Phone        string
	CreatedAt    time.Time
}
