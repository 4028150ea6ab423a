package client

import (
	"errors"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 6

// ValidateSignup applies the client-side checks before any request is sent.
// Username, email and phone are trimmed in place.
func ValidateSignup(req *SignupRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)

	if req.Username == "" || req.Email == "" || req.Password == "" || req.DOB == "" || req.Phone == "" {
		return errors.New("Please fill out all fields!")
	}
	if !emailPattern.MatchString(req.Email) {
		return errors.New("Please enter a valid email address!")
	}
	if len([]rune(req.Password)) < minPasswordLength {
		return errors.New("Password must be at least 6 characters long!")
	}
	return nil
}

// ValidateLogin checks that both credentials are present.
func ValidateLogin(username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return errors.New("Please enter both username and password!")
	}
	return nil
}
