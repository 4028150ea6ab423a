package client

import "testing"

func TestValidateSignup(t *testing.T) {
	valid := SignupRequest{Username: " alice ", Email: "a@x.io", Password: "secret1", DOB: "1990-01-01", Phone: "555"}
	req := valid
	if err := ValidateSignup(&req); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
	if req.Username != "alice" {
		t.Fatalf("username not trimmed: %q", req.Username)
	}

	tests := []struct {
		name   string
		mutate func(*SignupRequest)
		want   string
	}{
		{"missing phone", func(r *SignupRequest) { r.Phone = " " }, "Please fill out all fields!"},
		{"missing dob", func(r *SignupRequest) { r.DOB = "" }, "Please fill out all fields!"},
		{"bad email", func(r *SignupRequest) { r.Email = "a@x" }, "Please enter a valid email address!"},
		{"email with space", func(r *SignupRequest) { r.Email = "a b@x.io" }, "Please enter a valid email address!"},
		{"short password", func(r *SignupRequest) { r.Password = "12345" }, "Password must be at least 6 characters long!"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			err := ValidateSignup(&req)
			if err == nil || err.Error() != tc.want {
				t.Fatalf("error = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	if err := ValidateLogin("alice", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateLogin("  ", "pw"); err == nil {
		t.Fatalf("expected error for blank username")
	}
	if err := ValidateLogin("alice", ""); err == nil {
		t.Fatalf("expected error for blank password")
	}
}
