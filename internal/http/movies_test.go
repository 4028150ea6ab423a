package httpserver

import (
	"math"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestValidateRatingRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     ratingRequest
		wantID  string
		wantVal int
		wantErr bool
	}{
		{name: "min", req: ratingRequest{MovieID: "m1", Rating: floatPtr(1)}, wantID: "m1", wantVal: 1},
		{name: "max", req: ratingRequest{MovieID: " m1 ", Rating: floatPtr(5)}, wantID: "m1", wantVal: 5},
		{name: "below range", req: ratingRequest{MovieID: "m1", Rating: floatPtr(0)}, wantErr: true},
		{name: "above range", req: ratingRequest{MovieID: "m1", Rating: floatPtr(6)}, wantErr: true},
		{name: "fraction", req: ratingRequest{MovieID: "m1", Rating: floatPtr(2.5)}, wantErr: true},
		{name: "nan", req: ratingRequest{MovieID: "m1", Rating: floatPtr(math.NaN())}, wantErr: true},
		{name: "huge", req: ratingRequest{MovieID: "m1", Rating: floatPtr(1e300)}, wantErr: true},
		{name: "nil rating", req: ratingRequest{MovieID: "m1"}, wantErr: true},
		{name: "blank movie", req: ratingRequest{MovieID: "  ", Rating: floatPtr(3)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, val, err := validateRatingRequest(tt.req)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %s/%d", id, val)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.wantID || val != tt.wantVal {
				t.Fatalf("got %q/%d, want %q/%d", id, val, tt.wantID, tt.wantVal)
			}
		})
	}
}

func TestTokenFromHeader(t *testing.T) {
	tests := map[string]string{
		"":              "",
		"Bearer":        "",
		"Bearer ":       "",
		"Bearer abc":    "abc",
		"bearer abc":    "abc",
		"Basic abc":     "Basic abc",
		"rawtokenvalue": "rawtokenvalue",
	}
	for header, want := range tests {
		if got := tokenFromHeader(header); got != want {
			t.Errorf("tokenFromHeader(%q) = %q, want %q", header, got, want)
		}
	}
}
