package httpserver

import (
	"encoding/json"
	"testing"

	"github.com/Clark-Hu/moviemeter/internal/domain"
)

func FuzzValidateRatingRequest(f *testing.F) {
	seeds := []string{
		`{"movieId":"m1","rating":3}`,
		`{"movieId":"m1","rating":4.5}`,
		`{"movieId":"","rating":1}`,
		`{"rating":1e400}`,
		`{}`,
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		var req ratingRequest
		if err := json.Unmarshal([]byte(raw), &req); err != nil {
			return
		}
		_, v, err := validateRatingRequest(req)
		if err == nil && !domain.ValidRating(v) {
			t.Fatalf("accepted out-of-range rating %d from %q", v, raw)
		}
	})
}

func FuzzTokenFromHeader(f *testing.F) {
	for _, seed := range []string{"", "Bearer x", "bearer", "Basic abc"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, header string) {
		_ = tokenFromHeader(header)
	})
}
