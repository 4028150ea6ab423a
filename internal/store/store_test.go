package store

import (
	"context"
	"testing"
)

func TestMigrationURL(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"postgres://u:p@localhost:5432/db?sslmode=disable", "pgx5://u:p@localhost:5432/db?sslmode=disable", false},
		{"postgresql://localhost/db", "pgx5://localhost/db", false},
		{"host=localhost dbname=db", "", true},
	}
	for _, c := range cases {
		got, err := migrationURL(c.in)
		if (err != nil) != c.wantErr {
			t.Fatalf("migrationURL(%q) err = %v, wantErr %v", c.in, err, c.wantErr)
		}
		if got != c.want {
			t.Fatalf("migrationURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestHealthCheckUninitialized(t *testing.T) {
	var s *Store
	if err := s.HealthCheck(context.Background()); err == nil {
		t.Fatalf("expected error for nil store")
	}
	if s.Stats() != nil {
		t.Fatalf("expected nil stats for nil store")
	}
	s.Close()
}
