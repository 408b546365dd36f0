package config

import (
	"testing"
	"time"
)

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{" On ", true},
		{"1", true},
		{"yes", true},
		{"FALSE", false},
		{"off", false},
		{"0", false},
		{"maybe", true},
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %q, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestDurationEnvOrDefault(t *testing.T) {
	cases := []struct {
		val  string
		want time.Duration
	}{
		{"", time.Minute},
		{"90", 90 * time.Second},
		{"2m", 2 * time.Minute},
		{"0", time.Minute},
		{"-5s", time.Minute},
		{"soon", time.Minute},
	}
	for _, tc := range cases {
		t.Setenv("DURATION_TEST", tc.val)
		if got := durationEnvOrDefault("DURATION_TEST", time.Minute); got != tc.want {
			t.Fatalf("durationEnvOrDefault(%q) = %s, want %s", tc.val, got, tc.want)
		}
	}
}

func TestSelectionEnvOrDefaultLowercases(t *testing.T) {
	t.Setenv("SPORT_TEST", "  Womens_Basketball ")
	if got := selectionEnvOrDefault("SPORT_TEST", "football"); got != "womens_basketball" {
		t.Fatalf("expected normalized sport, got %q", got)
	}
	t.Setenv("SPORT_TEST", "")
	if got := selectionEnvOrDefault("SPORT_TEST", "football"); got != "football" {
		t.Fatalf("expected default sport, got %q", got)
	}
}
