package core

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ServiceName != "awards" {
		t.Fatalf("expected service name awards, got %q", cfg.ServiceName)
	}
	if cfg.AwardPath != "awards" {
		t.Fatalf("expected award path awards, got %q", cfg.AwardPath)
	}
	if cfg.ListLimit != 10 {
		t.Fatalf("expected list limit 10, got %d", cfg.ListLimit)
	}
	if cfg.BaseURL != "" {
		t.Fatalf("expected no default base_url, got %q", cfg.BaseURL)
	}
}

func TestConfigValidate_RequiresBaseURL(t *testing.T) {
	for _, baseURL := range []string{"", "   "} {
		cfg := DefaultConfig()
		cfg.BaseURL = baseURL
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected blank base_url %q to be rejected", baseURL)
		}
	}

	cfg := DefaultConfig()
	cfg.BaseURL = "https://awards.example.com"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected configured base_url to validate: %v", err)
	}
}

func TestConfigValidate_RejectsRelativeBaseURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "/awards"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected relative base_url to be rejected")
	}

	cfg.BaseURL = "https://awards.example.com"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected absolute base_url to validate: %v", err)
	}
}

func TestConfigValidate_RejectsNegativeListLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ListLimit = -1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected negative list_limit to be rejected")
	}
}

func TestPublicAwardURL_CollapsesTrailingSlash(t *testing.T) {
	cases := []struct {
		baseURL string
		want    string
	}{
		{"https://awards.example.com", "https://awards.example.com/awards/cred_1"},
		{"https://awards.example.com/", "https://awards.example.com/awards/cred_1"},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		cfg.BaseURL = tc.baseURL
		got := cfg.PublicAwardURL("cred_1")
		if got != tc.want {
			t.Fatalf("base %q: expected %q, got %q", tc.baseURL, tc.want, got)
		}
		if strings.Contains(got, "//awards/") {
			t.Fatalf("expected no duplicated slash in %q", got)
		}
	}
}

func TestPublicAwardURL_UsesConfiguredPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "https://awards.example.com"
	cfg.AwardPath = "/credentials/"
	got := cfg.PublicAwardURL("cred_1")
	if got != "https://awards.example.com/credentials/cred_1" {
		t.Fatalf("unexpected award url %q", got)
	}
}

func TestListLimit_FallsBackToDefault(t *testing.T) {
	cfg := Config{}
	if got := cfg.listLimit(); got != 10 {
		t.Fatalf("expected default list limit 10, got %d", got)
	}
	cfg.ListLimit = 25
	if got := cfg.listLimit(); got != 25 {
		t.Fatalf("expected configured list limit 25, got %d", got)
	}
}
