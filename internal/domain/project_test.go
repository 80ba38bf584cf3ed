package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateProjectContent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		title       string
		description string
		skills      []string
		wantError   bool
	}{
		{name: "valid", title: "Build a REST API", description: "Build a backend for our marketplace", skills: []string{"go"}, wantError: false},
		{name: "title too short", title: "Short", description: "Build a backend for our marketplace", skills: []string{"go"}, wantError: true},
		{name: "title too long", title: strings.Repeat("x", 201), description: "Build a backend for our marketplace", skills: []string{"go"}, wantError: true},
		{name: "description too short", title: "Build a REST API", description: "tiny", skills: []string{"go"}, wantError: true},
		{name: "no skills", title: "Build a REST API", description: "Build a backend for our marketplace", skills: nil, wantError: true},
		{name: "too many skills", title: "Build a REST API", description: "Build a backend for our marketplace", skills: make([]string, 21), wantError: true},
		{name: "blank skill", title: "Build a REST API", description: "Build a backend for our marketplace", skills: []string{" "}, wantError: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateProjectContent(tc.title, tc.description, tc.skills)
			if tc.wantError && !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if !tc.wantError && err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
		})
	}
}

func TestValidateBudget(t *testing.T) {
	t.Parallel()

	if err := ValidateBudget(100, 200); err != nil {
		t.Fatalf("expected valid budget, got %v", err)
	}
	if err := ValidateBudget(0, 0); err != nil {
		t.Fatalf("expected unset budget to pass, got %v", err)
	}
	if err := ValidateBudget(-1, 10); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative min, got %v", err)
	}
	if err := ValidateBudget(300, 200); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for inverted range, got %v", err)
	}
}

func TestCanPublish(t *testing.T) {
	t.Parallel()

	draft := Project{Status: ProjectStatusDraft}
	if err := draft.CanPublish(); err != nil {
		t.Fatalf("draft should be publishable, got %v", err)
	}
	published := Project{Status: ProjectStatusOpen}
	if err := published.CanPublish(); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
