package service

import (
	"errors"
	"testing"
)

func TestGateCheck(t *testing.T) {
	g := NewGate("Birthday2024")

	cases := []struct {
		candidate string
		ok        bool
	}{
		{"Birthday2024", true},
		{"birthday2024", false},
		{" Birthday2024", false},
		{"Birthday2024 ", false},
		{"", false},
		{"Birthday20245", false},
	}

	for _, tc := range cases {
		err := g.Check(tc.candidate)
		if tc.ok && err != nil {
			t.Errorf("Check(%q) = %v, want nil", tc.candidate, err)
		}

		if !tc.ok && !errors.Is(err, ErrUnauthorized) {
			t.Errorf("Check(%q) = %v, want ErrUnauthorized", tc.candidate, err)
		}
	}
}

func TestGateEmptySecretRejectsEverything(t *testing.T) {
	g := NewGate("")

	for _, c := range []string{"", "anything", " "} {
		if err := g.Check(c); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("Check(%q) with empty secret = %v", c, err)
		}
	}

	var nilGate *Gate
	if err := nilGate.Check("x"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("nil gate = %v", err)
	}
}

func TestPublicMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{ErrUnauthorized, "Invalid password"},
		{ErrUnknownAction, "Invalid action"},
		{validationError("name is required"), "name is required"},
		{notFound("upload"), "upload not found"},
		{storeError("list uploads", errors.New("conn refused")), "failed to list uploads"},
		{errors.New("boom"), "internal server error"},
	}

	for _, tc := range cases {
		if got := PublicMessage(tc.err); got != tc.want {
			t.Errorf("PublicMessage(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestErrorClasses(t *testing.T) {
	cause := errors.New("disk full")
	err := storeError("save upload", cause)

	if !errors.Is(err, ErrStore) || !errors.Is(err, cause) {
		t.Fatalf("store error must match class and cause: %v", err)
	}

	if errors.Is(err, ErrNotFound) {
		t.Fatal("store error must not match ErrNotFound")
	}
}
