package handler

import (
	"strings"
	"testing"
)

func TestValidator_MessagesUseJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&addRegistrationRequest{ServerID: "cain"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if err.Error() != "characterId is required" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	err = v.Validate(&registerRequest{Email: "a@example.com", Password: "short", Nickname: strings.Repeat("n", 31)})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"password must be at least 8 characters", "nickname must be at most 30 characters"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("missing %q in %q", want, err.Error())
		}
	}

	if err := v.Validate(&loginRequest{Email: "a@example.com", Password: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
