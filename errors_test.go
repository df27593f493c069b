package vellum

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		kind     ErrorKind
	}{
		{"validation", validationError("Op", "bad %d", 1), ErrValidation, KindValidation},
		{"illegal", illegalOperation("Op", "nope"), ErrIllegalOperation, KindIllegalOperation},
		{"argument", argumentError("Op", "nil"), ErrArgument, KindArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, sentinel) = false", tt.err)
			}
			var e *Error
			if !errors.As(tt.err, &e) {
				t.Fatal("errors.As failed")
			}
			if e.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", e.Kind, tt.kind)
			}
			for _, other := range []error{ErrValidation, ErrIllegalOperation, ErrArgument} {
				if other != tt.sentinel && errors.Is(tt.err, other) {
					t.Errorf("%v matched the wrong sentinel %v", tt.err, other)
				}
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := validationError("NewCircle", "radius %v", -1)
	if got := err.Error(); got != "vellum: NewCircle: radius -1" {
		t.Errorf("Error() = %q", got)
	}
	wrapped := fmt.Errorf("setup: %w", err)
	if !errors.Is(wrapped, ErrValidation) {
		t.Error("wrapped error should still match")
	}
	inner := &Error{Kind: KindArgument, Op: "X", Err: errors.New("boom")}
	if !strings.HasSuffix(inner.Error(), "invalid argument: boom") {
		t.Errorf("Error() = %q", inner.Error())
	}
}
