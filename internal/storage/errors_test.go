package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestValidationErrorMatchesKind(t *testing.T) {
	err := fmt.Errorf("create task: %w", Invalid("priority", "must be %s", "HIGH"))
	if !errors.Is(err, ErrValidation) {
		t.Fatal("expected validation failure")
	}
	if errors.Is(err, ErrStorage) {
		t.Error("validation failure must not match storage failure")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatal("expected *ValidationError")
	}
	if verr.Field != "priority" || verr.Message != "must be HIGH" {
		t.Errorf("got %+v", verr)
	}
}

func TestFailure(t *testing.T) {
	if Failure("op", nil) != nil {
		t.Fatal("nil error must stay nil")
	}

	err := Failure("list tasks", context.DeadlineExceeded)
	if !errors.Is(err, ErrStorage) {
		t.Error("expected storage failure")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected cause to be preserved")
	}

	nf := NotFound("task", 7)
	if got := Failure("delete task", nf); got != nf {
		t.Errorf("known kind was rewrapped: %v", got)
	}
}

func TestIsKnown(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{ErrValidation, true},
		{fmt.Errorf("x: %w", ErrReference), true},
		{NotFound("party", 1), true},
		{Failure("op", errors.New("disk")), true},
		{errors.New("plain"), false},
		{context.Canceled, false},
	}
	for _, tt := range tests {
		if got := IsKnown(tt.err); got != tt.want {
			t.Errorf("IsKnown(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
