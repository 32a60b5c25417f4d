package fault

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{
			name: "validation error",
			err:  Validation("title is required"),
			want: KindValidation,
		},
		{
			name: "not found error",
			err:  NotFound("mission %s not found", "MSN-001"),
			want: KindNotFound,
		},
		{
			name: "forbidden error",
			err:  Forbidden("caller is not a party"),
			want: KindForbidden,
		},
		{
			name: "invalid transition error",
			err:  InvalidTransition("mission is not pending"),
			want: KindInvalidTransition,
		},
		{
			name: "wrapped in fmt.Errorf",
			err:  fmt.Errorf("respond failed: %w", InvalidTransition("mission is not pending")),
			want: KindInvalidTransition,
		},
		{
			name: "unclassified error",
			err:  errors.New("disk on fire"),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("row not found")
	err := Wrap(KindNotFound, cause, "mission MSN-007 not found")

	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
	if !IsNotFound(err) {
		t.Error("expected IsNotFound to be true")
	}
	if got := err.Error(); got != "mission MSN-007 not found: row not found" {
		t.Errorf("Error() = %q", got)
	}
}

func TestKindPredicates(t *testing.T) {
	if !IsValidation(Validation("x")) {
		t.Error("IsValidation failed")
	}
	if !IsForbidden(Forbidden("x")) {
		t.Error("IsForbidden failed")
	}
	if IsForbidden(NotFound("x")) {
		t.Error("IsForbidden matched a not-found error")
	}
	if IsInvalidTransition(nil) {
		t.Error("IsInvalidTransition matched nil")
	}
}
