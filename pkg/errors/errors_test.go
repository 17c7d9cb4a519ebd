package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{CodeInvalidInput, http.StatusBadRequest},
		{CodeReferential, http.StatusBadRequest},
		{CodeConstraint, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeAlreadyExists, http.StatusConflict},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeInternal, http.StatusInternalServerError},
		{ErrorCode("SOMETHING_NEW"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		err := &AppError{Code: tt.code, Message: "m"}
		if got := err.HTTPStatus(); got != tt.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestErrorStringAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalErrorWithCause("db unavailable", cause)

	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
	if msg := err.Error(); msg != "[INTERNAL_ERROR] db unavailable: connection refused" {
		t.Errorf("Error() = %q", msg)
	}

	plain := NewNotFoundError("missing")
	if msg := plain.Error(); msg != "[NOT_FOUND] missing" {
		t.Errorf("Error() = %q", msg)
	}
}

func TestPredicates(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewNotFoundError("missing"))
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound() false for wrapped NOT_FOUND")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("IsNotFound() true for plain error")
	}

	if !IsInvalidInput(NewValidationError("bad", []string{"name is required"})) {
		t.Error("IsInvalidInput() false for validation error")
	}
	if !IsConstraint(NewReferentialError("fk")) || !IsConstraint(NewConstraintError("check")) {
		t.Error("IsConstraint() must cover both constraint and referential codes")
	}
	if IsConstraint(NewNotFoundError("missing")) {
		t.Error("IsConstraint() true for NOT_FOUND")
	}
}

func TestStatusOf(t *testing.T) {
	if got := StatusOf(NewInvalidInputError("bad")); got != http.StatusBadRequest {
		t.Errorf("StatusOf(invalid input) = %d", got)
	}
	if got := StatusOf(errors.New("opaque")); got != http.StatusInternalServerError {
		t.Errorf("StatusOf(plain error) = %d, want 500", got)
	}
}

func TestValidationErrorCarriesViolations(t *testing.T) {
	violations := []string{"name is required", "creator_id is required"}
	err := NewValidationError("validation failed", violations)
	if len(err.Violations) != 2 {
		t.Errorf("Violations = %v", err.Violations)
	}
	if err.Code != CodeInvalidInput {
		t.Errorf("Code = %s, want %s", err.Code, CodeInvalidInput)
	}
}
