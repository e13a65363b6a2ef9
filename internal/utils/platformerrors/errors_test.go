package platformerrors

import (
	"context"
	"errors"
	"testing"
)

func TestNewErrorGeneratesIncidentCode(t *testing.T) {
	err := NewError(context.Background(), LayerDomain, ErrorTypeNotFound, "role not found", nil, "")

	var pe *PlatformError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PlatformError, got %T", err)
	}
	if pe.IncidentCode == "" {
		t.Error("expected generated incident code")
	}
	if pe.Layer != LayerDomain {
		t.Errorf("layer = %q, want %q", pe.Layer, LayerDomain)
	}
}

func TestAsErrorPreservesType(t *testing.T) {
	inner := NewError(context.Background(), LayerRepository, ErrorTypeDatabaseError, "query failed", errors.New("broken pipe"), "")
	wrapped := AsError(context.Background(), LayerDomain, inner, "failed to load role")

	if !IsErrorType(wrapped, ErrorTypeDatabaseError) {
		t.Error("wrapping should preserve the inner error type")
	}
	if IsErrorType(wrapped, ErrorTypeInternal) {
		t.Error("wrapped error should not report internal type")
	}
}

func TestAsErrorNil(t *testing.T) {
	if got := AsError(context.Background(), LayerDomain, nil, "ignored"); got != nil {
		t.Errorf("AsError(nil) = %v, want nil", got)
	}
}

func TestIsErrorTypeOnPlainError(t *testing.T) {
	if IsErrorType(errors.New("plain"), ErrorTypeInternal) {
		t.Error("plain errors must not match any platform type")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewError(context.Background(), LayerInfrastructure, ErrorTypeExternal, "upstream failed", cause, "")

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}
}
