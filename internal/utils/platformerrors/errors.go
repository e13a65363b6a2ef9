// Package platformerrors provides the layered error type used across the
// service. Every error carries the layer it originated in, a machine-readable
// type used by handlers to pick an HTTP status, and an incident code that is
// logged server-side but never echoed to callers.
package platformerrors

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"colloquy/dialogue-api/internal/infrastructure/logger"
)

// Layer identifies where in the stack an error was produced.
type Layer string

const (
	LayerHandler        Layer = "handler"
	LayerDomain         Layer = "domain"
	LayerRepository     Layer = "repository"
	LayerInfrastructure Layer = "infrastructure"
)

// ErrorType classifies an error for HTTP mapping and retry decisions.
type ErrorType string

const (
	ErrorTypeValidation        ErrorType = "validation"
	ErrorTypeNotFound          ErrorType = "not_found"
	ErrorTypeConflict          ErrorType = "conflict"
	ErrorTypeInternal          ErrorType = "internal"
	ErrorTypeDatabaseError     ErrorType = "database_error"
	ErrorTypeExternal          ErrorType = "external"
	ErrorTypeCompletion        ErrorType = "completion_failed"
	ErrorTypeMalformedDecision ErrorType = "malformed_decision"
)

// PlatformError is the concrete error type carried across layers.
type PlatformError struct {
	Layer        Layer
	Type         ErrorType
	Message      string
	Cause        error
	IncidentCode string
}

func (e *PlatformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PlatformError) Unwrap() error {
	return e.Cause
}

// PublicMessage returns the caller-safe message without the wrapped cause.
func (e *PlatformError) PublicMessage() string {
	return e.Message
}

// NewError constructs a PlatformError and logs it with its incident code.
// An empty incidentCode gets a generated one so log lines stay correlatable.
func NewError(ctx context.Context, layer Layer, errType ErrorType, message string, cause error, incidentCode string) error {
	if incidentCode == "" {
		incidentCode = uuid.NewString()
	}

	err := &PlatformError{
		Layer:        layer,
		Type:         errType,
		Message:      message,
		Cause:        cause,
		IncidentCode: incidentCode,
	}

	log := logger.GetLogger()
	log.Error().
		Str("layer", string(layer)).
		Str("error_type", string(errType)).
		Str("incident_code", incidentCode).
		Err(cause).
		Msg(message)

	return err
}

// AsError wraps err with additional context. If err already is a
// PlatformError its type is preserved so HTTP mapping stays stable across
// layers; otherwise the wrap defaults to ErrorTypeInternal.
func AsError(ctx context.Context, layer Layer, err error, message string) error {
	if err == nil {
		return nil
	}

	errType := ErrorTypeInternal
	var pe *PlatformError
	if errors.As(err, &pe) {
		errType = pe.Type
	}

	return NewError(ctx, layer, errType, message, err, "")
}

// IsErrorType reports whether err (or anything it wraps) is a PlatformError
// of the given type.
func IsErrorType(err error, errType ErrorType) bool {
	var pe *PlatformError
	if errors.As(err, &pe) {
		return pe.Type == errType
	}
	return false
}
