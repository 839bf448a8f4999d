package errors

import (
	"context"
	stderrors "errors"

	"github.com/fulmenhq/gofulmen/errors"
	"github.com/google/uuid"

	"github.com/tadeyemo32/career26-vanguard/internal/server/middleware"
)

// Envelope is the gofulmen error envelope used throughout the API.
type Envelope = errors.ErrorEnvelope

func NewInvalidInputError(message string) *Envelope {
	return errors.NewErrorEnvelope(CodeInvalidInput, message)
}

func NewValidationError(message string) *Envelope {
	return errors.NewErrorEnvelope(CodeValidationFailed, message)
}

func NewNotFoundError(message string) *Envelope {
	return errors.NewErrorEnvelope(CodeNotFound, message)
}

func NewMethodNotAllowedError(message string) *Envelope {
	return errors.NewErrorEnvelope(CodeMethodNotAllowed, message)
}

func NewServiceUnavailableError(message string) *Envelope {
	return errors.NewErrorEnvelope(CodeServiceUnavailable, message)
}

// The Wrap helpers keep err's text under "wrapped_error" and tag the envelope
// with the request ID carried by ctx.

func WrapInvalidInput(ctx context.Context, err error, message string) *Envelope {
	return wrap(ctx, CodeInvalidInput, err, message)
}

func WrapInternal(ctx context.Context, err error, message string) *Envelope {
	return wrap(ctx, CodeInternal, err, message)
}

func WrapDatabaseError(ctx context.Context, err error, message string) *Envelope {
	return wrap(ctx, CodeDatabase, err, message)
}

func WrapTimeout(ctx context.Context, err error, message string) *Envelope {
	return wrap(ctx, CodeTimeout, err, message)
}

func WrapConfigInvalid(ctx context.Context, err error, message string) *Envelope {
	return wrap(ctx, CodeConfigInvalid, err, message)
}

func wrap(ctx context.Context, code string, err error, message string) *Envelope {
	id := requestID(ctx)
	if id == "" {
		id = uuid.NewString()
	}
	// No distributed tracing: the request ID doubles as the trace ID.
	env := errors.NewErrorEnvelope(code, message).WithCorrelationID(id).WithTraceID(id)
	if err == nil {
		return env
	}
	return WithDetails(env, map[string]interface{}{"wrapped_error": err.Error()})
}

func requestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	return middleware.GetRequestID(ctx)
}

// WithDetails merges details into the envelope context. On failure the
// envelope is returned unchanged.
func WithDetails(env *Envelope, details map[string]interface{}) *Envelope {
	if env == nil || len(details) == 0 {
		return env
	}
	if updated, err := env.WithContext(details); err == nil {
		return updated
	}
	return env
}

// EnsureEnvelope converts err into an envelope. Anything that is not already
// one becomes an INTERNAL_ERROR.
func EnsureEnvelope(err error) *Envelope {
	if err == nil {
		env, _ := errors.NewErrorEnvelope(CodeInternal, "unexpected nil error").WithSeverity(errors.SeverityCritical)
		return env
	}
	var env *Envelope
	if stderrors.As(err, &env) && env != nil {
		return env
	}
	env = WithDetails(errors.NewErrorEnvelope(CodeInternal, "unexpected error"),
		map[string]interface{}{"wrapped_error": err.Error()})
	if high, sevErr := env.WithSeverity(errors.SeverityHigh); sevErr == nil {
		env = high
	}
	return env
}

// EnsureCorrelationID fills a missing correlation ID from ctx, or with a
// generated "fallback-" ID.
func EnsureCorrelationID(env *Envelope, ctx context.Context) *Envelope {
	if env == nil || env.CorrelationID != "" {
		return env
	}
	id := requestID(ctx)
	if id == "" {
		id = "fallback-" + errors.GenerateCorrelationID()
	}
	return env.WithCorrelationID(id)
}
