package fault

import "errors"

// Envelope is the sanitized error shape returned to clients.
//
// Contract:
//   - Message never contains credential material, stack traces, or
//     absolute server-side paths.
//   - CorrelationID ties the client-visible envelope to the single
//     server-side log line that carries the underlying cause.
//   - The cause is deliberately not exposed through Unwrap; once an
//     error is enveloped, only the sanitized surface travels outward.
type Envelope struct {
	Kind          Kind   `json:"kind"`
	Message       string `json:"message"`
	Retryable     bool   `json:"retryable"`
	CorrelationID string `json:"correlation_id,omitempty"`

	cause error
}

// New builds an envelope of the given kind. Retryability follows the kind.
func New(kind Kind, message, correlationID string, cause error) *Envelope {
	return &Envelope{
		Kind:          kind,
		Message:       message,
		Retryable:     kind.Retryable(),
		CorrelationID: correlationID,
		cause:         cause,
	}
}

// Validation builds a validation envelope. Validation failures happen
// before any remote call, so they carry no correlation ID.
func Validation(message string) *Envelope {
	return New(KindValidation, message, "", nil)
}

func (e *Envelope) Error() string {
	return e.Kind.String() + ": " + e.Message
}

// FaultKind implements the observe metric-labeling hook.
func (e *Envelope) FaultKind() string {
	return e.Kind.String()
}

// Cause returns the underlying error for server-side logging. It must
// never be rendered into a client response.
func (e *Envelope) Cause() error {
	return e.cause
}

// AsEnvelope extracts an *Envelope from an error chain, if present.
func AsEnvelope(err error) (*Envelope, bool) {
	var env *Envelope
	if errors.As(err, &env) {
		return env, true
	}
	return nil, false
}
