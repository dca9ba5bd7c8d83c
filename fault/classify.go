package fault

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"syscall"

	"github.com/google/uuid"

	"github.com/jonwraymond/kagglemcp/kaggle"
	"github.com/jonwraymond/kagglemcp/observe"
	"github.com/jonwraymond/kagglemcp/resilience"
)

// Fixed client-facing messages. The underlying cause goes to the log,
// keyed by correlation ID, and nowhere else.
const (
	msgAuth        = "authentication failed: check your Kaggle API credentials"
	msgNotFound    = "resource not found: verify the reference and try again"
	msgForbidden   = "access denied: you may need to accept the competition rules on the Kaggle website"
	msgRateLimited = "rate limit exceeded: wait a moment before retrying"
	msgNetwork     = "network error while contacting Kaggle: check connectivity and retry"
	msgUnknown     = "an unexpected error occurred while contacting Kaggle"
)

// Classifier maps raw errors to sanitized envelopes.
type Classifier struct {
	logger observe.Logger
}

// NewClassifier builds a Classifier. A nil logger is replaced by a noop.
func NewClassifier(logger observe.Logger) *Classifier {
	if logger == nil {
		logger = observe.NoopLogger()
	}
	return &Classifier{logger: logger}
}

// Classify turns a raw error into an *Envelope for the named operation.
// Errors that are already envelopes pass through unchanged, so wrapping
// is idempotent across layers. Every freshly classified error is logged
// exactly once, with its kind, correlation ID and cause.
func (c *Classifier) Classify(ctx context.Context, op string, err error) *Envelope {
	if err == nil {
		return nil
	}
	if env, ok := AsEnvelope(err); ok {
		return env
	}

	kind, message := classify(err)
	correlationID := uuid.NewString()

	c.logger.Error(ctx, "operation failed",
		observe.Field{Key: "op", Value: op},
		observe.Field{Key: "kind", Value: kind.String()},
		observe.Field{Key: "correlation_id", Value: correlationID},
		observe.Field{Key: "cause", Value: err.Error()},
	)

	return New(kind, message, correlationID, err)
}

// Retryable reports whether err is worth retrying. Unlike Classify it
// neither logs nor allocates an envelope, so retry loops can probe each
// attempt's error cheaply.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if env, ok := AsEnvelope(err); ok {
		return env.Retryable
	}
	kind, _ := classify(err)
	return kind.Retryable()
}

func classify(err error) (Kind, string) {
	if errors.Is(err, kaggle.ErrMissingCredentials) {
		return KindAuth, msgAuth
	}

	var statusErr *kaggle.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode() {
		case http.StatusUnauthorized:
			return KindAuth, msgAuth
		case http.StatusNotFound:
			return KindNotFound, msgNotFound
		case http.StatusForbidden:
			return KindForbidden, msgForbidden
		case http.StatusTooManyRequests:
			return KindRateLimited, msgRateLimited
		}
		return KindUnknown, msgUnknown
	}

	if isNetworkError(err) {
		return KindNetwork, msgNetwork
	}
	return KindUnknown, msgUnknown
}

func isNetworkError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, resilience.ErrTimeout) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	// url.Error wraps every transport failure from net/http; by the time
	// we get here the status-code cases have already been ruled out.
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
