package fault

// Kind is the failure taxonomy. Every error surfaced to a client is
// assigned exactly one Kind.
type Kind int

const (
	// KindUnknown covers anything the classifier cannot place, including
	// server-side (5xx) failures.
	KindUnknown Kind = iota

	// KindAuth indicates missing or rejected credentials (HTTP 401).
	KindAuth

	// KindNotFound indicates the referenced resource does not exist (HTTP 404).
	KindNotFound

	// KindForbidden indicates the caller lacks access, for example a
	// competition whose rules were never accepted (HTTP 403).
	KindForbidden

	// KindRateLimited indicates the Kaggle API throttled the request (HTTP 429).
	KindRateLimited

	// KindNetwork indicates a transport-level failure: timeout, DNS,
	// connection reset.
	KindNetwork

	// KindValidation indicates the caller's input was rejected before any
	// remote call was made.
	KindValidation
)

var kindNames = map[Kind]string{
	KindUnknown:     "unknown",
	KindAuth:        "auth",
	KindNotFound:    "not_found",
	KindForbidden:   "forbidden",
	KindRateLimited: "rate_limited",
	KindNetwork:     "network",
	KindValidation:  "validation",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Retryable reports whether an operation failing with this kind is worth
// retrying. Only throttling and transport failures qualify; auth, access
// and validation failures are deterministic.
func (k Kind) Retryable() bool {
	return k == KindRateLimited || k == KindNetwork
}
