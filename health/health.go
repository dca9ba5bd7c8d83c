package health

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/jonwraymond/kagglemcp/kaggle"
)

// Status represents the outcome of a check.
type Status int

const (
	// StatusHealthy indicates the component is functioning normally.
	StatusHealthy Status = iota
	// StatusDegraded indicates the component works with reduced capability.
	StatusDegraded
	// StatusUnhealthy indicates the component is not functioning.
	StatusUnhealthy
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Result contains the outcome of a health check.
type Result struct {
	Status    Status
	Message   string
	Duration  time.Duration
	Timestamp time.Time
	Error     error
}

// Healthy creates a healthy result.
func Healthy(message string) Result {
	return Result{Status: StatusHealthy, Message: message, Timestamp: time.Now()}
}

// Degraded creates a degraded result.
func Degraded(message string, err error) Result {
	return Result{Status: StatusDegraded, Message: message, Error: err, Timestamp: time.Now()}
}

// Unhealthy creates an unhealthy result.
func Unhealthy(message string, err error) Result {
	return Result{Status: StatusUnhealthy, Message: message, Error: err, Timestamp: time.Now()}
}

// Checker is the interface for startup checks.
type Checker interface {
	// Name returns the name of this checker.
	Name() string

	// Check performs the health check and returns the result.
	Check(ctx context.Context) Result
}

// CredentialsCheck verifies Kaggle credentials are resolvable.
type CredentialsCheck struct {
	creds kaggle.Credentials
}

// NewCredentialsCheck builds a check over already-loaded credentials.
func NewCredentialsCheck(creds kaggle.Credentials) *CredentialsCheck {
	return &CredentialsCheck{creds: creds}
}

func (c *CredentialsCheck) Name() string { return "credentials" }

func (c *CredentialsCheck) Check(_ context.Context) Result {
	if c.creds.Empty() {
		return Unhealthy("Kaggle credentials missing; set KAGGLE_USERNAME and KAGGLE_KEY or create ~/.kaggle/kaggle.json",
			kaggle.ErrMissingCredentials)
	}
	return Healthy("credentials resolved")
}

// DownloadRootCheck verifies the download directory exists (creating it
// if needed) and is writable.
type DownloadRootCheck struct {
	root string
}

// NewDownloadRootCheck builds a check for the given directory.
func NewDownloadRootCheck(root string) *DownloadRootCheck {
	return &DownloadRootCheck{root: root}
}

func (c *DownloadRootCheck) Name() string { return "download_root" }

func (c *DownloadRootCheck) Check(_ context.Context) Result {
	start := time.Now()

	if err := os.MkdirAll(c.root, 0o755); err != nil {
		r := Degraded("download directory unavailable; downloads will fail", err)
		r.Duration = time.Since(start)
		return r
	}

	probe, err := os.CreateTemp(c.root, ".probe-*")
	if err != nil {
		r := Degraded("download directory not writable; downloads will fail", err)
		r.Duration = time.Since(start)
		return r
	}
	probe.Close()
	os.Remove(probe.Name())

	r := Healthy("download directory writable: " + filepath.Clean(c.root))
	r.Duration = time.Since(start)
	return r
}

// RemoteAPICheck verifies the Kaggle API answers an authenticated call.
type RemoteAPICheck struct {
	client *kaggle.Client
}

// NewRemoteAPICheck builds a check over the given client.
func NewRemoteAPICheck(client *kaggle.Client) *RemoteAPICheck {
	return &RemoteAPICheck{client: client}
}

func (c *RemoteAPICheck) Name() string { return "kaggle_api" }

func (c *RemoteAPICheck) Check(ctx context.Context) Result {
	start := time.Now()

	_, err := c.client.ListCompetitions(ctx, kaggle.CompetitionListOptions{Page: 1})
	elapsed := time.Since(start)

	if err != nil {
		var statusErr *kaggle.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode() == 401 {
			r := Unhealthy("Kaggle API rejected the credentials", err)
			r.Duration = elapsed
			return r
		}
		r := Degraded("Kaggle API unreachable; calls will be retried on demand", err)
		r.Duration = elapsed
		return r
	}

	r := Healthy("Kaggle API reachable")
	r.Duration = elapsed
	return r
}

var (
	_ Checker = (*CredentialsCheck)(nil)
	_ Checker = (*DownloadRootCheck)(nil)
	_ Checker = (*RemoteAPICheck)(nil)
)
