package cache

import "time"

// Resource families used to select TTLs.
const (
	ResourceCompetitions = "competitions"
	ResourceDatasets     = "datasets"
	ResourceModels       = "models"
	ResourceDownloads    = "downloads"
)

// Policy maps resource families to TTLs.
type Policy struct {
	// CompetitionsTTL applies to competition listings and details.
	CompetitionsTTL time.Duration

	// DatasetsTTL applies to dataset search, details and file listings.
	DatasetsTTL time.Duration

	// ModelsTTL applies to model listings.
	ModelsTTL time.Duration

	// MaxTTL is the maximum allowed TTL. Larger values are clamped.
	// If zero, no maximum is enforced.
	MaxTTL time.Duration
}

// DefaultPolicy returns the standard TTLs. Competition state changes
// hourly at worst; dataset and model metadata moves far slower.
func DefaultPolicy() Policy {
	return Policy{
		CompetitionsTTL: 1 * time.Hour,
		DatasetsTTL:     6 * time.Hour,
		ModelsTTL:       6 * time.Hour,
		MaxTTL:          24 * time.Hour,
	}
}

// NoCachePolicy returns a policy that disables caching entirely.
func NoCachePolicy() Policy {
	return Policy{}
}

// TTL returns the TTL for a resource family, clamped to MaxTTL.
// Downloads and unknown families get zero, which Set treats as
// "do not store".
func (p Policy) TTL(resource string) time.Duration {
	var ttl time.Duration
	switch resource {
	case ResourceCompetitions:
		ttl = p.CompetitionsTTL
	case ResourceDatasets:
		ttl = p.DatasetsTTL
	case ResourceModels:
		ttl = p.ModelsTTL
	default:
		return 0
	}

	if p.MaxTTL > 0 && ttl > p.MaxTTL {
		ttl = p.MaxTTL
	}
	return ttl
}
