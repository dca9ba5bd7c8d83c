package cache

import (
	"testing"
	"time"
)

func TestPolicy_TTL(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		resource string
		want     time.Duration
	}{
		{ResourceCompetitions, 1 * time.Hour},
		{ResourceDatasets, 6 * time.Hour},
		{ResourceModels, 6 * time.Hour},
		{ResourceDownloads, 0},
		{"bogus", 0},
	}
	for _, tt := range tests {
		if got := p.TTL(tt.resource); got != tt.want {
			t.Errorf("TTL(%q) = %v, want %v", tt.resource, got, tt.want)
		}
	}
}

func TestPolicy_MaxTTLClamp(t *testing.T) {
	p := Policy{
		DatasetsTTL: 48 * time.Hour,
		MaxTTL:      2 * time.Hour,
	}
	if got := p.TTL(ResourceDatasets); got != 2*time.Hour {
		t.Errorf("TTL = %v, want clamp to 2h", got)
	}
}

func TestNoCachePolicy(t *testing.T) {
	p := NoCachePolicy()
	for _, resource := range []string{ResourceCompetitions, ResourceDatasets, ResourceModels, ResourceDownloads} {
		if got := p.TTL(resource); got != 0 {
			t.Errorf("TTL(%q) = %v, want 0", resource, got)
		}
	}
}
