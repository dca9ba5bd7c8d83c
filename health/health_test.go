package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonwraymond/kagglemcp/kaggle"
)

func TestCredentialsCheck(t *testing.T) {
	check := NewCredentialsCheck(kaggle.Credentials{Username: "u", Key: "k"})
	if got := check.Check(context.Background()); got.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", got.Status)
	}

	check = NewCredentialsCheck(kaggle.Credentials{})
	got := check.Check(context.Background())
	if got.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want unhealthy", got.Status)
	}
	if got.Error == nil {
		t.Error("expected an error on the result")
	}
}

func TestDownloadRootCheck(t *testing.T) {
	root := filepath.Join(t.TempDir(), "downloads")
	check := NewDownloadRootCheck(root)

	got := check.Check(context.Background())
	if got.Status != StatusHealthy {
		t.Fatalf("Status = %v (%v), want healthy", got.Status, got.Error)
	}

	// Directory was created and the probe file cleaned up.
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("download root was not created: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("probe file left behind: %v", entries)
	}
}

func TestDownloadRootCheck_Unwritable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	root := filepath.Join(t.TempDir(), "readonly")
	if err := os.Mkdir(root, 0o500); err != nil {
		t.Fatal(err)
	}

	got := NewDownloadRootCheck(root).Check(context.Background())
	if got.Status != StatusDegraded {
		t.Errorf("Status = %v, want degraded", got.Status)
	}
}

func TestRemoteAPICheck(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		want       Status
	}{
		{"reachable", http.StatusOK, StatusHealthy},
		{"bad credentials", http.StatusUnauthorized, StatusUnhealthy},
		{"server error", http.StatusInternalServerError, StatusDegraded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.statusCode == http.StatusOK {
					w.Write([]byte(`[]`))
					return
				}
				http.Error(w, "nope", tt.statusCode)
			}))
			defer srv.Close()

			client := kaggle.NewClient(kaggle.Credentials{Username: "u", Key: "k"}, kaggle.WithBaseURL(srv.URL))
			got := NewRemoteAPICheck(client).Check(context.Background())
			if got.Status != tt.want {
				t.Errorf("Status = %v, want %v", got.Status, tt.want)
			}
		})
	}
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusHealthy, "healthy"},
		{StatusDegraded, "degraded"},
		{StatusUnhealthy, "unhealthy"},
		{Status(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}
