package kaggle

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DownloadResult reports where a download landed and how large it was.
type DownloadResult struct {
	Path  string
	Bytes int64
}

// DownloadCompetitionFile downloads a single competition file to destPath.
// destPath must already be sanitized against the configured download root.
func (c *Client) DownloadCompetitionFile(ctx context.Context, competition, fileName, destPath string) (*DownloadResult, error) {
	if competition == "" || fileName == "" {
		return nil, ErrEmptyIdentifier
	}
	return c.downloadTo(ctx, "competitions/data/download/"+competition+"/"+fileName, destPath)
}

// DownloadCompetitionFiles downloads the full competition bundle (zip) to destPath.
func (c *Client) DownloadCompetitionFiles(ctx context.Context, competition, destPath string) (*DownloadResult, error) {
	if competition == "" {
		return nil, ErrEmptyIdentifier
	}
	return c.downloadTo(ctx, "competitions/data/download-all/"+competition, destPath)
}

// DownloadDatasetFile downloads a single dataset file to destPath.
func (c *Client) DownloadDatasetFile(ctx context.Context, owner, slug, fileName, destPath string) (*DownloadResult, error) {
	if owner == "" || slug == "" || fileName == "" {
		return nil, ErrEmptyIdentifier
	}
	return c.downloadTo(ctx, "datasets/download/"+owner+"/"+slug+"/"+fileName, destPath)
}

// DownloadDataset downloads the full dataset bundle (zip) to destPath.
func (c *Client) DownloadDataset(ctx context.Context, owner, slug, destPath string) (*DownloadResult, error) {
	if owner == "" || slug == "" {
		return nil, ErrEmptyIdentifier
	}
	return c.downloadTo(ctx, "datasets/download/"+owner+"/"+slug, destPath)
}

// downloadTo streams the response body into destPath. The write goes through
// a temp file in the destination directory and is renamed into place only
// after a complete copy, so a failed or canceled download never leaves a
// partial file at destPath. The file handle is released on every exit path.
func (c *Client) downloadTo(ctx context.Context, op, destPath string) (result *DownloadResult, err error) {
	resp, err := c.do(ctx, op, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	destDir := filepath.Dir(destPath)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("kaggle: %s: create destination: %w", op, err)
	}

	tmp, err := os.CreateTemp(destDir, ".kaggle-download-*")
	if err != nil {
		return nil, fmt.Errorf("kaggle: %s: create temp file: %w", op, err)
	}
	defer func() {
		tmp.Close()
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("kaggle: %s: copy body: %w", op, err)
	}
	if err = tmp.Close(); err != nil {
		return nil, fmt.Errorf("kaggle: %s: close temp file: %w", op, err)
	}
	if err = os.Rename(tmp.Name(), destPath); err != nil {
		return nil, fmt.Errorf("kaggle: %s: finalize download: %w", op, err)
	}

	return &DownloadResult{Path: destPath, Bytes: n}, nil
}
