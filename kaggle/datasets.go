package kaggle

import (
	"context"
	"net/url"
	"strconv"
)

// DatasetListOptions filters the dataset search.
type DatasetListOptions struct {
	Search   string
	SortBy   string // hottest|votes|updated|active|published
	Size     string // all|small|medium|large
	FileType string // all|csv|sqlite|json|bigQuery
	License  string // all|cc|gpl|odb|other
	TagIDs   string // comma-separated tag IDs
	User     string
	Page     int
}

// ListDatasets returns datasets matching opts.
func (c *Client) ListDatasets(ctx context.Context, opts DatasetListOptions) ([]Dataset, error) {
	query := url.Values{}
	if opts.Search != "" {
		query.Set("search", opts.Search)
	}
	if opts.SortBy != "" {
		query.Set("sortBy", opts.SortBy)
	}
	if opts.Size != "" && opts.Size != "all" {
		query.Set("size", opts.Size)
	}
	if opts.FileType != "" && opts.FileType != "all" {
		query.Set("filetype", opts.FileType)
	}
	if opts.License != "" && opts.License != "all" {
		query.Set("license", opts.License)
	}
	if opts.TagIDs != "" {
		query.Set("tagids", opts.TagIDs)
	}
	if opts.User != "" {
		query.Set("user", opts.User)
	}
	if opts.Page > 1 {
		query.Set("page", strconv.Itoa(opts.Page))
	}

	var datasets []Dataset
	if err := c.get(ctx, "datasets/list", query, &datasets); err != nil {
		return nil, err
	}
	return datasets, nil
}

// ViewDataset returns dataset metadata for owner/slug.
func (c *Client) ViewDataset(ctx context.Context, owner, slug string) (*Dataset, error) {
	if owner == "" || slug == "" {
		return nil, ErrEmptyIdentifier
	}

	var dataset Dataset
	if err := c.get(ctx, "datasets/view/"+owner+"/"+slug, nil, &dataset); err != nil {
		return nil, err
	}
	return &dataset, nil
}

// ListDatasetFiles returns the files contained in a dataset.
func (c *Client) ListDatasetFiles(ctx context.Context, owner, slug string) ([]DatasetFile, error) {
	if owner == "" || slug == "" {
		return nil, ErrEmptyIdentifier
	}

	var payload struct {
		DatasetFiles []DatasetFile `json:"datasetFiles"`
	}
	if err := c.get(ctx, "datasets/list/"+owner+"/"+slug, nil, &payload); err != nil {
		return nil, err
	}
	return payload.DatasetFiles, nil
}
