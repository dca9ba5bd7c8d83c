package kaggle

import (
	"context"
	"net/url"
	"strconv"
)

// ModelListOptions filters the model hub list.
type ModelListOptions struct {
	Search    string
	SortBy    string // hotness|downloadCount|voteCount|notebookCount|createTime
	Owner     string
	PageSize  int
	PageToken string
}

// ListModels returns model hub entries matching opts.
func (c *Client) ListModels(ctx context.Context, opts ModelListOptions) ([]Model, error) {
	query := url.Values{}
	if opts.Search != "" {
		query.Set("search", opts.Search)
	}
	if opts.SortBy != "" {
		query.Set("sortBy", opts.SortBy)
	}
	if opts.Owner != "" {
		query.Set("owner", opts.Owner)
	}
	if opts.PageSize > 0 {
		query.Set("pageSize", strconv.Itoa(opts.PageSize))
	}
	if opts.PageToken != "" {
		query.Set("pageToken", opts.PageToken)
	}

	var payload struct {
		Models        []Model `json:"models"`
		NextPageToken string  `json:"nextPageToken"`
	}
	if err := c.get(ctx, "models/list", query, &payload); err != nil {
		return nil, err
	}
	return payload.Models, nil
}
