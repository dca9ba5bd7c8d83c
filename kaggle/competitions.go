package kaggle

import (
	"context"
	"net/url"
	"strconv"
)

// CompetitionListOptions filters the competitions list.
type CompetitionListOptions struct {
	Search   string
	Category string // all|featured|research|recruitment|gettingStarted|masters|playground
	SortBy   string // grouped|prize|earliestDeadline|latestDeadline|numberOfTeams|recentlyCreated
	Page     int
}

// ListCompetitions returns competitions matching opts.
func (c *Client) ListCompetitions(ctx context.Context, opts CompetitionListOptions) ([]Competition, error) {
	query := url.Values{}
	if opts.Search != "" {
		query.Set("search", opts.Search)
	}
	if opts.Category != "" && opts.Category != "all" {
		query.Set("category", opts.Category)
	}
	if opts.SortBy != "" {
		query.Set("sortBy", opts.SortBy)
	}
	if opts.Page > 1 {
		query.Set("page", strconv.Itoa(opts.Page))
	}

	var competitions []Competition
	if err := c.get(ctx, "competitions/list", query, &competitions); err != nil {
		return nil, err
	}
	return competitions, nil
}
