package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jonwraymond/kagglemcp/cache"
	"github.com/jonwraymond/kagglemcp/invoke"
	"github.com/jonwraymond/kagglemcp/kaggle"
)

func (h *Handlers) registerResources(s *server.MCPServer) {
	resources := []struct {
		uri, name, description string
		render                 func(ctx context.Context) (string, error)
	}{
		{
			uri:         "kaggle://competitions/active",
			name:        "Active Competitions",
			description: "Currently active Kaggle competitions",
			render: func(ctx context.Context) (string, error) {
				comps, err := h.competitions(ctx)
				if err != nil {
					return "", err
				}
				return renderActiveCompetitions(comps, time.Now()), nil
			},
		},
		{
			uri:         "kaggle://datasets/popular",
			name:        "Popular Datasets",
			description: "Popular Kaggle datasets",
			render: func(ctx context.Context) (string, error) {
				datasets, err := h.datasets(ctx)
				if err != nil {
					return "", err
				}
				return renderPopularDatasets(datasets), nil
			},
		},
		{
			uri:         "kaggle://trends/hot-topics",
			name:        "Hot Topics",
			description: "Trending topics and techniques on Kaggle",
			render: func(ctx context.Context) (string, error) {
				comps, err := h.competitions(ctx)
				if err != nil {
					return "", err
				}
				datasets, err := h.datasets(ctx)
				if err != nil {
					return "", err
				}
				return renderHotTopics(comps, datasets), nil
			},
		},
		{
			uri:         "kaggle://calendar/deadlines",
			name:        "Upcoming Deadlines",
			description: "Competition deadlines in the next 60 days",
			render: func(ctx context.Context) (string, error) {
				comps, err := h.competitions(ctx)
				if err != nil {
					return "", err
				}
				return renderDeadlines(comps, time.Now()), nil
			},
		},
		{
			uri:         "kaggle://beginner/getting-started",
			name:        "Getting Started Guide",
			description: "Beginner-friendly competitions, datasets and learning path",
			render: func(ctx context.Context) (string, error) {
				comps, err := h.competitions(ctx)
				if err != nil {
					return "", err
				}
				datasets, err := h.datasets(ctx)
				if err != nil {
					return "", err
				}
				return renderBeginnerGuide(comps, datasets), nil
			},
		},
		{
			uri:         "kaggle://meta/platform-stats",
			name:        "Platform Statistics",
			description: "Kaggle platform statistics and insights",
			render: func(ctx context.Context) (string, error) {
				comps, err := h.competitions(ctx)
				if err != nil {
					return "", err
				}
				datasets, err := h.datasets(ctx)
				if err != nil {
					return "", err
				}
				models, err := h.models(ctx)
				if err != nil {
					return "", err
				}
				return renderPlatformStats(comps, datasets, models), nil
			},
		},
	}

	for _, r := range resources {
		r := r
		s.AddResource(mcp.NewResource(r.uri, r.name,
			mcp.WithResourceDescription(r.description),
			mcp.WithMIMEType("text/markdown"),
		), func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			text, err := r.render(ctx)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", r.uri, err)
			}
			return []mcp.ResourceContents{
				mcp.TextResourceContents{
					URI:      r.uri,
					MIMEType: "text/markdown",
					Text:     text,
				},
			}, nil
		})
	}
}

// competitions fetches the default competition listing through the
// invoker, so resource reads share the cache with the tools.
func (h *Handlers) competitions(ctx context.Context) ([]kaggle.Competition, error) {
	data, err := h.invoker.Invoke(ctx, invoke.Operation{
		Name:     "resource_competitions",
		Resource: cache.ResourceCompetitions,
		Args:     map[string]any{},
		Call: func(ctx context.Context) (any, error) {
			return h.client.ListCompetitions(ctx, kaggle.CompetitionListOptions{})
		},
	})
	if err != nil {
		return nil, err
	}

	var comps []kaggle.Competition
	if err := json.Unmarshal(data, &comps); err != nil {
		return nil, err
	}
	return comps, nil
}

func (h *Handlers) datasets(ctx context.Context) ([]kaggle.Dataset, error) {
	data, err := h.invoker.Invoke(ctx, invoke.Operation{
		Name:     "resource_datasets",
		Resource: cache.ResourceDatasets,
		Args:     map[string]any{},
		Call: func(ctx context.Context) (any, error) {
			return h.client.ListDatasets(ctx, kaggle.DatasetListOptions{SortBy: "hottest"})
		},
	})
	if err != nil {
		return nil, err
	}

	var datasets []kaggle.Dataset
	if err := json.Unmarshal(data, &datasets); err != nil {
		return nil, err
	}
	return datasets, nil
}

func (h *Handlers) models(ctx context.Context) ([]kaggle.Model, error) {
	data, err := h.invoker.Invoke(ctx, invoke.Operation{
		Name:     "resource_models",
		Resource: cache.ResourceModels,
		Args:     map[string]any{},
		Call: func(ctx context.Context) (any, error) {
			return h.client.ListModels(ctx, kaggle.ModelListOptions{})
		},
	})
	if err != nil {
		return nil, err
	}

	var models []kaggle.Model
	if err := json.Unmarshal(data, &models); err != nil {
		return nil, err
	}
	return models, nil
}
