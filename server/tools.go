package server

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jonwraymond/kagglemcp/cache"
	"github.com/jonwraymond/kagglemcp/invoke"
	"github.com/jonwraymond/kagglemcp/kaggle"
	"github.com/jonwraymond/kagglemcp/validate"
)

func (h *Handlers) registerTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("list_competitions",
		mcp.WithDescription("List active Kaggle competitions with optional filtering"),
		mcp.WithString("search", mcp.Description("Search term to filter competitions"), mcp.DefaultString("")),
		mcp.WithString("category", mcp.Description("Competition category (all, featured, research, recruitment, gettingStarted, masters, playground)"), mcp.DefaultString("all")),
		mcp.WithString("sort_by", mcp.Description("Sort order (deadline, prize, numberOfTeams, recentlyCreated)"), mcp.DefaultString("deadline")),
		mcp.WithNumber("page", mcp.Description("Page number"), mcp.DefaultNumber(1)),
		mcp.WithNumber("page_size", mcp.Description("Competitions per page"), mcp.DefaultNumber(20)),
	), h.listCompetitions)

	s.AddTool(mcp.NewTool("get_competition_details",
		mcp.WithDescription("Get detailed information about a specific Kaggle competition"),
		mcp.WithString("competition_id", mcp.Required(), mcp.Description("The competition identifier")),
	), h.getCompetitionDetails)

	s.AddTool(mcp.NewTool("download_competition_files",
		mcp.WithDescription("Download competition files to the configured download directory"),
		mcp.WithString("competition_id", mcp.Required(), mcp.Description("The competition identifier")),
		mcp.WithString("file_name", mcp.Description("Specific file to download (downloads all when omitted)"), mcp.DefaultString("")),
	), h.downloadCompetitionFiles)

	s.AddTool(mcp.NewTool("search_datasets",
		mcp.WithDescription("Search for Kaggle datasets with filtering options"),
		mcp.WithString("search", mcp.Description("Search term"), mcp.DefaultString("")),
		mcp.WithString("sort_by", mcp.Description("Sort order (hottest, votes, updated, active, published)"), mcp.DefaultString("hottest")),
		mcp.WithString("size", mcp.Description("Dataset size filter (all, small, medium, large)"), mcp.DefaultString("all")),
		mcp.WithString("file_type", mcp.Description("File type filter (all, csv, sqlite, json, bigQuery)"), mcp.DefaultString("all")),
		mcp.WithString("license_name", mcp.Description("License filter (all, cc, gpl, odb, other)"), mcp.DefaultString("all")),
		mcp.WithString("tag_ids", mcp.Description("Comma-separated tag IDs"), mcp.DefaultString("")),
		mcp.WithString("user", mcp.Description("Filter by username"), mcp.DefaultString("")),
		mcp.WithNumber("page", mcp.Description("Page number"), mcp.DefaultNumber(1)),
		mcp.WithNumber("page_size", mcp.Description("Datasets per page"), mcp.DefaultNumber(20)),
	), h.searchDatasets)

	s.AddTool(mcp.NewTool("get_dataset_details",
		mcp.WithDescription("Get detailed information about a specific Kaggle dataset"),
		mcp.WithString("dataset_ref", mcp.Required(), mcp.Description("Dataset reference in 'owner/dataset-name' format")),
	), h.getDatasetDetails)

	s.AddTool(mcp.NewTool("download_dataset",
		mcp.WithDescription("Download a Kaggle dataset to the configured download directory"),
		mcp.WithString("dataset_ref", mcp.Required(), mcp.Description("Dataset reference in 'owner/dataset-name' format")),
		mcp.WithString("file_name", mcp.Description("Specific file to download (downloads the full bundle when omitted)"), mcp.DefaultString("")),
	), h.downloadDataset)

	s.AddTool(mcp.NewTool("list_models",
		mcp.WithDescription("List Kaggle models with filtering options"),
		mcp.WithString("search", mcp.Description("Search term to filter models"), mcp.DefaultString("")),
		mcp.WithString("sort_by", mcp.Description("Sort order (hottest, downloadCount, voteCount, createTime)"), mcp.DefaultString("hottest")),
		mcp.WithString("owner", mcp.Description("Filter by model owner"), mcp.DefaultString("")),
		mcp.WithNumber("page_size", mcp.Description("Models per page"), mcp.DefaultNumber(20)),
		mcp.WithString("page_token", mcp.Description("Continuation token from a previous page"), mcp.DefaultString("")),
	), h.listModels)
}

func (h *Handlers) pagination(req mcp.CallToolRequest) (page, pageSize int, err error) {
	page = req.GetInt("page", 1)
	pageSize = req.GetInt("page_size", h.defaultPage)
	if err := validate.Pagination(page, pageSize, h.maxPage); err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}

func (h *Handlers) listCompetitions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page, pageSize, err := h.pagination(req)
	if err != nil {
		return toolError(err), nil
	}

	opts := kaggle.CompetitionListOptions{
		Search:   req.GetString("search", ""),
		Category: req.GetString("category", "all"),
		SortBy:   req.GetString("sort_by", "deadline"),
		Page:     page,
	}

	data, err := h.invoker.Invoke(ctx, invoke.Operation{
		Name:     "list_competitions",
		Resource: cache.ResourceCompetitions,
		Args: map[string]any{
			"search":    opts.Search,
			"category":  opts.Category,
			"sort_by":   opts.SortBy,
			"page":      page,
			"page_size": pageSize,
		},
		Call: func(ctx context.Context) (any, error) {
			comps, err := h.client.ListCompetitions(ctx, opts)
			if err != nil {
				return nil, err
			}
			if len(comps) > pageSize {
				comps = comps[:pageSize]
			}
			return map[string]any{
				"competitions": comps,
				"total_count":  len(comps),
				"page":         page,
				"page_size":    pageSize,
			}, nil
		},
	})
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (h *Handlers) getCompetitionDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := validate.Slug("competition_id", req.GetString("competition_id", ""))
	if err != nil {
		return toolError(err), nil
	}

	data, err := h.invoker.Invoke(ctx, invoke.Operation{
		Name:     "get_competition_details",
		Resource: cache.ResourceCompetitions,
		Args:     map[string]any{"competition_id": id},
		Call: func(ctx context.Context) (any, error) {
			comps, err := h.client.ListCompetitions(ctx, kaggle.CompetitionListOptions{Search: id})
			if err != nil {
				return nil, err
			}
			for _, comp := range comps {
				if comp.Ref == id {
					return comp, nil
				}
			}
			return nil, &kaggle.StatusError{Op: "competitions/list", Code: 404, Status: "competition not found"}
		},
	})
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (h *Handlers) downloadCompetitionFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := validate.Slug("competition_id", req.GetString("competition_id", ""))
	if err != nil {
		return toolError(err), nil
	}

	fileName := req.GetString("file_name", "")
	relative := filepath.Join(id, id+".zip")
	if fileName != "" {
		safe, err := validate.Filename(fileName)
		if err != nil {
			return toolError(err), nil
		}
		relative = filepath.Join(id, safe)
	}

	dest, err := validate.DownloadPath(h.downloadRoot, relative)
	if err != nil {
		return toolError(err), nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return toolError(err), nil
	}

	data, err := h.invoker.Invoke(ctx, invoke.Operation{
		Name:     "download_competition_files",
		Resource: cache.ResourceDownloads,
		Args:     map[string]any{"competition_id": id, "file_name": fileName},
		Call: func(ctx context.Context) (any, error) {
			var result *kaggle.DownloadResult
			var err error
			if fileName != "" {
				result, err = h.client.DownloadCompetitionFile(ctx, id, fileName, dest)
			} else {
				result, err = h.client.DownloadCompetitionFiles(ctx, id, dest)
			}
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"status":         "success",
				"competition_id": id,
				"download_path":  result.Path,
				"size":           formatFileSize(result.Bytes),
				"bytes":          result.Bytes,
			}, nil
		},
	})
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (h *Handlers) searchDatasets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page, pageSize, err := h.pagination(req)
	if err != nil {
		return toolError(err), nil
	}

	opts := kaggle.DatasetListOptions{
		Search:   req.GetString("search", ""),
		SortBy:   req.GetString("sort_by", "hottest"),
		Size:     req.GetString("size", "all"),
		FileType: req.GetString("file_type", "all"),
		License:  req.GetString("license_name", "all"),
		TagIDs:   req.GetString("tag_ids", ""),
		User:     req.GetString("user", ""),
		Page:     page,
	}

	data, err := h.invoker.Invoke(ctx, invoke.Operation{
		Name:     "search_datasets",
		Resource: cache.ResourceDatasets,
		Args: map[string]any{
			"search":    opts.Search,
			"sort_by":   opts.SortBy,
			"size":      opts.Size,
			"file_type": opts.FileType,
			"license":   opts.License,
			"tag_ids":   opts.TagIDs,
			"user":      opts.User,
			"page":      page,
			"page_size": pageSize,
		},
		Call: func(ctx context.Context) (any, error) {
			datasets, err := h.client.ListDatasets(ctx, opts)
			if err != nil {
				return nil, err
			}
			if len(datasets) > pageSize {
				datasets = datasets[:pageSize]
			}
			return map[string]any{
				"datasets":    datasets,
				"total_count": len(datasets),
				"page":        page,
				"page_size":   pageSize,
			}, nil
		},
	})
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (h *Handlers) getDatasetDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner, name, err := validate.Ref("dataset_ref", req.GetString("dataset_ref", ""))
	if err != nil {
		return toolError(err), nil
	}

	data, err := h.invoker.Invoke(ctx, invoke.Operation{
		Name:     "get_dataset_details",
		Resource: cache.ResourceDatasets,
		Args:     map[string]any{"owner": owner, "name": name},
		Call: func(ctx context.Context) (any, error) {
			dataset, err := h.client.ViewDataset(ctx, owner, name)
			if err != nil {
				return nil, err
			}
			files, err := h.client.ListDatasetFiles(ctx, owner, name)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"dataset": dataset,
				"files":   files,
				"url":     "https://www.kaggle.com/datasets/" + owner + "/" + name,
			}, nil
		},
	})
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (h *Handlers) downloadDataset(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner, name, err := validate.Ref("dataset_ref", req.GetString("dataset_ref", ""))
	if err != nil {
		return toolError(err), nil
	}

	fileName := req.GetString("file_name", "")
	relative := filepath.Join(name, name+".zip")
	if fileName != "" {
		safe, err := validate.Filename(fileName)
		if err != nil {
			return toolError(err), nil
		}
		relative = filepath.Join(name, safe)
	}

	dest, err := validate.DownloadPath(h.downloadRoot, relative)
	if err != nil {
		return toolError(err), nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return toolError(err), nil
	}

	data, err := h.invoker.Invoke(ctx, invoke.Operation{
		Name:     "download_dataset",
		Resource: cache.ResourceDownloads,
		Args:     map[string]any{"owner": owner, "name": name, "file_name": fileName},
		Call: func(ctx context.Context) (any, error) {
			var result *kaggle.DownloadResult
			var err error
			if fileName != "" {
				result, err = h.client.DownloadDatasetFile(ctx, owner, name, fileName, dest)
			} else {
				result, err = h.client.DownloadDataset(ctx, owner, name, dest)
			}
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"status":        "success",
				"dataset_ref":   owner + "/" + name,
				"download_path": result.Path,
				"size":          formatFileSize(result.Bytes),
				"bytes":         result.Bytes,
			}, nil
		},
	})
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (h *Handlers) listModels(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageSize := req.GetInt("page_size", h.defaultPage)
	if err := validate.Pagination(1, pageSize, h.maxPage); err != nil {
		return toolError(err), nil
	}

	opts := kaggle.ModelListOptions{
		Search:    req.GetString("search", ""),
		SortBy:    req.GetString("sort_by", "hottest"),
		Owner:     req.GetString("owner", ""),
		PageSize:  pageSize,
		PageToken: req.GetString("page_token", ""),
	}

	data, err := h.invoker.Invoke(ctx, invoke.Operation{
		Name:     "list_models",
		Resource: cache.ResourceModels,
		Args: map[string]any{
			"search":     opts.Search,
			"sort_by":    opts.SortBy,
			"owner":      opts.Owner,
			"page_size":  opts.PageSize,
			"page_token": opts.PageToken,
		},
		Call: func(ctx context.Context) (any, error) {
			models, err := h.client.ListModels(ctx, opts)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"models":      models,
				"total_count": len(models),
				"page_size":   pageSize,
			}, nil
		},
	})
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
