package server

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jonwraymond/kagglemcp/config"
	"github.com/jonwraymond/kagglemcp/fault"
	"github.com/jonwraymond/kagglemcp/invoke"
	"github.com/jonwraymond/kagglemcp/kaggle"
	"github.com/jonwraymond/kagglemcp/observe"
)

// Handlers binds the tool and resource implementations to their
// dependencies.
type Handlers struct {
	client       *kaggle.Client
	invoker      *invoke.Invoker
	logger       observe.Logger
	downloadRoot string
	defaultPage  int
	maxPage      int
}

// NewHandlers builds the handler set. A nil logger degrades to a noop.
func NewHandlers(client *kaggle.Client, invoker *invoke.Invoker, logger observe.Logger, cfg *config.Config) *Handlers {
	if logger == nil {
		logger = observe.NoopLogger()
	}
	return &Handlers{
		client:       client,
		invoker:      invoker,
		logger:       logger,
		downloadRoot: cfg.Download.Root,
		defaultPage:  cfg.Page.DefaultSize,
		maxPage:      cfg.Page.MaxSize,
	}
}

// New assembles the MCP server with every tool and resource registered.
func New(cfg *config.Config, h *Handlers) *server.MCPServer {
	s := server.NewMCPServer(
		cfg.Server.Name,
		cfg.Server.Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
	)

	h.registerTools(s)
	h.registerResources(s)
	return s
}

// Serve runs the server on stdio until the client disconnects.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// errorBody is the JSON shape returned for failed tool calls.
type errorBody struct {
	Status        string `json:"status"`
	Error         string `json:"error"`
	ErrorType     string `json:"error_type"`
	Retryable     bool   `json:"retryable"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// toolError renders an error as a failed tool result. Anything that is
// not already an envelope is treated as unknown; the raw error text
// never reaches the client.
func toolError(err error) *mcp.CallToolResult {
	env, ok := fault.AsEnvelope(err)
	if !ok {
		env = fault.New(fault.KindUnknown, "an unexpected error occurred", "", err)
	}

	body, marshalErr := json.Marshal(errorBody{
		Status:        "failed",
		Error:         env.Message,
		ErrorType:     env.Kind.String(),
		Retryable:     env.Retryable,
		CorrelationID: env.CorrelationID,
	})
	if marshalErr != nil {
		return mcp.NewToolResultError(env.Message)
	}
	return mcp.NewToolResultError(string(body))
}
