package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/devstash/devstash/pkg/governance"
	"github.com/devstash/devstash/pkg/providers"
	"github.com/devstash/devstash/pkg/runtime"
	"github.com/devstash/devstash/pkg/schema"
	"github.com/devstash/devstash/pkg/vault"
)

// Handlers binds the MCP tools to a vault and execution collaborators.
type Handlers struct {
	Vault    *vault.Store
	Executor providers.CommandExecutor
	Client   providers.HTTPDoer
	Gov      *governance.Engine
	// Timeout bounds each executor call in devstash/run. Zero = none.
	Timeout time.Duration
}

// entrySummary is the search result shape: enough to pick an entry without
// pulling full content.
type entrySummary struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Executable  bool     `json:"executable"`
}

// HandleSearch implements the devstash/search MCP tool.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	query, _ := args["query"].(string)
	kindArg, _ := args["kind"].(string)
	tag, _ := args["tag"].(string)

	kind := schema.Kind(kindArg)
	if kindArg != "" && !kind.Valid() {
		return errorResult(fmt.Sprintf("unknown kind %q", kindArg)), nil
	}

	var entries []*schema.Entry
	var err error
	if query != "" {
		entries, err = h.Vault.Search(query)
	} else {
		entries, err = h.Vault.List(vault.Filter{})
	}
	if err != nil {
		return errorResult(err.Error()), nil
	}

	summaries := make([]entrySummary, 0, len(entries))
	for _, e := range entries {
		if kindArg != "" && e.Kind != kind {
			continue
		}
		if tag != "" && !e.HasTag(tag) {
			continue
		}
		summaries = append(summaries, entrySummary{
			Name:        e.Name,
			Kind:        string(e.Kind),
			Description: e.Description,
			Tags:        e.Tags,
			Executable:  e.Kind.Executable(),
		})
	}

	data, _ := json.MarshalIndent(summaries, "", "  ")
	return textResult(string(data)), nil
}

// HandleGet implements the devstash/get MCP tool.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, _ := args["name"].(string)
	if name == "" {
		return errorResult("name argument is required"), nil
	}

	entry, err := h.Vault.Get(name)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	data, _ := json.MarshalIndent(entry, "", "  ")
	return textResult(string(data)), nil
}

// HandleRun implements the devstash/run MCP tool. Resolution never prompts:
// an unbound placeholder aborts the run, and confirmation is implicit since
// the caller has already decided to execute.
func (h *Handlers) HandleRun(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, _ := args["name"].(string)
	if name == "" {
		return errorResult("name argument is required"), nil
	}

	bindings := make(map[string]string)
	if raw, ok := args["bindings"].(map[string]any); ok {
		for k, v := range raw {
			bindings[k] = fmt.Sprint(v)
		}
	}

	entry, err := h.Vault.Get(name)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	eng := runtime.New(h.Vault, providers.NonInteractive{}, h.Executor, h.Client)
	eng.Gov = h.Gov

	res, _ := eng.Execute(ctx, entry, runtime.Options{
		Bindings:    bindings,
		SkipConfirm: true,
		Timeout:     h.Timeout,
	})

	response := map[string]any{
		"entry":  res.Entry,
		"kind":   string(res.Kind),
		"status": string(res.Status),
	}
	if res.Rendered != "" {
		response["rendered"] = res.Rendered
	}
	switch res.Kind {
	case schema.KindCommand:
		response["exit_code"] = res.ExitCode
		if res.Stdout != "" {
			response["stdout"] = res.Stdout
		}
		if res.Stderr != "" {
			response["stderr"] = res.Stderr
		}
	case schema.KindAPI:
		response["status_code"] = res.StatusCode
		if res.Body != "" {
			response["body"] = res.Body
		}
	case schema.KindPlaybook:
		steps := make([]map[string]any, 0, len(res.Steps))
		for _, step := range res.Steps {
			steps = append(steps, map[string]any{
				"entry":  step.Entry,
				"status": string(step.Status),
			})
		}
		response["steps"] = steps
		if res.FailedStep >= 0 {
			response["failed_step"] = res.FailedStep
		}
	}
	if res.Err != nil {
		response["error"] = res.Err.Error()
	}

	data, _ := json.MarshalIndent(response, "", "  ")
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(data))},
		IsError: res.Status != runtime.StatusSucceeded,
	}, nil
}

// HandleSchema implements the devstash/schema MCP tool.
func (h *Handlers) HandleSchema(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := schema.GenerateEntryJSONSchema()
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(string(data)), nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(msg),
		},
		IsError: true,
	}
}
