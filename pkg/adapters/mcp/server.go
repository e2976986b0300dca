package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/goliatone/go-formschema/pkg/docs"
	"github.com/goliatone/go-formschema/pkg/orchestrator"
	"github.com/goliatone/go-formschema/pkg/schema"
)

const instructions = `This server exposes declarative form schemas.

You can:
- List the registered schemas and read their definitions
- Render a schema with data, optionally reporting a changed field
- Read or check the validation rules of a schema
- Search the schema documentation`

// Server exposes an orchestrator as MCP tools.
type Server struct {
	orch      *orchestrator.Orchestrator
	docs      []docs.File
	mcpServer *server.MCPServer
}

// NewServer registers the tools and the schema list resource.
func NewServer(orch *orchestrator.Orchestrator, name, version string) *Server {
	s := &Server{
		orch:      orch,
		docs:      docs.Files(),
		mcpServer: server.NewMCPServer(name, version, server.WithInstructions(instructions)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio serves on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_schemas",
		mcp.WithDescription("List the names of the registered form schemas."),
	), s.handleListSchemas)

	s.mcpServer.AddTool(mcp.NewTool("render_schema",
		mcp.WithDescription("Serialize a schema to props after running the callback of a changed field."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Schema name")),
		mcp.WithString("data", mcp.Description("JSON object with the form data (optional)")),
		mcp.WithString("changed_field", mcp.Description("Name of the field that changed (optional)")),
		mcp.WithString("repeater", mcp.Description("Repeater holding the changed field (optional)")),
		mcp.WithNumber("index", mcp.Description("Item index inside the repeater")),
		mcp.WithString("locale", mcp.Description("Locale for translated labels (optional)")),
	), s.handleRender)

	s.mcpServer.AddTool(mcp.NewTool("schema_rules",
		mcp.WithDescription("Return the validation rules, messages and attributes of a schema."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Schema name")),
	), s.handleRules)

	s.mcpServer.AddTool(mcp.NewTool("validate_data",
		mcp.WithDescription("Validate data against the rules of the fields visible for that data."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Schema name")),
		mcp.WithString("data", mcp.Required(), mcp.Description("JSON object with the form data")),
	), s.handleValidate)

	s.mcpServer.AddTool(mcp.NewTool("search_docs",
		mcp.WithDescription("Search the form schema documentation."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Keywords to look for")),
	), s.handleSearchDocs)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("formschema://schemas", "Schema definitions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		defs := map[string]any{}
		for _, name := range s.orch.Schemas() {
			if def, ok := s.orch.Store().Definition(name); ok {
				defs[name] = def
			}
		}
		raw, err := json.Marshal(defs)
		if err != nil {
			return nil, fmt.Errorf("encode definitions: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "formschema://schemas",
				MIMEType: "application/json",
				Text:     string(raw),
			},
		}, nil
	})
}

func (s *Server) handleListSchemas(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string][]string{"schemas": s.orch.Schemas()})
}

func (s *Server) handleRender(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := decodeData(request.GetString("data", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := orchestrator.RenderRequest{
		Schema:       name,
		Data:         data,
		ChangedField: request.GetString("changed_field", ""),
		Locale:       request.GetString("locale", ""),
	}
	if repeater := request.GetString("repeater", ""); repeater != "" {
		req.Repeater = &schema.RepeaterChange{
			Repeater: repeater,
			Index:    request.GetInt("index", 0),
			Field:    req.ChangedField,
		}
		req.ChangedField = ""
	}

	result, err := s.orch.Render(ctx, req)
	if err != nil {
		slog.Warn("MCP render_schema failed", "schema", name, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (s *Server) handleRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rules, err := s.orch.Rules(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rules failed: %v", err)), nil
	}
	return jsonResult(rules)
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := decodeData(request.GetString("data", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := s.orch.Validate(ctx, orchestrator.ValidateRequest{Schema: name, Data: data})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("validate failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (s *Server) handleSearchDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results := docs.Search(s.docs, query)
	return mcp.NewToolResultText(docs.Markdown(query, results)), nil
}

func decodeData(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}, nil
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("data must be a JSON object: %w", err)
	}
	return data, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(raw)), nil
}
