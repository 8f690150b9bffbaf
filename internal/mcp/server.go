// Package mcp exposes the scrape operations as Model Context Protocol
// tools over stdio, so editor agents can pull fields out of PDFs without
// shelling out to the batch CLI.
package mcp

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pdfsift/pdfsift/internal/config"
	"github.com/pdfsift/pdfsift/internal/output"
	"github.com/pdfsift/pdfsift/internal/pattern"
	"github.com/pdfsift/pdfsift/internal/scraper"
	"github.com/pdfsift/pdfsift/internal/source"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	service   *scraper.Service
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, service *scraper.Service) (*Server, error) {
	if service == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		"pdfsift",
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:    cfg,
		service:   service,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	scrapeFieldsTool := mcp.NewTool(
		"pdf_scrape_fields",
		mcp.WithDescription("Extract targeted fields from a PDF using directional keyword patterns"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
		mcp.WithString("patterns",
			mcp.Required(),
			mcp.Description("Extraction patterns 'keyword:direction:distance:type', one per line"),
		),
	)
	s.mcpServer.AddTool(scrapeFieldsTool, s.handleScrapeFields)

	dumpTextTool := mcp.NewTool(
		"pdf_dump_text",
		mcp.WithDescription("Extract the full reconstructed text content of a PDF"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(dumpTextTool, s.handleDumpText)

	validateFileTool := mcp.NewTool(
		"pdf_validate_file",
		mcp.WithDescription("Check that a PDF file exists, is readable and is not encrypted"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handleValidateFile)
}

// Handler functions

func (s *Server) handleScrapeFields(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	patternsArg, err := request.RequireString("patterns")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rules, parseErrs, err := pattern.ParseReader(strings.NewReader(patternsArg))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(rules) == 0 {
		return mcp.NewToolResultError("no valid patterns supplied"), nil
	}

	row, err := s.service.ScrapeFile(path, rules)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	headers, err := scraper.Headers(rules, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := output.NewTSVWriter().Format(headers, [][]string{row})
	for _, pe := range parseErrs {
		responseText += fmt.Sprintf("\nWarning: %v", pe)
	}
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDumpText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.DumpBatch([]string{path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(result.Failed) > 0 {
		return mcp.NewToolResultError(result.Failed[0].Error()), nil
	}

	var sb strings.Builder
	for _, row := range result.Rows {
		sb.WriteString(fmt.Sprintf("--- Page %s ---\n", row[1]))
		sb.WriteString(row[2])
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := source.ValidateFile(path, s.config.MaxFileSize); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s is a valid, readable PDF", path)), nil
}

// Run starts the MCP server over stdio
func (s *Server) Run(_ context.Context) error {
	if s.config.Verbose {
		log.Printf("Starting pdfsift MCP server in stdio mode")
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
