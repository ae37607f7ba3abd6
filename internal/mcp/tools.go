package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/codescope/codescope/internal/chunker"
	"github.com/codescope/codescope/internal/indexer"
	"github.com/codescope/codescope/internal/searcher"
	"github.com/codescope/codescope/internal/storage"
)

// MCP error codes
const (
	ErrorCodeInvalidParams      = -32602 // Invalid method parameters
	ErrorCodeInternalError      = -32603 // Internal JSON-RPC error
	ErrorCodeIndexingInProgress = -32002 // Another indexing operation is already running
	ErrorCodeNotIndexed         = -32003 // Path not indexed
	ErrorCodeEmptyQuery         = -32004 // Query parameter is empty
)

// handleIndexPath handles the index_path tool invocation
func (s *Server) handleIndexPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	if err := validatePath(path); err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}

	config := &indexer.Config{
		IncludeTests: getBoolDefault(args, "include_tests", true),
	}

	// Per-run chunking overrides
	opts := chunker.DefaultOptions()
	override := false
	if v, ok := args["max_chunk_size"].(float64); ok {
		opts.MaxChunkSize = int(v)
		override = true
	}
	if v, ok := args["chunk_overlap"].(float64); ok {
		opts.ChunkOverlap = int(v)
		override = true
	}
	if v, ok := args["structural"].(bool); ok {
		opts.Structural = v
		override = true
	}
	if override {
		config.ChunkOptions = &opts
	}

	stats, err := s.indexer.IndexPath(ctx, path, config)
	if errors.Is(err, indexer.ErrIndexInProgress) {
		return nil, newMCPError(ErrorCodeIndexingInProgress, "an index run is already in progress", nil)
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "indexing failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// A fresh index invalidates any cached search responses
	s.searcher.InvalidateCache()

	response := map[string]interface{}{
		"indexed":            true,
		"run_id":             stats.RunID,
		"documents_indexed":  stats.DocumentsIndexed,
		"documents_failed":   stats.DocumentsFailed,
		"chunks_created":     stats.ChunksCreated,
		"embeddings_created": stats.EmbeddingsCreated,
		"duration_ms":        stats.Duration.Milliseconds(),
	}

	if len(stats.ErrorMessages) > 0 {
		// Include first few errors
		errorCount := len(stats.ErrorMessages)
		if errorCount > 5 {
			response["errors"] = stats.ErrorMessages[:5]
			response["error_count"] = errorCount
		} else {
			response["errors"] = stats.ErrorMessages
		}
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleSearch handles the search tool invocation
func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "query parameter is required and cannot be empty", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}

	limit := getIntDefault(args, "limit", 10)
	if limit < 1 || limit > 100 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 100", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}

	project, err := s.storage.GetProject(ctx, absPath)
	if err == storage.ErrNotFound {
		return nil, newMCPError(ErrorCodeNotIndexed, "path not indexed, run index_path first", map[string]interface{}{
			"path": absPath,
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to load project", map[string]interface{}{
			"error": err.Error(),
		})
	}

	resp, err := s.searcher.Search(ctx, searcher.SearchRequest{
		Query:     query,
		Limit:     limit,
		ProjectID: project.ID,
		Filters:   parseFilters(args),
		UseCache:  true,
	})
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	results := make([]map[string]interface{}, len(resp.Results))
	for i, r := range resp.Results {
		results[i] = map[string]interface{}{
			"rank":            r.Rank,
			"relevance_score": r.RelevanceScore,
			"source":          r.SourceID,
			"language":        r.Language,
			"kind":            string(r.Kind),
			"start_offset":    r.StartOffset,
			"end_offset":      r.EndOffset,
			"start_line":      r.StartLine,
			"end_line":        r.EndLine,
			"content":         r.Content,
		}
	}

	response := map[string]interface{}{
		"query":         query,
		"total_results": resp.TotalResults,
		"duration_ms":   resp.Duration.Milliseconds(),
		"cache_hit":     resp.CacheHit,
		"results":       results,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}

	project, err := s.storage.GetProject(ctx, absPath)
	if err == storage.ErrNotFound {
		response := map[string]interface{}{
			"indexed": false,
			"path":    absPath,
			"message": "Path not indexed. Use the index_path tool to index it.",
		}
		return mcp.NewToolResultText(formatJSON(response)), nil
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get project status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	status, err := s.storage.GetStatus(ctx, project.ID)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"indexed": true,
		"project": map[string]interface{}{
			"path":            project.RootPath,
			"name":            project.Name,
			"last_indexed_at": project.LastIndexedAt.Format("2006-01-02T15:04:05Z07:00"),
		},
		"statistics": map[string]interface{}{
			"documents_count":  status.DocumentsCount,
			"chunks_count":     status.ChunksCount,
			"embeddings_count": status.EmbeddingsCount,
			"index_size_mb":    fmt.Sprintf("%.2f", status.IndexSizeMB),
		},
		"health": map[string]interface{}{
			"database_accessible":     status.Health.DatabaseAccessible,
			"embeddings_available":    status.Health.EmbeddingsAvailable,
			"vector_search_optimized": status.Health.VectorSearchOptimized,
		},
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// parseFilters converts the filters argument into storage filters
func parseFilters(args map[string]interface{}) *storage.SearchFilters {
	raw, ok := args["filters"].(map[string]interface{})
	if !ok {
		return nil
	}

	filters := &storage.SearchFilters{}
	if langs, ok := raw["languages"].([]interface{}); ok {
		for _, l := range langs {
			if s, ok := l.(string); ok {
				filters.Languages = append(filters.Languages, s)
			}
		}
	}
	if kinds, ok := raw["kinds"].([]interface{}); ok {
		for _, k := range kinds {
			if s, ok := k.(string); ok {
				filters.Kinds = append(filters.Kinds, s)
			}
		}
	}
	if pattern, ok := raw["path_pattern"].(string); ok {
		filters.PathPattern = pattern
	}
	if min, ok := raw["min_relevance"].(float64); ok {
		filters.MinRelevance = min
	}

	return filters
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// validatePath checks if a path exists and is an accessible directory
func validatePath(path string) error {
	if path == "" {
		return ErrPathRequired
	}

	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}

	if !info.IsDir() {
		return ErrNotDirectory
	}

	f, err := os.Open(path)
	if err != nil {
		return ErrPathNotReadable
	}
	_ = f.Close()

	return nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// Validation helpers

var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
	ErrNotDirectory    = errors.New("path is not a directory")
)
