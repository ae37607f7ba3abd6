package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// indexPathTool returns the tool definition for index_path
func indexPathTool() mcp.Tool {
	return mcp.Tool{
		Name:        "index_path",
		Description: "Index the documents under a directory to make them searchable",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the directory to index",
				},
				"include_tests": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, index *_test.go files",
					"default":     true,
				},
				"max_chunk_size": map[string]interface{}{
					"type":        "integer",
					"description": "Chunk size budget in runes",
					"default":     1200,
					"minimum":     1,
				},
				"chunk_overlap": map[string]interface{}{
					"type":        "integer",
					"description": "Number of trailing runes repeated at the start of the next chunk",
					"default":     0,
					"minimum":     0,
				},
				"structural": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, align chunk boundaries with declarations and sections where a parser is available",
					"default":     true,
				},
			},
			Required: []string{"path"},
		},
	}
}

// searchTool returns the tool definition for search
func searchTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search",
		Description: "Search an indexed directory with a natural language query",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to an indexed directory",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query (natural language or keywords)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
				"filters": map[string]interface{}{
					"type":        "object",
					"description": "Optional filters to narrow search",
					"properties": map[string]interface{}{
						"languages": map[string]interface{}{
							"type":        "array",
							"description": "Filter by document language",
							"items": map[string]interface{}{
								"type": "string",
								"enum": []string{"go", "markdown", "python", "text"},
							},
						},
						"kinds": map[string]interface{}{
							"type":        "array",
							"description": "Filter by chunk kind",
							"items": map[string]interface{}{
								"type": "string",
								"enum": []string{"text", "function", "method", "type", "decl", "section", "filler"},
							},
						},
						"path_pattern": map[string]interface{}{
							"type":        "string",
							"description": "Glob pattern for document paths (e.g., 'internal/*')",
						},
						"min_relevance": map[string]interface{}{
							"type":        "number",
							"description": "Minimum relevance score threshold (0.0-1.0)",
							"minimum":     0.0,
							"maximum":     1.0,
						},
					},
				},
			},
			Required: []string{"path", "query"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Query indexing status and statistics for a directory",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the directory",
				},
			},
			Required: []string{"path"},
		},
	}
}
