// Package mcp implements the Model Context Protocol (MCP) server for CodeScope.
//
// The MCP server exposes three tools to AI coding assistants:
//   - index_path: Index the documents under a directory for semantic search
//   - search: Search indexed content with natural language queries
//   - get_status: Check indexing status and statistics
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// The server communicates with MCP clients via standard input/output,
// making it simple to integrate with any MCP-compatible client.
//
// # Basic Usage
//
// The MCP server is typically started via the binary itself:
//
//	codescope
//
// It then listens on stdin for MCP protocol messages and writes responses to stdout.
//
// # Tool: index_path
//
// Index a directory tree to make it searchable:
//
//	Request:
//	{
//	  "name": "index_path",
//	  "arguments": {
//	    "path": "/path/to/project",
//	    "include_tests": true,
//	    "max_chunk_size": 1200,
//	    "chunk_overlap": 100,
//	    "structural": true
//	  }
//	}
//
//	Response:
//	{
//	  "indexed": true,
//	  "run_id": "9f2c...",
//	  "documents_indexed": 247,
//	  "chunks_created": 1893,
//	  "embeddings_created": 1893,
//	  "duration_ms": 35200
//	}
//
// Re-indexing a path replaces all chunks and embeddings for every
// document it visits.
//
// # Tool: search
//
// Search indexed content by semantic similarity:
//
//	Request:
//	{
//	  "name": "search",
//	  "arguments": {
//	    "path": "/path/to/project",
//	    "query": "user authentication logic",
//	    "limit": 10,
//	    "filters": {
//	      "languages": ["go"],
//	      "kinds": ["function", "method"],
//	      "path_pattern": "internal/*"
//	    }
//	  }
//	}
//
//	Response:
//	{
//	  "results": [
//	    {
//	      "rank": 1,
//	      "relevance_score": 0.92,
//	      "source": "internal/auth/service.go",
//	      "language": "go",
//	      "kind": "function",
//	      "start_line": 45,
//	      "end_line": 72,
//	      "content": "func AuthenticateUser(...) { ... }"
//	    }
//	  ]
//	}
//
// # Tool: get_status
//
// Check indexing status:
//
//	Request:
//	{
//	  "name": "get_status",
//	  "arguments": {
//	    "path": "/path/to/project"
//	  }
//	}
//
//	Response:
//	{
//	  "indexed": true,
//	  "project": {
//	    "root_path": "/path/to/project",
//	    "total_documents": 247,
//	    "total_chunks": 1893
//	  },
//	  "health": {
//	    "database_accessible": true,
//	    "embeddings_available": true,
//	    "vector_search_optimized": false
//	  }
//	}
//
// # MCP Client Configuration
//
// Configure in Claude Code's MCP settings:
//
//	{
//	  "mcpServers": {
//	    "codescope": {
//	      "command": "/usr/local/bin/codescope",
//	      "env": {
//	        "CODESCOPE_EMBEDDING_PROVIDER": "jina",
//	        "JINA_API_KEY": "your-api-key"
//	      }
//	    }
//	  }
//	}
//
// # Error Handling
//
// The MCP server returns standard JSON-RPC error responses:
//
//	{
//	  "error": {
//	    "code": -32602,
//	    "message": "Invalid params",
//	    "data": {
//	      "param": "path",
//	      "reason": "Path does not exist"
//	    }
//	  }
//	}
//
// Error codes:
//   - -32602: Invalid params (missing/invalid arguments)
//   - -32603: Internal error (database, filesystem, etc.)
//   - -32002: Indexing in progress
//   - -32003: Path not indexed
//   - -32004: Empty query
//
// # Logging
//
// The MCP server logs to stderr (stdout is reserved for MCP protocol):
//
//	log.SetOutput(os.Stderr)
//	log.Printf("MCP server started")
package mcp
