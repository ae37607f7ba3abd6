package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/codescope/codescope/internal/chunker"
	"github.com/codescope/codescope/internal/embedder"
	"github.com/codescope/codescope/internal/indexer"
	"github.com/codescope/codescope/internal/searcher"
	"github.com/codescope/codescope/internal/storage"
	"github.com/codescope/codescope/internal/structural"
)

const (
	// ServerName is the MCP server name
	ServerName = "codescope"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
	// DefaultDBPath is the default location for the database
	DefaultDBPath = "~/.codescope/indices"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp      *server.MCPServer
	storage  storage.Storage
	indexer  *indexer.Indexer
	searcher *searcher.Searcher
}

// NewServer creates a new MCP server instance
func NewServer(dbPath string) (*Server, error) {
	// Expand home directory if needed
	if dbPath == "" || dbPath == DefaultDBPath {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".codescope", "indices")
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dbFile := filepath.Join(dbPath, "codescope.db")

	store, err := storage.NewSQLiteStorage(dbFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	emb, err := embedder.NewFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}

	chk, err := chunker.New(chunker.DefaultOptions(), structural.NewRegistry())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chunker: %w", err)
	}

	return newServerWithDeps(store, emb, chk), nil
}

// newServerWithDeps wires a server from already-constructed dependencies
func newServerWithDeps(store storage.Storage, emb embedder.Embedder, chk *chunker.Chunker) *Server {
	s := &Server{
		mcp:      server.NewMCPServer(ServerName, ServerVersion),
		storage:  store,
		indexer:  indexer.New(store, emb, chk),
		searcher: searcher.NewSearcher(store, emb),
	}
	s.registerTools()
	return s
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.storage.Close() }()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(indexPathTool(), s.handleIndexPath)
	s.mcp.AddTool(searchTool(), s.handleSearch)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
}
