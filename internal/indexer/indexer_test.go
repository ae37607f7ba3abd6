package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescope/codescope/internal/chunker"
	"github.com/codescope/codescope/internal/embedder"
	"github.com/codescope/codescope/internal/storage"
	"github.com/codescope/codescope/internal/structural"
)

const goFixture = `package demo

// Greet returns a friendly greeting.
func Greet(name string) string {
	return "hello " + name
}

// Farewell returns a parting message.
func Farewell(name string) string {
	return "goodbye " + name
}
`

const mdFixture = `Intro paragraph before any heading.

# Setup

Install the binary and run it.

# Usage

Point it at a directory.
`

func setupIndexer(t *testing.T) (*Indexer, *storage.SQLiteStorage) {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	emb, err := embedder.New(embedder.Config{Provider: embedder.ProviderLocal, CacheSize: 100})
	require.NoError(t, err)

	chk, err := chunker.New(chunker.DefaultOptions(), structural.NewRegistry())
	require.NoError(t, err)

	return New(store, emb, chk), store
}

func writeFixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vendor", "dep"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))

	files := map[string]string{
		"main.go":           goFixture,
		"main_test.go":      goFixture,
		"docs/readme.md":    mdFixture,
		"notes.txt":         "plain text notes\n\nsecond paragraph\n",
		"image.png":         "not indexed",
		"vendor/dep/dep.go": goFixture,
		".git/config":       "[core]\n",
	}
	for rel, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, rel), []byte(content), 0o644))
	}

	return root
}

func TestIndexPath(t *testing.T) {
	idx, store := setupIndexer(t)
	root := writeFixtureTree(t)

	ctx := context.Background()
	stats, err := idx.IndexPath(ctx, root, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, stats.RunID)
	// main.go, main_test.go, docs/readme.md, notes.txt
	assert.Equal(t, 4, stats.DocumentsIndexed)
	assert.Equal(t, 0, stats.DocumentsFailed)
	assert.Greater(t, stats.ChunksCreated, 0)
	assert.Equal(t, stats.ChunksCreated, stats.EmbeddingsCreated)
	assert.Empty(t, stats.ErrorMessages)

	absRoot, err := filepath.Abs(root)
	require.NoError(t, err)
	project, err := store.GetProject(ctx, absRoot)
	require.NoError(t, err)
	assert.Equal(t, 4, project.TotalDocuments)
	assert.Equal(t, stats.ChunksCreated, project.TotalChunks)
	assert.False(t, project.LastIndexedAt.IsZero())
}

func TestIndexPath_SkipsVendorHiddenAndUnsupported(t *testing.T) {
	idx, store := setupIndexer(t)
	root := writeFixtureTree(t)

	ctx := context.Background()
	_, err := idx.IndexPath(ctx, root, nil)
	require.NoError(t, err)

	absRoot, err := filepath.Abs(root)
	require.NoError(t, err)
	project, err := store.GetProject(ctx, absRoot)
	require.NoError(t, err)

	docs, err := store.ListDocuments(ctx, project.ID)
	require.NoError(t, err)

	paths := make([]string, len(docs))
	for i, doc := range docs {
		paths[i] = doc.Path
	}
	assert.NotContains(t, paths, filepath.Join("vendor", "dep", "dep.go"))
	assert.NotContains(t, paths, "image.png")
	assert.NotContains(t, paths, filepath.Join(".git", "config"))
}

func TestIndexPath_ExcludeTests(t *testing.T) {
	idx, _ := setupIndexer(t)
	root := writeFixtureTree(t)

	stats, err := idx.IndexPath(context.Background(), root, &Config{IncludeTests: false})
	require.NoError(t, err)

	// main.go, docs/readme.md, notes.txt
	assert.Equal(t, 3, stats.DocumentsIndexed)
}

func TestIndexPath_LanguageDetection(t *testing.T) {
	idx, store := setupIndexer(t)
	root := writeFixtureTree(t)

	ctx := context.Background()
	_, err := idx.IndexPath(ctx, root, nil)
	require.NoError(t, err)

	absRoot, err := filepath.Abs(root)
	require.NoError(t, err)
	project, err := store.GetProject(ctx, absRoot)
	require.NoError(t, err)

	langs := map[string]string{}
	docs, err := store.ListDocuments(ctx, project.ID)
	require.NoError(t, err)
	for _, doc := range docs {
		langs[doc.Path] = doc.Language
	}

	assert.Equal(t, "go", langs["main.go"])
	assert.Equal(t, "markdown", langs[filepath.Join("docs", "readme.md")])
	assert.Equal(t, "text", langs["notes.txt"])
}

func TestIndexPath_ReindexReplacesChunks(t *testing.T) {
	idx, store := setupIndexer(t)
	root := t.TempDir()
	path := filepath.Join(root, "main.go")
	require.NoError(t, os.WriteFile(path, []byte(goFixture), 0o644))

	ctx := context.Background()
	_, err := idx.IndexPath(ctx, root, nil)
	require.NoError(t, err)

	absRoot, err := filepath.Abs(root)
	require.NoError(t, err)
	project, err := store.GetProject(ctx, absRoot)
	require.NoError(t, err)
	doc, err := store.GetDocument(ctx, project.ID, "main.go")
	require.NoError(t, err)

	// Shrink the document, then re-index
	require.NoError(t, os.WriteFile(path, []byte("package demo\n"), 0o644))
	_, err = idx.IndexPath(ctx, root, nil)
	require.NoError(t, err)

	chunks, err := store.ListChunksByDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "package demo\n", chunks[0].Content)

	// Still a single document row
	docs, err := store.ListDocuments(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestIndexPath_ChunksCarryEmbeddings(t *testing.T) {
	idx, store := setupIndexer(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte(goFixture), 0o644))

	ctx := context.Background()
	_, err := idx.IndexPath(ctx, root, nil)
	require.NoError(t, err)

	absRoot, err := filepath.Abs(root)
	require.NoError(t, err)
	project, err := store.GetProject(ctx, absRoot)
	require.NoError(t, err)
	doc, err := store.GetDocument(ctx, project.ID, "main.go")
	require.NoError(t, err)

	chunks, err := store.ListChunksByDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for _, chunk := range chunks {
		emb, err := store.GetEmbedding(ctx, chunk.ID)
		require.NoError(t, err)
		assert.Equal(t, embedder.ProviderLocal, emb.Provider)
		assert.Equal(t, emb.Dimension, len(storage.DeserializeVector(emb.Vector)))
	}
}

func TestIndexPath_ChunkOptionsOverride(t *testing.T) {
	idx, store := setupIndexer(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("aaaa bbbb cccc dddd\n"), 0o644))

	ctx := context.Background()
	opts := chunker.DefaultOptions()
	opts.MaxChunkSize = 5
	_, err := idx.IndexPath(ctx, root, &Config{IncludeTests: true, ChunkOptions: &opts})
	require.NoError(t, err)

	absRoot, err := filepath.Abs(root)
	require.NoError(t, err)
	project, err := store.GetProject(ctx, absRoot)
	require.NoError(t, err)
	doc, err := store.GetDocument(ctx, project.ID, "notes.txt")
	require.NoError(t, err)

	chunks, err := store.ListChunksByDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, chunk.EndOffset-chunk.StartOffset, 5)
	}

	// Invalid options are rejected before any work happens
	bad := chunker.DefaultOptions()
	bad.MaxChunkSize = -1
	_, err = idx.IndexPath(ctx, root, &Config{ChunkOptions: &bad})
	assert.Error(t, err)
}

func TestIndexPath_EmptyDirectory(t *testing.T) {
	idx, _ := setupIndexer(t)
	root := t.TempDir()

	stats, err := idx.IndexPath(context.Background(), root, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.DocumentsIndexed)
	assert.Equal(t, 0, stats.ChunksCreated)
}

func TestIndexLock(t *testing.T) {
	var lock IndexLock

	assert.True(t, lock.TryAcquire())
	assert.False(t, lock.TryAcquire())
	lock.Release()
	assert.True(t, lock.TryAcquire())
	lock.Release()
}
