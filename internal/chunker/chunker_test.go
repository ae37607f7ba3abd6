package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescope/codescope/pkg/types"
)

const goSource = `package sample

import "fmt"

// Greeter greets
type Greeter struct {
	Name string
}

// Greet prints a greeting
func (g *Greeter) Greet() {
	fmt.Println("hello, " + g.Name)
}

func Run() {
	g := &Greeter{Name: "world"}
	g.Greet()
}
`

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(Options{MaxChunkSize: 0}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidConfig)

	_, err = New(Options{MaxChunkSize: 10, ChunkOverlap: 10}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidConfig)
}

func TestChunkDocument_Empty(t *testing.T) {
	c, err := New(DefaultOptions(), nil)
	require.NoError(t, err)

	chunks, err := c.ChunkDocument(Document{Text: "", SourceID: "empty.go", Language: "go"})
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChunkDocument_StructuralGo(t *testing.T) {
	c, err := New(DefaultOptions(), nil)
	require.NoError(t, err)

	chunks, err := c.ChunkDocument(Document{Text: goSource, SourceID: "sample.go", Language: "go"})
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	var kinds []types.ChunkKind
	for _, chunk := range chunks {
		kinds = append(kinds, chunk.Kind)
	}
	assert.Contains(t, kinds, types.ChunkTypeDecl)
	assert.Contains(t, kinds, types.ChunkMethod)
	assert.Contains(t, kinds, types.ChunkFunction)
	// package clause is a gap between nodes
	assert.Contains(t, kinds, types.ChunkFiller)

	assertTiling(t, goSource, chunks)

	// Method chunk includes its doc comment and body
	var method *types.Chunk
	for i := range chunks {
		if chunks[i].Kind == types.ChunkMethod {
			method = &chunks[i]
		}
	}
	require.NotNil(t, method)
	assert.Contains(t, method.Content, "// Greet prints a greeting")
	assert.Contains(t, method.Content, "fmt.Println")
	assert.Greater(t, method.StartLine, 1)
	assert.GreaterOrEqual(t, method.EndLine, method.StartLine)
}

func TestChunkDocument_OversizedNode(t *testing.T) {
	var b strings.Builder
	b.WriteString("package sample\n\nfunc Big() {\n")
	for i := 0; i < 60; i++ {
		b.WriteString("\tdoSomething()\n")
	}
	b.WriteString("}\n")
	src := b.String()

	c, err := New(Options{MaxChunkSize: 200, Structural: true}, nil)
	require.NoError(t, err)

	chunks, err := c.ChunkDocument(Document{Text: src, SourceID: "big.go", Language: "go"})
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	// The function body was re-split hierarchically; sub-chunks keep the
	// node kind and respect the budget
	funcChunks := 0
	for _, chunk := range chunks {
		if chunk.Kind == types.ChunkFunction {
			funcChunks++
			assert.LessOrEqual(t, chunk.Len(), 200)
		}
	}
	assert.Greater(t, funcChunks, 1)
	assertTiling(t, src, chunks)
}

func TestChunkDocument_ParseErrorFallsBack(t *testing.T) {
	broken := "package broken\n\nfunc oops( {\n" + strings.Repeat("\tstuff\n", 40) + "}\n"

	c, err := New(Options{MaxChunkSize: 120, Structural: true}, nil)
	require.NoError(t, err)

	chunks, err := c.ChunkDocument(Document{Text: broken, SourceID: "broken.go", Language: "go"})
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	// Fallback means plain hierarchical chunks
	for _, chunk := range chunks {
		assert.Equal(t, types.ChunkText, chunk.Kind)
	}
	assertTiling(t, broken, chunks)
}

func TestChunkDocument_ParseErrorNoFallback(t *testing.T) {
	c, err := New(Options{MaxChunkSize: 120, Structural: true, DisableFallback: true}, nil)
	require.NoError(t, err)

	_, err = c.ChunkDocument(Document{Text: "package broken\n\nfunc oops( {", SourceID: "broken.go", Language: "go"})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrParse)
}

func TestChunkDocument_UnsupportedLanguageUsesHierarchical(t *testing.T) {
	doc := strings.Repeat("plain text content here. ", 40)

	c, err := New(Options{MaxChunkSize: 100, Structural: true}, nil)
	require.NoError(t, err)

	chunks, err := c.ChunkDocument(Document{Text: doc, SourceID: "notes.txt", Language: "text"})
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for _, chunk := range chunks {
		assert.Equal(t, types.ChunkText, chunk.Kind)
		assert.LessOrEqual(t, chunk.Len(), 100)
	}
	assertTiling(t, doc, chunks)
}

func TestChunkDocument_Markdown(t *testing.T) {
	doc := "intro paragraph\n\n# One\n\nbody one\n\n## Two\n\nbody two\n"

	c, err := New(Options{MaxChunkSize: 500, Structural: true}, nil)
	require.NoError(t, err)

	chunks, err := c.ChunkDocument(Document{Text: doc, SourceID: "readme.md", Language: "markdown"})
	require.NoError(t, err)
	require.Len(t, chunks, 3) // intro filler + two sections

	assert.Equal(t, types.ChunkFiller, chunks[0].Kind)
	assert.Equal(t, types.ChunkSection, chunks[1].Kind)
	assert.Equal(t, types.ChunkSection, chunks[2].Kind)
	assertTiling(t, doc, chunks)
}

func TestChunkDocument_LineNumbers(t *testing.T) {
	doc := "line one\nline two\nline three\nline four\n"

	c, err := New(Options{MaxChunkSize: 20, Structural: false}, nil)
	require.NoError(t, err)

	chunks, err := c.ChunkDocument(Document{Text: doc, SourceID: "lines.txt", Language: "text"})
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	assert.Equal(t, 1, chunks[0].StartLine)
	last := chunks[len(chunks)-1]
	assert.Equal(t, 4, last.EndLine)
	for _, chunk := range chunks {
		assert.GreaterOrEqual(t, chunk.EndLine, chunk.StartLine)
	}
}

// assertTiling checks that the chunk spans cover the document with no gaps
func assertTiling(t *testing.T, doc string, chunks []types.Chunk) {
	t.Helper()

	runes := []rune(doc)
	require.NotEmpty(t, chunks)
	assert.Equal(t, 0, chunks[0].StartOffset)
	assert.Equal(t, len(runes), chunks[len(chunks)-1].EndOffset)

	for i, chunk := range chunks {
		assert.Equal(t, string(runes[chunk.StartOffset:chunk.EndOffset]), chunk.Content)
		require.NoError(t, chunk.Validate())
		if i > 0 {
			assert.LessOrEqual(t, chunk.StartOffset, chunks[i-1].EndOffset)
		}
	}
}
