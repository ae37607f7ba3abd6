package structural

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"unicode/utf8"

	"github.com/codescope/codescope/pkg/types"
)

// GoParser extracts top-level declaration boundaries from Go source using
// the standard library AST. Each func, method, and declaration group becomes
// one node; a declaration's doc comment is included in its span.
type GoParser struct{}

// NewGoParser creates a new GoParser instance
func NewGoParser() *GoParser {
	return &GoParser{}
}

// Language returns the language tag handled by this parser
func (p *GoParser) Language() string {
	return "go"
}

// Parse extracts ordered top-level node boundaries from Go source.
// Syntax errors surface as types.ErrParse; callers fall back to
// hierarchical splitting.
func (p *GoParser) Parse(text string) ([]types.Node, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "src.go", text, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrParse, err)
	}

	conv := newRuneConverter(text)
	nodes := make([]types.Node, 0, len(file.Decls))

	for _, decl := range file.Decls {
		var node types.Node

		switch d := decl.(type) {
		case *ast.FuncDecl:
			node.Kind = types.NodeFunction
			if d.Recv != nil && len(d.Recv.List) > 0 {
				node.Kind = types.NodeMethod
			}
			node.Name = d.Name.Name
			node.StartOffset = conv.toRunes(declStart(fset, d, d.Doc))
			node.EndOffset = conv.toRunes(fset.Position(d.End()).Offset)

		case *ast.GenDecl:
			node.Kind = types.NodeDecl
			if d.Tok == token.TYPE {
				node.Kind = types.NodeType
			}
			if len(d.Specs) > 0 {
				node.Name = specName(d.Specs[0])
			}
			node.StartOffset = conv.toRunes(declStart(fset, d, d.Doc))
			node.EndOffset = conv.toRunes(fset.Position(d.End()).Offset)

		default:
			continue
		}

		nodes = append(nodes, node)
	}

	return nodes, nil
}

// declStart returns the byte offset where a declaration begins, including
// its doc comment when present
func declStart(fset *token.FileSet, decl ast.Decl, doc *ast.CommentGroup) int {
	pos := decl.Pos()
	if doc != nil && doc.Pos() < pos {
		pos = doc.Pos()
	}
	return fset.Position(pos).Offset
}

// specName extracts a display name from the first spec of a GenDecl
func specName(spec ast.Spec) string {
	switch s := spec.(type) {
	case *ast.TypeSpec:
		return s.Name.Name
	case *ast.ValueSpec:
		if len(s.Names) > 0 {
			return s.Names[0].Name
		}
	}
	return ""
}

// runeConverter maps monotonically increasing byte offsets to rune offsets.
// AST positions are byte offsets; the rest of the pipeline measures in runes.
type runeConverter struct {
	src     string
	byteOff int
	runeOff int
}

func newRuneConverter(src string) *runeConverter {
	return &runeConverter{src: src}
}

// toRunes converts a byte offset to a rune offset. Offsets must be queried
// in non-decreasing order, which holds for ordered declarations.
func (c *runeConverter) toRunes(byteOff int) int {
	for c.byteOff < byteOff && c.byteOff < len(c.src) {
		_, size := utf8.DecodeRuneInString(c.src[c.byteOff:])
		c.byteOff += size
		c.runeOff++
	}
	return c.runeOff
}
