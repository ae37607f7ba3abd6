// Package structural extracts top-level node boundaries from documents for
// structure-aware chunking.
//
// A Parser is a capability: it reports where a document's top-level
// declarations begin and end, as ordered, non-overlapping rune spans. The
// Registry dispatches by language tag so the chunking layer never branches
// on concrete languages.
//
//	reg := structural.NewRegistry()
//	nodes, err := reg.Parse(source, "go")
//	if errors.Is(err, types.ErrUnsupportedLanguage) || errors.Is(err, types.ErrParse) {
//	    // fall back to hierarchical splitting
//	}
//
// Built-in parsers:
//   - go: go/ast top-level declarations (func, method, type, const/var
//     groups), doc comments included in the span
//   - markdown: ATX-heading-delimited sections
//
// Parsers do not enforce any size budget; the chunker re-splits oversized
// nodes and fills the gaps between nodes.
package structural
