package splitter

// Separator profiles, coarsest first. Each list ends with the empty string so
// splitting degrades to a rune-boundary cut and always terminates within the
// size budget.

// TextSeparators splits plain prose at paragraph, line, and word boundaries
var TextSeparators = []string{"\n\n", "\n", " ", ""}

// MarkdownSeparators prefers heading boundaries before paragraph boundaries
var MarkdownSeparators = []string{"\n## ", "\n### ", "\n#### ", "\n\n", "\n", " ", ""}

// GoSeparators prefers top-level declaration boundaries. Used as the
// fallback when structural parsing is unavailable or fails.
var GoSeparators = []string{"\nfunc ", "\ntype ", "\nconst ", "\nvar ", "\n\n", "\n", " ", ""}

// PythonSeparators prefers class and def boundaries
var PythonSeparators = []string{"\nclass ", "\ndef ", "\n\tdef ", "\n\n", "\n", " ", ""}

// ForLanguage returns the separator profile for a language tag, defaulting
// to the plain-text profile for unknown languages
func ForLanguage(language string) []string {
	switch language {
	case "go":
		return GoSeparators
	case "markdown":
		return MarkdownSeparators
	case "python":
		return PythonSeparators
	default:
		return TextSeparators
	}
}
