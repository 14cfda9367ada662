package analyzer

import "github.com/viant/glowy/label"

// Summary is a function's return-label expression, symbolic over synthetic
// parameter tags until substituted at a call site.
type Summary struct {
	ReturnLabel   label.Label
	WritesChannel bool // true if the body sends on any channel directly
}

// Apply instantiates the summary for a concrete call with argument labels
// args, substituting each synthetic ⟨i⟩ with args[i].
func (s Summary) Apply(args []label.Label) label.Label {
	out := label.Substitute(s.ReturnLabel, args)
	if s.WritesChannel {
		out = label.Union(out, label.UnionAll(args...))
	}
	return out
}
