package label

import "fmt"

// SyntheticTag names a function parameter's label in a summary before the
// summary is instantiated at a call site.
func SyntheticTag(paramIndex int) string {
	return fmt.Sprintf("⟨%d⟩", paramIndex)
}

// Substitute replaces every synthetic tag ⟨i⟩ in l with the actual label
// of the i-th call argument, producing the label of the call's result.
func Substitute(l Label, args []Label) Label {
	if l.top {
		return Top()
	}
	out := Bottom()
	for t := range l.tags {
		if idx, ok := parseSyntheticIndex(t); ok {
			if idx >= 0 && idx < len(args) {
				out = Union(out, args[idx])
			}
			continue
		}
		out = Union(out, Of(t))
	}
	return out
}

func parseSyntheticIndex(tag string) (int, bool) {
	r := []rune(tag)
	if len(r) < 3 || r[0] != '⟨' || r[len(r)-1] != '⟩' {
		return 0, false
	}
	n := 0
	for _, c := range r[1 : len(r)-1] {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
