package token

import (
	"fmt"
	"strings"
)

// AnnotationScope names the three scopes the analyzer interprets; any other
// spelling parses fine, for forward compatibility, and is simply never
// matched by the analyzer.
type AnnotationScope string

const (
	ScopeLabel      AnnotationScope = "label"
	ScopeSink       AnnotationScope = "sink"
	ScopeDeclassify AnnotationScope = "declassify"
)

// Annotation is a parsed `// glowy::scope::{tag,...}` comment, not yet bound
// to an AST node — that binding happens in the parser.
type Annotation struct {
	Scope AnnotationScope
	Tags  []string
	Span  Span
}

// ParseAnnotation parses the body following `glowy::`, i.e. `scope::{tag,...}`.
// It returns an error for malformed input.
func ParseAnnotation(body string) (AnnotationScope, []string, error) {
	parts := strings.SplitN(body, "::", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("malformed annotation: missing scope separator in %q", body)
	}
	scope := strings.TrimSpace(parts[0])
	if scope == "" {
		return "", nil, fmt.Errorf("malformed annotation: empty scope in %q", body)
	}
	set := strings.TrimSpace(parts[1])
	if !strings.HasPrefix(set, "{") || !strings.HasSuffix(set, "}") {
		return "", nil, fmt.Errorf("malformed annotation: tag set must be wrapped in {}: %q", body)
	}
	inner := strings.TrimSpace(set[1 : len(set)-1])
	if inner == "" {
		return AnnotationScope(scope), nil, nil
	}
	rawTags := strings.Split(inner, ",")
	tags := make([]string, 0, len(rawTags))
	for _, t := range rawTags {
		t = strings.TrimSpace(t)
		if !isValidTag(t) {
			return "", nil, fmt.Errorf("malformed annotation: invalid tag %q in %q", t, body)
		}
		tags = append(tags, t)
	}
	return AnnotationScope(scope), tags, nil
}

func isValidTag(t string) bool {
	if t == "" {
		return false
	}
	for i, r := range t {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// String re-renders the annotation into its wire form: Parse(a.String())
// reproduces a's scope and tag set.
func (a Annotation) String() string {
	return fmt.Sprintf("// glowy::%s::{%s}", a.Scope, strings.Join(a.Tags, ","))
}
