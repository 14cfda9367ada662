package token

// Token is a single lexical unit carrying its kind, literal text, and span.
type Token struct {
	Kind    Kind
	Lexeme  string
	Span    Span
	Annot   *Annotation // populated only when Kind == ANNOTATION
}

func (t Token) String() string {
	if t.Kind == ANNOTATION && t.Annot != nil {
		return t.Annot.String()
	}
	return t.Lexeme
}
