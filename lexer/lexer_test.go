package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/glowy/lexer"
	"github.com/viant/glowy/token"
)

func collect(src string) []token.Token {
	l := lexer.New("t.go", src)
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestSemicolonInsertion(t *testing.T) {
	toks := collect("x := 1\ny := 2\n")
	ks := kinds(toks)
	assert.Contains(t, ks, token.SEMICOLON)
	// two statements each end in an inserted semicolon before EOF.
	count := 0
	for _, k := range ks {
		if k == token.SEMICOLON {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestOperators(t *testing.T) {
	toks := collect("a := b + 1\n")
	ks := kinds(toks)
	assert.Equal(t, []token.Kind{token.IDENT, token.DEFINE, token.IDENT, token.ADD, token.INT, token.SEMICOLON, token.EOF}, ks)
}

func TestKeywords(t *testing.T) {
	toks := collect("if a { return 1 } else { return 2 }")
	assert.Equal(t, token.IF, toks[0].Kind)
	assert.Equal(t, token.RETURN, toks[3].Kind)
	assert.Equal(t, token.ELSE, toks[6].Kind)
}

func TestAnnotationToken(t *testing.T) {
	toks := collect("// glowy::sink::{}\nPrintln(x)\n")
	assert.Equal(t, token.ANNOTATION, toks[0].Kind)
	assert.Equal(t, token.ScopeSink, toks[0].Annot.Scope)
	assert.Empty(t, toks[0].Annot.Tags)
}

func TestAnnotationRoundTrip(t *testing.T) {
	toks := collect("// glowy::label::{high,medium}\nx := 1\n")
	ann := toks[0].Annot
	scope, tags, err := token.ParseAnnotation(ann.String()[len("// glowy::"):])
	assert.NoError(t, err)
	assert.Equal(t, ann.Scope, scope)
	assert.Equal(t, ann.Tags, tags)
}

func TestMalformedAnnotationDropped(t *testing.T) {
	toks := collect("// glowy::sink::nope\nPrintln(x)\n")
	// malformed annotation is dropped; next real token is the identifier.
	assert.Equal(t, token.IDENT, toks[0].Kind)
}

func TestUnterminatedString(t *testing.T) {
	l := lexer.New("t.go", "\"abc")
	tok := l.Next()
	assert.Equal(t, token.STRING, tok.Kind)
	assert.Len(t, l.Errors(), 1)
	assert.Equal(t, "UnterminatedString", l.Errors()[0].Kind)
}

func TestUnexpectedChar(t *testing.T) {
	l := lexer.New("t.go", "a ~ b")
	l.Next()
	l.Next()
	assert.Len(t, l.Errors(), 1)
	assert.Equal(t, "UnexpectedChar", l.Errors()[0].Kind)
}
