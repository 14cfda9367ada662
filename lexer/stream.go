package lexer

import "github.com/viant/glowy/token"

// Stream wraps a Lexer with one token of lookahead, the shape the parser
// consumes.
type Stream struct {
	lex     *Lexer
	pending *token.Token
}

// NewStream creates a peekable stream over file/src.
func NewStream(file, src string) *Stream {
	return &Stream{lex: New(file, src)}
}

// Peek returns the next token without consuming it.
func (s *Stream) Peek() token.Token {
	if s.pending == nil {
		t := s.lex.Next()
		s.pending = &t
	}
	return *s.pending
}

// Next consumes and returns the next token.
func (s *Stream) Next() token.Token {
	if s.pending != nil {
		t := *s.pending
		s.pending = nil
		return t
	}
	return s.lex.Next()
}

// Errors returns lexer diagnostics accumulated so far.
func (s *Stream) Errors() []*Error { return s.lex.Errors() }
