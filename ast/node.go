// Package ast defines the abstract syntax tree produced by the parser
//: declarations, statements, expressions, each carrying a
// source span and, where the grammar allows it, a bound Glowy annotation.
// The tree is immutable after parsing — only the
// symbol table and channel-label map mutate during analysis.
package ast

import "github.com/viant/glowy/token"

// Node is the common shape of every AST element.
type Node interface {
	Span() token.Span
}

// Decl is a top-level declaration: func, const, or var.
type Decl interface {
	Node
	declNode()
}

// Stmt is any statement inside a function body.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is any expression.
type Expr interface {
	Node
	exprNode()
}

// base embeds a span and is composed into every concrete node.
type base struct {
	Sp token.Span
}

func (b base) Span() token.Span { return b.Sp }

// SetSpan is used by the parser to backfill a span once a node's extent is
// known (e.g. a binary expression's span isn't final until both operands
// have been parsed).
func (b *base) SetSpan(s token.Span) { b.Sp = s }

// Annotated is implemented by nodes the parser may attach a pending
// annotation to: declarations, statements, call expressions.
type Annotated interface {
	Node
	Annotation() *token.Annotation
	SetAnnotation(*token.Annotation)
}
