package ast

import "github.com/viant/glowy/token"

// Ident is a bare name reference.
type Ident struct {
	base
	Name string
}

func (e *Ident) exprNode() {}

// Literal is an integer, float, string, rune, or boolean constant.
type Literal struct {
	base
	Kind  token.Kind // INT, FLOAT, STRING, RUNE, TRUE, FALSE
	Value string
}

func (e *Literal) exprNode() {}

// BinaryExpr is `x OP y`.
type BinaryExpr struct {
	base
	Op    token.Kind
	X, Y  Expr
}

func (e *BinaryExpr) exprNode() {}

// UnaryExpr is `OP x` (`!x`, `-x`) or a channel receive `<-x` when
// Op == token.ARROW.
type UnaryExpr struct {
	base
	Op token.Kind
	X  Expr
}

func (e *UnaryExpr) exprNode() {}

// CallExpr is `Fn(args...)`. Annotations (most often `sink`) can bind to
// call expressions directly.
type CallExpr struct {
	base
	Fun   Expr
	Args  []Expr
	Annot *token.Annotation
}

func (e *CallExpr) exprNode()                         {}
func (e *CallExpr) Annotation() *token.Annotation      { return e.Annot }
func (e *CallExpr) SetAnnotation(a *token.Annotation)  { e.Annot = a }

// IndexExpr is `x[i]`.
type IndexExpr struct {
	base
	X     Expr
	Index Expr
}

func (e *IndexExpr) exprNode() {}

// MakeChanExpr is `make(chan T)` — the one `make` form the supported
// subset parses.
type MakeChanExpr struct {
	base
	ElemType string
}

func (e *MakeChanExpr) exprNode() {}
