package ast

import "github.com/viant/glowy/token"

// BlockStmt is `{ stmt; stmt; ... }`.
type BlockStmt struct {
	base
	Stmts []Stmt
}

func (s *BlockStmt) stmtNode() {}

// AssignStmt covers `x = e`, `x := e`, and compound forms `x += e` (spec
// §3: "assignment, short-declaration"). Define distinguishes `:=` (new
// binding) from `=`; Op is token.ASSIGN for a plain `=`, or one of the
// ADD_ASSIGN/SUB_ASSIGN/MUL_ASSIGN/QUO_ASSIGN compound operators.
type AssignStmt struct {
	base
	Target string
	Op     token.Kind
	Define bool
	Value  Expr
	Annot  *token.Annotation
}

func (s *AssignStmt) stmtNode()                        {}
func (s *AssignStmt) Annotation() *token.Annotation     { return s.Annot }
func (s *AssignStmt) SetAnnotation(a *token.Annotation) { s.Annot = a }

// IncDecStmt is `x++` or `x--`.
type IncDecStmt struct {
	base
	Target string
	Op     token.Kind // INC or DEC
	Annot  *token.Annotation
}

func (s *IncDecStmt) stmtNode()                        {}
func (s *IncDecStmt) Annotation() *token.Annotation     { return s.Annot }
func (s *IncDecStmt) SetAnnotation(a *token.Annotation) { s.Annot = a }

// ReturnStmt is `return e`.
type ReturnStmt struct {
	base
	Value Expr // nil for a bare `return`
	Annot *token.Annotation
}

func (s *ReturnStmt) stmtNode()                        {}
func (s *ReturnStmt) Annotation() *token.Annotation     { return s.Annot }
func (s *ReturnStmt) SetAnnotation(a *token.Annotation) { s.Annot = a }

// IfStmt is `if cond { Then } else { Else }`. Else may be nil.
type IfStmt struct {
	base
	Cond  Expr
	Then  *BlockStmt
	Else  *BlockStmt
	Annot *token.Annotation
}

func (s *IfStmt) stmtNode()                        {}
func (s *IfStmt) Annotation() *token.Annotation     { return s.Annot }
func (s *IfStmt) SetAnnotation(a *token.Annotation) { s.Annot = a }

// ForStmt is `for cond { Body }` — the supported subset's only loop form.
type ForStmt struct {
	base
	Cond  Expr
	Body  *BlockStmt
	Annot *token.Annotation
}

func (s *ForStmt) stmtNode()                        {}
func (s *ForStmt) Annotation() *token.Annotation     { return s.Annot }
func (s *ForStmt) SetAnnotation(a *token.Annotation) { s.Annot = a }

// GoStmt is `go Call(...)`.
type GoStmt struct {
	base
	Call  *CallExpr
	Annot *token.Annotation
}

func (s *GoStmt) stmtNode()                        {}
func (s *GoStmt) Annotation() *token.Annotation     { return s.Annot }
func (s *GoStmt) SetAnnotation(a *token.Annotation) { s.Annot = a }

// SendStmt is `ch <- e`.
type SendStmt struct {
	base
	Chan  Expr
	Value Expr
	Annot *token.Annotation
}

func (s *SendStmt) stmtNode()                        {}
func (s *SendStmt) Annotation() *token.Annotation     { return s.Annot }
func (s *SendStmt) SetAnnotation(a *token.Annotation) { s.Annot = a }

// ExprStmt is a bare expression used as a statement (e.g. a call for its
// side effects). It is the node the sink annotation most
// commonly binds to.
type ExprStmt struct {
	base
	X     Expr
	Annot *token.Annotation
}

func (s *ExprStmt) stmtNode()                        {}
func (s *ExprStmt) Annotation() *token.Annotation     { return s.Annot }
func (s *ExprStmt) SetAnnotation(a *token.Annotation) { s.Annot = a }
