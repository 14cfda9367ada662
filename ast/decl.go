package ast

import "github.com/viant/glowy/token"

// FuncDecl is `func name(params) { body }`. Parameters are plain
// identifiers; there are no methods or receivers.
type FuncDecl struct {
	base
	Name   string
	Params []string
	Body   *BlockStmt
	Annot  *token.Annotation
}

func (d *FuncDecl) declNode()                          {}
func (d *FuncDecl) Annotation() *token.Annotation       { return d.Annot }
func (d *FuncDecl) SetAnnotation(a *token.Annotation)   { d.Annot = a }

// VarDecl is `var name = expr` (or a bare `var name` with no initializer).
type VarDecl struct {
	base
	Name  string
	Value Expr // nil if no initializer
	Annot *token.Annotation
}

func (d *VarDecl) declNode()                        {}
func (d *VarDecl) Annotation() *token.Annotation     { return d.Annot }
func (d *VarDecl) SetAnnotation(a *token.Annotation) { d.Annot = a }

// ConstDecl is `const name = expr`.
type ConstDecl struct {
	base
	Name  string
	Value Expr
	Annot *token.Annotation
}

func (d *ConstDecl) declNode()                        {}
func (d *ConstDecl) Annotation() *token.Annotation     { return d.Annot }
func (d *ConstDecl) SetAnnotation(a *token.Annotation) { d.Annot = a }
