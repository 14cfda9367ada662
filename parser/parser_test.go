package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/glowy/ast"
	"github.com/viant/glowy/parser"
	"github.com/viant/glowy/token"
)

func TestParseFuncDeclWithParamsAndBody(t *testing.T) {
	res := parser.Parse("t.gw", `package main

func add(a, b) {
	return a + b
}
`)
	require.Empty(t, res.LexErrors)
	require.Empty(t, res.ParseErrors)
	require.Len(t, res.File.Decls, 1)

	fn, ok := res.File.Decls[0].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, []string{"a", "b"}, fn.Params)
	require.Len(t, fn.Body.Stmts, 1)

	ret, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	require.True(t, ok)
	bin, ok := ret.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.ADD, bin.Op)
}

func TestParseExpressionPrecedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3): the outer node is the "+".
	res := parser.Parse("t.gw", `package main

func f() {
	x := 1 + 2 * 3
}
`)
	require.Empty(t, res.ParseErrors)
	fn := res.File.Decls[0].(*ast.FuncDecl)
	assign := fn.Body.Stmts[0].(*ast.AssignStmt)
	add, ok := assign.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.ADD, add.Op)
	mul, ok := add.Y.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.MUL, mul.Op)
}

func TestParseIfElse(t *testing.T) {
	res := parser.Parse("t.gw", `package main

func f() {
	if x == 1 {
		y := 1
	} else {
		y := 2
	}
}
`)
	require.Empty(t, res.ParseErrors)
	fn := res.File.Decls[0].(*ast.FuncDecl)
	ifStmt, ok := fn.Body.Stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	require.NotNil(t, ifStmt.Else)
	assert.Len(t, ifStmt.Then.Stmts, 1)
	assert.Len(t, ifStmt.Else.Stmts, 1)
}

func TestParseMakeChanAndSend(t *testing.T) {
	res := parser.Parse("t.gw", `package main

func f() {
	ch := make(chan int)
	ch <- 1
	v := <-ch
}
`)
	require.Empty(t, res.ParseErrors)
	fn := res.File.Decls[0].(*ast.FuncDecl)
	require.Len(t, fn.Body.Stmts, 3)

	assign, ok := fn.Body.Stmts[0].(*ast.AssignStmt)
	require.True(t, ok)
	_, ok = assign.Value.(*ast.MakeChanExpr)
	assert.True(t, ok)

	send, ok := fn.Body.Stmts[1].(*ast.SendStmt)
	require.True(t, ok)
	assert.Equal(t, "ch", send.Chan.(*ast.Ident).Name)
}

func TestParseAnnotationAttachesToNextDecl(t *testing.T) {
	res := parser.Parse("t.gw", `package main

// glowy::label::{high}
const secret = 1
`)
	require.Empty(t, res.ParseErrors)
	require.Empty(t, res.LexErrors)
	decl, ok := res.File.Decls[0].(*ast.ConstDecl)
	require.True(t, ok)
	require.NotNil(t, decl.Annot)
	assert.Equal(t, []string{"high"}, decl.Annot.Tags)
}

func TestParseDroppedAnnotationWarnsButContinues(t *testing.T) {
	// Two annotations in a row: the first is attached to nothing (the
	// second immediately overwrites the pending slot) and is reported as
	// a dropped annotation, not a fatal error.
	res := parser.Parse("t.gw", `package main

// glowy::label::{a}
// glowy::label::{b}
const x = 1
`)
	require.Empty(t, res.LexErrors)
	require.Len(t, res.ParseErrors, 1)
	assert.Equal(t, "DroppedAnnotation", res.ParseErrors[0].Kind)

	decl, ok := res.File.Decls[0].(*ast.ConstDecl)
	require.True(t, ok)
	require.NotNil(t, decl.Annot)
	assert.Equal(t, []string{"b"}, decl.Annot.Tags)
}

func TestParseRecoversFromMalformedStatement(t *testing.T) {
	res := parser.Parse("t.gw", `package main

func f() {
	)
	y := 2
}
`)
	require.NotEmpty(t, res.ParseErrors)
	fn, ok := res.File.Decls[0].(*ast.FuncDecl)
	require.True(t, ok)
	// The malformed token is skipped and the well-formed statement after
	// it still parses.
	require.NotEmpty(t, fn.Body.Stmts)
	last := fn.Body.Stmts[len(fn.Body.Stmts)-1]
	assign, ok := last.(*ast.AssignStmt)
	require.True(t, ok)
	assert.Equal(t, "y", assign.Target)
}

func TestParseGoStatementRequiresCall(t *testing.T) {
	res := parser.Parse("t.gw", `package main

func worker(x) {
	return x
}

func f() {
	go worker(1)
}
`)
	require.Empty(t, res.ParseErrors)
	fn := res.File.Decls[1].(*ast.FuncDecl)
	goStmt, ok := fn.Body.Stmts[0].(*ast.GoStmt)
	require.True(t, ok)
	require.NotNil(t, goStmt.Call)
	assert.Equal(t, "worker", goStmt.Call.Fun.(*ast.Ident).Name)
}
