// Package parser implements a recursive-descent parser over the lexer's
// peekable token stream, producing the ast package's tree. Like the
// lexer, it is hand-written rather than adapted from go/parser.
package parser

import (
	"fmt"

	"github.com/viant/glowy/ast"
	"github.com/viant/glowy/lexer"
	"github.com/viant/glowy/token"
)

// Error is one parser-level diagnostic.
type Error struct {
	Kind string // "Expected" or "Unsupported"
	Span token.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s:%d:%d: %s", e.Kind, e.Span.File, e.Span.Begin.Line, e.Span.Begin.Column, e.Msg)
}

// Parser holds one pending annotation slot: the most recently
// consumed Annotation token, attached to the next node that accepts one.
type Parser struct {
	stream  *lexer.Stream
	tok     token.Token
	pending *token.Annotation

	errors []*Error
}

// Result is the outcome of parsing one file: the AST plus every lex/parse
// diagnostic collected. Parsing never aborts early.
type Result struct {
	File       *ast.File
	LexErrors  []*lexer.Error
	ParseErrors []*Error
}

// Parse parses one file's source into an AST, best-effort.
func Parse(file, src string) *Result {
	p := &Parser{stream: lexer.NewStream(file, src)}
	p.advance()
	f := p.parseFile(file)
	return &Result{File: f, LexErrors: p.stream.Errors(), ParseErrors: p.errors}
}

func (p *Parser) advance() {
	// An annotation token is buffered, not surfaced to the grammar: it
	// becomes the pending annotation for whatever node parses next.
	for {
		t := p.stream.Next()
		if t.Kind == token.ANNOTATION {
			if p.pending != nil {
				p.warnDroppedAnnotation(*p.pending)
			}
			a := *t.Annot
			p.pending = &a
			continue
		}
		p.tok = t
		return
	}
}

func (p *Parser) warnDroppedAnnotation(a token.Annotation) {
	// Surfaced as a W001 warning at the diagnostic layer; the parser
	// itself only needs to record that it happened so callers can report it.
	p.errors = append(p.errors, &Error{Kind: "DroppedAnnotation", Span: a.Span, Msg: "annotation attached to no node"})
}

// takePending consumes and returns the currently pending annotation, if any.
func (p *Parser) takePending() *token.Annotation {
	a := p.pending
	p.pending = nil
	return a
}

func (p *Parser) errExpected(what string) {
	p.errors = append(p.errors, &Error{
		Kind: "Expected",
		Span: p.tok.Span,
		Msg:  fmt.Sprintf("expected %s, found %s %q", what, p.tok.Kind, p.tok.Lexeme),
	})
}

func (p *Parser) errUnsupported(construct string) {
	p.errors = append(p.errors, &Error{
		Kind: "Unsupported",
		Span: p.tok.Span,
		Msg:  fmt.Sprintf("unsupported construct: %s", construct),
	})
}

// expect consumes the current token if it matches kind, else records an
// Expected error and leaves the cursor in place (the caller's recover()
// call is responsible for resynchronizing).
func (p *Parser) expect(kind token.Kind) token.Token {
	if p.tok.Kind != kind {
		p.errExpected(kind.String())
		return p.tok
	}
	t := p.tok
	p.advance()
	return t
}

func (p *Parser) at(kind token.Kind) bool { return p.tok.Kind == kind }

// recover skips tokens until the next semicolon or closing brace, so one
// malformed statement doesn't abort the rest of the file.
func (p *Parser) recover() {
	for {
		switch p.tok.Kind {
		case token.SEMICOLON:
			p.advance()
			return
		case token.RBRACE, token.EOF:
			return
		}
		p.advance()
	}
}

func (p *Parser) skipSemicolon() {
	if p.at(token.SEMICOLON) {
		p.advance()
	}
}

// ---------------------------------------------------------------- file

func (p *Parser) parseFile(filename string) *ast.File {
	f := &ast.File{Name: filename}

	if p.at(token.PACKAGE) {
		p.advance()
		if p.at(token.IDENT) {
			f.Package = p.tok.Lexeme
			p.advance()
		} else {
			p.errExpected("package name")
		}
		p.skipSemicolon()
	}

	for p.at(token.IMPORT) {
		p.advance()
		if p.at(token.STRING) {
			f.Imports = append(f.Imports, p.tok.Lexeme)
			p.advance()
		} else if p.at(token.LPAREN) {
			p.advance()
			for !p.at(token.RPAREN) && !p.at(token.EOF) {
				if p.at(token.STRING) {
					f.Imports = append(f.Imports, p.tok.Lexeme)
					p.advance()
				}
				p.skipSemicolon()
			}
			p.expect(token.RPAREN)
		} else {
			p.errExpected("import path")
		}
		p.skipSemicolon()
	}

	for !p.at(token.EOF) {
		annot := p.takePending()
		decl := p.parseDecl(annot)
		if decl != nil {
			f.Decls = append(f.Decls, decl)
		} else {
			p.recover()
		}
	}
	return f
}

func (p *Parser) parseDecl(annot *token.Annotation) ast.Decl {
	switch p.tok.Kind {
	case token.FUNC:
		return p.parseFuncDecl(annot)
	case token.VAR:
		return p.parseVarDecl(annot)
	case token.CONST:
		return p.parseConstDecl(annot)
	default:
		p.errExpected("declaration (func, var, or const)")
		return nil
	}
}

func (p *Parser) parseFuncDecl(annot *token.Annotation) ast.Decl {
	start := p.tok.Span
	p.expect(token.FUNC)
	name := ""
	if p.at(token.IDENT) {
		name = p.tok.Lexeme
		p.advance()
	} else {
		p.errExpected("function name")
	}
	p.expect(token.LPAREN)
	var params []string
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		if p.at(token.IDENT) {
			params = append(params, p.tok.Lexeme)
			p.advance()
		}
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	body := p.parseBlock()
	d := &ast.FuncDecl{Name: name, Params: params, Body: body, Annot: annot}
	d.Sp = token.Join(start, p.lastSpan(body))
	p.skipSemicolon()
	return d
}

func (p *Parser) lastSpan(b *ast.BlockStmt) token.Span {
	if b == nil {
		return p.tok.Span
	}
	return b.Span()
}

func (p *Parser) parseVarDecl(annot *token.Annotation) ast.Decl {
	start := p.tok.Span
	p.expect(token.VAR)
	name := ""
	if p.at(token.IDENT) {
		name = p.tok.Lexeme
		p.advance()
	} else {
		p.errExpected("variable name")
	}
	var value ast.Expr
	if p.at(token.ASSIGN) {
		p.advance()
		value = p.parseExpr()
	}
	d := &ast.VarDecl{Name: name, Value: value, Annot: annot}
	d.Sp = token.Join(start, p.tok.Span)
	p.skipSemicolon()
	return d
}

func (p *Parser) parseConstDecl(annot *token.Annotation) ast.Decl {
	start := p.tok.Span
	p.expect(token.CONST)
	name := ""
	if p.at(token.IDENT) {
		name = p.tok.Lexeme
		p.advance()
	} else {
		p.errExpected("constant name")
	}
	var value ast.Expr
	if p.at(token.ASSIGN) {
		p.advance()
		value = p.parseExpr()
	}
	d := &ast.ConstDecl{Name: name, Value: value, Annot: annot}
	d.Sp = token.Join(start, p.tok.Span)
	p.skipSemicolon()
	return d
}

// ---------------------------------------------------------------- statements

func (p *Parser) parseBlock() *ast.BlockStmt {
	start := p.tok.Span
	b := &ast.BlockStmt{}
	if !p.at(token.LBRACE) {
		p.errExpected("{")
		b.Sp = start
		return b
	}
	p.advance()
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		annot := p.takePending()
		stmt := p.parseStmt(annot)
		if stmt != nil {
			b.Stmts = append(b.Stmts, stmt)
		} else {
			p.recover()
		}
	}
	end := p.tok.Span
	p.expect(token.RBRACE)
	b.Sp = token.Join(start, end)
	return b
}

func (p *Parser) parseStmt(annot *token.Annotation) ast.Stmt {
	switch p.tok.Kind {
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIf(annot)
	case token.FOR:
		return p.parseFor(annot)
	case token.RETURN:
		return p.parseReturn(annot)
	case token.GO:
		return p.parseGo(annot)
	case token.IDENT:
		return p.parseSimpleStmt(annot)
	case token.ARROW:
		// <-ch used as a bare statement (discard the received value).
		start := p.tok.Span
		x := p.parseExpr()
		s := &ast.ExprStmt{X: x, Annot: annot}
		s.Sp = token.Join(start, p.tok.Span)
		p.skipSemicolon()
		return s
	default:
		p.errUnsupported(fmt.Sprintf("statement starting with %s", p.tok.Kind))
		return nil
	}
}

func (p *Parser) parseIf(annot *token.Annotation) ast.Stmt {
	start := p.tok.Span
	p.expect(token.IF)
	cond := p.parseExpr()
	then := p.parseBlock()
	var elseBlock *ast.BlockStmt
	if p.at(token.ELSE) {
		p.advance()
		if p.at(token.IF) {
			// `else if` desugars to a single-statement else block.
			nested := p.parseIf(nil)
			elseBlock = &ast.BlockStmt{Stmts: []ast.Stmt{nested}}
			elseBlock.Sp = nested.Span()
		} else {
			elseBlock = p.parseBlock()
		}
	}
	s := &ast.IfStmt{Cond: cond, Then: then, Else: elseBlock, Annot: annot}
	s.Sp = token.Join(start, p.tok.Span)
	p.skipSemicolon()
	return s
}

func (p *Parser) parseFor(annot *token.Annotation) ast.Stmt {
	start := p.tok.Span
	p.expect(token.FOR)
	cond := p.parseExpr()
	body := p.parseBlock()
	s := &ast.ForStmt{Cond: cond, Body: body, Annot: annot}
	s.Sp = token.Join(start, p.tok.Span)
	p.skipSemicolon()
	return s
}

func (p *Parser) parseReturn(annot *token.Annotation) ast.Stmt {
	start := p.tok.Span
	p.expect(token.RETURN)
	var value ast.Expr
	if !p.at(token.SEMICOLON) && !p.at(token.RBRACE) && !p.at(token.EOF) {
		value = p.parseExpr()
	}
	s := &ast.ReturnStmt{Value: value, Annot: annot}
	s.Sp = token.Join(start, p.tok.Span)
	p.skipSemicolon()
	return s
}

func (p *Parser) parseGo(annot *token.Annotation) ast.Stmt {
	start := p.tok.Span
	p.expect(token.GO)
	callExpr := p.parseExpr()
	call, ok := callExpr.(*ast.CallExpr)
	if !ok {
		p.errExpected("call expression after go")
	}
	s := &ast.GoStmt{Call: call, Annot: annot}
	s.Sp = token.Join(start, p.tok.Span)
	p.skipSemicolon()
	return s
}

// parseSimpleStmt handles the statement forms that start with an
// identifier: plain assignment, short declaration, compound assignment,
// increment/decrement, channel send, or a bare expression statement (most
// commonly a call).
func (p *Parser) parseSimpleStmt(annot *token.Annotation) ast.Stmt {
	start := p.tok.Span
	name := p.tok.Lexeme
	// Parse the leading operand as a full expression first; the token that
	// follows it (an assignment operator, ++/--, `<-`, or anything else)
	// decides which statement form this is. Selector forms such as
	// `a.b()` are not parsed: the expression ends at the `.`.
	first := p.parseExpr()

	switch p.tok.Kind {
	case token.DEFINE, token.ASSIGN, token.ADD_ASSIGN, token.SUB_ASSIGN, token.MUL_ASSIGN, token.QUO_ASSIGN:
		ident, ok := first.(*ast.Ident)
		if !ok {
			p.errExpected("identifier on left of assignment")
			ident = &ast.Ident{Name: name}
		}
		op := p.tok.Kind
		define := op == token.DEFINE
		p.advance()
		value := p.parseExpr()
		s := &ast.AssignStmt{Target: ident.Name, Op: op, Define: define, Value: value, Annot: annot}
		s.Sp = token.Join(start, p.tok.Span)
		p.skipSemicolon()
		return s
	case token.INC, token.DEC:
		ident, ok := first.(*ast.Ident)
		if !ok {
			p.errExpected("identifier before ++/--")
			ident = &ast.Ident{Name: name}
		}
		op := p.tok.Kind
		p.advance()
		s := &ast.IncDecStmt{Target: ident.Name, Op: op, Annot: annot}
		s.Sp = token.Join(start, p.tok.Span)
		p.skipSemicolon()
		return s
	case token.ARROW:
		p.advance()
		value := p.parseExpr()
		s := &ast.SendStmt{Chan: first, Value: value, Annot: annot}
		s.Sp = token.Join(start, p.tok.Span)
		p.skipSemicolon()
		return s
	default:
		s := &ast.ExprStmt{X: first, Annot: annot}
		s.Sp = token.Join(start, p.tok.Span)
		p.skipSemicolon()
		return s
	}
}

// ---------------------------------------------------------------- expressions
//
// Precedence, low to high: || < && < comparison < add < mul < unary.

func (p *Parser) parseExpr() ast.Expr { return p.parseOr() }

func (p *Parser) parseOr() ast.Expr {
	x := p.parseAnd()
	for p.at(token.LOR) {
		op := p.tok.Kind
		p.advance()
		y := p.parseAnd()
		bx := &ast.BinaryExpr{Op: op, X: x, Y: y}
		bx.SetSpan(token.Join(x.Span(), y.Span()))
		x = bx
	}
	return x
}

func (p *Parser) parseAnd() ast.Expr {
	x := p.parseComparison()
	for p.at(token.LAND) {
		op := p.tok.Kind
		p.advance()
		y := p.parseComparison()
		bx := &ast.BinaryExpr{Op: op, X: x, Y: y}
		bx.SetSpan(token.Join(x.Span(), y.Span()))
		x = bx
	}
	return x
}

func (p *Parser) parseComparison() ast.Expr {
	x := p.parseAdd()
	for p.at(token.EQL) || p.at(token.NEQ) || p.at(token.LSS) || p.at(token.LEQ) || p.at(token.GTR) || p.at(token.GEQ) {
		op := p.tok.Kind
		p.advance()
		y := p.parseAdd()
		bx := &ast.BinaryExpr{Op: op, X: x, Y: y}
		bx.SetSpan(token.Join(x.Span(), y.Span()))
		x = bx
	}
	return x
}

func (p *Parser) parseAdd() ast.Expr {
	x := p.parseMul()
	for p.at(token.ADD) || p.at(token.SUB) {
		op := p.tok.Kind
		p.advance()
		y := p.parseMul()
		bx := &ast.BinaryExpr{Op: op, X: x, Y: y}
		bx.SetSpan(token.Join(x.Span(), y.Span()))
		x = bx
	}
	return x
}

func (p *Parser) parseMul() ast.Expr {
	x := p.parseUnary()
	for p.at(token.MUL) || p.at(token.QUO) || p.at(token.REM) {
		op := p.tok.Kind
		p.advance()
		y := p.parseUnary()
		bx := &ast.BinaryExpr{Op: op, X: x, Y: y}
		bx.SetSpan(token.Join(x.Span(), y.Span()))
		x = bx
	}
	return x
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.tok.Kind {
	case token.NOT, token.SUB:
		op := p.tok.Kind
		start := p.tok.Span
		p.advance()
		x := p.parseUnary()
		ux := &ast.UnaryExpr{Op: op, X: x}
		ux.SetSpan(token.Join(start, x.Span()))
		return ux
	case token.ARROW:
		start := p.tok.Span
		p.advance()
		x := p.parseUnary()
		ux := &ast.UnaryExpr{Op: token.ARROW, X: x}
		ux.SetSpan(token.Join(start, x.Span()))
		return ux
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		switch p.tok.Kind {
		case token.LPAREN:
			x = p.parseCall(x)
		case token.LBRACK:
			start := x.Span()
			p.advance()
			idx := p.parseExpr()
			end := p.tok.Span
			p.expect(token.RBRACK)
			ix := &ast.IndexExpr{X: x, Index: idx}
			ix.SetSpan(token.Join(start, end))
			x = ix
		default:
			return x
		}
	}
}

func (p *Parser) parseCall(fun ast.Expr) ast.Expr {
	start := fun.Span()
	p.expect(token.LPAREN)
	var args []ast.Expr
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		args = append(args, p.parseExpr())
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	end := p.tok.Span
	p.expect(token.RPAREN)
	c := &ast.CallExpr{Fun: fun, Args: args}
	c.Sp = token.Join(start, end)
	if pending := p.takePending(); pending != nil {
		c.Annot = pending
	}
	return c
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.tok
	switch tok.Kind {
	case token.IDENT:
		p.advance()
		id := &ast.Ident{Name: tok.Lexeme}
		id.SetSpan(tok.Span)
		return id
	case token.INT, token.FLOAT, token.STRING, token.RUNE:
		p.advance()
		lit := &ast.Literal{Kind: tok.Kind, Value: tok.Lexeme}
		lit.SetSpan(tok.Span)
		return lit
	case token.TRUE, token.FALSE:
		p.advance()
		lit := &ast.Literal{Kind: tok.Kind, Value: tok.Lexeme}
		lit.SetSpan(tok.Span)
		return lit
	case token.LPAREN:
		p.advance()
		x := p.parseExpr()
		p.expect(token.RPAREN)
		return x
	case token.MAKE:
		return p.parseMake()
	default:
		p.errExpected("expression")
		p.advance()
		lit := &ast.Literal{Kind: token.ILLEGAL, Value: ""}
		lit.SetSpan(tok.Span)
		return lit
	}
}

func (p *Parser) parseMake() ast.Expr {
	start := p.tok.Span
	p.expect(token.MAKE)
	p.expect(token.LPAREN)
	p.expect(token.CHAN)
	elem := ""
	if p.at(token.IDENT) {
		elem = p.tok.Lexeme
		p.advance()
	} else {
		p.errExpected("channel element type")
	}
	end := p.tok.Span
	p.expect(token.RPAREN)
	mk := &ast.MakeChanExpr{ElemType: elem}
	mk.SetSpan(token.Join(start, end))
	return mk
}
