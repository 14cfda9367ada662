package analyzer

import (
	"github.com/viant/glowy/ast"
	"github.com/viant/glowy/diagnostic"
	"github.com/viant/glowy/label"
	"github.com/viant/glowy/symtab"
	"github.com/viant/glowy/token"
)

const maxLoopFixedPointIters = 64

// ctx is the mutable state one visitation pass threads through the
// statement/expression rules.
type ctx struct {
	a       *Analyzer
	tab     *symtab.Table
	pc      []label.Label
	current string

	// diagnostics is true only during the final pass (or a probe spawned
	// from it): sink checks fire and calls recursively probe callees with
	// concrete argument labels.
	diagnostics bool
	report      *diagnostic.Report
	probeDepth  int
	visiting    map[string]bool

	// raiseOnly is true only during the channel-raising pre-pass that
	// runs ahead of the final diagnostic pass: calls and go statements
	// are still followed with concrete argument labels, so every send
	// reachable from an entry point raises its channel, but no sink is
	// checked and nothing is written to a report.
	raiseOnly bool

	// trackSummary is true only while computing a function's own summary
	// during the worklist phase, with parameters bound synthetically.
	trackSummary bool
	returnAcc    label.Label
	writesChan   bool

	chanAlias map[string][]uint64
}

func (c *ctx) pcLabel() label.Label { return c.pc[len(c.pc)-1] }

func (c *ctx) pushPC(extra label.Label) {
	c.pc = append(c.pc, label.Union(c.pcLabel(), extra))
}

func (c *ctx) popPC() { c.pc = c.pc[:len(c.pc)-1] }

func (c *ctx) inBranch() bool { return len(c.pc) > 1 }

func isSink(a *token.Annotation) bool { return a != nil && a.Scope == token.ScopeSink }

// applyAnnotation folds a node's bound annotation into its computed label:
// a `label` annotation unions its tags in; a `declassify` annotation
// replaces the computed label outright, whether that raises or lowers it.
// An unrecognized scope (anything but label/sink/declassify) is left for
// the analyzer to ignore, with a W002 warning during diagnostics.
func (c *ctx) applyAnnotation(computed label.Label, a *token.Annotation) label.Label {
	if a == nil {
		return computed
	}
	switch a.Scope {
	case token.ScopeLabel:
		return label.Union(computed, label.Of(a.Tags...))
	case token.ScopeDeclassify:
		if c.diagnostics && computed.IsBottom() {
			c.report.Add(diagnostic.FromSpan(diagnostic.CodeNoOpDeclassify, diagnostic.SeverityWarning, a.Span,
				"declassify applied to an already-untainted value"))
		}
		return label.Of(a.Tags...)
	case token.ScopeSink:
		return computed // sinks are checked separately; they don't alter the label
	default:
		if c.diagnostics {
			c.report.Add(diagnostic.FromSpan(diagnostic.CodeUnknownScope, diagnostic.SeverityWarning, a.Span,
				"unrecognized annotation scope, ignored"))
		}
		return computed
	}
}

// checkSink compares candidate (plus the current branch label) against a
// sink annotation's declared clearance, emitting E002 or E003 depending on
// whether the excess tags trace to a branch merge of viaName.
func (c *ctx) checkSink(span token.Span, a *token.Annotation, candidate label.Label, viaName string) {
	if !isSink(a) || !c.diagnostics {
		return
	}
	required := label.Of(a.Tags...)
	reaching := label.Union(candidate, c.pcLabel())
	if label.Subset(reaching, required) {
		return
	}
	code := diagnostic.CodeInsecureFlow
	if viaName != "" && c.a.branchTouched[viaName] {
		code = diagnostic.CodeImplicitBranch
	}
	d := diagnostic.FromSpan(code, diagnostic.SeverityError, span, "value reaching sink exceeds its declared clearance")
	d.Label = reaching.String()
	d.Required = required.String()
	c.report.Add(d)
}

// ---------------------------------------------------------------- statements

func (c *ctx) block(b *ast.BlockStmt) {
	if b == nil {
		return
	}
	c.tab.Push(c.current + ".block")
	for _, s := range b.Stmts {
		c.stmt(s)
	}
	c.tab.Pop()
}

func (c *ctx) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.BlockStmt:
		c.block(n)
	case *ast.AssignStmt:
		c.assignStmt(n)
	case *ast.IncDecStmt:
		c.incDecStmt(n)
	case *ast.ReturnStmt:
		c.returnStmt(n)
	case *ast.IfStmt:
		c.ifStmt(n)
	case *ast.ForStmt:
		c.forStmt(n)
	case *ast.GoStmt:
		c.goStmt(n)
	case *ast.SendStmt:
		c.sendStmt(n)
	case *ast.ExprStmt:
		c.exprStmt(n)
	}
}

func (c *ctx) assignStmt(n *ast.AssignStmt) {
	valLabel := c.expr(n.Value)

	if mc, ok := n.Value.(*ast.MakeChanExpr); ok {
		c.chanAlias[n.Target] = []uint64{mc.Span().StableID()}
	}

	switch n.Op {
	case token.ADD_ASSIGN, token.SUB_ASSIGN, token.MUL_ASSIGN, token.QUO_ASSIGN:
		old := c.tab.Lookup(n.Target)
		merged := label.Union(old, label.Union(valLabel, c.pcLabel()))
		merged = c.applyAnnotation(merged, n.Annot)
		c.tab.Assign(n.Target, merged)
	default:
		computed := c.applyAnnotation(label.Union(valLabel, c.pcLabel()), n.Annot)
		if n.Define {
			c.tab.Declare(n.Target, computed)
		} else if c.inBranch() {
			old := c.tab.Lookup(n.Target)
			c.tab.Assign(n.Target, label.Union(old, computed))
		} else {
			c.tab.Assign(n.Target, computed)
		}
	}

	c.checkSink(n.Span(), n.Annot, valLabel, n.Target)
}

func (c *ctx) incDecStmt(n *ast.IncDecStmt) {
	old := c.tab.Lookup(n.Target)
	merged := c.applyAnnotation(label.Union(old, c.pcLabel()), n.Annot)
	c.tab.Assign(n.Target, merged)
	c.checkSink(n.Span(), n.Annot, old, n.Target)
}

func (c *ctx) returnStmt(n *ast.ReturnStmt) {
	val := label.Bottom()
	if n.Value != nil {
		val = c.expr(n.Value)
	}
	merged := c.applyAnnotation(label.Union(val, c.pcLabel()), n.Annot)
	if c.trackSummary {
		c.returnAcc = label.Union(c.returnAcc, merged)
	}
	c.checkSink(n.Span(), n.Annot, val, "")
}

func (c *ctx) ifStmt(n *ast.IfStmt) {
	condLabel := c.expr(n.Cond)
	c.pushPC(condLabel)

	before := c.tab.Snapshot()
	c.block(n.Then)
	afterT := c.tab.Snapshot()
	c.tab.Restore(before)

	var afterE map[string]label.Label
	if n.Else != nil {
		c.block(n.Else)
		afterE = c.tab.Snapshot()
	} else {
		afterE = before
	}
	c.tab.Restore(before)

	touched := make(map[string]bool)
	for _, v := range symtab.Diff(before, afterT) {
		touched[v] = true
	}
	for _, v := range symtab.Diff(before, afterE) {
		touched[v] = true
	}
	for v := range touched {
		merged := label.Union(before[v], label.Union(afterT[v], afterE[v]))
		c.tab.Assign(v, merged)
		c.a.branchTouched[v] = true
	}

	c.popPC()
	c.checkSink(n.Span(), n.Annot, label.Bottom(), "")
}

func (c *ctx) forStmt(n *ast.ForStmt) {
	for i := 0; i < maxLoopFixedPointIters; i++ {
		condLabel := c.expr(n.Cond)
		c.pushPC(condLabel)
		before := c.tab.Snapshot()
		c.block(n.Body)
		after := c.tab.Snapshot()
		c.popPC()
		if snapshotsEqual(before, after) {
			break
		}
	}
	c.checkSink(n.Span(), n.Annot, label.Bottom(), "")
}

func snapshotsEqual(a, b map[string]label.Label) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		bv, ok := b[k]
		if !ok || !label.Equal(v, bv) {
			return false
		}
	}
	return true
}

func (c *ctx) goStmt(n *ast.GoStmt) {
	if n.Call == nil {
		return
	}
	c.callExpr(n.Call)
	c.checkSink(n.Span(), n.Annot, label.Bottom(), "")
}

func (c *ctx) sendStmt(n *ast.SendStmt) {
	valLabel := c.expr(n.Value)
	raised := label.Union(valLabel, c.pcLabel())
	if c.trackSummary {
		// Summary-mode binds parameters to synthetic tags, not real
		// argument data; raising the shared channel store here would
		// permanently mix synthetic placeholders into cells the later
		// passes read for receive labels. A function's channel-writing
		// effect is already captured on its Summary (below) and replayed
		// with real arguments by the channel-raising pre-pass and the
		// final probe pass, which are the ones that raise real channels.
		c.writesChan = true
	} else {
		ids := c.chanIDsOf(n.Chan)
		for _, id := range ids {
			c.a.channels.Raise(id, raised)
		}
	}
	c.checkSink(n.Span(), n.Annot, raised, "")
}

func (c *ctx) exprStmt(n *ast.ExprStmt) {
	if call, ok := n.X.(*ast.CallExpr); ok {
		_, argLabels := c.evalCall(call)
		c.checkSink(n.Span(), n.Annot, label.UnionAll(argLabels...), "")
		return
	}
	lbl := c.expr(n.X)
	if ident, ok := n.X.(*ast.Ident); ok {
		c.checkSink(n.Span(), n.Annot, lbl, ident.Name)
		return
	}
	c.checkSink(n.Span(), n.Annot, lbl, "")
}

// ---------------------------------------------------------------- expressions

func (c *ctx) expr(e ast.Expr) label.Label {
	switch n := e.(type) {
	case *ast.Ident:
		return c.identLabel(n.Name)
	case *ast.Literal:
		return label.Bottom()
	case *ast.BinaryExpr:
		return label.Union(c.expr(n.X), c.expr(n.Y))
	case *ast.UnaryExpr:
		if n.Op == token.ARROW {
			ids := c.chanIDsOf(n.X)
			return c.a.channels.Label(ids)
		}
		return c.expr(n.X)
	case *ast.CallExpr:
		lbl, _ := c.evalCall(n)
		return lbl
	case *ast.IndexExpr:
		return label.Union(c.expr(n.X), c.expr(n.Index))
	case *ast.MakeChanExpr:
		id := n.Span().StableID()
		c.a.channels.Alloc(id)
		return label.Bottom()
	default:
		return label.Top()
	}
}

func (c *ctx) identLabel(name string) label.Label {
	if l, ok := c.tab.LookupOK(name); ok {
		return l
	}
	if g, ok := c.a.globals[name]; ok {
		if name != c.current {
			c.a.deps.AddEdge(c.current, name)
		}
		return g.label
	}
	return label.Bottom()
}

// chanIDsOf resolves the channel allocation sites a channel-typed
// expression may denote. Only the directly-aliased-Ident shape is
// tracked; anything more
// indirect simply yields no ids, so a send/receive through it has no
// observable effect rather than a false positive.
func (c *ctx) chanIDsOf(e ast.Expr) []uint64 {
	switch n := e.(type) {
	case *ast.MakeChanExpr:
		return []uint64{n.Span().StableID()}
	case *ast.Ident:
		return c.chanAlias[n.Name]
	default:
		return nil
	}
}

// evalCall computes a call expression's label and the labels of its
// arguments (returned so a sink on an enclosing expression-statement can
// check every immediate argument).
func (c *ctx) evalCall(call *ast.CallExpr) (label.Label, []label.Label) {
	argLabels := make([]label.Label, len(call.Args))
	for i, a := range call.Args {
		argLabels[i] = c.expr(a)
	}

	ident, isIdent := call.Fun.(*ast.Ident)
	var result label.Label

	if isIdent {
		if g, ok := c.a.globals[ident.Name]; ok && g.kind == "func" {
			calleeName := ident.Name
			if calleeName != c.current {
				c.a.deps.AddEdge(c.current, calleeName)
				c.a.callGraph.AddEdge(c.current, calleeName)
			}
			for i, a := range call.Args {
				argIdent, ok := a.(*ast.Ident)
				if !ok {
					continue
				}
				for _, id := range c.chanAlias[argIdent.Name] {
					if c.a.chanAlias.Add(calleeName, i, id) {
						c.a.pendingRevisits = append(c.a.pendingRevisits, calleeName)
					}
				}
			}
			if summary, ok := c.a.summaries[calleeName]; ok {
				result = summary.Apply(argLabels)
			} else {
				result = label.UnionAll(argLabels...)
			}
			if (c.diagnostics || c.raiseOnly) && !c.visiting[calleeName] {
				next := make(map[string]bool, len(c.visiting)+1)
				for k := range c.visiting {
					next[k] = true
				}
				next[calleeName] = true
				if c.diagnostics {
					c.a.probe(calleeName, argLabels, c.probeDepth+1, c.report, next)
				} else {
					c.a.raiseChannels(calleeName, argLabels, c.probeDepth+1, next)
				}
			}
		} else {
			result = label.UnionAll(argLabels...)
		}
	} else {
		result = label.UnionAll(argLabels...)
	}

	result = c.applyAnnotation(result, call.Annot)
	return result, argLabels
}

func (c *ctx) callExpr(call *ast.CallExpr) label.Label {
	lbl, _ := c.evalCall(call)
	return lbl
}
