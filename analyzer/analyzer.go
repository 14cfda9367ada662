// Package analyzer implements the fixed-point taint propagation engine:
// the worklist driver, function summaries, channel labels, and the final
// sink-checking pass, built around a visitor-driven AST traversal and a
// call-graph closure over it.
package analyzer

import (
	"fmt"

	"github.com/viant/glowy/ast"
	"github.com/viant/glowy/depgraph"
	"github.com/viant/glowy/diagnostic"
	"github.com/viant/glowy/label"
	"github.com/viant/glowy/symtab"
	"github.com/viant/glowy/token"
)

const (
	defaultMaxSteps       = 200000
	maxProbeDepth         = 32
	maxChannelRaiseRounds = 64
)

// Option configures an Analyzer at construction via the usual Go
// functional-options convention.
type Option func(*Analyzer)

// WithMaxSteps bounds the worklist driver's total pop count. Exceeding it
// reports E005 rather than looping forever on a runaway input.
func WithMaxSteps(n int) Option {
	return func(a *Analyzer) { a.maxSteps = n }
}

type global struct {
	name  string
	kind  string // "func", "var", "const"
	decl  ast.Decl
	label label.Label
}

// Analyzer owns every piece of mutable state the fixed-point computation
// needs: the global symbol table, the dependency map, per-function
// summaries, and the channel-label store.
type Analyzer struct {
	prog    *ast.Program
	globals map[string]*global
	order   []string

	deps      *depgraph.Graph // reference edges, drives re-enqueue
	callGraph *depgraph.Graph // call edges only, used to find entry points

	summaries map[string]Summary
	channels  *channelStore
	chanAlias *paramAliasSet

	branchTouched map[string]bool // vars ever updated by an if/else merge

	maxSteps        int
	steps           int
	timedOut        bool
	pendingRevisits []string
}

// New builds an Analyzer over prog, ready to Run.
func New(prog *ast.Program, opts ...Option) *Analyzer {
	a := &Analyzer{
		prog:          prog,
		globals:       make(map[string]*global),
		deps:          depgraph.New(),
		callGraph:     depgraph.New(),
		summaries:     make(map[string]Summary),
		channels:      newChannelStore(),
		chanAlias:     newParamAliasSet(),
		branchTouched: make(map[string]bool),
		maxSteps:      defaultMaxSteps,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the full pipeline over prog and returns the sorted report.
func Analyze(prog *ast.Program, opts ...Option) *diagnostic.Report {
	return New(prog, opts...).Run()
}

// Run executes the fixed-point worklist loop, then the final sink-checking
// pass, and returns a deterministically sorted diagnostic report.
func (a *Analyzer) Run() *diagnostic.Report {
	a.initGlobals()

	wl := depgraph.NewWorklist(a.order...)
	for {
		name, ok := wl.Pop()
		if !ok {
			break
		}
		a.steps++
		if a.steps > a.maxSteps {
			a.timedOut = true
			break
		}
		if a.visitGlobal(name) {
			for _, dep := range a.deps.Callers(name) {
				wl.Add(dep)
			}
		}
		for _, fn := range a.pendingRevisits {
			wl.Add(fn)
		}
		a.pendingRevisits = nil
	}

	report := &diagnostic.Report{}
	if a.timedOut {
		report.Add(diagnostic.Diagnostic{
			Code:     diagnostic.CodeAnalysisTimeout,
			Severity: diagnostic.SeverityError,
			Message:  fmt.Sprintf("analysis did not reach a fixed point within %d steps", a.maxSteps),
		})
		return report
	}

	a.runFinalPass(report)
	report.Sort()
	return report
}

// initGlobals declares every top-level symbol with its annotation-derived
// initial label.
func (a *Analyzer) initGlobals() {
	for _, f := range a.prog.Files {
		for _, d := range f.Decls {
			g := &global{decl: d, label: label.Bottom()}
			switch n := d.(type) {
			case *ast.FuncDecl:
				g.name, g.kind = n.Name, "func"
				g.label = applyGlobalAnnotation(n.Annot)
			case *ast.VarDecl:
				g.name, g.kind = n.Name, "var"
				g.label = applyGlobalAnnotation(n.Annot)
			case *ast.ConstDecl:
				g.name, g.kind = n.Name, "const"
				g.label = applyGlobalAnnotation(n.Annot)
			default:
				continue
			}
			a.globals[g.name] = g
			a.order = append(a.order, g.name)
		}
	}
}

func applyGlobalAnnotation(a *token.Annotation) label.Label {
	if a == nil || a.Scope != token.ScopeLabel {
		return label.Bottom()
	}
	return label.Of(a.Tags...)
}

// visitGlobal re-visits one global symbol's declaration and reports
// whether its label (or, for a function, its summary) grew.
func (a *Analyzer) visitGlobal(name string) bool {
	g := a.globals[name]
	switch d := g.decl.(type) {
	case *ast.FuncDecl:
		return a.visitFuncSummary(name, d)
	case *ast.VarDecl:
		return a.visitGlobalValue(g, d.Value, d.Annot)
	case *ast.ConstDecl:
		return a.visitGlobalValue(g, d.Value, d.Annot)
	}
	return false
}

func (a *Analyzer) visitGlobalValue(g *global, value ast.Expr, annot *token.Annotation) bool {
	c := &ctx{a: a, tab: symtab.New(g.name), pc: []label.Label{label.Bottom()}, current: g.name, chanAlias: map[string][]uint64{}}
	var computed label.Label
	if value != nil {
		computed = c.expr(value)
	}
	computed = c.applyAnnotation(computed, annot)
	old := g.label
	g.label = computed
	return grown(old, computed)
}

func (a *Analyzer) visitFuncSummary(name string, fd *ast.FuncDecl) bool {
	tab := symtab.New(name)
	for i, p := range fd.Params {
		tab.Declare(p, label.Of(label.SyntheticTag(i)))
	}
	c := &ctx{
		a: a, tab: tab, pc: []label.Label{label.Bottom()}, current: name,
		trackSummary: true, chanAlias: map[string][]uint64{},
	}
	for i, p := range fd.Params {
		c.chanAlias[p] = a.chanAlias.Get(name, i)
	}
	c.block(fd.Body)

	old := a.summaries[name]
	next := Summary{ReturnLabel: c.returnAcc, WritesChannel: old.WritesChannel || c.writesChan}
	a.summaries[name] = next
	return grown(old.ReturnLabel, next.ReturnLabel) || (next.WritesChannel && !old.WritesChannel)
}

// grown reports whether new is a strict superset of old, the monotone
// growth check that drives re-enqueuing.
func grown(old, next label.Label) bool {
	return !label.Equal(old, next) && label.Subset(old, next)
}

// entryPoints returns every function nothing in the program calls (or,
// if none qualify, every function), the roots the final pass walks out
// from.
func (a *Analyzer) entryPoints() []string {
	var entries []string
	for _, name := range a.order {
		if a.globals[name].kind != "func" {
			continue
		}
		if len(a.callGraph.Callers(name)) == 0 {
			entries = append(entries, name)
		}
	}
	if len(entries) == 0 {
		for _, name := range a.order {
			if a.globals[name].kind == "func" {
				entries = append(entries, name)
			}
		}
	}
	return entries
}

// runFinalPass re-walks every reachable function from each entry point
// (a function nothing in the program calls), substituting concrete
// argument labels at every call so a sink inside a called function is
// checked once per call site rather than once generically.
func (a *Analyzer) runFinalPass(report *diagnostic.Report) {
	entries := a.entryPoints()

	// A single linear walk from each entry raises a channel's cell only
	// as it encounters each `ch <- e` in traversal order; a `<-ch` visited
	// earlier in that same walk would see a label missing a send that
	// comes later (e.g. textually, or down a different goroutine spawned
	// later). Raising every channel to a fixed point first, independent
	// of diagnostics, makes every receive below see the full union
	// regardless of where in the walk it sits.
	a.raiseChannelsToFixedPoint(entries)

	for _, name := range entries {
		fd, ok := a.globals[name].decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		zeroArgs := make([]label.Label, len(fd.Params))
		for i := range zeroArgs {
			zeroArgs[i] = label.Bottom()
		}
		a.probe(name, zeroArgs, 0, report, map[string]bool{name: true})
	}
}

// raiseChannelsToFixedPoint re-walks every entry point, call graph and
// all, raising every channel send it reaches, repeating full rounds
// until a round raises nothing new. Mirrors forStmt's
// snapshot-equality fixed point, generalized from one loop body to the
// whole reachable call graph.
func (a *Analyzer) raiseChannelsToFixedPoint(entries []string) {
	for round := 0; round < maxChannelRaiseRounds; round++ {
		before := a.channels.Snapshot()
		for _, name := range entries {
			fd, ok := a.globals[name].decl.(*ast.FuncDecl)
			if !ok {
				continue
			}
			zeroArgs := make([]label.Label, len(fd.Params))
			for i := range zeroArgs {
				zeroArgs[i] = label.Bottom()
			}
			a.raiseChannels(name, zeroArgs, 0, map[string]bool{name: true})
		}
		if channelsEqual(before, a.channels.Snapshot()) {
			return
		}
	}
}

// raiseChannels walks fn's body the same way probe does, following
// calls and go statements with concrete argument labels, but performs no
// sink checks and writes no diagnostics — its only effect is raising the
// shared channel store.
func (a *Analyzer) raiseChannels(name string, args []label.Label, depth int, visiting map[string]bool) {
	if depth > maxProbeDepth {
		return
	}
	g, ok := a.globals[name]
	if !ok {
		return
	}
	fd, ok := g.decl.(*ast.FuncDecl)
	if !ok {
		return
	}

	tab := symtab.New(name)
	chanAlias := map[string][]uint64{}
	for i, p := range fd.Params {
		l := label.Bottom()
		if i < len(args) {
			l = args[i]
		}
		tab.Declare(p, l)
		chanAlias[p] = a.chanAlias.Get(name, i)
	}

	c := &ctx{
		a: a, tab: tab, pc: []label.Label{label.Bottom()}, current: name,
		raiseOnly: true, probeDepth: depth, visiting: visiting,
		chanAlias: chanAlias,
	}
	c.block(fd.Body)
}

// probe re-walks fn's body with its parameters bound to args (concrete
// labels, not synthetic tags), checking every sink reached and recursing
// into any function it calls with that call's own concrete arguments.
// depth is capped to bound recursion through call chains; visiting guards
// against infinite mutual recursion.
func (a *Analyzer) probe(name string, args []label.Label, depth int, report *diagnostic.Report, visiting map[string]bool) {
	if depth > maxProbeDepth {
		return
	}
	g, ok := a.globals[name]
	if !ok {
		return
	}
	fd, ok := g.decl.(*ast.FuncDecl)
	if !ok {
		return
	}

	tab := symtab.New(name)
	chanAlias := map[string][]uint64{}
	for i, p := range fd.Params {
		l := label.Bottom()
		if i < len(args) {
			l = args[i]
		}
		tab.Declare(p, l)
		chanAlias[p] = a.chanAlias.Get(name, i)
	}

	c := &ctx{
		a: a, tab: tab, pc: []label.Label{label.Bottom()}, current: name,
		diagnostics: true, report: report, probeDepth: depth, visiting: visiting,
		chanAlias: chanAlias,
	}
	c.block(fd.Body)
}
