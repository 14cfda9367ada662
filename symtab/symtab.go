// Package symtab tracks variable-to-label bindings across nested scopes.
// Unlike the AST, this state mutates throughout one analysis pass.
package symtab

import "github.com/viant/glowy/label"

// Scope is one lexical binding frame: a function body, a block, an if/for
// body. ID mirrors the hierarchical naming scheme ("pkg.FuncName.block1")
// so diagnostics can describe where a variable lives without re-deriving
// it from the AST.
type Scope struct {
	ID     string
	vars   map[string]label.Label
	parent *Scope
}

func newScope(id string, parent *Scope) *Scope {
	return &Scope{ID: id, vars: make(map[string]label.Label), parent: parent}
}

// Table is a stack of scopes, innermost last.
type Table struct {
	top   *Scope
	depth int
}

// New creates a table with one root scope (a function body).
func New(rootID string) *Table {
	return &Table{top: newScope(rootID, nil)}
}

// Push opens a nested scope (entering a block, if-branch, or loop body).
func (t *Table) Push(id string) {
	t.top = newScope(id, t.top)
	t.depth++
}

// Pop closes the innermost scope, discarding bindings local to it.
func (t *Table) Pop() {
	if t.top.parent != nil {
		t.top = t.top.parent
		t.depth--
	}
}

// Declare binds name to lbl in the innermost scope, shadowing any outer
// binding of the same name (a `:=` short declaration). Re-declaring a name
// already bound directly in this scope unions the new label with the old
// one rather than discarding it.
func (t *Table) Declare(name string, lbl label.Label) {
	if old, ok := t.top.vars[name]; ok {
		lbl = label.Union(old, lbl)
	}
	t.top.vars[name] = lbl
}

// DeclaredLocally reports whether name is bound directly in the innermost
// scope, without walking outward — used to tell a fresh `:=` binding from
// one that should union with an existing local.
func (t *Table) DeclaredLocally(name string) (label.Label, bool) {
	l, ok := t.top.vars[name]
	return l, ok
}

// Lookup returns the label bound to name, searching outward through
// enclosing scopes. An unbound name is treated as untainted (label.Bottom)
// rather than an error: the supported grammar has no static declarations
// for function parameters beyond what Declare binds at call entry.
func (t *Table) Lookup(name string) label.Label {
	l, _ := t.LookupOK(name)
	return l
}

// LookupOK is Lookup plus whether name is bound in any visible scope,
// letting a caller fall back to a different namespace (the global symbol
// table) when it isn't a local.
func (t *Table) LookupOK(name string) (label.Label, bool) {
	for s := t.top; s != nil; s = s.parent {
		if l, ok := s.vars[name]; ok {
			return l, true
		}
	}
	return label.Bottom(), false
}

// Assign updates name's label in whichever scope already binds it
// (plain `=`), or declares it fresh in the innermost scope if no
// enclosing scope binds it yet.
func (t *Table) Assign(name string, lbl label.Label) {
	for s := t.top; s != nil; s = s.parent {
		if _, ok := s.vars[name]; ok {
			s.vars[name] = lbl
			return
		}
	}
	t.top.vars[name] = lbl
}

// Snapshot captures every variable visible at the current scope, flattened
// to name -> label, innermost binding winning. Used to compare state
// before and after a branch so its net effect on enclosing variables can
// be joined back in.
func (t *Table) Snapshot() map[string]label.Label {
	out := make(map[string]label.Label)
	var scopes []*Scope
	for s := t.top; s != nil; s = s.parent {
		scopes = append(scopes, s)
	}
	for i := len(scopes) - 1; i >= 0; i-- {
		for name, l := range scopes[i].vars {
			out[name] = l
		}
	}
	return out
}

// Diff returns the set of variable names whose label differs between two
// snapshots — the variables a branch actually touched, and so the only
// ones that need joining at the merge point.
func Diff(before, after map[string]label.Label) []string {
	var touched []string
	seen := make(map[string]bool)
	for name, a := range after {
		b, ok := before[name]
		if !ok || !label.Equal(a, b) {
			if !seen[name] {
				touched = append(touched, name)
				seen[name] = true
			}
		}
	}
	for name := range before {
		if _, ok := after[name]; !ok {
			if !seen[name] {
				touched = append(touched, name)
				seen[name] = true
			}
		}
	}
	return touched
}

// Restore writes every binding in snap back into whichever scope already
// holds that name (falling back to the innermost scope), used to reset
// state before re-running the other side of a branch.
func (t *Table) Restore(snap map[string]label.Label) {
	for name, l := range snap {
		t.Assign(name, l)
	}
}
