package symtab

import (
	"sort"
	"testing"

	"github.com/viant/glowy/label"
	"github.com/stretchr/testify/assert"
)

func TestDeclareLookup(t *testing.T) {
	tab := New("fn.main")
	tab.Declare("x", label.Of("net"))
	assert.True(t, tab.Lookup("x").Has("net"))
}

func TestLookupUnboundIsBottom(t *testing.T) {
	tab := New("fn.main")
	assert.True(t, tab.Lookup("nope").IsBottom())
}

func TestAssignFindsOuterScope(t *testing.T) {
	tab := New("fn.main")
	tab.Declare("x", label.Bottom())
	tab.Push("fn.main.block1")
	tab.Assign("x", label.Of("net"))
	tab.Pop()
	assert.True(t, tab.Lookup("x").Has("net"), "assign in nested scope should update the outer binding")
}

func TestPushShadowsOuter(t *testing.T) {
	tab := New("fn.main")
	tab.Declare("x", label.Of("net"))
	tab.Push("fn.main.block1")
	tab.Declare("x", label.Bottom())
	assert.True(t, tab.Lookup("x").IsBottom())
	tab.Pop()
	assert.True(t, tab.Lookup("x").Has("net"), "popping should restore the shadowed outer binding")
}

func TestDiffDetectsTouchedVars(t *testing.T) {
	tab := New("fn.main")
	tab.Declare("x", label.Bottom())
	tab.Declare("y", label.Bottom())
	before := tab.Snapshot()
	tab.Assign("x", label.Of("net"))
	after := tab.Snapshot()

	touched := Diff(before, after)
	sort.Strings(touched)
	assert.Equal(t, []string{"x"}, touched)
}

func TestRestoreResetsState(t *testing.T) {
	tab := New("fn.main")
	tab.Declare("x", label.Bottom())
	snap := tab.Snapshot()
	tab.Assign("x", label.Of("net"))
	tab.Restore(snap)
	assert.True(t, tab.Lookup("x").IsBottom())
}
