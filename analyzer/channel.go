package analyzer

import "github.com/viant/glowy/label"

// channelStore holds one label cell per channel allocation site.
// Cells only ever grow, so Raise is the only mutator.
type channelStore struct {
	cells map[uint64]label.Label
}

func newChannelStore() *channelStore {
	return &channelStore{cells: make(map[uint64]label.Label)}
}

// Alloc registers a fresh channel at id if one isn't already there
// (calling Alloc on an id already present is a no-op: the same `make`
// expression is revisited every analysis iteration).
func (c *channelStore) Alloc(id uint64) {
	if _, ok := c.cells[id]; !ok {
		c.cells[id] = label.Bottom()
	}
}

// Raise joins l into the channel's current label — a send.
func (c *channelStore) Raise(id uint64, l label.Label) {
	c.cells[id] = label.Union(c.cells[id], l)
}

// Label returns the union of every channel in ids — a receive through an
// alias set that may denote more than one allocation site.
func (c *channelStore) Label(ids []uint64) label.Label {
	out := label.Bottom()
	for _, id := range ids {
		out = label.Union(out, c.cells[id])
	}
	return out
}

// Snapshot copies the current per-channel labels, used to detect when a
// round of raising has stopped changing anything.
func (c *channelStore) Snapshot() map[uint64]label.Label {
	out := make(map[uint64]label.Label, len(c.cells))
	for id, l := range c.cells {
		out[id] = l
	}
	return out
}

// channelsEqual reports whether two channel-store snapshots hold the
// same label at every id.
func channelsEqual(a, b map[uint64]label.Label) bool {
	if len(a) != len(b) {
		return false
	}
	for id, l := range a {
		bl, ok := b[id]
		if !ok || !label.Equal(l, bl) {
			return false
		}
	}
	return true
}

// paramAliasSet records, for one function's parameter position, every
// channel allocation site ever observed bound to it at a call site. It
// only grows, so re-visiting a function after new aliasing is discovered
// is a monotone refinement like everything else in the fixed point.
type paramAliasSet struct {
	byFunc map[string]map[int]map[uint64]bool
}

func newParamAliasSet() *paramAliasSet {
	return &paramAliasSet{byFunc: make(map[string]map[int]map[uint64]bool)}
}

// Add records that fn's parameter at index was called with a reference to
// channel id. It reports whether this is new information, so the driver
// knows whether fn needs re-visiting.
func (p *paramAliasSet) Add(fn string, index int, id uint64) (grew bool) {
	if p.byFunc[fn] == nil {
		p.byFunc[fn] = make(map[int]map[uint64]bool)
	}
	if p.byFunc[fn][index] == nil {
		p.byFunc[fn][index] = make(map[uint64]bool)
	}
	if p.byFunc[fn][index][id] {
		return false
	}
	p.byFunc[fn][index][id] = true
	return true
}

// Get returns every channel id ever observed for fn's parameter at index.
func (p *paramAliasSet) Get(fn string, index int) []uint64 {
	ids := p.byFunc[fn][index]
	out := make([]uint64, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	return out
}
