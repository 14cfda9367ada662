package token

import (
	"encoding/binary"

	"github.com/minio/highwayhash"
)

// Position is a human-readable source location: 1-based line and column.
type Position struct {
	File   string
	Line   int
	Column int
}

// Span is a byte range within exactly one input file: every AST node
// reachable from the program root has a span that lies within exactly
// one input file.
type Span struct {
	File  string
	Start int // byte offset, inclusive
	End   int // byte offset, exclusive
	Begin Position
	Stop  Position
}

// stableIDKey is a fixed all-zero HighwayHash key. HighwayHash is used
// purely for content addressing — collapsing a (file, start, end) triple
// to a comparable 64-bit id for channel identity — never for
// authentication, so a fixed key is correct: it only needs to be stable
// across a single analysis run, not secret.
var stableIDKey = make([]byte, 32)

// StableID returns a content-derived 64-bit id for this span, stable for
// the lifetime of one analysis and reproducible across runs on the same
// input. The analyzer uses it as a channel allocation site's identity.
func (s Span) StableID() uint64 {
	buf := make([]byte, 0, len(s.File)+16)
	buf = append(buf, s.File...)
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(s.Start))
	buf = append(buf, tmp[:]...)
	binary.LittleEndian.PutUint64(tmp[:], uint64(s.End))
	buf = append(buf, tmp[:]...)
	sum := highwayhash.Sum64(buf, stableIDKey)
	return sum
}

// Join returns the smallest span covering both a and b. Both must belong to
// the same file.
func Join(a, b Span) Span {
	s := a
	if b.Start < s.Start {
		s.Start = b.Start
		s.Begin = b.Begin
	}
	if b.End > s.End {
		s.End = b.End
		s.Stop = b.Stop
	}
	return s
}
