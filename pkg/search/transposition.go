package search

import (
	"math/bits"

	"github.com/blackriver/jieqi/pkg/board"
	"github.com/blackriver/jieqi/pkg/eval"
)

// entry is one transposition-table slot: a packed node layout simplified for
// a single-writer search, which has exclusive, non-concurrent access to its
// own table.
type entry struct {
	hash  board.ZobristHash
	bound Bound
	depth int
	score eval.Score
	move  board.Move
	valid bool
}

type table struct {
	slots []entry
	mask  uint64
	used  uint64
}

// NewTranspositionTable allocates a table sized to the nearest power of two
// number of entries not exceeding size bytes.
func NewTranspositionTable(size uint64) TranspositionTable {
	const entrySize = 40
	n := uint64(1)
	if size > entrySize {
		n = uint64(1) << (63 - bits.LeadingZeros64(size/entrySize))
	}
	return &table{
		slots: make([]entry, n),
		mask:  n - 1,
	}
}

func (t *table) Read(hash board.ZobristHash) (Bound, int, eval.Score, board.Move, bool) {
	e := &t.slots[uint64(hash)&t.mask]
	if e.valid && e.hash == hash {
		return e.bound, e.depth, e.score, e.move, true
	}
	return 0, 0, 0, board.Move{}, false
}

// Write replaces the slot's occupant unless it holds a deeper search result
// for a different position (a simple prefer-deeper replacement policy); an
// entry for the same position is always overwritten.
func (t *table) Write(hash board.ZobristHash, bound Bound, depth int, score eval.Score, move board.Move) {
	e := &t.slots[uint64(hash)&t.mask]
	if e.valid && e.hash != hash && e.depth > depth {
		return
	}
	if !e.valid {
		t.used++
	}
	*e = entry{hash: hash, bound: bound, depth: depth, score: score, move: move, valid: true}
}

func (t *table) Size() uint64 {
	return uint64(len(t.slots)) * 40
}

func (t *table) Used() float64 {
	return float64(t.used) / float64(len(t.slots))
}

// NoTranspositionTable is a no-op table, useful when memory use must be
// minimized or for isolating tests from TT-dependent behavior.
type NoTranspositionTable struct{}

func (NoTranspositionTable) Read(board.ZobristHash) (Bound, int, eval.Score, board.Move, bool) {
	return 0, 0, 0, board.Move{}, false
}

func (NoTranspositionTable) Write(board.ZobristHash, Bound, int, eval.Score, board.Move) {}

func (NoTranspositionTable) Size() uint64 { return 0 }

func (NoTranspositionTable) Used() float64 { return 0 }
