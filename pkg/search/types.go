// Package search implements the expectimax engine: a fixed-point-of-view
// minimax over decision nodes, with chance nodes interposed at
// reveal-and-move actions, pruned by alpha-beta.
package search

import (
	"github.com/blackriver/jieqi/pkg/board"
	"github.com/blackriver/jieqi/pkg/eval"
)

// Bound records whether a transposition-table entry's score is exact or only
// a one-sided bound left by an alpha-beta cutoff. Unlike a negamax engine,
// this engine's nodes keep a fixed point of view, so both a max-node
// fail-high (LowerBound) and a min-node fail-low (UpperBound) can occur.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "Exact"
	case LowerBound:
		return "Lower"
	case UpperBound:
		return "Upper"
	default:
		return "?"
	}
}

// RankedMove is one root move paired with its searched score.
type RankedMove struct {
	Move  board.Move
	Score eval.Score
}

// TranspositionTable speeds up repeated searches of the same position. The
// search owns its table exclusively for the duration of one call;
// implementations need not be concurrency-safe.
type TranspositionTable interface {
	Read(hash board.ZobristHash) (Bound, int, eval.Score, board.Move, bool)
	Write(hash board.ZobristHash, bound Bound, depth int, score eval.Score, move board.Move)
	Size() uint64
	Used() float64
}
