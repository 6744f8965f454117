// Package searchctl drives iterative-deepening search under a depth or time
// budget and exposes a halt-and-retrieve handle to the caller.
package searchctl

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/blackriver/jieqi/pkg/board"
	"github.com/blackriver/jieqi/pkg/eval"
	"github.com/blackriver/jieqi/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
	"go.uber.org/atomic"
)

// Options hold the per-search depth/time limits (both may be set; whichever
// is reached first stops the search). N bounds how many ranked root moves
// are published; zero means "all legal moves".
type Options struct {
	DepthLimit lang.Optional[int]
	TimeBudget lang.Optional[time.Duration]
	N          int
}

func (o Options) String() string {
	var parts []string
	if v, ok := o.DepthLimit.V(); ok {
		parts = append(parts, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.TimeBudget.V(); ok {
		parts = append(parts, fmt.Sprintf("time=%v", v))
	}
	return fmt.Sprintf("[%v]", strings.Join(parts, ", "))
}

// PV is the outcome of one completed iterative-deepening depth: the ranked
// root-move list plus diagnostics (nodes visited, depth reached) that do not
// affect correctness.
type PV struct {
	Depth  int
	Ranked []search.RankedMove
	Nodes  uint64
	Time   time.Duration
}

// Searcher runs one fixed-depth root search, cooperatively checking abort.
// search.AlphaBeta satisfies this.
type Searcher interface {
	SearchRootDepth(b *board.Board, pov board.Color, depth int, abort *atomic.Bool) (uint64, []search.RankedMove)
}

func limitRanked(ranked []search.RankedMove, n int) []search.RankedMove {
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}

// staticRootPV is the depth-0 fallback: a static-evaluation ranking of root
// moves, returned when Halt is called before any depth completes.
func staticRootPV(b *board.Board, pov board.Color, e eval.Evaluator, n int) PV {
	legal := b.LegalMoves(b.Turn())
	ranked := make([]search.RankedMove, 0, len(legal))
	for _, m := range legal {
		mover, _ := b.PieceAt(m.From)
		wasHidden := mover.IsHidden
		captured, hadCapture := b.MakeMove(m)
		ranked = append(ranked, search.RankedMove{Move: m, Score: e.Evaluate(b, pov)})
		b.UndoMove(m, captured, hadCapture, wasHidden)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return PV{Depth: 0, Ranked: limitRanked(ranked, n)}
}
