package searchctl

import (
	"context"
	"sync"
	"time"

	"github.com/blackriver/jieqi/pkg/board"
	"github.com/blackriver/jieqi/pkg/eval"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
	"go.uber.org/atomic"
)

// Launcher starts an iterative-deepening search against a board the caller
// has handed over exclusive use of for the duration of the search.
type Launcher interface {
	Launch(ctx context.Context, b *board.Board, pov board.Color, opt Options) (Handle, <-chan PV)
}

// Handle lets the caller halt an in-flight search and retrieve its most
// recently completed depth. Halt is idempotent.
type Handle interface {
	Halt() PV
}

// Iterative runs Search at depth 1, 2, ..., publishing a PV after each depth
// completes, until DepthLimit or TimeBudget is reached or Halt is called. A
// depth that is in progress when the time budget expires is discarded, never
// published.
type Iterative struct {
	Search Searcher
	Eval   eval.Evaluator
}

func (i Iterative) Launch(ctx context.Context, b *board.Board, pov board.Color, opt Options) (Handle, <-chan PV) {
	out := make(chan PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
		pv:   staticRootPV(b.Clone(), pov, i.Eval, opt.N),
	}
	go h.process(ctx, i.Search, i.Eval, b, pov, opt, out)

	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser
	abort      atomic.Bool

	pv PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, s Searcher, e eval.Evaluator, b *board.Board, pov board.Color, opt Options, out chan PV) {
	defer h.init.Close()
	defer close(out)

	if budget, ok := opt.TimeBudget.V(); ok {
		time.AfterFunc(budget, func() {
			h.abort.Store(true)
			h.quit.Close()
		})
	}

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()
	go func() {
		<-wctx.Done()
		h.abort.Store(true)
		h.quit.Close()
	}()

	start := time.Now()
	maxDepth, hasDepthLimit := opt.DepthLimit.V()
	budget, hasBudget := opt.TimeBudget.V()

	depth := 1
	for !h.quit.IsClosed() {
		depthStart := time.Now()
		nodes, ranked := s.SearchRootDepth(b, pov, depth, &h.abort)

		if h.abort.Load() {
			return // mid-depth abort: this depth's scores are tainted, discard it
		}

		pv := PV{Depth: depth, Ranked: limitRanked(ranked, opt.N), Nodes: nodes, Time: time.Since(depthStart)}
		logw.Debugf(ctx, "Searched to depth=%v: nodes=%v time=%v", depth, pv.Nodes, pv.Time)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()

		if hasDepthLimit && depth >= maxDepth {
			return
		}
		if hasBudget && time.Since(start) >= budget {
			return
		}
		if len(ranked) == 0 {
			return // no legal moves at the root
		}
		depth++
	}
}

func (h *handle) Halt() PV {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}
