// Package engine provides the facade a front end drives: reset to a
// position, apply or take back moves, and run (or halt) an analysis. It is
// the one stateful, concurrency-aware layer above the pure board/eval/search
// packages.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/blackriver/jieqi/pkg/board"
	"github.com/blackriver/jieqi/pkg/board/fen"
	"github.com/blackriver/jieqi/pkg/eval"
	"github.com/blackriver/jieqi/pkg/search"
	"github.com/blackriver/jieqi/pkg/search/searchctl"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// Options are engine creation/runtime options.
type Options struct {
	// Depth is the default search depth limit used by Analyze/SelectMoves
	// when the caller does not specify one. Zero means no default limit.
	Depth int
	// Hash is the transposition table size in MB. Zero disables the table.
	Hash uint
	// Noise bounds tie-breaking evaluation noise in score points (eval.Random);
	// zero or negative disables it. Gives weaker engine profiles some variety
	// instead of always repeating the same line against a fixed evaluator.
	Noise int
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%v, noise=%v}", o.Depth, o.Hash, o.Noise)
}

// Engine encapsulates the current position, its undo history, and any
// in-flight analysis. Not safe for concurrent use by multiple front-end
// goroutines beyond the single analysis it itself manages: re-entry on the
// same Board is forbidden.
type Engine struct {
	name, author string
	eval         eval.Evaluator
	zobrist      *board.ZobristTable
	opts         Options
	noiseSeed    int64

	b       *board.Board
	history []moveRecord
	tt      search.TranspositionTable
	active  searchctl.Handle

	mu sync.Mutex
}

type moveRecord struct {
	move       board.Move
	captured   board.CapturedPieceInfo
	hadCapture bool
	wasHidden  bool
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithOptions sets the engine's default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) { e.opts = opts }
}

// WithEvaluator overrides the default eval.Standard{} evaluator.
func WithEvaluator(ev eval.Evaluator) Option {
	return func(e *Engine) { e.eval = ev }
}

// WithZobrist seeds the Zobrist table with a fixed seed instead of zero,
// useful for reproducible transposition-table behavior in tests.
func WithZobrist(seed int64) Option {
	return func(e *Engine) { e.zobrist = board.NewZobristTable(seed) }
}

// WithNoiseSeed seeds Options.Noise's random source with a fixed seed instead
// of zero, useful for reproducible tie-breaking behavior in tests.
func WithNoiseSeed(seed int64) Option {
	return func(e *Engine) { e.noiseSeed = seed }
}

// New constructs an engine reset to the canonical Jieqi starting position.
func New(ctx context.Context, name, author string, opts ...Option) (*Engine, error) {
	e := &Engine{
		name:    name,
		author:  author,
		eval:    eval.Standard{},
		zobrist: board.NewZobristTable(0),
	}
	for _, fn := range opts {
		fn(e)
	}
	if e.opts.Noise > 0 {
		e.eval = eval.Noisy{Evaluator: e.eval, Rand: eval.NewRandom(e.opts.Noise, e.noiseSeed)}
	}

	if err := e.Reset(ctx, fen.Initial); err != nil {
		return nil, err
	}

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e, nil
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the engine author.
func (e *Engine) Author() string {
	return e.author
}

// Position returns the current position in FEN.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.b)
}

// Board returns a clone of the current board, safe for the caller to
// inspect or mutate without affecting the engine's own state.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b.Clone()
}

// Reset resets the engine to position, given in FEN notation, halting any
// active analysis first.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset %v, depth=%v, hash=%vMB", position, e.opts.Depth, e.opts.Hash)

	e.haltActiveLocked(ctx)

	b, err := fen.Decode(position)
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}

	e.b = b
	e.history = nil
	e.tt = search.NoTranspositionTable{}
	if e.opts.Hash > 0 {
		e.tt = search.NewTranspositionTable(uint64(e.opts.Hash) << 20)
	}

	logw.Infof(ctx, "New position: %v", e.b)
	return nil
}

// Move applies moveText to the current position. It must name a legal move;
// an unrecognized or illegal move leaves the position unchanged and returns
// an error.
func (e *Engine) Move(ctx context.Context, moveText string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltActiveLocked(ctx)

	candidate, revealed, err := board.ParseMoveText(moveText)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	legal := e.b.LegalMoves(e.b.Turn())
	found := false
	for _, m := range legal {
		if m.Equals(candidate) {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("illegal move: %v", candidate)
	}

	mover, _ := e.b.PieceAt(candidate.From)
	wasHidden := mover.IsHidden

	apply := candidate
	if candidate.IsReveal() && revealed != board.NoPieceType {
		// Stipulate the drawn identity before replaying as a plain move, the
		// same chance-node boundary trick the search uses.
		saved := e.b.SimulateReveal(candidate.From, revealed)
		if !saved.HadPiece() {
			return fmt.Errorf("illegal move: %v: no piece to reveal", candidate)
		}
		apply = board.Move{Action: board.MovePlain, From: candidate.From, To: candidate.To}
	}

	captured, hadCapture := e.b.MakeMove(apply)
	// Record the move as given (a reveal stays a reveal) with the pre-reveal
	// hidden state, so TakeBack hides the piece again.
	e.history = append(e.history, moveRecord{move: candidate, captured: captured, hadCapture: hadCapture, wasHidden: wasHidden})

	logw.Infof(ctx, "Move %v: %v", candidate, e.b)
	return nil
}

// TakeBack undoes the most recent move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltActiveLocked(ctx)

	if len(e.history) == 0 {
		return fmt.Errorf("no move to take back")
	}

	last := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]
	e.b.UndoMove(last.move, last.captured, last.hadCapture, last.wasHidden)

	logw.Infof(ctx, "Takeback %v: %v", last.move, e.b)
	return nil
}

// Analyze launches an interactive iterative-deepening search over a clone of
// the current position, returning a channel of PVs; Halt stops it. Only one
// analysis may be active at a time.
func (e *Engine) Analyze(ctx context.Context, opt searchctl.Options) (<-chan searchctl.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	if _, ok := opt.DepthLimit.V(); !ok && e.opts.Depth > 0 {
		opt.DepthLimit = lang.Some(e.opts.Depth)
	}

	logw.Infof(ctx, "Analyze %v, opt=%v", e.b, opt)

	launcher := searchctl.Iterative{
		Search: search.AlphaBeta{Eval: e.eval, TT: e.tt, Zobrist: e.zobrist},
		Eval:   e.eval,
	}
	handle, out := launcher.Launch(ctx, e.b.Clone(), e.b.Turn(), opt)
	e.active = handle
	return out, nil
}

// Halt halts the active analysis and returns its most recent PV.
func (e *Engine) Halt(ctx context.Context) (searchctl.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		return searchctl.PV{}, fmt.Errorf("no active search")
	}

	pv := e.active.Halt()
	e.active = nil

	logw.Infof(ctx, "Halt: depth=%v nodes=%v", pv.Depth, pv.Nodes)
	return pv, nil
}

// SelectMoves runs a blocking search to its natural stopping point (depth
// limit, time budget, or exhaustion of legal moves) and returns the final
// ranked move list, for callers that don't need the interactive Analyze/Halt
// session.
func (e *Engine) SelectMoves(ctx context.Context, n int, opt searchctl.Options) ([]search.RankedMove, searchctl.PV, error) {
	e.mu.Lock()
	if e.active != nil {
		e.mu.Unlock()
		return nil, searchctl.PV{}, fmt.Errorf("search already active")
	}
	b := e.b.Clone()
	pov := e.b.Turn()
	ev := e.eval
	tt := e.tt
	zt := e.zobrist
	if _, ok := opt.DepthLimit.V(); !ok && e.opts.Depth > 0 {
		opt.DepthLimit = lang.Some(e.opts.Depth)
	}
	e.mu.Unlock()

	opt.N = n
	launcher := searchctl.Iterative{Search: search.AlphaBeta{Eval: ev, TT: tt, Zobrist: zt}, Eval: ev}

	handle, out := launcher.Launch(ctx, b, pov, opt)
	var last searchctl.PV
	for pv := range out {
		last = pv
	}
	_ = handle // already drained to completion; Halt would just replay last

	return last.Ranked, last, nil
}

func (e *Engine) haltActiveLocked(ctx context.Context) {
	if e.active != nil {
		pv := e.active.Halt()
		logw.Infof(ctx, "Search halted by state change: depth=%v nodes=%v", pv.Depth, pv.Nodes)
		e.active = nil
	}
}
