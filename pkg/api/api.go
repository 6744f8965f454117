// Package api defines the wire-shaped request/response types a front end
// would marshal over its stdin/stdout JSON loop, plus the one pure function
// that dispatches a decoded request to an engine.Engine. It performs no I/O
// itself: reading stdin, writing stdout and looping are the front end's job.
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/blackriver/jieqi/pkg/board"
	"github.com/blackriver/jieqi/pkg/board/fen"
	"github.com/blackriver/jieqi/pkg/engine"
	"github.com/blackriver/jieqi/pkg/eval"
	"github.com/blackriver/jieqi/pkg/hidden"
	"github.com/blackriver/jieqi/pkg/search"
	"github.com/blackriver/jieqi/pkg/search/searchctl"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Request is the decoded shape of a front-end command. Not every field is
// meaningful for every Cmd.
type Request struct {
	Cmd       string `json:"cmd"` // "moves" | "best" | "eval" | "search" | "quit"
	FEN       string `json:"fen"`
	TimeLimit *int64 `json:"time_limit,omitempty"` // milliseconds
	N         *int   `json:"n,omitempty"`
	Depth     *int   `json:"depth,omitempty"`
}

// RankedMove is one (move, score) pair in wire form.
type RankedMove struct {
	Move  string  `json:"move"`
	Score float64 `json:"score"`
}

// SearchStats are search diagnostics exposed alongside a result; they do not
// affect correctness.
type SearchStats struct {
	DepthReached int     `json:"depth_reached"`
	Nodes        uint64  `json:"nodes"`
	NPS          float64 `json:"nps"`
	ElapsedMS    int64   `json:"elapsed_ms"`
}

// ChanceOutcome is one reveal-child of a RootMoveDebug: the identity the
// moving piece could turn out to be, its prior probability, and the static
// evaluation (unweighted by the probability) of the position after the move
// with that identity.
type ChanceOutcome struct {
	Type        string  `json:"type"`
	Probability float64 `json:"probability"`
	Score       float64 `json:"score"`
}

// RootMoveDebug is one root move's one-ply debug breakdown.
type RootMoveDebug struct {
	Move           string          `json:"move"`
	SearchScore    float64         `json:"search_score"`
	ResultingFEN   string          `json:"resulting_fen"`
	ChanceOutcomes []ChanceOutcome `json:"chance_outcomes,omitempty"`
}

// SearchDebug is the one-ply analysis tree: every root move, its search
// score, the FEN it leads to, and (for reveal moves) the chance-outcome
// breakdown over the moving side's hidden pool. It holds no opponent
// replies.
type SearchDebug struct {
	RootMoves []RootMoveDebug `json:"root_moves"`
}

// Response is the wire shape returned for a Request.
type Response struct {
	OK        bool         `json:"ok"`
	Error     string       `json:"error,omitempty"`
	Moves     []string     `json:"moves,omitempty"`
	Ranked    []RankedMove `json:"ranked,omitempty"`
	Eval      *float64     `json:"eval,omitempty"`
	Stats     *SearchStats `json:"stats,omitempty"`
	DebugTree *SearchDebug `json:"debug,omitempty"`
}

func errResponse(err error) Response {
	return Response{OK: false, Error: err.Error()}
}

// Dispatch decodes req against e and returns the corresponding response. It
// never reads stdin, writes stdout, or loops.
func Dispatch(ctx context.Context, e *engine.Engine, req Request) Response {
	switch req.Cmd {
	case "moves":
		return dispatchMoves(ctx, e, req)
	case "eval":
		return dispatchEval(ctx, e, req)
	case "best":
		return dispatchSearch(ctx, e, req, false)
	case "search":
		return dispatchSearch(ctx, e, req, true)
	case "quit":
		return Response{OK: true}
	default:
		return Response{OK: false, Error: fmt.Sprintf("unknown cmd %q", req.Cmd)}
	}
}

func resetIfGiven(ctx context.Context, e *engine.Engine, fenText string) error {
	if fenText == "" {
		return nil
	}
	return e.Reset(ctx, fenText)
}

func dispatchMoves(ctx context.Context, e *engine.Engine, req Request) Response {
	if err := resetIfGiven(ctx, e, req.FEN); err != nil {
		return errResponse(err)
	}

	b := e.Board()
	legal := b.LegalMoves(b.Turn())
	moves := make([]string, len(legal))
	for i, m := range legal {
		moves[i] = m.String()
	}
	return Response{OK: true, Moves: moves}
}

func dispatchEval(ctx context.Context, e *engine.Engine, req Request) Response {
	if err := resetIfGiven(ctx, e, req.FEN); err != nil {
		return errResponse(err)
	}

	b := e.Board()
	score := float64(eval.Standard{}.Evaluate(b, b.Turn()))
	return Response{OK: true, Eval: &score}
}

func searchOptions(req Request, n int) searchctl.Options {
	opt := searchctl.Options{N: n}
	if req.Depth != nil {
		opt.DepthLimit = lang.Some(*req.Depth)
	}
	if req.TimeLimit != nil {
		opt.TimeBudget = lang.Some(time.Duration(*req.TimeLimit) * time.Millisecond)
	}
	return opt
}

func dispatchSearch(ctx context.Context, e *engine.Engine, req Request, debug bool) Response {
	if err := resetIfGiven(ctx, e, req.FEN); err != nil {
		return errResponse(err)
	}

	n := 1
	if req.N != nil {
		n = *req.N
	}

	start := time.Now()
	ranked, pv, err := e.SelectMoves(ctx, n, searchOptions(req, n))
	if err != nil {
		return errResponse(err)
	}
	elapsed := time.Since(start)

	out := make([]RankedMove, len(ranked))
	for i, rm := range ranked {
		out[i] = RankedMove{Move: rm.Move.String(), Score: float64(rm.Score)}
	}

	stats := &SearchStats{
		DepthReached: pv.Depth,
		Nodes:        pv.Nodes,
		ElapsedMS:    elapsed.Milliseconds(),
	}
	if elapsed > 0 {
		stats.NPS = float64(pv.Nodes) / elapsed.Seconds()
	}

	resp := Response{OK: true, Ranked: out, Stats: stats}
	if debug {
		resp.DebugTree = buildDebugTree(e, ranked)
	}
	return resp
}

// buildDebugTree expands every ranked root move one ply: the FEN it leads to
// and, for a reveal move, the chance-outcome breakdown over the moving
// side's remaining hidden pool.
func buildDebugTree(e *engine.Engine, ranked []search.RankedMove) *SearchDebug {
	b := e.Board()
	pov := b.Turn()

	tree := &SearchDebug{RootMoves: make([]RootMoveDebug, 0, len(ranked))}
	for _, rm := range ranked {
		child := b.Clone()
		entry := RootMoveDebug{Move: rm.Move.String(), SearchScore: float64(rm.Score)}

		if rm.Move.IsReveal() {
			dist := hidden.FromBoard(child, pov).PossibleTypes()
			entry.ChanceOutcomes = make([]ChanceOutcome, 0, len(dist))
			for _, tp := range dist {
				outcome := child.Clone()
				outcome.SimulateReveal(rm.Move.From, tp.Type)
				plain := board.Move{Action: board.MovePlain, From: rm.Move.From, To: rm.Move.To}
				outcome.MakeMove(plain)

				entry.ChanceOutcomes = append(entry.ChanceOutcomes, ChanceOutcome{
					Type:        tp.Type.String(),
					Probability: tp.Probability,
					Score:       float64(eval.Standard{}.Evaluate(outcome, pov)),
				})
			}
			// Representative resulting FEN: the most probable identity.
			if len(dist) > 0 {
				rep := child.Clone()
				rep.SimulateReveal(rm.Move.From, dist[0].Type)
				rep.MakeMove(board.Move{Action: board.MovePlain, From: rm.Move.From, To: rm.Move.To})
				entry.ResultingFEN = fen.Encode(rep)
			}
		} else {
			child.MakeMove(rm.Move)
			entry.ResultingFEN = fen.Encode(child)
		}

		tree.RootMoves = append(tree.RootMoves, entry)
	}
	return tree
}
