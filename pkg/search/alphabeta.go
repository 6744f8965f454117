package search

import (
	"sort"

	"github.com/blackriver/jieqi/pkg/board"
	"github.com/blackriver/jieqi/pkg/eval"
	"github.com/blackriver/jieqi/pkg/hidden"
	"go.uber.org/atomic"
)

// AlphaBeta is the engine's production search: fixed-POV minimax with chance
// nodes at reveal-and-move actions, alpha-beta pruned at decision nodes. The
// zero value is usable with eval.Standard{} and no transposition table.
type AlphaBeta struct {
	Eval    eval.Evaluator
	TT      TranspositionTable
	Zobrist *board.ZobristTable
}

// SearchRootDepth evaluates every legal root move to the given depth and
// returns them ranked descending by score, ties broken by generation order.
// This is one depth of an iterative-deepening run. abort, if non-nil, is
// checked cooperatively inside the recursion; once set, the search returns
// static evaluations immediately without further descent.
func (p AlphaBeta) SearchRootDepth(b *board.Board, pov board.Color, depth int, abort *atomic.Bool) (uint64, []RankedMove) {
	tt := p.TT
	if tt == nil || p.Zobrist == nil {
		tt = NoTranspositionTable{}
	}
	ev := p.Eval
	if ev == nil {
		ev = eval.Standard{}
	}
	run := &runAlphaBeta{eval: ev, tt: tt, zobrist: p.Zobrist, abort: abort, b: b, pov: pov}

	legal := b.LegalMoves(b.Turn())
	ranked := make([]RankedMove, 0, len(legal))
	for _, m := range legal {
		score, _ := run.valueOfMove(m, depth-1, eval.MinScore, eval.MaxScore, 1)
		ranked = append(ranked, RankedMove{Move: m, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return run.nodes, ranked
}

type runAlphaBeta struct {
	eval    eval.Evaluator
	tt      TranspositionTable
	zobrist *board.ZobristTable
	abort   *atomic.Bool
	b       *board.Board
	pov     board.Color
	nodes   uint64
}

// search returns the value of the current position (from m.pov's
// perspective) and its principal variation, searching to the given depth.
func (m *runAlphaBeta) search(depth int, alpha, beta eval.Score, ply int) (eval.Score, []board.Move) {
	if m.abort != nil && m.abort.Load() {
		return m.eval.Evaluate(m.b, m.pov), nil
	}

	legal := m.b.LegalMoves(m.b.Turn())
	if result := m.b.GetGameResult(legal); result != board.Ongoing {
		return eval.TerminalEval(m.eval, m.b, m.pov, ply, legal), nil
	}
	if depth <= 0 {
		m.nodes++
		return m.eval.Evaluate(m.b, m.pov), nil
	}
	m.nodes++

	hash := m.zobristHash()
	var ttMove board.Move
	if bound, d, score, mv, ok := m.tt.Read(hash); ok {
		ttMove = mv
		if d >= depth {
			switch bound {
			case ExactBound:
				return score, nil
			case LowerBound:
				if score >= beta {
					return score, nil
				}
			case UpperBound:
				if score <= alpha {
					return score, nil
				}
			}
		}
	}

	maximizing := m.b.Turn() == m.pov
	best := eval.MaxScore + 1
	if maximizing {
		best = eval.MinScore - 1
	}

	priority := func(mv board.Move) board.MovePriority {
		if victim, ok := m.b.PieceAt(mv.To); ok {
			return board.MovePriority(victim.EffectiveType().BaseValue())
		}
		return 0
	}
	ml := board.NewMoveList(legal, board.First(ttMove, priority))

	var bestMove board.Move
	var pv []board.Move
	bound := ExactBound

	for {
		mv, ok := ml.Next()
		if !ok {
			break
		}

		score, childPV := m.valueOfMove(mv, depth-1, alpha, beta, ply+1)

		if maximizing {
			if score > best {
				best = score
				bestMove = mv
				pv = append([]board.Move{mv}, childPV...)
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if score < best {
				best = score
				bestMove = mv
				pv = append([]board.Move{mv}, childPV...)
			}
			if best < beta {
				beta = best
			}
		}

		if alpha >= beta {
			if maximizing {
				bound = LowerBound
			} else {
				bound = UpperBound
			}
			break
		}
	}

	m.tt.Write(hash, bound, depth, best, bestMove)
	return best, pv
}

// valueOfMove applies mv (expanding a chance node if it is a reveal) and
// returns the resulting child value and PV, restoring the board exactly
// before returning.
func (m *runAlphaBeta) valueOfMove(mv board.Move, depth int, alpha, beta eval.Score, ply int) (eval.Score, []board.Move) {
	if !mv.IsReveal() {
		return m.applyAndSearch(mv, depth, alpha, beta, ply)
	}

	c := m.b.Turn()
	dist := hidden.FromBoard(m.b, c).PossibleTypes()
	if len(dist) == 0 {
		// No pool left to draw from: apply as an ordinary reveal-by-movement-type
		// move.
		return m.applyAndSearch(mv, depth, alpha, beta, ply)
	}

	var expectation eval.Score
	for _, tp := range dist {
		saved := m.b.SimulateReveal(mv.From, tp.Type)
		plain := board.Move{Action: board.MovePlain, From: mv.From, To: mv.To}
		score, _ := m.applyAndSearch(plain, depth, alpha, beta, ply)
		m.b.RestoreSimulatedReveal(mv.From, saved)

		expectation += eval.Score(tp.Probability) * score
	}
	return expectation, nil
}

func (m *runAlphaBeta) applyAndSearch(mv board.Move, depth int, alpha, beta eval.Score, ply int) (eval.Score, []board.Move) {
	mover, _ := m.b.PieceAt(mv.From)
	wasHidden := mover.IsHidden

	captured, hadCapture := m.b.MakeMove(mv)
	score, pv := m.search(depth, alpha, beta, ply)
	m.b.UndoMove(mv, captured, hadCapture, wasHidden)

	return score, pv
}

func (m *runAlphaBeta) zobristHash() board.ZobristHash {
	if m.zobrist == nil {
		return 0
	}
	return m.zobrist.Hash(m.b)
}
