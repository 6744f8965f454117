package eval_test

import (
	"testing"

	"github.com/blackriver/jieqi/pkg/board"
	"github.com/blackriver/jieqi/pkg/board/fen"
	"github.com/blackriver/jieqi/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, text string) *board.Board {
	t.Helper()
	b, err := fen.Decode(text)
	require.NoError(t, err)
	return b
}

func TestEvaluatePerspectiveSymmetry(t *testing.T) {
	positions := []string{
		fen.Initial,
		"4k4/9/9/9/4c4/4R4/9/9/9/4K4 -:- r r",
		"3aka3/9/9/9/9/9/9/9/9/4R4 -:- b b",
	}
	var e eval.Standard
	for _, text := range positions {
		b := decode(t, text)
		assert.Equal(t, e.Evaluate(b, board.Red), -e.Evaluate(b, board.Black), "position %q broke perspective symmetry", text)
	}
}

func TestEvaluateFavorsMaterialAdvantage(t *testing.T) {
	// Red has an extra revealed rook; no other material difference.
	b := decode(t, "4k4/9/9/9/9/4R4/9/9/9/4K4 -:- r r")
	var e eval.Standard
	assert.Greater(t, float64(e.Evaluate(b, board.Red)), 0.0)
}

func TestEvaluateSymmetricInitialPositionIsZero(t *testing.T) {
	b := decode(t, fen.Initial)
	var e eval.Standard
	// The canonical start is fully symmetric: both sides have identical
	// material, hidden pools, and mirrored piece-square placement.
	assert.InDelta(t, 0.0, float64(e.Evaluate(b, board.Red)), 1e-6)
}

func TestTerminalEvalMateScoreDecreasesWithPly(t *testing.T) {
	// Black is checkmated: horse check from g8, rook on the e-file covers e8.
	b := decode(t, "3aka3/6H2/9/9/9/9/9/9/9/3KR4 -:- b b")
	var e eval.Standard

	near := eval.TerminalEval(e, b, board.Red, 1, nil)
	far := eval.TerminalEval(e, b, board.Red, 5, nil)
	assert.Greater(t, near, far)
}

func TestTerminalEvalDecisiveResultSignFollowsPov(t *testing.T) {
	// Black's king is simply missing from the board: an unambiguous,
	// move-generation-independent decisive result (RedWin).
	b, err := board.New(
		[]board.Placement{
			{Square: board.NewSquare(0, 4), Piece: board.Piece{Color: board.Red, ActualType: board.King, MovementType: board.King}},
		},
		board.Black, board.Red, nil, nil,
	)
	require.NoError(t, err)

	var e eval.Standard
	assert.Greater(t, eval.TerminalEval(e, b, board.Red, 2, nil), eval.Score(0))
	assert.Less(t, eval.TerminalEval(e, b, board.Black, 2, nil), eval.Score(0))
}

func TestTerminalEvalOngoingFallsBackToEvaluate(t *testing.T) {
	b := decode(t, fen.Initial)
	var e eval.Standard
	assert.Equal(t, e.Evaluate(b, board.Red), eval.TerminalEval(e, b, board.Red, 0, nil))
}

func TestNoisyAddsBoundedNoiseToWrappedEvaluator(t *testing.T) {
	b := decode(t, fen.Initial)
	base := eval.Standard{}.Evaluate(b, board.Red)

	n := eval.Noisy{Evaluator: eval.Standard{}, Rand: eval.NewRandom(20, 1)}
	got := n.Evaluate(b, board.Red)

	assert.InDelta(t, float64(base), float64(got), 10.0)
}

func TestNoisyWithZeroLimitMatchesWrappedEvaluator(t *testing.T) {
	b := decode(t, fen.Initial)
	n := eval.Noisy{Evaluator: eval.Standard{}, Rand: eval.NewRandom(0, 1)}
	assert.Equal(t, eval.Standard{}.Evaluate(b, board.Red), n.Evaluate(b, board.Red))
}
