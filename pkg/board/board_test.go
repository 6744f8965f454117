package board_test

import (
	"testing"

	"github.com/blackriver/jieqi/pkg/board"
	"github.com/blackriver/jieqi/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, text string) *board.Board {
	t.Helper()
	b, err := fen.Decode(text)
	require.NoError(t, err)
	return b
}

func TestMakeUndoMoveSymmetry(t *testing.T) {
	b := mustDecode(t, fen.Initial)
	before := fen.Encode(b)

	moves := b.PseudoLegalMoves(board.Red)
	require.NotEmpty(t, moves)

	for _, m := range moves {
		mover, _ := b.PieceAt(m.From)
		wasHidden := mover.IsHidden

		captured, hadCapture := b.MakeMove(m)
		b.UndoMove(m, captured, hadCapture, wasHidden)

		assert.Equal(t, before, fen.Encode(b), "move %v did not undo cleanly", m)
	}
}

func TestMakeMoveRevealsHiddenPiece(t *testing.T) {
	b := mustDecode(t, "4k4/9/9/9/9/9/4X4/9/9/4K4 -:- r r")
	sq := board.NewSquare(3, 4)
	p, ok := b.PieceAt(sq)
	require.True(t, ok)
	require.True(t, p.IsHidden)
	require.Equal(t, board.Pawn, p.MovementType)

	m := board.Move{Action: board.MoveReveal, From: sq, To: board.NewSquare(4, 4)}
	_, hadCapture := b.MakeMove(m)
	assert.False(t, hadCapture)

	moved, ok := b.PieceAt(board.NewSquare(4, 4))
	require.True(t, ok)
	assert.False(t, moved.IsHidden)
	assert.Equal(t, board.Pawn, moved.ActualType)
}

func TestRookSlideStopsAtBlocker(t *testing.T) {
	b := mustDecode(t, "4k4/9/9/9/9/4R4/4p4/9/9/4K4 -:- r r")
	moves := b.PseudoLegalMoves(board.Red)

	from := board.NewSquare(4, 4)
	var dests []board.Square
	for _, m := range moves {
		if m.From == from {
			dests = append(dests, m.To)
		}
	}
	assert.Contains(t, dests, board.NewSquare(3, 4)) // capture the pawn
	assert.NotContains(t, dests, board.NewSquare(2, 4))
	assert.NotContains(t, dests, board.NewSquare(1, 4))
}

func TestCannonRequiresExactlyOneScreenToCapture(t *testing.T) {
	// Cannon at e5, one friendly screen at e6, enemy king further along at
	// e9: the cannon captures it over exactly one screen.
	b := mustDecode(t, "4k4/9/9/4R4/4C4/9/9/9/9/4K4 -:- r r")
	moves := b.PseudoLegalMoves(board.Red)

	from := board.NewSquare(5, 4)
	var captureDests []board.Square
	for _, m := range moves {
		if m.From == from {
			if _, isCap := canLandOnCapture(b, m.To); isCap {
				captureDests = append(captureDests, m.To)
			}
		}
	}
	assert.Contains(t, captureDests, board.NewSquare(9, 4))
}

func canLandOnCapture(b *board.Board, sq board.Square) (board.Piece, bool) {
	p, ok := b.PieceAt(sq)
	return p, ok
}

func TestFlyingGeneralCaptureAllowed(t *testing.T) {
	b := mustDecode(t, "4k4/9/9/9/9/9/9/9/9/4K4 -:- r r")
	moves := b.PseudoLegalMoves(board.Red)

	from := board.NewSquare(0, 4)
	var dests []board.Square
	for _, m := range moves {
		if m.From == from {
			dests = append(dests, m.To)
		}
	}
	assert.Contains(t, dests, board.NewSquare(9, 4))
}

func TestHorseLegBlock(t *testing.T) {
	// Horse at row2,col4; a pawn at row3,col4 blocks its leg for the two jumps
	// toward row4 (dests col3/col5), but leaves the opposite-direction jumps
	// (toward row0) open.
	b := mustDecode(t, "4k4/9/9/9/9/9/4P4/4H4/9/4K4 -:- r r")
	from := board.NewSquare(2, 4)
	moves := b.PseudoLegalMoves(board.Red)

	var dests []board.Square
	for _, m := range moves {
		if m.From == from {
			dests = append(dests, m.To)
		}
	}
	assert.NotContains(t, dests, board.NewSquare(4, 3))
	assert.NotContains(t, dests, board.NewSquare(4, 5))
	assert.Contains(t, dests, board.NewSquare(0, 3))
	assert.Contains(t, dests, board.NewSquare(0, 5))
}

func TestPawnSidewaysOnlyAfterRiver(t *testing.T) {
	b := mustDecode(t, "4k4/9/9/9/4P4/9/9/9/9/4K4 -:- r r")
	// Pawn on row 5 (index row 5) has crossed the river for Red (rows 0-4 own side).
	from := board.NewSquare(5, 4)
	moves := b.PseudoLegalMoves(board.Red)

	var dests []board.Square
	for _, m := range moves {
		if m.From == from {
			dests = append(dests, m.To)
		}
	}
	assert.Contains(t, dests, board.NewSquare(5, 3))
	assert.Contains(t, dests, board.NewSquare(5, 5))
	assert.Contains(t, dests, board.NewSquare(6, 4))
}

func TestPawnNoSidewaysBeforeRiver(t *testing.T) {
	b := mustDecode(t, "4k4/9/9/9/9/9/4P4/9/9/4K4 -:- r r")
	from := board.NewSquare(3, 4) // Red's own side, not crossed yet
	moves := b.PseudoLegalMoves(board.Red)

	var dests []board.Square
	for _, m := range moves {
		if m.From == from {
			dests = append(dests, m.To)
		}
	}
	assert.NotContains(t, dests, board.NewSquare(3, 3))
	assert.NotContains(t, dests, board.NewSquare(3, 5))
}

func TestLegalMovesFiltersSelfCheck(t *testing.T) {
	// Red king pinned on the e-file by a black rook with nothing between:
	// moving the king off-file into check must be filtered, but the position
	// itself is already in check so every legal move must resolve it.
	b := mustDecode(t, "4r4/9/9/9/9/9/9/9/9/4K4 -:- r r")
	legal := b.LegalMoves(board.Red)

	for _, m := range legal {
		mover, _ := b.PieceAt(m.From)
		wasHidden := mover.IsHidden
		captured, hadCapture := b.MakeMove(m)
		assert.False(t, b.IsInCheck(board.Red), "legal move %v left king in check", m)
		b.UndoMove(m, captured, hadCapture, wasHidden)
	}
}

func TestLegalMoveCountFromInitialPosition(t *testing.T) {
	b := mustDecode(t, fen.Initial)
	legal := b.LegalMoves(board.Red)
	assert.Len(t, legal, 44)
}

func TestGetGameResultCheckmate(t *testing.T) {
	// Black king boxed in by its own advisors at (9,3)/(9,5); a red horse on
	// g8 checks it (leg f8 open, nothing can capture the horse or block the
	// leg) and a red rook on the open e-file covers the only flight square e8.
	b := mustDecode(t, "3aka3/6H2/9/9/9/9/9/9/9/3KR4 -:- b b")
	result := b.GetGameResult(nil)
	assert.Equal(t, board.RedWin, result)
}

func TestGetGameResultOngoing(t *testing.T) {
	b := mustDecode(t, fen.Initial)
	assert.Equal(t, board.Ongoing, b.GetGameResult(nil))
}

func TestMoveListOrdersByPriority(t *testing.T) {
	moves := []board.Move{
		{Action: board.MovePlain, From: board.NewSquare(0, 0), To: board.NewSquare(0, 1)},
		{Action: board.MovePlain, From: board.NewSquare(0, 1), To: board.NewSquare(0, 2)},
		{Action: board.MovePlain, From: board.NewSquare(0, 2), To: board.NewSquare(0, 3)},
	}
	priority := map[board.Square]board.MovePriority{
		board.NewSquare(0, 1): 10,
		board.NewSquare(0, 2): 5,
		board.NewSquare(0, 3): 1,
	}
	ml := board.NewMoveList(moves, func(m board.Move) board.MovePriority {
		return priority[m.To]
	})

	var order []board.Square
	for {
		m, ok := ml.Next()
		if !ok {
			break
		}
		order = append(order, m.To)
	}
	assert.Equal(t, []board.Square{board.NewSquare(0, 1), board.NewSquare(0, 2), board.NewSquare(0, 3)}, order)
}

func TestZobristHashDiffersOnHiddenVsRevealed(t *testing.T) {
	tbl := board.NewZobristTable(42)

	hidden := mustDecode(t, "4k4/9/9/9/9/9/4X4/9/9/4K4 -:- r r")
	revealed := mustDecode(t, "4k4/9/9/9/9/9/4C4/9/9/4K4 -:- r r")

	assert.NotEqual(t, tbl.Hash(hidden), tbl.Hash(revealed))
}

func TestZobristHashStableAcrossMakeUndo(t *testing.T) {
	tbl := board.NewZobristTable(7)
	b := mustDecode(t, fen.Initial)
	before := tbl.Hash(b)

	m := b.PseudoLegalMoves(board.Red)[0]
	mover, _ := b.PieceAt(m.From)
	wasHidden := mover.IsHidden
	captured, hadCapture := b.MakeMove(m)
	b.UndoMove(m, captured, hadCapture, wasHidden)

	assert.Equal(t, before, tbl.Hash(b))
}
