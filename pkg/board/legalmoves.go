package board

// LegalMoves returns c's pseudo-legal moves filtered to those that do not
// leave c's own king in check. It uses the single-board make/undo pattern:
// try each move, test, undo.
func (b *Board) LegalMoves(c Color) []Move {
	pseudo := b.PseudoLegalMoves(c)
	legal := make([]Move, 0, len(pseudo))

	for _, m := range pseudo {
		mover, _ := b.PieceAt(m.From)
		wasHidden := mover.IsHidden

		captured, hadCapture := b.MakeMove(m)
		if !b.IsInCheck(c) {
			legal = append(legal, m)
		}
		b.UndoMove(m, captured, hadCapture, wasHidden)
	}

	return legal
}

// GetGameResult determines the game outcome from the board alone. legalMoves
// may be passed in (from an already-computed LegalMoves(b.Turn())) to avoid
// recomputation; pass nil to have it computed here.
func (b *Board) GetGameResult(legalMoves []Move) Result {
	if _, ok := b.KingSquare(Black); !ok {
		return RedWin
	}
	if _, ok := b.KingSquare(Red); !ok {
		return BlackWin
	}

	if legalMoves == nil {
		legalMoves = b.LegalMoves(b.turn)
	}
	if len(legalMoves) == 0 {
		if b.IsInCheck(b.turn) {
			return WinFor(b.turn.Opponent())
		}
		return Draw
	}

	return Ongoing
}
