// Package board contains the Jieqi board representation, move generation and
// make/undo logic.
package board

import (
	"fmt"
	"strings"
)

// Placement describes one occupied square, used to construct a Board.
type Placement struct {
	Square Square
	Piece  Piece
}

// Board is a 90-cell mailbox board plus metadata: side to move, the viewer
// color the position was written from (used only by the FEN codec), cached
// king squares, and each side's captured record.
//
// Board is mutated in place by MakeMove/UndoMove/SimulateReveal to support a
// single shared board threaded through search recursion; it is not safe for
// concurrent use.
type Board struct {
	cells    [NumSquares]*Piece
	turn     Color
	viewer   Color
	kings    [NumColors]Square // NumSquares sentinel means "no king on board"
	captured [NumColors][]CapturedPieceInfo
}

// New builds a Board from an explicit set of placements. Movement types for
// hidden pieces must already be resolved by the caller (the FEN codec does
// this via StartingMovementType).
func New(placements []Placement, turn, viewer Color, capturedRed, capturedBlack []CapturedPieceInfo) (*Board, error) {
	b := &Board{
		turn:     turn,
		viewer:   viewer,
		kings:    [NumColors]Square{NumSquares, NumSquares},
		captured: [NumColors][]CapturedPieceInfo{capturedRed, capturedBlack},
	}

	for _, pl := range placements {
		if !pl.Square.IsValid() {
			return nil, fmt.Errorf("invalid square in placement: %v", pl.Square)
		}
		if b.cells[pl.Square] != nil {
			return nil, fmt.Errorf("duplicate placement at %v", pl.Square)
		}
		p := pl.Piece
		b.cells[pl.Square] = &p
		if p.EffectiveType() == King {
			if b.kings[p.Color].IsValid() {
				return nil, fmt.Errorf("duplicate %v king", p.Color)
			}
			b.kings[p.Color] = pl.Square
		}
	}

	return b, nil
}

func (b *Board) Turn() Color {
	return b.turn
}

func (b *Board) Viewer() Color {
	return b.viewer
}

// PieceAt returns the occupant of sq, if any.
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	p := b.cells[sq]
	if p == nil {
		return Piece{}, false
	}
	return *p, true
}

func (b *Board) IsEmpty(sq Square) bool {
	return b.cells[sq] == nil
}

// KingSquare returns c's king square, if its king is still on the board.
func (b *Board) KingSquare(c Color) (Square, bool) {
	sq := b.kings[c]
	return sq, sq.IsValid()
}

// Captured returns c's captured record, in capture order.
func (b *Board) Captured(c Color) []CapturedPieceInfo {
	return b.captured[c]
}

// ForEachPiece invokes fn for every occupied square.
func (b *Board) ForEachPiece(fn func(sq Square, p Piece)) {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if p := b.cells[sq]; p != nil {
			fn(sq, *p)
		}
	}
}

// MakeMove applies m, which must be at least pseudo-legal. It returns the
// captured piece, if any. Callers must capture the moving piece's IsHidden
// state themselves before calling MakeMove if they need it for UndoMove,
// since MakeMove clears it on a reveal.
func (b *Board) MakeMove(m Move) (CapturedPieceInfo, bool) {
	mover := b.cells[m.From]
	if mover == nil {
		panic(fmt.Sprintf("make move from empty square: %v", m))
	}

	if m.Action == MoveReveal {
		mover.IsHidden = false
		mover.ActualType = mover.MovementType
	}

	var captured CapturedPieceInfo
	hadCapture := false
	if victim := b.cells[m.To]; victim != nil {
		hadCapture = true
		// captured carries full fidelity (movement type when hidden, actual
		// type when revealed) so UndoMove can restore the victim exactly.
		captured = CapturedPieceInfo{Type: victim.EffectiveType(), WasHidden: victim.IsHidden}

		if victim.EffectiveType() == King {
			b.kings[victim.Color] = NumSquares
		}

		// The record appended to the captured-record field is knowledge-
		// limited: a victim captured while still hidden has its true
		// identity unknown to the pool model, even though its movement
		// type is public. The movement type is never an acceptable proxy
		// for identity in the captured record.
		record := captured
		if victim.IsHidden {
			record.Type = NoPieceType
		}
		b.captured[victim.Color] = append(b.captured[victim.Color], record)
	}

	if mover.EffectiveType() == King {
		b.kings[mover.Color] = m.To
	}

	b.cells[m.To] = mover
	b.cells[m.From] = nil

	b.turn = b.turn.Opponent()

	return captured, hadCapture
}

// UndoMove inverts MakeMove exactly. wasHidden must be the mover's IsHidden
// state *before* MakeMove was called.
func (b *Board) UndoMove(m Move, captured CapturedPieceInfo, hadCapture, wasHidden bool) {
	b.turn = b.turn.Opponent()

	mover := b.cells[m.To]
	if mover == nil {
		panic(fmt.Sprintf("undo move to empty square: %v", m))
	}

	if m.Action == MoveReveal {
		mover.IsHidden = wasHidden
		if wasHidden {
			mover.ActualType = NoPieceType
		}
	}

	if mover.EffectiveType() == King {
		b.kings[mover.Color] = m.From
	}

	b.cells[m.From] = mover
	b.cells[m.To] = nil

	if hadCapture {
		victim := &Piece{
			Color:        mover.Color.Opponent(),
			IsHidden:     captured.WasHidden,
			MovementType: captured.Type,
		}
		if !captured.WasHidden {
			victim.ActualType = captured.Type
			victim.MovementType = captured.Type
		}
		b.cells[m.To] = victim

		if captured.Type == King {
			b.kings[victim.Color] = m.To
		}

		if rec := b.captured[victim.Color]; len(rec) > 0 {
			b.captured[victim.Color] = rec[:len(rec)-1]
		}
	}
}

// SimulatedReveal is a token sufficient to undo a SimulateReveal call.
type SimulatedReveal struct {
	wasHidden   bool
	actualType  PieceType
	hadPiece    bool
}

// HadPiece reports whether SimulateReveal found a piece to stipulate.
func (s SimulatedReveal) HadPiece() bool {
	return s.hadPiece
}

// SimulateReveal temporarily stipulates that the hidden piece at pos has
// actual type t, without moving it. Used by the search's chance-node
// expansion to explore each possible identity of a piece about to reveal.
func (b *Board) SimulateReveal(pos Square, t PieceType) SimulatedReveal {
	p := b.cells[pos]
	if p == nil {
		return SimulatedReveal{}
	}
	saved := SimulatedReveal{wasHidden: p.IsHidden, actualType: p.ActualType, hadPiece: true}
	p.IsHidden = false
	p.ActualType = t
	return saved
}

// RestoreSimulatedReveal undoes a SimulateReveal call.
func (b *Board) RestoreSimulatedReveal(pos Square, saved SimulatedReveal) {
	if !saved.hadPiece {
		return
	}
	p := b.cells[pos]
	if p == nil {
		return
	}
	p.IsHidden = saved.wasHidden
	p.ActualType = saved.actualType
}

// Clone returns a deep copy of b. The search itself never clones -- it
// threads a single board through make/undo -- but a caller that hands a
// board off to a concurrently running search (so it remains free to mutate
// its own copy, e.g. an engine facade accepting further commands while an
// analysis is in flight) needs an independent copy to hand over.
func (b *Board) Clone() *Board {
	clone := &Board{
		turn:   b.turn,
		viewer: b.viewer,
		kings:  b.kings,
	}
	for sq, p := range b.cells {
		if p == nil {
			continue
		}
		cp := *p
		clone.cells[sq] = &cp
	}
	for c := ZeroColor; c < NumColors; c++ {
		clone.captured[c] = append([]CapturedPieceInfo(nil), b.captured[c]...)
	}
	return clone
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := int(NumRows) - 1; row >= 0; row-- {
		for col := 0; col < int(NumCols); col++ {
			sq := NewSquare(Row(row), Col(col))
			if p, ok := b.PieceAt(sq); ok {
				sb.WriteString(printPieceDebug(p))
			} else {
				sb.WriteRune('.')
			}
		}
		sb.WriteRune('\n')
	}
	fmt.Fprintf(&sb, "turn=%v", b.turn)
	return sb.String()
}

func printPieceDebug(p Piece) string {
	if p.IsHidden {
		if p.Color == Red {
			return "X"
		}
		return "x"
	}
	letter := p.ActualType.String()
	if p.Color == Red {
		return strings.ToUpper(letter)
	}
	return letter
}
