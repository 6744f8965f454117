package board

// Piece represents an occupant of a board square: its color, whether it is
// still face-down, and the type information implied by that state.
//
// Invariant: if IsHidden, ActualType is NoPieceType and MovementType is valid;
// the piece moves according to MovementType. If not IsHidden, ActualType is
// valid; MovementType may still carry the square's original movement type but
// is ignored for move generation once revealed.
type Piece struct {
	Color        Color
	IsHidden     bool
	ActualType   PieceType
	MovementType PieceType
}

// EffectiveType returns the piece type that governs how this piece currently
// moves: MovementType while hidden, ActualType once revealed.
func (p Piece) EffectiveType() PieceType {
	if p.IsHidden {
		return p.MovementType
	}
	return p.ActualType
}

// CapturedPieceInfo records one captured piece in a side's captured record.
// Type is NoPieceType for a capture whose identity was never revealed ('?'
// in FEN notation).
type CapturedPieceInfo struct {
	Type      PieceType
	WasHidden bool
}
