package board

// IsPositionAttacked reports whether target is attacked by a piece of
// attacker color, scanning by direction rather than enumerating every
// pseudo-legal move of the attacking side.
func (b *Board) IsPositionAttacked(target Square, attacker Color) bool {
	if rookOrKingSweepAttacks(b, target, attacker) {
		return true
	}
	if horseAttacks(b, target, attacker) {
		return true
	}
	if pawnAttacks(b, target, attacker) {
		return true
	}
	return false
}

// rookOrKingSweepAttacks handles the orthogonal-ray attackers: Rook, King
// (flying general) and Cannon, all in one four-direction sweep.
func rookOrKingSweepAttacks(b *Board, target Square, attacker Color) bool {
	for _, d := range rookDirs {
		hits := 0
		for step := 1; ; step++ {
			sq, ok := target.Offset(d[0]*step, d[1]*step)
			if !ok {
				break
			}
			occ := b.cells[sq]
			if occ == nil {
				continue
			}
			hits++
			if hits == 1 {
				if occ.Color == attacker {
					t := occ.EffectiveType()
					if t == Rook || t == King {
						return true
					}
				}
				continue // keep scanning past the first piece for a cannon screen
			}
			if hits == 2 {
				if occ.Color == attacker && occ.EffectiveType() == Cannon {
					return true
				}
				break // a cannon can never attack past its one screen
			}
		}
	}
	return false
}

// horseAttacks mirrors horseJumps but is indexed from the potential attacker
// square toward the target: the leg is computed from the attacker square,
// not from the target outward.
func horseAttacks(b *Board, target Square, attacker Color) bool {
	for _, j := range horseJumps {
		// A horse standing at `from` jumps to `target` via (j.dr, j.dc); so
		// `from` is offset by the negation of that jump from target.
		from, ok := target.Offset(-j.dr, -j.dc)
		if !ok {
			continue
		}
		occ := b.cells[from]
		if occ == nil || occ.Color != attacker || occ.EffectiveType() != Horse {
			continue
		}
		leg, ok := from.Offset(j.legDR, j.legDC)
		if !ok || !b.IsEmpty(leg) {
			continue
		}
		return true
	}
	return false
}

func pawnAttacks(b *Board, target Square, attacker Color) bool {
	// A pawn of `attacker` captures target by moving forward, or sideways if
	// it has crossed its river. Enumerate the squares such a pawn could stand
	// on and check whether it has crossed the river when the step is sideways.
	forward := 1
	if attacker == Black {
		forward = -1
	}

	// Forward-into-target: the pawn stands "behind" target relative to its
	// own forward direction.
	if from, ok := target.Offset(-forward, 0); ok {
		if occ := b.cells[from]; occ != nil && occ.Color == attacker && occ.EffectiveType() == Pawn {
			return true
		}
	}

	for _, dc := range [2]int{1, -1} {
		if from, ok := target.Offset(0, dc); ok {
			if occ := b.cells[from]; occ != nil && occ.Color == attacker && occ.EffectiveType() == Pawn {
				if from.HasCrossedRiver(attacker) {
					return true
				}
			}
		}
	}
	return false
}

// IsInCheck reports whether c's king is currently attacked. A missing king
// (already captured) is treated as "in check".
func (b *Board) IsInCheck(c Color) bool {
	kingSq, ok := b.KingSquare(c)
	if !ok {
		return true
	}
	return b.IsPositionAttacked(kingSq, c.Opponent())
}
