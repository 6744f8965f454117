package board

// PseudoLegalMoves enumerates all pseudo-legal moves for c's pieces: legal by
// each piece's movement rules, without checking whether the move leaves c's
// own king in check. A move from a hidden piece is generated as MoveReveal;
// from a revealed piece, as MovePlain.
func (b *Board) PseudoLegalMoves(c Color) []Move {
	var moves []Move
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		p := b.cells[sq]
		if p == nil || p.Color != c {
			continue
		}
		moves = appendPieceMoves(moves, b, sq, *p)
	}
	return moves
}

func appendPieceMoves(moves []Move, b *Board, sq Square, p Piece) []Move {
	action := MovePlain
	if p.IsHidden {
		action = MoveReveal
	}
	add := func(to Square) {
		moves = append(moves, Move{Action: action, From: sq, To: to})
	}

	switch p.EffectiveType() {
	case King:
		genKingMoves(b, sq, p.Color, add)
	case Advisor:
		genAdvisorMoves(b, sq, p.Color, add)
	case Elephant:
		genElephantMoves(b, sq, p.Color, add)
	case Horse:
		genHorseMoves(b, sq, p.Color, add)
	case Rook:
		genSlideMoves(b, sq, p.Color, add, rookDirs)
	case Cannon:
		genCannonMoves(b, sq, p.Color, add)
	case Pawn:
		genPawnMoves(b, sq, p.Color, add)
	}
	return moves
}

var rookDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// canLandOn reports whether c may move onto sq: empty, or occupied by an
// enemy piece (capture).
func canLandOn(b *Board, sq Square, c Color) (ok bool, isCapture bool) {
	occ := b.cells[sq]
	if occ == nil {
		return true, false
	}
	if occ.Color != c {
		return true, true
	}
	return false, false
}

func genKingMoves(b *Board, sq Square, c Color, add func(Square)) {
	for _, d := range rookDirs {
		to, ok := sq.Offset(d[0], d[1])
		if !ok || !to.IsInPalace(c) {
			continue
		}
		if ok, _ := canLandOn(b, to, c); ok {
			add(to)
		}
	}

	// Flying general: if the two kings share a file with nothing between them,
	// the king may "capture" the enemy king.
	if target, ok := flyingGeneralTarget(b, sq, c); ok {
		add(target)
	}
}

// flyingGeneralTarget returns the enemy king's square if it is reachable by a
// flying-general capture from sq.
func flyingGeneralTarget(b *Board, sq Square, c Color) (Square, bool) {
	opp := c.Opponent()
	oppKing, ok := b.KingSquare(opp)
	if !ok || oppKing.Col() != sq.Col() {
		return 0, false
	}
	lo, hi := sq.Row(), oppKing.Row()
	if lo > hi {
		lo, hi = hi, lo
	}
	for r := lo + 1; r < hi; r++ {
		if !b.IsEmpty(NewSquare(r, sq.Col())) {
			return 0, false
		}
	}
	return oppKing, true
}

func genAdvisorMoves(b *Board, sq Square, c Color, add func(Square)) {
	for _, d := range [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
		to, ok := sq.Offset(d[0], d[1])
		if !ok || !to.IsInPalace(c) {
			continue
		}
		if ok, _ := canLandOn(b, to, c); ok {
			add(to)
		}
	}
}

func genElephantMoves(b *Board, sq Square, c Color, add func(Square)) {
	for _, d := range [4][2]int{{2, 2}, {2, -2}, {-2, 2}, {-2, -2}} {
		to, ok := sq.Offset(d[0], d[1])
		if !ok || !to.IsOwnSide(c) {
			continue
		}
		eye, _ := sq.Offset(d[0]/2, d[1]/2)
		if !b.IsEmpty(eye) {
			continue // blocked at the elephant's eye
		}
		if ok, _ := canLandOn(b, to, c); ok {
			add(to)
		}
	}
}

// horseJumps lists, for each of the eight knight-shaped jumps, the (leg, dest)
// offset pairs. The leg is the orthogonally adjacent square in the direction
// of the long part of the jump.
var horseJumps = [8]struct{ legDR, legDC, dr, dc int }{
	{1, 0, 2, 1}, {1, 0, 2, -1},
	{-1, 0, -2, 1}, {-1, 0, -2, -1},
	{0, 1, 1, 2}, {0, 1, -1, 2},
	{0, -1, 1, -2}, {0, -1, -1, -2},
}

func genHorseMoves(b *Board, sq Square, c Color, add func(Square)) {
	for _, j := range horseJumps {
		leg, ok := sq.Offset(j.legDR, j.legDC)
		if !ok || !b.IsEmpty(leg) {
			continue // blocked at the horse's leg
		}
		to, ok := sq.Offset(j.dr, j.dc)
		if !ok {
			continue
		}
		if ok, _ := canLandOn(b, to, c); ok {
			add(to)
		}
	}
}

func genSlideMoves(b *Board, sq Square, c Color, add func(Square), dirs [4][2]int) {
	for _, d := range dirs {
		for step := 1; ; step++ {
			to, ok := sq.Offset(d[0]*step, d[1]*step)
			if !ok {
				break
			}
			landable, isCapture := canLandOn(b, to, c)
			if !landable {
				break // own piece: blocked
			}
			add(to)
			if isCapture || !b.IsEmpty(to) {
				break // captured an enemy piece, or hit something: stop the ray
			}
		}
	}
}

func genCannonMoves(b *Board, sq Square, c Color, add func(Square)) {
	for _, d := range rookDirs {
		screened := false
		for step := 1; ; step++ {
			to, ok := sq.Offset(d[0]*step, d[1]*step)
			if !ok {
				break
			}
			if !screened {
				if b.IsEmpty(to) {
					add(to) // quiet move, no capture without a screen
					continue
				}
				screened = true // first piece hit: the screen
				continue
			}
			// Beyond the screen: the first piece hit (if enemy) is capturable.
			if occ := b.cells[to]; occ != nil {
				if occ.Color != c {
					add(to)
				}
				break
			}
		}
	}
}

func genPawnMoves(b *Board, sq Square, c Color, add func(Square)) {
	forward := 1
	if c == Black {
		forward = -1
	}

	if to, ok := sq.Offset(forward, 0); ok {
		if ok, _ := canLandOn(b, to, c); ok {
			add(to)
		}
	}

	if sq.HasCrossedRiver(c) {
		for _, dc := range [2]int{1, -1} {
			if to, ok := sq.Offset(0, dc); ok {
				if ok, _ := canLandOn(b, to, c); ok {
					add(to)
				}
			}
		}
	}
}
