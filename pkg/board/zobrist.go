package board

import "math/rand"

// ZobristHash is a position hash used to key the search's transposition
// table. Spec §4.F calls for hashing (piece, square, color, hidden-bit,
// side-to-move).
type ZobristHash uint64

// ZobristTable is a pseudo-randomized table for computing position hashes.
type ZobristTable struct {
	revealed [NumColors][NumPieceTypes][NumSquares]ZobristHash
	hidden   [NumColors][NumSquares]ZobristHash // movement type doesn't affect the key: see Hash
	turn     [NumColors]ZobristHash
}

func NewZobristTable(seed int64) *ZobristTable {
	r := rand.New(rand.NewSource(seed))
	t := &ZobristTable{}

	for c := ZeroColor; c < NumColors; c++ {
		for pt := ZeroPieceType; pt < NumPieceTypes; pt++ {
			for sq := ZeroSquare; sq < NumSquares; sq++ {
				t.revealed[c][pt][sq] = ZobristHash(r.Uint64())
			}
		}
		for sq := ZeroSquare; sq < NumSquares; sq++ {
			t.hidden[c][sq] = ZobristHash(r.Uint64())
		}
		t.turn[c] = ZobristHash(r.Uint64())
	}
	return t
}

// Hash computes the hash for the given board from scratch.
func (t *ZobristTable) Hash(b *Board) ZobristHash {
	var h ZobristHash
	b.ForEachPiece(func(sq Square, p Piece) {
		if p.IsHidden {
			h ^= t.hidden[p.Color][sq]
		} else {
			h ^= t.revealed[p.Color][p.ActualType][sq]
		}
	})
	h ^= t.turn[b.Turn()]
	return h
}
