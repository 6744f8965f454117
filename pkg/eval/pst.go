package eval

import "github.com/blackriver/jieqi/pkg/board"

// pieceSquareTable stores a 10x9 positional bonus per piece type, indexed
// flat by board.Square and viewed from the Red side (row 0 is Red's back
// rank). For Black, the lookup mirrors the row. Values suggested
// standard Xiangqi positional heuristics: rook activity on open files and
// across the river, horse centralization, pawns gaining value after crossing
// the river, king/advisor/elephant staying defensive.
//
// Laid out as a flat array per piece type, the same shape as a Western-chess
// piece-square table, adapted to a 10x9 board and Xiangqi-specific
// positional themes.
var pieceSquareTable = [board.NumPieceTypes][90]int{
	board.King: {
		0, 0, 0, 1, 2, 1, 0, 0, 0,
		0, 0, 0, 2, 3, 2, 0, 0, 0,
		0, 0, 0, 1, 2, 1, 0, 0, 0,
	},
	board.Advisor: {
		0, 0, 0, 2, 0, 2, 0, 0, 0,
		0, 0, 0, 0, 3, 0, 0, 0, 0,
		0, 0, 0, 2, 0, 2, 0, 0, 0,
	},
	board.Elephant: {
		0, 0, 2, 0, 0, 0, 2, 0, 0,
		0, 0, 0, 0, 3, 0, 0, 0, 0,
		2, 0, 0, 0, 2, 0, 0, 0, 2,
	},
	board.Horse: {
		2, 3, 4, 4, 4, 4, 4, 3, 2,
		3, 5, 6, 6, 6, 6, 6, 5, 3,
		4, 6, 8, 9, 9, 9, 8, 6, 4,
		4, 6, 9, 10, 11, 10, 9, 6, 4,
		3, 5, 7, 9, 9, 9, 7, 5, 3,
		2, 4, 6, 7, 7, 7, 6, 4, 2,
		2, 3, 5, 6, 6, 6, 5, 3, 2,
		1, 2, 4, 5, 5, 5, 4, 2, 1,
		0, 1, 2, 3, 3, 3, 2, 1, 0,
		0, 0, 1, 2, 2, 2, 1, 0, 0,
	},
	board.Rook: {
		6, 8, 8, 10, 12, 10, 8, 8, 6,
		8, 10, 10, 12, 14, 12, 10, 10, 8,
		6, 9, 9, 11, 13, 11, 9, 9, 6,
		4, 6, 6, 8, 10, 8, 6, 6, 4,
		2, 4, 4, 6, 8, 6, 4, 4, 2,
		2, 4, 4, 6, 8, 6, 4, 4, 2,
		4, 6, 6, 8, 10, 8, 6, 6, 4,
		6, 9, 9, 11, 13, 11, 9, 9, 6,
		8, 10, 10, 12, 14, 12, 10, 10, 8,
		6, 8, 8, 10, 12, 10, 8, 8, 6,
	},
	board.Cannon: {
		2, 2, 2, 4, 4, 4, 2, 2, 2,
		2, 3, 2, 5, 6, 5, 2, 3, 2,
		2, 2, 3, 5, 6, 5, 3, 2, 2,
		1, 2, 2, 4, 4, 4, 2, 2, 1,
		0, 1, 1, 3, 3, 3, 1, 1, 0,
		0, 1, 1, 3, 3, 3, 1, 1, 0,
		1, 2, 2, 4, 4, 4, 2, 2, 1,
		2, 2, 3, 5, 6, 5, 3, 2, 2,
		2, 3, 2, 5, 6, 5, 2, 3, 2,
		2, 2, 2, 4, 4, 4, 2, 2, 2,
	},
	board.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		4, 0, 6, 0, 8, 0, 6, 0, 4,
		10, 0, 14, 0, 18, 0, 14, 0, 10,
		16, 18, 20, 22, 24, 22, 20, 18, 16,
		22, 24, 26, 28, 30, 28, 26, 24, 22,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
	},
}

// pieceSquareValue returns the positional bonus for a piece of the given type
// and color standing at sq.
func pieceSquareValue(t board.PieceType, c board.Color, sq board.Square) int {
	row, col := sq.Row(), sq.Col()
	if c == board.Black {
		row = board.Row(int(board.NumRows) - 1 - int(row))
	}
	return pieceSquareTable[t][board.NewSquare(row, col)]
}
