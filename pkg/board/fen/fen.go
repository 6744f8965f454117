// Package fen contains utilities for reading and writing Jieqi positions in
// FEN notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blackriver/jieqi/pkg/board"
)

// Initial is the canonical Jieqi starting position with both kings
// pre-revealed.
const Initial = "xxxxkxxxx/9/1x5x1/x1x1x1x1x/9/9/X1X1X1X1X/1X5X1/9/XXXXKXXXX -:- r r"

// Decode parses a FEN string into a Board. The FEN has four whitespace
// separated fields: board, captured, turn, viewer.
func Decode(text string) (*board.Board, error) {
	parts := strings.Fields(strings.TrimSpace(text))
	if len(parts) != 4 {
		return nil, fmt.Errorf("invalid FEN %q: expected 4 fields, got %v", text, len(parts))
	}

	placements, err := decodeBoard(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid FEN %q: %w", text, err)
	}

	capturedRed, capturedBlack, err := decodeCaptured(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid FEN %q: %w", text, err)
	}

	turn, ok := decodeColorLetter(parts[2])
	if !ok {
		return nil, fmt.Errorf("invalid FEN %q: bad turn letter %q", text, parts[2])
	}
	viewer, ok := decodeColorLetter(parts[3])
	if !ok {
		return nil, fmt.Errorf("invalid FEN %q: bad viewer letter %q", text, parts[3])
	}

	b, err := board.New(placements, turn, viewer, capturedRed, capturedBlack)
	if err != nil {
		return nil, fmt.Errorf("invalid FEN %q: %w", text, err)
	}
	return b, nil
}

// decodeBoard parses the board field: ten '/'-separated rows, top (row 9)
// down to bottom (row 0).
func decodeBoard(field string) ([]board.Placement, error) {
	rows := strings.Split(field, "/")
	if len(rows) != int(board.NumRows) {
		return nil, fmt.Errorf("expected %v rows, got %v", board.NumRows, len(rows))
	}

	var placements []board.Placement
	for i, rowText := range rows {
		row := board.Row(int(board.NumRows) - 1 - i)

		col := 0
		for _, r := range rowText {
			switch {
			case r >= '1' && r <= '9':
				col += int(r - '0')
			case r == 'X' || r == 'x':
				if col >= int(board.NumCols) {
					return nil, fmt.Errorf("row %v overflows 9 columns", row)
				}
				c := board.Red
				if r == 'x' {
					c = board.Black
				}
				sq := board.NewSquare(row, board.Col(col))
				mt, ok := board.StartingMovementType(sq, c)
				if !ok {
					return nil, fmt.Errorf("hidden piece at %v has no defined movement type", sq)
				}
				placements = append(placements, board.Placement{
					Square: sq,
					Piece:  board.Piece{Color: c, IsHidden: true, MovementType: mt},
				})
				col++
			default:
				pc, pt, ok := board.ParsePieceType(r)
				if !ok {
					return nil, fmt.Errorf("invalid character %q in board field", r)
				}
				if col >= int(board.NumCols) {
					return nil, fmt.Errorf("row %v overflows 9 columns", row)
				}
				sq := board.NewSquare(row, board.Col(col))
				placements = append(placements, board.Placement{
					Square: sq,
					Piece:  board.Piece{Color: pc, ActualType: pt, MovementType: pt},
				})
				col++
			}
		}
		if col != int(board.NumCols) {
			return nil, fmt.Errorf("row %v has %v columns, expected %v", row, col, board.NumCols)
		}
	}
	return placements, nil
}

// decodeCaptured parses "<red-captured>:<black-captured>".
func decodeCaptured(field string) ([]board.CapturedPieceInfo, []board.CapturedPieceInfo, error) {
	parts := strings.Split(field, ":")
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("invalid captured field %q", field)
	}
	red, err := decodeCapturedSide(parts[0])
	if err != nil {
		return nil, nil, err
	}
	black, err := decodeCapturedSide(parts[1])
	if err != nil {
		return nil, nil, err
	}
	return red, black, nil
}

func decodeCapturedSide(side string) ([]board.CapturedPieceInfo, error) {
	if side == "-" {
		return nil, nil
	}
	var ret []board.CapturedPieceInfo
	for _, r := range side {
		if r == '?' {
			ret = append(ret, board.CapturedPieceInfo{Type: board.NoPieceType, WasHidden: true})
			continue
		}
		t, ok := board.ParseTypeLetter(r)
		if !ok {
			return nil, fmt.Errorf("invalid captured-piece character %q", r)
		}
		// Letter case here encodes the captured side's color (matched by field
		// position, Red before the colon, Black after), not was-hidden status;
		// a known type is only ever recorded for a piece captured while
		// already revealed, so WasHidden is always false here.
		ret = append(ret, board.CapturedPieceInfo{Type: t, WasHidden: false})
	}
	return ret, nil
}

func decodeColorLetter(s string) (board.Color, bool) {
	switch s {
	case "r", "R":
		return board.Red, true
	case "b", "B":
		return board.Black, true
	default:
		return 0, false
	}
}

// Encode serializes b in FEN notation. It is the inverse of Decode and
// round-trips exactly for any FEN produced this way.
func Encode(b *board.Board) string {
	var sb strings.Builder

	for i := 0; i < int(board.NumRows); i++ {
		row := board.Row(int(board.NumRows) - 1 - i)
		blanks := 0
		for col := board.Col(0); col < board.NumCols; col++ {
			sq := board.NewSquare(row, col)
			p, ok := b.PieceAt(sq)
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteString(encodeSquareLetter(p))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if row > 0 {
			sb.WriteRune('/')
		}
	}

	sb.WriteRune(' ')
	sb.WriteString(encodeCapturedSide(b.Captured(board.Red), board.Red))
	sb.WriteRune(':')
	sb.WriteString(encodeCapturedSide(b.Captured(board.Black), board.Black))

	sb.WriteRune(' ')
	sb.WriteString(b.Turn().String())
	sb.WriteRune(' ')
	sb.WriteString(b.Viewer().String())

	return sb.String()
}

func encodeSquareLetter(p board.Piece) string {
	if p.IsHidden {
		if p.Color == board.Red {
			return "X"
		}
		return "x"
	}
	letter := p.ActualType.String()
	if p.Color == board.Red {
		return strings.ToUpper(letter)
	}
	return letter
}

// ApplyMove parses moveText and applies it to b in place, returning the
// resulting captured-piece info (if any) and whether the move captured a
// piece. The move is executed as a pseudo-legal mailbox mutation without a
// legality check; callers that care about full legality should consult
// board.LegalMoves first.
//
// When the move is a reveal and revealedType is non-zero, the piece is
// stipulated to be revealedType rather than defaulting to its movement type
// -- this is how a front end (or a chance-node simulation) pins down the
// true identity of a hidden piece before the move is recorded.
func ApplyMove(b *board.Board, moveText string, revealedType board.PieceType) (board.CapturedPieceInfo, bool, error) {
	m, suffixType, err := board.ParseMoveText(moveText)
	if err != nil {
		return board.CapturedPieceInfo{}, false, err
	}
	if suffixType != board.NoPieceType {
		if revealedType != board.NoPieceType && revealedType != suffixType {
			return board.CapturedPieceInfo{}, false, fmt.Errorf("move text %q and revealedType %v disagree", moveText, revealedType)
		}
		revealedType = suffixType
	}

	if !m.IsReveal() || revealedType == board.NoPieceType {
		victimColor, hadVictim := captureVictimColor(b, m)
		_, hadCapture := b.MakeMove(m)
		return reportedCapture(b, victimColor, hadVictim, hadCapture), hadCapture, nil
	}

	// A stipulated reveal: pin the true identity at the source square via
	// SimulateReveal, then replay the move as a plain move -- the piece is no
	// longer hidden, so MakeMove's reveal-to-movement-type branch (which
	// would otherwise clobber the stipulated type) does not fire.
	saved := b.SimulateReveal(m.From, revealedType)
	if !saved.HadPiece() {
		return board.CapturedPieceInfo{}, false, fmt.Errorf("no piece at %v to reveal", m.From)
	}
	plain := board.Move{Action: board.MovePlain, From: m.From, To: m.To}
	victimColor, hadVictim := captureVictimColor(b, plain)
	_, hadCapture := b.MakeMove(plain)
	return reportedCapture(b, victimColor, hadVictim, hadCapture), hadCapture, nil
}

// captureVictimColor returns the color of the piece standing on m.To before
// the move is applied, if any.
func captureVictimColor(b *board.Board, m board.Move) (board.Color, bool) {
	victim, ok := b.PieceAt(m.To)
	if !ok {
		return 0, false
	}
	return victim.Color, true
}

// reportedCapture returns the captured-record entry MakeMove just appended
// for the victim's color, i.e. the knowledge-limited view (unknown identity
// if the victim was still hidden at capture time) rather than MakeMove's
// internal undo-fidelity return value.
func reportedCapture(b *board.Board, victimColor board.Color, hadVictim, hadCapture bool) board.CapturedPieceInfo {
	if !hadVictim || !hadCapture {
		return board.CapturedPieceInfo{}
	}
	rec := b.Captured(victimColor)
	if len(rec) == 0 {
		return board.CapturedPieceInfo{}
	}
	return rec[len(rec)-1]
}

func encodeCapturedSide(captured []board.CapturedPieceInfo, side board.Color) string {
	if len(captured) == 0 {
		return "-"
	}
	var sb strings.Builder
	for _, c := range captured {
		if c.Type == board.NoPieceType {
			sb.WriteRune('?')
			continue
		}
		letter := c.Type.String()
		if side == board.Red {
			sb.WriteString(strings.ToUpper(letter))
		} else {
			sb.WriteString(letter)
		}
	}
	return sb.String()
}
