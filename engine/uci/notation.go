// Package uci drives a UCI chess engine subprocess (Stockfish and friends).
package uci

import (
	"github.com/dylhunn/dragontoothmg"
)

// UCI coordinate notation:
// - Four lowercase characters <from-file><from-rank><to-file><to-rank>,
//   file a-h, rank 1-8
// - An optional fifth character q|r|b|n for pawn promotion
// - Examples: e2e4, g8f6, a7a8q

// EncodeMove renders a move in UCI coordinate notation.
func EncodeMove(m dragontoothmg.Move) string {
	buf := []byte{
		'a' + byte(m.From())%8,
		'1' + byte(m.From())/8,
		'a' + byte(m.To())%8,
		'1' + byte(m.To())/8,
	}
	switch m.Promote() {
	case dragontoothmg.Queen:
		buf = append(buf, 'q')
	case dragontoothmg.Rook:
		buf = append(buf, 'r')
	case dragontoothmg.Bishop:
		buf = append(buf, 'b')
	case dragontoothmg.Knight:
		buf = append(buf, 'n')
	}
	return string(buf)
}

// DecodeMove resolves UCI coordinate notation against a list of legal moves.
// It is a lookup, not construction: whatever the text says, the result is
// always one of the supplied moves. When the text carries no promotion
// letter, the first legal move with matching squares is accepted, whatever
// its promotion piece.
func DecodeMove(text string, legal []dragontoothmg.Move) (dragontoothmg.Move, bool) {
	if len(text) < 4 {
		return 0, false
	}
	from, ok := squareIndex(text[0], text[1])
	if !ok {
		return 0, false
	}
	to, ok := squareIndex(text[2], text[3])
	if !ok {
		return 0, false
	}
	var promo dragontoothmg.Piece = dragontoothmg.Nothing
	if len(text) >= 5 {
		switch text[4] {
		case 'q':
			promo = dragontoothmg.Queen
		case 'r':
			promo = dragontoothmg.Rook
		case 'b':
			promo = dragontoothmg.Bishop
		case 'n':
			promo = dragontoothmg.Knight
		}
	}
	for _, m := range legal {
		if uint8(m.From()) != from || uint8(m.To()) != to {
			continue
		}
		if promo == dragontoothmg.Nothing || m.Promote() == promo {
			return m, true
		}
	}
	return 0, false
}

// squareIndex converts a file letter and rank digit to a 0-63 board index.
func squareIndex(file, rank byte) (uint8, bool) {
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, false
	}
	return (rank-'1')*8 + (file - 'a'), true
}
