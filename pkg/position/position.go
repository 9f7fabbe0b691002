// Package position wraps laptudirm.com/x/mess's board representation into
// the value-typed, appendable Position that the game driver keeps a history
// of. The chess rules themselves (legality, FEN, Zobrist keys, packing) are
// provided by mess; this package only adapts its shapes to the fields the
// core's rules evaluator, PV resolver, and serializers need.
package position

import (
	"strings"

	"laptudirm.com/x/mess/pkg/board"
	"laptudirm.com/x/mess/pkg/board/move"
	"laptudirm.com/x/mess/pkg/board/piece"
	"laptudirm.com/x/mess/pkg/formats/fen"
)

// Color mirrors piece.Color so callers outside this package don't need to
// import mess directly.
type Color = piece.Color

const (
	White = piece.White
	Black = piece.Black
)

// Move is an opaque, comparable move encoding, convertible to LAN and SAN
// with respect to the Position it was generated from.
type Move = move.Move

// Position is an immutable snapshot of a chess position plus just enough
// bookkeeping for the core to run its termination state machine without
// reaching back into mess for every predicate.
type Position struct {
	board *board.Board

	Turn     Color
	FullMove int
	Rule50   int
	Checkers uint64 // nonzero iff Turn is in check
	Key      uint64
	Chess960 bool
	LastMove Move
}

// FromFEN parses a FEN (or the literal "startpos" sentinel, already resolved
// by the caller) into a starting Position.
func FromFEN(fenStr string, chess960 bool) Position {
	b := board.New(board.FEN(fen.FromString(fenStr)))
	return wrap(b, Move(0), chess960)
}

// Apply plays mov against p and returns the resulting Position. mov must be
// one of p.LegalMoves(). Positions never alias their underlying board, so
// every ply in a game's history is an independent snapshot: Apply rebuilds
// a fresh board from p's FEN rather than mutating p's in place.
func (p Position) Apply(mov Move) Position {
	next := board.New(board.FEN(fen.FromString(p.FEN())))
	next.MakeMove(mov)
	return wrap(next, mov, p.Chess960)
}

func wrap(b *board.Board, last Move, chess960 bool) Position {
	return Position{
		board:    b,
		Turn:     b.SideToMove,
		FullMove: b.FullMoves,
		Rule50:   b.DrawClock,
		Checkers: inCheckBit(b),
		Key:      uint64(b.Hash),
		Chess960: chess960,
		LastMove: last,
	}
}

func inCheckBit(b *board.Board) uint64 {
	if b.IsInCheck(b.SideToMove) {
		return 1
	}
	return 0
}

// LegalMoves generates all legal moves from this position.
func (p Position) LegalMoves() []Move {
	return p.board.GenerateMoves(false)
}

// InCheck reports whether the side to move is in check.
func (p Position) InCheck() bool {
	return p.Checkers != 0
}

// InsufficientMaterial reports whether neither side has mating material.
func (p Position) InsufficientMaterial() bool {
	return p.board.IsInsufficientMaterial()
}

// FEN renders the position back to Forsyth-Edwards Notation.
func (p Position) FEN() string {
	fields := [6]string(p.board.FEN())
	return strings.Join(fields[:], " ")
}

// Pack serializes the position into the packed binary form used by the
// sample writer. The exact byte layout is owned by mess; this repository
// only pins the score/result fields that follow it (see pkg/sampleio).
func (p Position) Pack() []byte {
	return p.board.Pack()
}

// LANToMove parses a long-algebraic-notation move string (as emitted in a
// UCI "bestmove" line) against this position.
func (p Position) LANToMove(lan string) (Move, bool) {
	mov := p.board.NewMoveFromString(lan)
	for _, legal := range p.LegalMoves() {
		if legal == mov {
			return mov, true
		}
	}
	return mov, false
}

// MoveToLAN renders mov (legal or not) in long algebraic notation.
func (p Position) MoveToLAN(mov Move) string {
	return mov.String()
}

// MoveToSAN renders mov in standard algebraic notation with respect to p,
// disambiguating among same-destination, same-piece-type legal moves the
// way PGN requires.
func (p Position) MoveToSAN(mov Move) string {
	return p.board.SAN(mov)
}

// IsTactical reports whether mov is a capture or promotion.
func (p Position) IsTactical(mov Move) bool {
	return p.board.IsTactical(mov)
}

// Contains reports whether mov is present in moves, by value equality.
func Contains(moves []Move, mov Move) bool {
	for _, m := range moves {
		if m == mov {
			return true
		}
	}
	return false
}
