// Xiangqi piece representation
//
// Copyright (c) 2026  The xqarbiter contributors
//
// This file is part of xqarbiter.
//
// xqarbiter is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// xqarbiter is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with xqarbiter. If not, see
// <http://www.gnu.org/licenses/>

// Package engine implements the Xiangqi rules oracle consulted by the
// tournament arbiter: board representation, FEN codec, legal move
// generation and outcome detection. It has no knowledge of the wire
// protocol or the tournament registry that call into it.
package engine

// Kind names a piece type, independent of colour.
type Kind uint8

const (
	King Kind = iota
	Advisor
	Elephant
	Horse
	Chariot
	Cannon
	Pawn
)

// Piece is a coloured piece occupying a square. The zero Piece is the
// empty square.
type Piece struct {
	Kind Kind
	Red  bool
	set  bool
}

func newPiece(k Kind, red bool) Piece {
	return Piece{Kind: k, Red: red, set: true}
}

// Empty reports whether the square holds no piece.
func (p Piece) Empty() bool { return !p.set }

// fenChars maps Kind to its FEN letter, lowercase (black); the red
// form is the uppercase variant.
var fenChars = [...]byte{King: 'k', Advisor: 'a', Elephant: 'e', Horse: 'h', Chariot: 'r', Cannon: 'c', Pawn: 'p'}

// FENByte returns the single FEN letter for this piece.
func (p Piece) FENByte() byte {
	c := fenChars[p.Kind]
	if p.Red {
		c -= 'a' - 'A'
	}
	return c
}

// pieceFromFENByte parses a single FEN letter into a piece, or reports
// ok=false if the byte is not one of "kaehrcpKAEHRCP".
func pieceFromFENByte(b byte) (Piece, bool) {
	red := b >= 'A' && b <= 'Z'
	lower := b
	if red {
		lower += 'a' - 'A'
	}
	for k, c := range fenChars {
		if c == lower {
			return newPiece(Kind(k), red), true
		}
	}
	return Piece{}, false
}
