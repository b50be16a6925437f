// Xiangqi board representation and FEN codec
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

package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Board dimensions. Columns run a..i (0..8), rows run 0..9 where row 0
// is red's back rank and row 9 is black's back rank.
const (
	Width  = 9
	Height = 10
)

// Board is a 9x10 Xiangqi board. The zero value is an empty board.
type Board struct {
	squares [Height][Width]Piece
}

// At returns the piece occupying (x, y), or the empty Piece if the
// coordinates are out of range or the square is vacant.
func (b *Board) At(x, y int) Piece {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return Piece{}
	}
	return b.squares[y][x]
}

func (b *Board) set(x, y int, p Piece) {
	b.squares[y][x] = p
}

// OpeningFEN is the standard Xiangqi starting position, board field
// only (no side-to-move suffix).
const OpeningFEN = "rheakaehr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RHEAKAEHR"

// OpeningBoard returns a fresh board in the standard starting position.
func OpeningBoard() *Board {
	b, err := ParseFEN(OpeningFEN)
	if err != nil {
		panic("engine: invalid opening FEN: " + err.Error())
	}
	return b
}

// ParseFEN parses the board field of a FEN string: ten '/'-separated
// ranks from rank 10 (black's back rank) down to rank 1 (red's back
// rank), each rank a run of piece letters and digit run-lengths for
// empty squares.
func ParseFEN(fen string) (*Board, error) {
	ranks := strings.Split(fen, "/")
	if len(ranks) != Height {
		return nil, fmt.Errorf("engine: expected %d ranks, got %d", Height, len(ranks))
	}
	b := &Board{}
	for i, rank := range ranks {
		y := Height - 1 - i
		x := 0
		for _, r := range []byte(rank) {
			if r >= '0' && r <= '9' {
				x += int(r - '0')
				continue
			}
			piece, ok := pieceFromFENByte(r)
			if !ok {
				return nil, fmt.Errorf("engine: invalid FEN piece byte %q", r)
			}
			if x >= Width {
				return nil, fmt.Errorf("engine: rank %d overflows board width", i)
			}
			b.set(x, y, piece)
			x++
		}
		if x != Width {
			return nil, fmt.Errorf("engine: rank %d has width %d, want %d", i, x, Width)
		}
	}
	return b, nil
}

// FEN renders the board field of a FEN string, the inverse of ParseFEN.
func (b *Board) FEN() string {
	var sb strings.Builder
	for i := 0; i < Height; i++ {
		y := Height - 1 - i
		run := 0
		for x := 0; x < Width; x++ {
			p := b.At(x, y)
			if p.Empty() {
				run++
				continue
			}
			if run > 0 {
				sb.WriteString(strconv.Itoa(run))
				run = 0
			}
			sb.WriteByte(p.FENByte())
		}
		if run > 0 {
			sb.WriteString(strconv.Itoa(run))
		}
		if i != Height-1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// String renders a human-readable board, red pieces uppercase, black
// pieces lowercase, one rank per line from black's back rank down to
// red's, matching the orientation a player reads a FEN in.
func (b *Board) String() string {
	var sb strings.Builder
	for i := 0; i < Height; i++ {
		y := Height - 1 - i
		for x := 0; x < Width; x++ {
			p := b.At(x, y)
			if p.Empty() {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(p.FENByte())
			}
			if x != Width-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) clone() *Board {
	c := *b
	return &c
}
