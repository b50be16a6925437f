// Xiangqi move notation and legal move generation
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

import "fmt"

// Location is a single board square, column a..i and row 0..9.
type Location struct {
	X, Y int
}

func (l Location) valid() bool {
	return l.X >= 0 && l.X < Width && l.Y >= 0 && l.Y < Height
}

func (l Location) String() string {
	return fmt.Sprintf("%c%d", 'a'+l.X, l.Y)
}

func parseLocation(s string) (Location, bool) {
	if len(s) != 2 {
		return Location{}, false
	}
	c, d := s[0], s[1]
	if c < 'a' || c > 'i' || d < '0' || d > '9' {
		return Location{}, false
	}
	l := Location{X: int(c - 'a'), Y: int(d - '0')}
	return l, l.valid()
}

// Move is a single ply: a piece moving from one square to another.
type Move struct {
	From, To Location
}

func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// ParseMove parses the four-character wire form of a move, e.g.
// "h2e2". It reports ok=false for any malformed string; it does not
// check legality against a board.
func ParseMove(s string) (Move, bool) {
	if len(s) != 4 {
		return Move{}, false
	}
	from, ok := parseLocation(s[:2])
	if !ok {
		return Move{}, false
	}
	to, ok := parseLocation(s[2:])
	if !ok {
		return Move{}, false
	}
	return Move{From: from, To: to}, true
}

func inPalace(x, y int, red bool) bool {
	if x < 3 || x > 5 {
		return false
	}
	if red {
		return y >= 0 && y <= 2
	}
	return y >= 7 && y <= 9
}

func crossedRiver(y int, red bool) bool {
	if red {
		return y >= 5
	}
	return y <= 4
}

var orthogonal = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var diagonal = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// pseudoDestinations returns every square a piece of the given kind and
// colour at (x, y) could move to, ignoring whether that would leave its
// own king in check.
func pseudoDestinations(b *Board, x, y int, k Kind, red bool) []Location {
	var out []Location
	add := func(nx, ny int) bool {
		if nx < 0 || nx >= Width || ny < 0 || ny >= Height {
			return false
		}
		occ := b.At(nx, ny)
		if occ.Empty() {
			out = append(out, Location{nx, ny})
			return true
		}
		if occ.Red != red {
			out = append(out, Location{nx, ny})
		}
		return false
	}

	switch k {
	case King:
		for _, d := range orthogonal {
			nx, ny := x+d[0], y+d[1]
			if inPalace(nx, ny, red) {
				add(nx, ny)
			}
		}
	case Advisor:
		for _, d := range diagonal {
			nx, ny := x+d[0], y+d[1]
			if inPalace(nx, ny, red) {
				add(nx, ny)
			}
		}
	case Elephant:
		for _, d := range diagonal {
			nx, ny := x+2*d[0], y+2*d[1]
			if crossedRiver(ny, red) {
				continue
			}
			if nx < 0 || nx >= Width || ny < 0 || ny >= Height {
				continue
			}
			eyeX, eyeY := x+d[0], y+d[1]
			if !b.At(eyeX, eyeY).Empty() {
				continue
			}
			add(nx, ny)
		}
	case Horse:
		legs := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
		jumps := [4][2][2]int{
			{{1, 1}, {1, -1}},
			{{-1, 1}, {-1, -1}},
			{{1, 1}, {-1, 1}},
			{{1, -1}, {-1, -1}},
		}
		for i, leg := range legs {
			legX, legY := x+leg[0], y+leg[1]
			if !b.At(legX, legY).Empty() {
				continue
			}
			for _, j := range jumps[i] {
				add(x+leg[0]+j[0], y+leg[1]+j[1])
			}
		}
	case Chariot:
		for _, d := range orthogonal {
			nx, ny := x+d[0], y+d[1]
			for nx >= 0 && nx < Width && ny >= 0 && ny < Height {
				if !add(nx, ny) {
					break
				}
				nx += d[0]
				ny += d[1]
			}
		}
	case Cannon:
		for _, d := range orthogonal {
			nx, ny := x+d[0], y+d[1]
			screened := false
			for nx >= 0 && nx < Width && ny >= 0 && ny < Height {
				occ := b.At(nx, ny)
				if !screened {
					if occ.Empty() {
						out = append(out, Location{nx, ny})
					} else {
						screened = true
					}
				} else if !occ.Empty() {
					if occ.Red != red {
						out = append(out, Location{nx, ny})
					}
					break
				}
				nx += d[0]
				ny += d[1]
			}
		}
	case Pawn:
		forward := 1
		if !red {
			forward = -1
		}
		add(x, y+forward)
		if crossedRiver(y, red) {
			add(x+1, y)
			add(x-1, y)
		}
	}
	return out
}

func findKing(b *Board, red bool) (Location, bool) {
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			p := b.At(x, y)
			if !p.Empty() && p.Kind == King && p.Red == red {
				return Location{x, y}, true
			}
		}
	}
	return Location{}, false
}

// attacked reports whether (x, y) is attacked by any piece of colour
// byRed under that piece's ordinary movement. The "flying general" rule
// is not covered here; InCheck checks it separately via kingsFacing.
func attacked(b *Board, x, y int, byRed bool) bool {
	for py := 0; py < Height; py++ {
		for px := 0; px < Width; px++ {
			p := b.At(px, py)
			if p.Empty() || p.Red != byRed {
				continue
			}
			for _, dest := range pseudoDestinations(b, px, py, p.Kind, byRed) {
				if dest.X == x && dest.Y == y {
					return true
				}
			}
		}
	}
	return false
}

func kingsFacing(b *Board) bool {
	red, ok1 := findKing(b, true)
	black, ok2 := findKing(b, false)
	if !ok1 || !ok2 || red.X != black.X {
		return false
	}
	lo, hi := red.Y, black.Y
	if lo > hi {
		lo, hi = hi, lo
	}
	for y := lo + 1; y < hi; y++ {
		if !b.At(red.X, y).Empty() {
			return false
		}
	}
	return true
}

// InCheck reports whether the given colour's king is presently
// attacked, including by the opposing king facing it down an open file.
func InCheck(b *Board, red bool) bool {
	king, ok := findKing(b, red)
	if !ok {
		return false
	}
	if attacked(b, king.X, king.Y, !red) {
		return true
	}
	return kingsFacing(b)
}

func applyMove(b *Board, m Move) *Board {
	c := b.clone()
	p := c.At(m.From.X, m.From.Y)
	c.set(m.From.X, m.From.Y, Piece{})
	c.set(m.To.X, m.To.Y, p)
	return c
}

// LegalMoves enumerates every move `red` may play on b that does not
// leave its own king in check (or facing the opposing king).
func LegalMoves(b *Board, red bool) []Move {
	var out []Move
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			p := b.At(x, y)
			if p.Empty() || p.Red != red {
				continue
			}
			from := Location{x, y}
			for _, to := range pseudoDestinations(b, x, y, p.Kind, red) {
				next := applyMove(b, Move{From: from, To: to})
				if !InCheck(next, red) {
					out = append(out, Move{From: from, To: to})
				}
			}
		}
	}
	return out
}

// IsLegal reports whether m is a legal move for `red` to play on b.
func IsLegal(b *Board, red bool, m Move) bool {
	p := b.At(m.From.X, m.From.Y)
	if p.Empty() || p.Red != red {
		return false
	}
	for _, dest := range pseudoDestinations(b, m.From.X, m.From.Y, p.Kind, red) {
		if dest == m.To {
			next := applyMove(b, m)
			return !InCheck(next, red)
		}
	}
	return false
}
