// Xiangqi game state: turn tracking, move application, outcome detection
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
	"strings"

	"xqarbiter/xq"
)

// DefaultMoveRuleHalfMoves is the number of consecutive half-moves
// without a capture or a pawn advance after which a game is drawn.
// Configurable per spec §9's Open Question; see conf.Conf.Game.
const DefaultMoveRuleHalfMoves = 100

// Game is a single Xiangqi game in progress: a board, whose turn it is
// to move, and the half-move clock the move-rule draw depends on.
type Game struct {
	board        *Board
	redTurn      bool
	halfMoves    int
	moveRuleHalf int
}

// Opening returns a new game in the standard starting position, red
// to move first.
func Opening() *Game {
	return &Game{board: OpeningBoard(), redTurn: true, moveRuleHalf: DefaultMoveRuleHalfMoves}
}

// FromFEN parses a full position string: the board field, a space, and
// a side-to-move letter ('w' for red, as in international chess FEN,
// or 'b' for black). The wire protocol's game message carries the side
// as a separate true/false token instead.
func FromFEN(fen string) (*Game, error) {
	fields := strings.Fields(fen)
	if len(fields) != 2 {
		return nil, fmt.Errorf("engine: expected \"<board> <side>\", got %q", fen)
	}
	board, err := ParseFEN(fields[0])
	if err != nil {
		return nil, err
	}
	var redTurn bool
	switch fields[1] {
	case "w":
		redTurn = true
	case "b":
		redTurn = false
	default:
		return nil, fmt.Errorf("engine: invalid side to move %q", fields[1])
	}
	return &Game{board: board, redTurn: redTurn, moveRuleHalf: DefaultMoveRuleHalfMoves}, nil
}

// SetMoveRuleLimit overrides the half-move count used by the move-rule
// draw, per conf.Conf.Game.MoveRuleHalfMoves.
func (g *Game) SetMoveRuleLimit(halfMoves int) {
	g.moveRuleHalf = halfMoves
}

// FEN renders the full position string, the inverse of FromFEN.
func (g *Game) FEN() string {
	side := "b"
	if g.redTurn {
		side = "w"
	}
	return g.board.FEN() + " " + side
}

// RedTurn reports whether it is red's turn to move.
func (g *Game) RedTurn() bool {
	return g.redTurn
}

// Board exposes the current position for rendering.
func (g *Game) Board() *Board {
	return g.board
}

// Play applies the four-character move if, and only if, it is legal
// for the side to move. It reports whether the move was applied.
func (g *Game) Play(move string) bool {
	m, ok := ParseMove(move)
	if !ok {
		return false
	}
	if !IsLegal(g.board, g.redTurn, m) {
		return false
	}
	piece := g.board.At(m.From.X, m.From.Y)
	capture := g.board.At(m.To.X, m.To.Y)
	if capture.Empty() && piece.Kind != Pawn {
		g.halfMoves++
	} else {
		g.halfMoves = 0
	}
	g.board = applyMove(g.board, m)
	g.redTurn = !g.redTurn
	return true
}

// Outcome reports the game's result if it has ended, per §4.5:
// checkmate or stalemate of the side to move, or the move-rule draw.
func (g *Game) Outcome() (xq.Outcome, bool) {
	if g.halfMoves >= g.moveRuleHalf {
		return xq.MoveRule, true
	}
	if len(LegalMoves(g.board, g.redTurn)) > 0 {
		return 0, false
	}
	if InCheck(g.board, g.redTurn) {
		// Checkmate: the side to move has no reply to check.
		if g.redTurn {
			return xq.BlackWon, true
		}
		return xq.RedWon, true
	}
	return xq.Stalemate, true
}
