// Shared vocabulary for the tournament arbiter
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

// Package xq holds the small set of types and the loggers shared by
// every other package in this module, so that none of them need to
// import each other just to talk about a player id or an outcome.
package xq

import "fmt"

// PlayerId identifies a registered player within a Tournament. Ids are
// dense and assigned in join order; they are never reused.
type PlayerId int

// Outcome is the result of a single completed game.
type Outcome int

const (
	RedWon Outcome = iota
	BlackWon
	Stalemate
	MoveRule
)

func (o Outcome) String() string {
	switch o {
	case RedWon:
		return "red won"
	case BlackWon:
		return "black won"
	case Stalemate:
		return "stalemate"
	case MoveRule:
		return "move rule"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Score tallies results from one player's point of view.
type Score struct {
	Win  uint32
	Loss uint32
	Draw uint32
}

// Merge accumulates s into the receiver.
func (s *Score) Merge(o Score) {
	s.Win += o.Win
	s.Loss += o.Loss
	s.Draw += o.Draw
}

// Negate swaps win and loss, producing the opponent's view of the same
// games. Draws are symmetric and untouched.
func (s Score) Negate() Score {
	s.Win, s.Loss = s.Loss, s.Win
	return s
}

// FromOutcome builds the Score contribution of a single game from the
// red player's point of view.
func FromOutcome(o Outcome) Score {
	switch o {
	case RedWon:
		return Score{Win: 1}
	case BlackWon:
		return Score{Loss: 1}
	case Stalemate, MoveRule:
		return Score{Draw: 1}
	default:
		return Score{}
	}
}
