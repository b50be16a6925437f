// Per-pair match status
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

// Package tourn implements the tournament registry: players, their
// connected instances, the pairwise match queue, the greedy matcher,
// and the per-game driver state machine.
package tourn

import (
	"fmt"

	"xqarbiter/xq"
)

// Status is one player's view of its record against a single
// opponent: accumulated score plus the pending and in-flight match
// counts.
type Status struct {
	Score   xq.Score
	Queued  uint32
	Running uint32
}

func (s *Status) merge(o Status) {
	s.Score.Merge(o.Score)
	s.Queued += o.Queued
	s.Running += o.Running
}

// negate returns the opponent's view of the same games: win/loss
// swapped, everything else unchanged.
func (s Status) negate() Status {
	s.Score = s.Score.Negate()
	return s
}

func (s Status) String() string {
	return fmt.Sprintf("%d-%d-%d (win-loss-draw), %d queued, %d running",
		s.Score.Win, s.Score.Loss, s.Score.Draw, s.Queued, s.Running)
}
