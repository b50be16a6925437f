// Xiangqi rules engine tests
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xqarbiter/xq"
)

func TestFENRoundTrip(t *testing.T) {
	b, err := ParseFEN(OpeningFEN)
	require.NoError(t, err)
	assert.Equal(t, OpeningFEN, b.FEN())
}

func TestOpeningGameFEN(t *testing.T) {
	g := Opening()
	assert.True(t, g.RedTurn())
	assert.Equal(t, OpeningFEN+" w", g.FEN())

	parsed, err := FromFEN(g.FEN())
	require.NoError(t, err)
	assert.Equal(t, g.FEN(), parsed.FEN())
}

func TestParseMove(t *testing.T) {
	m, ok := ParseMove("h2e2")
	require.True(t, ok)
	assert.Equal(t, Location{X: 7, Y: 2}, m.From)
	assert.Equal(t, Location{X: 4, Y: 2}, m.To)
	assert.Equal(t, "h2e2", m.String())

	_, ok = ParseMove("h2e")
	assert.False(t, ok)
	_, ok = ParseMove("z2e2")
	assert.False(t, ok)
}

func TestCannonOpeningMove(t *testing.T) {
	g := Opening()
	assert.True(t, g.Play("h2e2"))
	assert.False(t, g.RedTurn())
}

func TestIllegalMoveRejected(t *testing.T) {
	g := Opening()
	assert.False(t, g.Play("a0a5"))
	assert.True(t, g.RedTurn())
}

func TestCannonRequiresScreenToCapture(t *testing.T) {
	b, err := ParseFEN("4R4/9/9/4c4/9/9/9/9/9/9")
	require.NoError(t, err)
	g := &Game{board: b, redTurn: false, moveRuleHalf: DefaultMoveRuleHalfMoves}
	// No screen between the cannon and the chariot: capture is illegal.
	assert.False(t, g.Play("e6e9"))
}

func TestCannonCapturesOverScreen(t *testing.T) {
	b, err := ParseFEN("4R4/9/4p4/4c4/9/9/9/9/9/9")
	require.NoError(t, err)
	g := &Game{board: b, redTurn: false, moveRuleHalf: DefaultMoveRuleHalfMoves}
	assert.True(t, g.Play("e6e9"))
}

func TestElephantCannotCrossRiver(t *testing.T) {
	b, err := ParseFEN("9/9/9/9/9/4E4/9/9/9/9")
	require.NoError(t, err)
	g := &Game{board: b, redTurn: true, moveRuleHalf: DefaultMoveRuleHalfMoves}
	assert.False(t, g.Play("e4c6"))
}

func TestHorseBlockedByLeg(t *testing.T) {
	b, err := ParseFEN("9/9/9/9/9/4p4/4H4/9/9/9")
	require.NoError(t, err)
	g := &Game{board: b, redTurn: true, moveRuleHalf: DefaultMoveRuleHalfMoves}
	assert.False(t, g.Play("e3d5"))
	assert.False(t, g.Play("e3f5"))
}

func TestKingsMayNotFaceEachOther(t *testing.T) {
	b, err := ParseFEN("3k5/9/9/9/9/9/9/9/9/3K5")
	require.NoError(t, err)
	g := &Game{board: b, redTurn: true, moveRuleHalf: DefaultMoveRuleHalfMoves}
	// Moving the red king up the same open file the black king sits on
	// would expose it to the flying-general rule.
	assert.False(t, g.Play("d0d1"))
}

func TestMoveRuleDraw(t *testing.T) {
	g := Opening()
	g.SetMoveRuleLimit(2)
	require.True(t, g.Play("h2e2"))
	_, over := g.Outcome()
	assert.False(t, over)
	require.True(t, g.Play("h9g7"))
	outcome, over := g.Outcome()
	require.True(t, over)
	assert.Equal(t, xq.MoveRule, outcome)
}

func TestInCheckDetected(t *testing.T) {
	// A red chariot on the black king's open file gives check.
	b, err := ParseFEN("2k6/9/2R6/9/9/9/9/9/9/4K4")
	require.NoError(t, err)
	g := &Game{board: b, redTurn: false, moveRuleHalf: DefaultMoveRuleHalfMoves}
	assert.True(t, InCheck(g.board, false))
}
