// Tournament registry and matcher tests
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

package tourn

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xqarbiter/wire"
)

func TestStatusUnknownPlayer(t *testing.T) {
	tr := New(DefaultGameConfig)
	_, ok := tr.Status("nobody")
	assert.False(t, ok)
}

func TestEnqueueUnknownPlayer(t *testing.T) {
	tr := New(DefaultGameConfig)
	_, ok := tr.Enqueue("nobody")
	assert.False(t, ok)
}

func TestJoinAssignsStableIds(t *testing.T) {
	tr := New(DefaultGameConfig)
	client, server := net.Pipe()
	defer client.Close()

	in := tr.Join("alice", wire.NewLineFramer(server))
	assert.Equal(t, "alice:0", in.Name())
	assert.Equal(t, []string{"alice"}, tr.IterPlayers())

	client2, server2 := net.Pipe()
	defer client2.Close()
	in2 := tr.Join("alice", wire.NewLineFramer(server2))
	assert.Equal(t, "alice:1", in2.Name())
	assert.Equal(t, []string{"alice"}, tr.IterPlayers())
}

func TestAgainstSplitsColoursByHalf(t *testing.T) {
	tr := New(DefaultGameConfig)
	c1, s1 := net.Pipe()
	defer c1.Close()
	go drainPipe(c1)
	tr.Join("red-bot", wire.NewLineFramer(s1))

	c2, s2 := net.Pipe()
	defer c2.Close()
	go drainPipe(c2)
	tr.Join("black-bot", wire.NewLineFramer(s2))

	q, ok := tr.Enqueue("red-bot")
	require.True(t, ok)
	q.Against("black-bot", 3)
	require.NoError(t, q.Done())

	status, ok := tr.Status("red-bot")
	require.True(t, ok)
	s := status["black-bot"]
	assert.EqualValues(t, 3, s.Queued+s.Running)

	// red-bot is home (red) for ceil(3/2) = 2 games, black-bot for 1.
	redId, _ := tr.resolveId("red-bot")
	blackId, _ := tr.resolveId("black-bot")
	redSide := tr.playerById(redId).iterStatus()
	blackSide := tr.playerById(blackId).iterStatus()
	require.Len(t, redSide, 1)
	require.Len(t, blackSide, 1)
	assert.EqualValues(t, 2, redSide[0].status.Queued+redSide[0].status.Running)
	assert.EqualValues(t, 1, blackSide[0].status.Queued+blackSide[0].status.Running)
}

func TestDoneReportsUnknownOpponentsButCommitsKnown(t *testing.T) {
	tr := New(DefaultGameConfig)
	c1, s1 := net.Pipe()
	defer c1.Close()
	go drainPipe(c1)
	tr.Join("alice", wire.NewLineFramer(s1))

	c2, s2 := net.Pipe()
	defer c2.Close()
	go drainPipe(c2)
	tr.Join("bob", wire.NewLineFramer(s2))

	q, ok := tr.Enqueue("alice")
	require.True(t, ok)
	q.Against("bob", 2).Against("ghost", 2)
	err := q.Done()
	require.Error(t, err)
	var unk UnknownOpponentsError
	require.ErrorAs(t, err, &unk)
	assert.Equal(t, []string{"ghost"}, unk.Names)

	status, _ := tr.Status("alice")
	assert.EqualValues(t, 2, status["bob"].Queued+status["bob"].Running)
}

// drainPipe discards whatever the matcher writes to a connection that
// no test fake player is driving, so Close doesn't block a writer.
func drainPipe(conn net.Conn) {
	buf := make([]byte, 4096)
	for {
		if _, err := conn.Read(buf); err != nil {
			return
		}
	}
}

// fakePlayer drives one side of a game deterministically: it
// acknowledges the handshake, then on every prompt replies with
// moves[count%len(moves)], shuttling a single piece back and forth so
// the game runs out the move-rule clock without ever ending by
// checkmate or stalemate.
func fakePlayer(t *testing.T, conn net.Conn, moves []string) {
	t.Helper()
	framer := wire.NewLineFramer(conn)
	count := 0
	for {
		line, ok := framer.ReadLine()
		if !ok {
			return
		}
		msg, ok := wire.DecodeArbiterMessage(line)
		if !ok {
			return
		}
		switch msg.Kind {
		case wire.Game:
			if err := framer.WriteLine(wire.PlayerMessage{Kind: wire.Ready}.Encode()); err != nil {
				return
			}
		case wire.Prompt:
			mv := moves[count%len(moves)]
			count++
			if err := framer.WriteLine(wire.PlayerMessage{Kind: wire.Play, Move: mv}.Encode()); err != nil {
				return
			}
		case wire.Update:
			// no local state to update: moves are chosen by a fixed cycle
		}
	}
}

// invariant checks that every pair's merged Status views, as reported
// by Tournament.Status, mirror each other: scores are each other's
// negation and queued/running counts match. Only the home side records
// a game's score, so the raw per-player entries are not compared.
// Test-only; not part of the production API.
func invariant(tr *Tournament) bool {
	for _, name := range tr.IterPlayers() {
		mine, _ := tr.Status(name)
		for other, s := range mine {
			theirs, _ := tr.Status(other)
			o := theirs[name]
			if s.Score != o.Score.Negate() || s.Queued != o.Queued || s.Running != o.Running {
				return false
			}
		}
	}
	return true
}

func TestEndToEndGameEndsInMoveRuleDraw(t *testing.T) {
	tr := New(GameConfig{MoveTimeoutMS: 1000, MoveRuleHalfMoves: 4})

	redConn, redServer := net.Pipe()
	defer redConn.Close()
	blackConn, blackServer := net.Pipe()
	defer blackConn.Close()

	go fakePlayer(t, redConn, []string{"h2e2", "e2h2"})
	go fakePlayer(t, blackConn, []string{"h9g7", "g7h9"})

	tr.Join("red-bot", wire.NewLineFramer(redServer))
	tr.Join("black-bot", wire.NewLineFramer(blackServer))

	q, ok := tr.Enqueue("red-bot")
	require.True(t, ok)
	q.AgainstAs("black-bot", true, 1)
	require.NoError(t, q.Done())

	deadline := time.Now().Add(5 * time.Second)
	for {
		status, _ := tr.Status("red-bot")
		s := status["black-bot"]
		if s.Score.Draw+s.Score.Win+s.Score.Loss > 0 {
			assert.EqualValues(t, 1, s.Score.Draw)
			assert.True(t, invariant(tr))
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("game did not finish in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
