// GameDriver: the per-instance-pair game loop
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
	"fmt"

	"xqarbiter/engine"
	"xqarbiter/wire"
	"xqarbiter/xq"
)

// runGame drives one game between the instances borrowed for home and
// away, then reports the result back to both Players and re-triggers
// the matcher. It is always run in its own goroutine, off the
// tournament lock.
func (t *Tournament) runGame(home, away *Player, h, a *Instance) {
	outcome, hSurvivor, aSurvivor := compete(h, a, t.game)

	if hSurvivor != nil {
		home.pushInstance(hSurvivor)
	} else {
		_ = h.Close()
	}
	if aSurvivor != nil {
		away.pushInstance(aSurvivor)
	} else {
		_ = a.Close()
	}

	score := xq.FromOutcome(outcome)
	home.completeMatch(away.id, score)

	xq.Info.Printf("game between %s and %s ended: %s", h.Name(), a.Name(), outcome)
	t.Events.Publish(fmt.Sprintf("game-end %s vs %s: %s", h.Name(), a.Name(), outcome))
	if hSurvivor == nil || aSurvivor == nil {
		xq.Info.Printf("disconnect in game between %s and %s", h.Name(), a.Name())
		t.Events.Publish(fmt.Sprintf("disconnect %s vs %s", h.Name(), a.Name()))
	}
	t.matchAll()
}

// raceErrors runs f1 and f2 concurrently, waits for both, and returns
// the first non-nil error to arrive, matching the
// "if either side errors, the whole driver errors with that side's
// id" rule. Both sides' I/O always completes before this returns.
func raceErrors(f1, f2 func() error) error {
	ch := make(chan error, 2)
	go func() { ch <- f1() }()
	go func() { ch <- f2() }()
	e1, e2 := <-ch, <-ch
	if e1 != nil {
		return e1
	}
	return e2
}

func sendBoth(home, away *Instance, msg wire.ArbiterMessage) error {
	return raceErrors(
		func() error { return home.Send(msg) },
		func() error { return away.Send(msg) },
	)
}

func waitReady(in *Instance) error {
	for {
		msg, err := in.Recv()
		if err != nil {
			return err
		}
		if msg.Kind == wire.Ready {
			return nil
		}
	}
}

// disconnectSurvivors maps a disconnect's owner to which instance
// survives (is returned) and which is dropped (closed).
func disconnectSurvivors(err error, home, away *Instance) (outcome xq.Outcome, hSurvivor, aSurvivor *Instance) {
	de := err.(DisconnectError)
	if de.Owner == home.id {
		return xq.BlackWon, nil, away
	}
	return xq.RedWon, home, nil
}

// compete drives a single game to completion between home (red) and
// away (black), returning the outcome and whichever instances survived
// the connection. See spec §4.5's state table for the exact transition
// rules this implements.
func compete(home, away *Instance, cfg GameConfig) (xq.Outcome, *Instance, *Instance) {
	game := engine.Opening()
	if cfg.MoveRuleHalfMoves > 0 {
		game.SetMoveRuleLimit(cfg.MoveRuleHalfMoves)
	}

	// Handshake: send the opening position to both sides concurrently.
	if err := sendBoth(home, away, wire.ArbiterMessage{
		Kind: wire.Game, Fen: game.Board().FEN(), RedTurn: game.RedTurn(),
	}); err != nil {
		return disconnectSurvivors(err, home, away)
	}

	// WaitReady: both sides must acknowledge before play begins.
	if err := raceErrors(
		func() error { return waitReady(home) },
		func() error { return waitReady(away) },
	); err != nil {
		return disconnectSurvivors(err, home, away)
	}

	timeMS := cfg.MoveTimeoutMS
	if timeMS == 0 {
		timeMS = DefaultGameConfig.MoveTimeoutMS
	}

	for {
		if outcome, over := game.Outcome(); over {
			return outcome, home, away
		}

		mover := home
		if !game.RedTurn() {
			mover = away
		}

		if err := mover.Send(wire.ArbiterMessage{Kind: wire.Prompt, TimeMS: timeMS}); err != nil {
			return disconnectSurvivors(err, home, away)
		}

		var move string
		for {
			msg, err := mover.Recv()
			if err != nil {
				return disconnectSurvivors(err, home, away)
			}
			if msg.Kind != wire.Play {
				continue // discard, per spec's resolved Open Question
			}
			if !game.Play(msg.Move) {
				// Illegal move: re-prompt the same side.
				if err := mover.Send(wire.ArbiterMessage{Kind: wire.Prompt, TimeMS: timeMS}); err != nil {
					return disconnectSurvivors(err, home, away)
				}
				continue
			}
			move = msg.Move
			break
		}

		if err := sendBoth(home, away, wire.ArbiterMessage{Kind: wire.Update, Move: move}); err != nil {
			return disconnectSurvivors(err, home, away)
		}
	}
}
