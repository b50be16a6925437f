// ControlConsole: the local admin REPL
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

// Package console implements the local operator REPL: status,
// enqueue, and contest, run on stdin/stdout alongside the TCP accept
// loop.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"xqarbiter/engine"
	"xqarbiter/tourn"
	"xqarbiter/wire"
)

// HumanName is the reserved player name used by Contest; external
// clients should not register under it.
const HumanName = "human"

const defaultEnqueueCount = 2

// Console drives the REPL against a Tournament, dialing address for
// Contest's own TCP connection back into the arbiter it is part of.
type Console struct {
	tournament *tourn.Tournament
	address    string
	in         *bufio.Scanner
	out        io.Writer
}

// New builds a Console reading commands from in and writing to out.
func New(t *tourn.Tournament, address string, in io.Reader, out io.Writer) *Console {
	return &Console{tournament: t, address: address, in: bufio.NewScanner(in), out: out}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// Run reads and executes commands until stdin closes.
func (c *Console) Run() {
	for c.in.Scan() {
		fields := strings.Fields(c.in.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "status":
			c.status(fields[1:])
		case "enqueue":
			c.enqueue(fields[1:])
		case "contest":
			c.contest(fields[1:])
		default:
			c.printf("unknown command %q\n", fields[0])
		}
	}
}

func (c *Console) status(names []string) {
	if len(names) == 0 {
		for _, name := range c.tournament.IterPlayers() {
			c.printf("%s\n", name)
		}
		return
	}
	for _, name := range names {
		statuses, ok := c.tournament.Status(name)
		if !ok {
			c.printf("unknown player %q\n", name)
			continue
		}
		for other, s := range statuses {
			c.printf("%s vs. %s - %s\n", name, other, s)
		}
	}
}

// enqueue parses "<name> [against ...] [--count K]". If no opponents
// are named, the player is enqueued against every other registered
// player except the reserved human name.
func (c *Console) enqueue(args []string) {
	if len(args) == 0 {
		c.printf("enqueue requires a player name\n")
		return
	}
	name := args[0]
	count := uint32(defaultEnqueueCount)
	var against []string

	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		if rest[i] == "--count" && i+1 < len(rest) {
			n, err := strconv.ParseUint(rest[i+1], 10, 32)
			if err != nil {
				c.printf("invalid --count value %q\n", rest[i+1])
				return
			}
			count = uint32(n)
			i++
			continue
		}
		against = append(against, rest[i])
	}

	queue, ok := c.tournament.Enqueue(name)
	if !ok {
		c.printf("unknown player %q\n", name)
		return
	}
	if len(against) == 0 {
		queue.AgainstAllExcept([]string{HumanName}, count)
	} else {
		for _, opponent := range against {
			queue.Against(opponent, count)
		}
	}

	if err := queue.Done(); err != nil {
		var unknown tourn.UnknownOpponentsError
		if errors.As(err, &unknown) {
			for _, n := range unknown.Names {
				c.printf("unknown player %q\n", n)
			}
		}
	}
}

// contest parses "[<against=robot>] [--red]", connects to the
// arbiter's own listening port as the reserved human player, enqueues
// a single game, then hands control to the interactive move loop.
func (c *Console) contest(args []string) {
	against := "robot"
	red := false
	for _, a := range args {
		switch a {
		case "--red":
			red = true
		default:
			against = a
		}
	}

	conn, err := net.Dial("tcp", c.address)
	if err != nil {
		c.printf("failed to initialize: %v\n", err)
		return
	}
	framer := wire.NewLineFramer(conn)
	if err := framer.WriteLine(wire.PlayerMessage{Kind: wire.Init, Version: wire.SupportedVersion}.Encode()); err != nil {
		c.printf("failed to initialize: %v\n", err)
		return
	}
	if err := framer.WriteLine(wire.PlayerMessage{Kind: wire.Info, Name: HumanName}.Encode()); err != nil {
		c.printf("failed to initialize: %v\n", err)
		return
	}

	for {
		queue, ok := c.tournament.Enqueue(HumanName)
		if !ok {
			time.Sleep(10 * time.Millisecond)
			continue
		}
		queue.AgainstAs(against, red, 1)
		if err := queue.Done(); err != nil {
			var unknown tourn.UnknownOpponentsError
			if errors.As(err, &unknown) {
				for _, n := range unknown.Names {
					c.printf("unknown player %q\n", n)
				}
			}
			_ = framer.Close()
			return
		}
		break
	}

	c.printf("connected to tournament\n")
	if err := c.compete(framer); err != nil {
		c.printf("disconnected with error - %v\n", err)
	} else {
		c.printf("disconnected\n")
	}
}

// compete is the local move-input subloop: it mirrors the remote
// game's position, prints the board between moves, and reads moves
// from the console's own input (full four-character form, or the
// progressively-narrowing shorthand described in SPEC_FULL.md §12).
func (c *Console) compete(framer *wire.LineFramer) error {
	var game *engine.Game

	recvGame := func() error {
		line, ok := framer.ReadLine()
		if !ok {
			return errors.New("connection closed")
		}
		msg, ok := wire.DecodeArbiterMessage(line)
		if !ok || msg.Kind != wire.Game {
			return errors.New("expected game message")
		}
		g, err := engine.FromFEN(fmt.Sprintf("%s %s", msg.Fen, sideLetter(msg.RedTurn)))
		if err != nil {
			return err
		}
		game = g
		return framer.WriteLine(wire.PlayerMessage{Kind: wire.Ready}.Encode())
	}

	if err := recvGame(); err != nil {
		return err
	}

	for {
		for {
			line, ok := framer.ReadLine()
			if !ok {
				return errors.New("connection closed")
			}
			msg, ok := wire.DecodeArbiterMessage(line)
			if !ok {
				return errors.New("protocol violation")
			}
			switch msg.Kind {
			case wire.Prompt:
			case wire.Update:
				game.Play(msg.Move)
				if _, over := game.Outcome(); over {
					c.printf("%s", game.Board())
					return nil
				}
				continue
			case wire.Game:
				if err := recvGame(); err != nil {
					return err
				}
				continue
			}
			break
		}

		c.printf("%s", game.Board())

		for {
			if !c.in.Scan() {
				return nil
			}
			line := strings.ToLower(strings.TrimSpace(c.in.Text()))

			if mv, ok := engine.ParseMove(line); ok && engine.IsLegal(game.Board(), game.RedTurn(), mv) {
				if err := framer.WriteLine(wire.PlayerMessage{Kind: wire.Play, Move: mv.String()}.Encode()); err != nil {
					return err
				}
				break
			}
			if mv, ok := disambiguate(engine.LegalMoves(game.Board(), game.RedTurn()), line); ok {
				if err := framer.WriteLine(wire.PlayerMessage{Kind: wire.Play, Move: mv.String()}.Encode()); err != nil {
					return err
				}
				break
			}
			switch line {
			case "end":
				return nil
			case "print":
				c.printf("%s", game.Board())
			default:
				c.printf("unknown input\n")
			}
		}
	}
}

func sideLetter(red bool) string {
	if red {
		return "w"
	}
	return "b"
}

// disambiguate narrows moves by the alphanumeric characters of input:
// the first two filter the move's origin square, the rest its
// destination, matching on column letter or row digit. It succeeds
// only when exactly one candidate remains.
func disambiguate(moves []engine.Move, input string) (engine.Move, bool) {
	filtered := moves
	i := 0
	for _, r := range input {
		if len(filtered) <= 1 {
			break
		}
		var match func(engine.Location) bool
		switch {
		case r >= '0' && r <= '9':
			y := int(r - '0')
			match = func(l engine.Location) bool { return l.Y == y }
		case r >= 'a' && r <= 'z':
			x := int(r - 'a')
			match = func(l engine.Location) bool { return l.X == x }
		default:
			continue
		}

		var next []engine.Move
		for _, mv := range filtered {
			loc := mv.From
			if i > 1 {
				loc = mv.To
			}
			if match(loc) {
				next = append(next, mv)
			}
		}
		filtered = next
		i++
	}
	if len(filtered) == 1 {
		return filtered[0], true
	}
	return engine.Move{}, false
}
