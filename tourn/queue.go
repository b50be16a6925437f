// Queue: the two-phase builder behind Tournament.enqueue
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
	"strings"

	"xqarbiter/xq"
)

type pendingEntry struct {
	opponent string
	asRed    bool // whether the player that called enqueue() is red
	count    uint32
}

// Queue accumulates match requests for a single player before
// committing them to the registry in one pass. It is returned by
// Tournament.Enqueue and consumed by a single call to Done.
type Queue struct {
	t      *Tournament
	player xq.PlayerId
	name   string
	pend   []pendingEntry
}

// Against enqueues two series against name: this player red for
// ceil(count/2) games, and red for the opponent for the remaining
// floor(count/2).
func (q *Queue) Against(name string, count uint32) *Queue {
	redCount := (count + 1) / 2
	blackCount := count / 2
	if redCount > 0 {
		q.pend = append(q.pend, pendingEntry{opponent: name, asRed: true, count: redCount})
	}
	if blackCount > 0 {
		q.pend = append(q.pend, pendingEntry{opponent: name, asRed: false, count: blackCount})
	}
	return q
}

// AgainstAs enqueues count games against name with this player's
// colour fixed to asRed.
func (q *Queue) AgainstAs(name string, asRed bool, count uint32) *Queue {
	if count > 0 {
		q.pend = append(q.pend, pendingEntry{opponent: name, asRed: asRed, count: count})
	}
	return q
}

// AgainstAllExcept calls Against(count) for every other registered
// player whose name is not in excluded and is not this player.
func (q *Queue) AgainstAllExcept(excluded []string, count uint32) *Queue {
	skip := make(map[string]bool, len(excluded)+1)
	skip[q.name] = true
	for _, n := range excluded {
		skip[n] = true
	}
	for _, name := range q.t.iterPlayerNames() {
		if !skip[name] {
			q.Against(name, count)
		}
	}
	return q
}

// UnknownOpponentsError reports the names Done could not resolve.
// Entries with known opponents still committed.
type UnknownOpponentsError struct {
	Names []string
}

func (e UnknownOpponentsError) Error() string {
	return fmt.Sprintf("tourn: unknown opponent(s): %s", strings.Join(e.Names, ", "))
}

// Done resolves every pending entry's opponent name, commits the known
// ones under the registry's write discipline, runs the matcher, and
// returns an UnknownOpponentsError naming any that could not be
// resolved. Known entries commit regardless of unknown ones.
func (q *Queue) Done() error {
	var unknown []string
	seenUnknown := make(map[string]bool)

	for _, e := range q.pend {
		awayId, ok := q.t.resolveId(e.opponent)
		if !ok {
			if !seenUnknown[e.opponent] {
				seenUnknown[e.opponent] = true
				unknown = append(unknown, e.opponent)
			}
			continue
		}

		var homeId, thisAway xq.PlayerId
		if e.asRed {
			homeId, thisAway = q.player, awayId
		} else {
			homeId, thisAway = awayId, q.player
		}
		home := q.t.playerById(homeId)
		home.enqueue(thisAway, e.count)
		q.t.Events.Publish(fmt.Sprintf("enqueue %s vs %s x%d", home.Name(), q.t.playerById(thisAway).Name(), e.count))
	}

	q.t.matchAll()

	if len(unknown) > 0 {
		return UnknownOpponentsError{Names: unknown}
	}
	return nil
}
