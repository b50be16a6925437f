// Tournament: the player registry and the greedy matcher
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
	"sort"
	"sync"

	"xqarbiter/wire"
	"xqarbiter/xq"
)

// Tournament is the single shared registry of players. Its own mutex
// guards the name→id map and the player slice; each Player guards its
// own instances and status map separately, so no two mutexes are ever
// held at once (see Player's doc comment).
type Tournament struct {
	mu      sync.RWMutex
	ids     map[string]xq.PlayerId
	players []*Player

	game   GameConfig
	Events *EventHub
}

// GameConfig carries the per-game tunables a GameDriver needs: the
// advisory move-timeout sent in prompt and the move-rule half-move
// limit, both configurable per spec §9's Open Questions.
type GameConfig struct {
	MoveTimeoutMS     uint32
	MoveRuleHalfMoves int
}

// DefaultGameConfig matches the values spec §9 settles on absent
// configuration.
var DefaultGameConfig = GameConfig{MoveTimeoutMS: 1000, MoveRuleHalfMoves: 100}

// New returns an empty tournament with its own event hub.
func New(cfg GameConfig) *Tournament {
	return &Tournament{ids: make(map[string]xq.PlayerId), game: cfg, Events: NewEventHub()}
}

func (t *Tournament) resolveId(name string) (xq.PlayerId, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.ids[name]
	return id, ok
}

func (t *Tournament) playerById(id xq.PlayerId) *Player {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.players[id]
}

func (t *Tournament) snapshotPlayers() []*Player {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Player, len(t.players))
	copy(out, t.players)
	return out
}

func (t *Tournament) iterPlayerNames() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, len(t.players))
	for i, p := range t.players {
		out[i] = p.Name()
	}
	return out
}

// IterPlayers lists every registered player's name, in join order.
func (t *Tournament) IterPlayers() []string {
	return t.iterPlayerNames()
}

// Join resolves name to a PlayerId, allocating one if this is the
// first time it has been seen, registers framer as a new Instance
// owned by that player, runs the matcher, and returns the Instance.
func (t *Tournament) Join(name string, framer *wire.LineFramer) *Instance {
	t.mu.Lock()
	id, ok := t.ids[name]
	if !ok {
		id = xq.PlayerId(len(t.players))
		t.ids[name] = id
		t.players = append(t.players, newPlayer(id, name))
	}
	player := t.players[id]
	t.mu.Unlock()

	in := player.createInstance(framer)
	t.Events.Publish(fmt.Sprintf("join %s", in.Name()))
	t.matchAll()
	return in
}

// Enqueue resolves name and, if known, returns a Queue builder scoped
// to that player.
func (t *Tournament) Enqueue(name string) (*Queue, bool) {
	id, ok := t.resolveId(name)
	if !ok {
		return nil, false
	}
	return &Queue{t: t, player: id, name: name}, true
}

// Status reports this player's merged view of its record against each
// opponent it has a Status entry with, in either direction: its own
// Status against that opponent merged with the negation of that
// opponent's Status against it. Players with no queued, running or
// finished games against name are absent from the map. Returns
// ok=false if name is unknown.
func (t *Tournament) Status(name string) (map[string]Status, bool) {
	id, ok := t.resolveId(name)
	if !ok {
		return nil, false
	}
	self := t.playerById(id)
	mine := self.iterStatus()

	result := make(map[string]Status, len(mine))
	for _, e := range mine {
		other := t.playerById(e.away)
		s := result[other.Name()]
		s.merge(e.status)
		result[other.Name()] = s
	}

	// Release self's data before touching any other player, per the
	// deadlock-avoidance rule: never hold two player locks at once.
	for _, p := range t.snapshotPlayers() {
		if p.id == id {
			continue
		}
		for _, e := range p.iterStatus() {
			if e.away != id {
				continue
			}
			s := result[p.Name()]
			s.merge(e.status.negate())
			result[p.Name()] = s
		}
	}
	return result, true
}

type candidate struct {
	home, away xq.PlayerId
	queued     uint32
}

// matchAll is the greedy scheduling pass: it repeatedly finds the
// pairing with the largest pending queue, borrows one instance from
// each side, and spawns a driver for it, until no pairing can proceed.
func (t *Tournament) matchAll() {
	for {
		var candidates []candidate
		for _, p := range t.snapshotPlayers() {
			for _, qe := range p.iterQueued() {
				candidates = append(candidates, candidate{home: p.id, away: qe.away, queued: qe.queued})
			}
		}
		sort.Slice(candidates, func(i, j int) bool { return candidates[i].queued < candidates[j].queued })

		matched := false
		for i := len(candidates) - 1; i >= 0; i-- {
			c := candidates[i]
			home := t.playerById(c.home)
			away := t.playerById(c.away)

			h, ok := home.popInstance()
			if !ok {
				continue
			}
			a, ok := away.popInstance()
			if !ok {
				home.pushInstance(h)
				continue
			}
			if !home.tryTransfer(c.away) {
				home.pushInstance(h)
				away.pushInstance(a)
				continue
			}

			xq.Debug.Printf("matched %s vs %s", h.Name(), a.Name())
			t.Events.Publish(fmt.Sprintf("match %s vs %s", h.Name(), a.Name()))
			go t.runGame(home, away, h, a)
			matched = true
			break
		}
		if !matched {
			return
		}
	}
}
