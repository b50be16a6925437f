// Player: a registered name, its connected instances, and its per-opponent status
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
	"sync"

	"xqarbiter/wire"
	"xqarbiter/xq"
)

// Player is a registered name. It may have several connected Instances
// (one per open TCP connection; a disconnected one is dropped) and tracks one Status
// per opponent it has played or queued against.
//
// A Player's own mutex guards only its own instances and status map;
// the Tournament's mutex separately guards the registry (the name→id
// map and the player slice itself). No two players' mutexes are ever
// held at once.
type Player struct {
	mu sync.RWMutex

	id        xq.PlayerId
	name      string
	instances []*Instance
	status    map[xq.PlayerId]*Status
	nextInst  uint32
}

func newPlayer(id xq.PlayerId, name string) *Player {
	xq.Info.Printf("new player %q registered with id %d", name, id)
	return &Player{id: id, name: name, status: make(map[xq.PlayerId]*Status)}
}

// Name returns the player's registered name.
func (p *Player) Name() string {
	// name is set once at construction and never mutated afterward.
	return p.name
}

// createInstance wraps framer as a new Instance owned by this player
// and pushes it onto the back of the instance queue.
func (p *Player) createInstance(framer *wire.LineFramer) *Instance {
	p.mu.Lock()
	defer p.mu.Unlock()

	name := fmt.Sprintf("%s:%d", p.name, p.nextInst)
	p.nextInst++
	in := newInstance(p.id, name, framer)
	p.instances = append(p.instances, in)
	xq.Info.Printf("new instance %q registered", name)
	return in
}

// popInstance removes and returns the oldest queued instance, if any.
func (p *Player) popInstance() (*Instance, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.instances) == 0 {
		return nil, false
	}
	in := p.instances[0]
	p.instances = p.instances[1:]
	return in, true
}

// pushInstance returns an instance to the back of the queue, e.g.
// after a game completes or a borrow needs to be undone.
func (p *Player) pushInstance(in *Instance) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.instances = append(p.instances, in)
}

func (p *Player) statusFor(away xq.PlayerId) *Status {
	s, ok := p.status[away]
	if !ok {
		s = &Status{}
		p.status[away] = s
	}
	return s
}

// enqueue increments the number of games this player owes against
// away.
func (p *Player) enqueue(away xq.PlayerId, count uint32) {
	if count == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statusFor(away).Queued += count
	xq.Debug.Printf("player %d enqueued %d game(s) against player %d", p.id, count, away)
}

type queuedEntry struct {
	away   xq.PlayerId
	queued uint32
}

// iterQueued snapshots every opponent this player currently owes games
// against.
func (p *Player) iterQueued() []queuedEntry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]queuedEntry, 0, len(p.status))
	for away, s := range p.status {
		if s.Queued > 0 {
			out = append(out, queuedEntry{away: away, queued: s.Queued})
		}
	}
	return out
}

type statusEntry struct {
	away   xq.PlayerId
	status Status
}

// iterStatus snapshots this player's Status against every opponent it
// has any history or pending games with.
func (p *Player) iterStatus() []statusEntry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]statusEntry, 0, len(p.status))
	for away, s := range p.status {
		out = append(out, statusEntry{away: away, status: *s})
	}
	return out
}

// tryTransfer atomically moves one queued game against away into the
// running count, reporting false (no-op) if none is queued.
func (p *Player) tryTransfer(away xq.PlayerId) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.status[away]
	if !ok || s.Queued == 0 {
		return false
	}
	s.Queued--
	s.Running++
	return true
}

// completeMatch merges the outcome's score into this player's status
// against away and moves one running game back to settled.
func (p *Player) completeMatch(away xq.PlayerId, score xq.Score) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.statusFor(away)
	s.Score.Merge(score)
	s.Running--
}
