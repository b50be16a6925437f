// EventHub: a publish/subscribe broadcaster for tournament state transitions
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

import "sync"

// EventHub broadcasts one line of text per state transition named in
// spec §6 (join, enqueue commit, match spawn, game end, disconnect) to
// every current subscriber, for the web package's spectator feed. A
// nil *EventHub is valid and simply drops every publish, so
// Tournament works without one.
type EventHub struct {
	mu   sync.Mutex
	subs map[chan string]struct{}
}

// NewEventHub returns an empty hub.
func NewEventHub() *EventHub {
	return &EventHub{subs: make(map[chan string]struct{})}
}

// Subscribe registers a new listener and returns its channel along
// with an unsubscribe function. The channel is buffered; a slow
// subscriber misses events rather than blocking a game in progress.
func (h *EventHub) Subscribe() (<-chan string, func()) {
	ch := make(chan string, 32)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	unsub := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
	}
	return ch, unsub
}

func (h *EventHub) Publish(line string) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- line:
		default:
		}
	}
}
