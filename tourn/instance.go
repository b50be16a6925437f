// Instance: one connected player stream, owned by a Player
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

	"xqarbiter/wire"
	"xqarbiter/xq"
)

// DisconnectError reports that the instance owned by Owner closed or
// produced an undecodable line; the driver attributes the resulting
// loss or win to that PlayerId.
type DisconnectError struct {
	Owner xq.PlayerId
}

func (e DisconnectError) Error() string {
	return fmt.Sprintf("tourn: instance owned by player %d disconnected", e.Owner)
}

// Instance pairs a single connected stream with the PlayerId that owns
// it. A Player may hold several Instances (multiple connections from
// the same logical player), queued FIFO and borrowed one at a time by
// the matcher.
type Instance struct {
	id     xq.PlayerId
	name   string
	framer *wire.LineFramer
}

func newInstance(id xq.PlayerId, name string, framer *wire.LineFramer) *Instance {
	return &Instance{id: id, name: name, framer: framer}
}

// Name is the instance's own connection-scoped identity, e.g.
// "some-bot:0" for the first connection some-bot ever made.
func (in *Instance) Name() string { return in.name }

// Send writes an arbiter message to the instance, returning
// DisconnectError{in.id} on any I/O failure.
func (in *Instance) Send(msg wire.ArbiterMessage) error {
	if err := in.framer.WriteLine(msg.Encode()); err != nil {
		return DisconnectError{Owner: in.id}
	}
	return nil
}

// Recv reads and decodes the next player message, returning
// DisconnectError{in.id} on EOF, I/O failure, or an undecodable line.
func (in *Instance) Recv() (wire.PlayerMessage, error) {
	line, ok := in.framer.ReadLine()
	if !ok {
		return wire.PlayerMessage{}, DisconnectError{Owner: in.id}
	}
	msg, ok := wire.DecodePlayerMessage(line)
	if !ok {
		return wire.PlayerMessage{}, DisconnectError{Owner: in.id}
	}
	return msg, nil
}

// Close closes the underlying stream.
func (in *Instance) Close() error {
	return in.framer.Close()
}
