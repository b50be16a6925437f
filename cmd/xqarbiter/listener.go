// TCP accept loop and player handshake
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

package main

import (
	"errors"
	"fmt"
	"net"

	"xqarbiter/tourn"
	"xqarbiter/wire"
	"xqarbiter/xq"
)

// listener is the TCP Manager: it accepts connections, performs the
// init/info handshake spec §4.2 requires before a stream may join the
// tournament, and hands survivors off to Tournament.Join.
type listener struct {
	tournament *tourn.Tournament
	host       string
	port       uint
	ln         net.Listener
}

func (l *listener) String() string { return "tcp listener" }

// Start binds the listening socket and accepts connections until
// Shutdown closes it. A bind failure is fatal per spec §7.
func (l *listener) Start() {
	addr := fmt.Sprintf("%s:%d", l.host, l.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		xq.Info.Fatalf("bind failed on %s: %v", addr, err)
	}
	l.ln = ln
	xq.Info.Printf("listening on %s", addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			xq.Info.Printf("accept failed: %v", err)
			continue
		}
		go l.handshake(conn)
	}
}

func (l *listener) Shutdown() {
	if l.ln != nil {
		_ = l.ln.Close()
	}
}

// handshake reads the mandatory init/info preamble spec §4.2 defines
// before a connection is allowed to join the tournament. Any
// malformed preamble closes the session per spec §7's HandshakeFailed
// rule.
func (l *listener) handshake(conn net.Conn) {
	framer := wire.NewLineFramer(conn)

	line, ok := framer.ReadLine()
	if !ok {
		_ = framer.Close()
		return
	}
	msg, ok := wire.DecodePlayerMessage(line)
	if !ok || msg.Kind != wire.Init || msg.Version != wire.SupportedVersion {
		xq.Info.Printf("handshake failed from %s: bad init", conn.RemoteAddr())
		_ = framer.Close()
		return
	}

	line, ok = framer.ReadLine()
	if !ok {
		_ = framer.Close()
		return
	}
	msg, ok = wire.DecodePlayerMessage(line)
	if !ok || msg.Kind != wire.Info || msg.Name == "" {
		xq.Info.Printf("handshake failed from %s: bad info", conn.RemoteAddr())
		_ = framer.Close()
		return
	}

	l.tournament.Join(msg.Name, framer)
}
