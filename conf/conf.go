// Configuration specification and manager lifecycle
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

// Package conf holds the arbiter's TOML-backed configuration and the
// manager lifecycle (Register/Start/Shutdown) that cmd/xqarbiter wires
// the tournament, console and web dashboard through.
package conf

import (
	"fmt"
	"os"
	"os/signal"
)

// TCPConf configures the listening socket per spec §6. PingInterval,
// PingTimeout and Retries are loaded and dumped with the rest of the
// file, but no component reads them: no keepalive pings are sent.
type TCPConf struct {
	Host string `toml:"host"`
	Port uint   `toml:"port"`

	PingInterval uint `toml:"ping_interval"` // milliseconds
	PingTimeout  uint `toml:"ping_timeout"`  // milliseconds
	Retries      uint `toml:"retries"`
}

// GameConf configures the per-game tunables spec §9's Open Questions
// leave to configuration.
type GameConf struct {
	MoveTimeoutMS     uint `toml:"move_timeout_ms"`
	MoveRuleHalfMoves uint `toml:"move_rule_half_moves"`
}

// ConsoleConf enables or disables the local stdin REPL.
type ConsoleConf struct {
	Enabled bool `toml:"enabled"`
}

// WebConf configures the read-only spectator dashboard.
type WebConf struct {
	Enabled bool `toml:"enabled"`
	Port    uint `toml:"port"`
}

// Conf is the arbiter's full configuration.
type Conf struct {
	Debug   bool        `toml:"debug"`
	TCP     TCPConf     `toml:"tcp"`
	Game    GameConf    `toml:"game"`
	Console ConsoleConf `toml:"console"`
	Web     WebConf     `toml:"web"`

	file string
	man  []Manager
	run  bool
}

// Default returns the configuration used absent a configuration file.
func Default() *Conf {
	return &Conf{
		Debug: false,
		TCP: TCPConf{
			Host:         "127.0.0.1",
			Port:         5000,
			PingInterval: 0,
			PingTimeout:  0,
			Retries:      0,
		},
		Game: GameConf{
			MoveTimeoutMS:     1000,
			MoveRuleHalfMoves: 100,
		},
		Console: ConsoleConf{Enabled: true},
		Web:     WebConf{Enabled: false, Port: 8080},
	}
}

// Manager is a long-running component the arbiter owns: the TCP
// accept loop, the console REPL, the web dashboard. Each runs in its
// own goroutine once Start is called and must return from Start once
// Shutdown is invoked.
type Manager interface {
	fmt.Stringer
	Start()
	Shutdown()
}

// Register adds m to the set of managers Start will launch. Must be
// called before Start.
func (c *Conf) Register(m Manager) {
	if c.run {
		panic(fmt.Sprintf("late register: %s", m))
	}
	c.man = append(c.man, m)
}

// Start launches every registered manager and blocks until an
// interrupt signal arrives, then shuts them all down in registration
// order.
func (c *Conf) Start() {
	for _, m := range c.man {
		if c.Debug {
			fmt.Fprintf(os.Stderr, "[debug] starting %s\n", m)
		}
		go m.Start()
	}
	c.run = true

	intr := make(chan os.Signal, 1)
	signal.Notify(intr, os.Interrupt)
	<-intr

	for _, m := range c.man {
		if c.Debug {
			fmt.Fprintf(os.Stderr, "[debug] shutting %s down\n", m)
		}
		m.Shutdown()
	}
}
