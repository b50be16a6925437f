// Entry point
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
	"flag"
	"fmt"
	"os"

	"xqarbiter/conf"
	"xqarbiter/console"
	"xqarbiter/tourn"
	"xqarbiter/web"
	"xqarbiter/xq"
)

const defConfName = "xqarbiter.toml"

func main() {
	var (
		port       = flag.Uint("p", 0, "Port to listen on (overrides -conf and the default)")
		confFile   = flag.String("conf", defConfName, "Path to a TOML configuration file")
		debugFlag  = flag.Bool("debug", false, "Enable debug logging")
		dumpConfig = flag.Bool("dump-config", false, "Write the active configuration to stdout and exit")
		noConsole  = flag.Bool("no-console", false, "Disable the local admin console")
	)
	flag.UintVar(port, "port", 0, "Port to listen on (overrides -conf and the default)")
	flag.Parse()

	if flag.NArg() != 0 {
		fmt.Fprintf(flag.CommandLine.Output(), "too many arguments to %s\n", os.Args[0])
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := conf.Open(*confFile)
	if err != nil {
		xq.Info.Fatalf("failed to load %s: %v", *confFile, err)
	}
	if *port != 0 {
		cfg.TCP.Port = *port
	}
	if *debugFlag {
		cfg.Debug = true
	}
	if *noConsole {
		cfg.Console.Enabled = false
	}
	xq.SetDebug(cfg.Debug)

	if *dumpConfig {
		if err := cfg.Dump(os.Stdout); err != nil {
			xq.Info.Fatalf("failed to dump configuration: %v", err)
		}
		os.Exit(0)
	}

	tr := tourn.New(tourn.GameConfig{
		MoveTimeoutMS:     uint32(cfg.Game.MoveTimeoutMS),
		MoveRuleHalfMoves: int(cfg.Game.MoveRuleHalfMoves),
	})

	cfg.Register(&listener{tournament: tr, host: cfg.TCP.Host, port: cfg.TCP.Port})

	if cfg.Web.Enabled {
		cfg.Register(web.New(tr, cfg.Web.Port))
	}

	if cfg.Console.Enabled {
		address := fmt.Sprintf("%s:%d", cfg.TCP.Host, cfg.TCP.Port)
		cfg.Register(consoleManager{console.New(tr, address, os.Stdin, os.Stdout)})
	}

	cfg.Start()
}

// consoleManager adapts console.Console, whose Run blocks on stdin
// until EOF, to the conf.Manager lifecycle: Shutdown has nothing to
// do since closing stdin is the process's job, not the console's.
type consoleManager struct {
	c *console.Console
}

func (consoleManager) String() string    { return "admin console" }
func (m consoleManager) Start()          { m.c.Run() }
func (consoleManager) Shutdown()         {}
