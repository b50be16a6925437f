// Package-level loggers
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

package xq

import (
	"io"
	"log"
	"os"
)

// Info carries every message worth seeing by default: joins,
// handshake failures, game outcomes, disconnects.
var Info = log.New(os.Stderr, "[info] ", log.Ltime)

// Debug is silent unless enabled (see conf.Conf.Debug), and carries
// the higher-volume scheduling lines: enqueue commits and match
// spawns.
var Debug = log.New(io.Discard, "[debug] ", log.Ltime|log.Lmicroseconds)

// SetDebug toggles Debug's output between stderr and io.Discard.
func SetDebug(enabled bool) {
	if enabled {
		Debug.SetOutput(os.Stderr)
	} else {
		Debug.SetOutput(io.Discard)
	}
}
