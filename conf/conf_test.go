// Configuration loading and lifecycle tests
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

package conf

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFileReturnsDefault(t *testing.T) {
	c, err := Open(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().TCP.Port, c.TCP.Port)
}

func TestOpenLayersOverDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xqarbiter.toml")
	require.NoError(t, os.WriteFile(path, []byte("[tcp]\nport = 6000\n"), 0o644))

	c, err := Open(path)
	require.NoError(t, err)
	assert.EqualValues(t, 6000, c.TCP.Port)
	assert.EqualValues(t, Default().Game.MoveTimeoutMS, c.Game.MoveTimeoutMS)
}

func TestDumpRoundTrips(t *testing.T) {
	c := Default()
	c.TCP.Port = 7000

	var buf bytes.Buffer
	require.NoError(t, c.Dump(&buf))

	path := filepath.Join(t.TempDir(), "dumped.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	reread, err := Open(path)
	require.NoError(t, err)
	assert.EqualValues(t, 7000, reread.TCP.Port)
}

type fakeManager struct {
	name      string
	started   chan struct{}
	shutdown  chan struct{}
}

func (f *fakeManager) String() string { return f.name }
func (f *fakeManager) Start()         { close(f.started) }
func (f *fakeManager) Shutdown()      { close(f.shutdown) }

func TestRegisterAfterStartPanics(t *testing.T) {
	c := Default()
	c.run = true
	assert.Panics(t, func() {
		c.Register(&fakeManager{name: "late", started: make(chan struct{}), shutdown: make(chan struct{})})
	})
}
