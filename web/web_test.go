// Dashboard route tests
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

package web

import (
	"html/template"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xqarbiter/tourn"
	"xqarbiter/wire"
)

func drainPipe(conn net.Conn) {
	buf := make([]byte, 4096)
	for {
		if _, err := conn.Read(buf); err != nil {
			return
		}
	}
}

func newTestDashboard(t *testing.T) (*Dashboard, *tourn.Tournament) {
	t.Helper()
	tr := tourn.New(tourn.DefaultGameConfig)
	c, s := net.Pipe()
	t.Cleanup(func() { c.Close() })
	go drainPipe(c)
	tr.Join("alice", wire.NewLineFramer(s))

	d := New(tr, 0)
	d.tmpl = template.Must(template.New("").ParseFS(templates, "*.tmpl"))
	return d, tr
}

func TestHandleStatusRendersPlayers(t *testing.T) {
	d, _ := newTestDashboard(t)

	req := httptest.NewRequest("GET", "/status", nil)
	rec := httptest.NewRecorder()
	d.handleStatus(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice")
}

func TestWebsocketStreamsPublishedEvents(t *testing.T) {
	d, tr := newTestDashboard(t)

	server := httptest.NewServer(http.HandlerFunc(d.handleWebsocket))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give the server-side handler a moment to subscribe before
	// publishing, since the websocket handshake completing doesn't
	// guarantee Subscribe has run yet.
	time.Sleep(100 * time.Millisecond)
	tr.Events.Publish("hello spectators")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "hello spectators", string(msg))
}
