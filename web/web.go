// Read-only spectator dashboard
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

// Package web serves a strictly read-only spectator dashboard over
// the tournament registry: a status page and a websocket feed of
// state transitions. It never mutates the Tournament it observes.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"xqarbiter/tourn"
)

//go:embed status.tmpl
var templates embed.FS

// Dashboard is the web Manager: it owns the HTTP server and has no
// state of its own beyond the Tournament it reads from.
type Dashboard struct {
	tournament *tourn.Tournament
	port       uint
	tmpl       *template.Template
	server     *http.Server
}

// New builds a Dashboard that will listen on port once Start is
// called.
func New(t *tourn.Tournament, port uint) *Dashboard {
	return &Dashboard{tournament: t, port: port}
}

func (d *Dashboard) String() string { return "web dashboard" }

// Start parses the embedded templates, installs the routes, and
// blocks serving HTTP until Shutdown is called.
func (d *Dashboard) Start() {
	d.tmpl = template.Must(template.New("").ParseFS(templates, "*.tmpl"))

	mux := http.NewServeMux()
	mux.HandleFunc("/status", d.handleStatus)
	mux.HandleFunc("/ws", d.handleWebsocket)

	d.server = &http.Server{Addr: fmt.Sprintf(":%d", d.port), Handler: mux}
	if err := d.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Println("web dashboard:", err)
	}
}

// Shutdown stops the HTTP server.
func (d *Dashboard) Shutdown() {
	if d.server != nil {
		_ = d.server.Shutdown(context.Background())
	}
}

type statusPageData struct {
	Players []playerStatusRow
}

type playerStatusRow struct {
	Name      string
	Opponents map[string]tourn.Status
}

func (d *Dashboard) handleStatus(w http.ResponseWriter, r *http.Request) {
	var rows []playerStatusRow
	for _, name := range d.tournament.IterPlayers() {
		statuses, ok := d.tournament.Status(name)
		if !ok {
			continue
		}
		rows = append(rows, playerStatusRow{Name: name, Opponents: statuses})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := d.tmpl.ExecuteTemplate(w, "status.tmpl", statusPageData{Players: rows}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
