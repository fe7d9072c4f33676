// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP layer: request parsing, validation,
// and orchestration of the store, blob storage, and cache. Every response
// uses the uniform envelope {success, data?, message?}.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// envelope is the uniform response wrapper used by every endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}

// writeData writes a success envelope carrying data.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// writeError writes a failure envelope with a message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// writeNotFound writes the canonical not-found failure so clients can
// distinguish "no such record" from "something broke".
func writeNotFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, "Content not found")
}
