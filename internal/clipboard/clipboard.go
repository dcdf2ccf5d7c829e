// Package clipboard defines the multi-format clipboard payload the editing
// core exchanges with its host. The core supplies and consumes plain text
// plus formatted runs; clipboard mechanics belong to the host.
package clipboard

import (
	"sync"

	"github.com/dshills/inkwell/internal/engine/paragraph"
)

// Payload is a multi-format clipboard value. Runs may be nil when the
// source had no formatting; paste then falls back to plain text.
type Payload struct {
	Text string
	Runs []paragraph.FormatRun
}

// IsEmpty reports whether the payload carries nothing.
func (p Payload) IsEmpty() bool {
	return p.Text == ""
}

// Clipboard is the opaque get/set surface the core talks to.
type Clipboard interface {
	Get() Payload
	Set(Payload)
}

// Memory is an in-process Clipboard, used standalone and in tests.
type Memory struct {
	mu      sync.Mutex
	payload Payload
}

// NewMemory creates an empty in-memory clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// Get returns the stored payload.
func (m *Memory) Get() Payload {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.payload
}

// Set stores a payload.
func (m *Memory) Set(p Payload) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = p
}
