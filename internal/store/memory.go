package store

import "sync"

// Memory keeps the high score for the lifetime of the process
type Memory struct {
	mu    sync.Mutex
	value int
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{}
}

// Read returns the best score written so far
func (m *Memory) Read() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}

// Write records v if it beats the current value
func (m *Memory) Write(v int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v > m.value {
		m.value = v
	}
}
