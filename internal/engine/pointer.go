package engine

import "sync"

// Pointer holds the last pointer position written by the host. Writers may
// call Set from any goroutine; the loop reads it once at the start of a tick.
type Pointer struct {
	mu  sync.Mutex
	x   float64
	set bool
}

// Set records a new pointer x in playfield pixels
func (p *Pointer) Set(x float64) {
	p.mu.Lock()
	p.x = x
	p.set = true
	p.mu.Unlock()
}

// Clear forgets the pointer, e.g. when it leaves the playfield
func (p *Pointer) Clear() {
	p.mu.Lock()
	p.set = false
	p.mu.Unlock()
}

// CurrentPointer implements PointerSource
func (p *Pointer) CurrentPointer() (float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.x, p.set
}
