package texture

import (
	"fmt"
	"sync"

	"github.com/mayomeir007/quadfx"
)

// Memory is a CPU-resident [Sync] for headless use. It holds the texels that
// a GPU texture would hold and counts the operations performed on it.
type Memory struct {
	mu          sync.Mutex
	width       int
	height      int
	texels      []byte
	allocated   bool
	bound       bool
	generation  int
	uploads     int
	reloads     int
	allocations int
}

var _ Sync = (*Memory)(nil)

type memoryHandle struct {
	generation int
}

func (h memoryHandle) Label() string { return fmt.Sprintf("memory#%d", h.generation) }

// Upload implements [Sync]. A texture is allocated on first upload or when dimensions change.
func (m *Memory) Upload(b *quadfx.Buffer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := b.Dims()
	texels, err := Staged(m.texels[:0], b)
	if err != nil {
		return err
	}
	if !m.allocated || d.Width != m.width || d.Height != m.height {
		m.allocated = true
		m.width, m.height = d.Width, d.Height
		m.generation++
		m.allocations++
	}
	m.texels = texels
	m.uploads++
	return nil
}

// Reload implements [Sync].
func (m *Memory) Reload(b *quadfx.Buffer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.allocated {
		return ErrNoTexture
	}
	d := b.Dims()
	if d.Width != m.width || d.Height != m.height {
		return fmt.Errorf("%w: %dx%d into %dx%d", ErrSizeMismatch, d.Width, d.Height, m.width, m.height)
	}
	texels, err := Staged(m.texels[:0], b)
	if err != nil {
		return err
	}
	m.texels = texels
	m.reloads++
	return nil
}

// Bind implements [Sync].
func (m *Memory) Bind() (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.allocated {
		return nil, ErrNoTexture
	}
	m.bound = true
	return memoryHandle{generation: m.generation}, nil
}

// Unbind implements [Sync].
func (m *Memory) Unbind() {
	m.mu.Lock()
	m.bound = false
	m.mu.Unlock()
}

// Release implements [Sync].
func (m *Memory) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allocated = false
	m.bound = false
	m.texels = nil
	m.width, m.height = 0, 0
}

// Valid implements [Sync].
func (m *Memory) Valid() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allocated
}

// Bound reports whether the texture is bound for rendering.
func (m *Memory) Bound() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bound
}

// Texels returns a copy of the texture contents as packed RGBA.
func (m *Memory) Texels() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.texels...)
}

// Size returns the allocated texture dimensions.
func (m *Memory) Size() (width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

// Stats returns how many uploads, reloads and allocations were performed.
func (m *Memory) Stats() (uploads, reloads, allocations int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uploads, m.reloads, m.allocations
}
