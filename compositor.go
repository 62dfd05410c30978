package paintd

import "sync"

// ImageKey is the external reference by which a compositor locates a
// canvas's current pixels. The key is issued at canvas creation and stays
// valid across surface recreations; only its backing data changes.
type ImageKey uint64

// Compositor is the presentation-side collaborator. The actor registers a
// surface when a canvas is created, pushes new contents when the canvas is
// updated or recreated, and deletes the entry when the canvas closes.
//
// All methods are called from the actor goroutine; implementations that
// expose data to other goroutines must synchronize internally.
type Compositor interface {
	// AddImage registers pixels and returns a fresh key for them.
	AddImage(pixels *Pixmap) ImageKey

	// UpdateImage replaces the key's backing pixels.
	UpdateImage(key ImageKey, pixels *Pixmap)

	// DeleteImage drops the key. Using the key afterwards is invalid.
	DeleteImage(key ImageKey)
}

// MemCompositor is an in-memory Compositor for headless rendering and
// tests. It keeps a snapshot of the latest pixels per key.
type MemCompositor struct {
	mu      sync.Mutex
	nextKey ImageKey
	images  map[ImageKey]*Pixmap
	updates map[ImageKey]int
}

// NewMemCompositor creates an empty in-memory compositor.
func NewMemCompositor() *MemCompositor {
	return &MemCompositor{
		images:  make(map[ImageKey]*Pixmap),
		updates: make(map[ImageKey]int),
	}
}

// AddImage implements Compositor.
func (c *MemCompositor) AddImage(pixels *Pixmap) ImageKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.nextKey
	c.nextKey++
	c.images[key] = pixels.Clone()
	return key
}

// UpdateImage implements Compositor.
func (c *MemCompositor) UpdateImage(key ImageKey, pixels *Pixmap) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.images[key]; !ok {
		Logger().Warn("compositor update for unknown image key", "key", uint64(key))
		return
	}
	c.images[key] = pixels.Clone()
	c.updates[key]++
}

// DeleteImage implements Compositor.
func (c *MemCompositor) DeleteImage(key ImageKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.images, key)
	delete(c.updates, key)
}

// Image returns the latest snapshot for the key, or nil if unknown.
func (c *MemCompositor) Image(key ImageKey) *Pixmap {
	c.mu.Lock()
	defer c.mu.Unlock()
	if pm, ok := c.images[key]; ok {
		return pm.Clone()
	}
	return nil
}

// UpdateCount returns how many times the key's contents were replaced
// after registration.
func (c *MemCompositor) UpdateCount(key ImageKey) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updates[key]
}
