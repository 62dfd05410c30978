package paintd

// registry maps canvas ids to their contexts. Ids are allocated from a
// monotonic counter and never reused, so a stale id can always be told
// apart from a future one.
type registry struct {
	next     CanvasID
	canvases map[CanvasID]*CanvasContext
}

func newRegistry() *registry {
	return &registry{
		canvases: make(map[CanvasID]*CanvasContext),
	}
}

// add registers a context under a fresh id.
func (r *registry) add(c *CanvasContext) CanvasID {
	id := r.next
	r.next++
	r.canvases[id] = c
	return id
}

// resolve returns the context for the id. Naming an id that was never
// issued or that was already closed is a caller bug, not a recoverable
// condition, so it panics.
func (r *registry) resolve(id CanvasID) *CanvasContext {
	c, ok := r.canvases[id]
	if !ok {
		panic("bogus canvas id")
	}
	return c
}

// remove destroys the canvas and forgets the id.
func (r *registry) remove(id CanvasID) {
	c := r.resolve(id)
	c.destroy()
	delete(r.canvases, id)
}

// destroyAll tears down every remaining canvas, used at actor exit.
func (r *registry) destroyAll() {
	for id, c := range r.canvases {
		c.destroy()
		delete(r.canvases, id)
	}
}
