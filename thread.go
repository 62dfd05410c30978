package paintd

import "github.com/gogpu/paintd/text"

// Option configures a paint actor at start.
type Option func(*actorConfig)

type actorConfig struct {
	backend  Backend
	fonts    *text.FontContext
	drawCap  int
	ctrlCap  int
}

// WithBackend selects the rasterization backend. The default is the
// software backend.
func WithBackend(b Backend) Option {
	return func(c *actorConfig) { c.backend = b }
}

// WithFontContext supplies the font context used by text operations. The
// default context has no fonts registered; text operations on it log and
// draw nothing.
func WithFontContext(fc *text.FontContext) Option {
	return func(c *actorConfig) { c.fonts = fc }
}

// WithQueueCapacity sets the draw channel's buffer size. The default is
// 64. Zero makes every draw send synchronize with the actor.
func WithQueueCapacity(n int) Option {
	return func(c *actorConfig) { c.drawCap = n }
}

// Start launches the paint actor goroutine and returns its two inbound
// channels. The actor runs until it receives Exit or until the control
// channel is closed.
func Start(compositor Compositor, opts ...Option) (chan<- Command, chan<- ControlMessage) {
	cfg := actorConfig{
		backend: NewSoftwareBackend(),
		fonts:   text.NewFontContext(nil),
		drawCap: 64,
		ctrlCap: 1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	draw := make(chan Command, cfg.drawCap)
	control := make(chan ControlMessage, cfg.ctrlCap)

	a := &actor{
		backend:    cfg.backend,
		fonts:      cfg.fonts,
		compositor: compositor,
		canvases:   newRegistry(),
		draw:       draw,
		control:    control,
	}
	go a.run()

	return draw, control
}

// actor is the single goroutine owning every canvas.
type actor struct {
	backend    Backend
	fonts      *text.FontContext
	compositor Compositor
	canvases   *registry

	draw    <-chan Command
	control <-chan ControlMessage
}

func (a *actor) run() {
	defer a.canvases.destroyAll()

	for {
		select {
		case cmd, ok := <-a.draw:
			if !ok {
				// A closed draw channel means the last sender is gone,
				// but canvases may still be presented; keep serving
				// control until told to exit.
				Logger().Warn("draw channel closed, serving control only")
				a.draw = nil
				continue
			}
			a.handleCommand(cmd)

		case msg, ok := <-a.control:
			if !ok {
				Logger().Warn("control channel closed, exiting")
				return
			}
			if exit := a.handleControl(msg); exit {
				return
			}
		}
	}
}

func (a *actor) handleCommand(cmd Command) {
	switch m := cmd.(type) {
	case DrawOp:
		if from, ok := m.Op.(DrawImageFromCanvas); ok {
			a.drawImageFromCanvas(m.CanvasID, from)
			return
		}
		a.canvases.resolve(m.CanvasID).apply(m.Op)
	case CloseCanvas:
		a.canvases.remove(m.CanvasID)
	case RecreateCanvas:
		a.canvases.resolve(m.CanvasID).recreate(m.Size)
	default:
		Logger().Warn("unhandled draw command", "command", cmd)
	}
}

func (a *actor) handleControl(msg ControlMessage) (exit bool) {
	switch m := msg.(type) {
	case CreateCanvas:
		c := newCanvasContext(a.backend, a.fonts, a.compositor, m.Size)
		id := a.canvases.add(c)
		replyTo(m.Reply, CreateReply{ID: id, ImageKey: c.ImageKey()}, "create canvas")
	case Exit:
		replyTo(m.Reply, struct{}{}, "exit")
		return true
	default:
		Logger().Warn("unhandled control message", "message", msg)
	}
	return false
}

// drawImageFromCanvas blits between registered canvases. The source
// region is snapshotted first, so drawing a canvas into itself sees the
// pixels as they were before the operation.
func (a *actor) drawImageFromCanvas(dst CanvasID, op DrawImageFromCanvas) {
	src := a.canvases.resolve(op.Source)
	snapshot := src.ReadRegionSnapshot(op.SrcRect)

	target := a.canvases.resolve(dst)
	target.setPaint(op.Transform, op.Shadow, op.Composition)

	// The snapshot's origin is the source rect's origin, so the blit
	// samples it from zero.
	srcRect := NewRect(0, 0, op.SrcRect.W, op.SrcRect.H)
	target.DrawImagePixels(snapshot, op.DstRect, srcRect, op.Smoothing)
}
