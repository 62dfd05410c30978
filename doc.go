// Package paintd implements a canvas paint actor: a single goroutine that
// owns an arbitrary number of independent 2D raster canvases and executes
// drawing commands against them.
//
// Callers talk to the actor over two channels. The draw channel carries
// commands tagged with a canvas id (fill, stroke, text, image blits, pixel
// access, save/restore, close, recreate). The control channel carries
// lifecycle messages (create a canvas, exit). The actor selects over both
// and runs every command to completion before the next, so no canvas state
// is ever touched by more than one goroutine and no locking is needed
// anywhere in the drawing path.
//
// Rasterization is delegated to a Backend. The package ships one
// conforming implementation, SoftwareBackend, a CPU scanline rasterizer.
// Rendered surfaces are published to a Compositor through stable image
// keys so an external presenter can locate a canvas's current pixels.
//
// Basic usage:
//
//	draw, control := paintd.Start(paintd.NewMemCompositor())
//
//	reply := make(chan paintd.CreateReply, 1)
//	control <- paintd.CreateCanvas{Size: paintd.Size{Width: 100, Height: 100}, Reply: reply}
//	created := <-reply
//
//	draw <- paintd.DrawOp{CanvasID: created.ID, Op: paintd.FillRect{
//		Rect:        paintd.NewRect(0, 0, 100, 100),
//		Style:       paintd.Solid(paintd.Red),
//		Composition: paintd.DefaultCompositionOptions(),
//		Transform:   paintd.Identity(),
//	}}
//
//	ack := make(chan struct{}, 1)
//	control <- paintd.Exit{Reply: ack}
//	<-ack
package paintd
