// Command paintdemo drives the paint actor end to end: it creates a
// canvas, sends a batch of drawing commands, reads the pixels back, and
// writes them as a PNG.
package main

import (
	"flag"
	"log"
	"math"
	"os"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/paintd"
	"github.com/gogpu/paintd/text"
)

func main() {
	var (
		width  = flag.Int("width", 800, "canvas width")
		height = flag.Int("height", 600, "canvas height")
		output = flag.String("output", "demo.png", "output file")
	)
	flag.Parse()

	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	fonts := text.NewFontContext(regular)

	draw, control := paintd.Start(paintd.NewMemCompositor(), paintd.WithFontContext(fonts))

	created := make(chan paintd.CreateReply, 1)
	control <- paintd.CreateCanvas{
		Size:  paintd.Size{Width: *width, Height: *height},
		Reply: created,
	}
	canvas := <-created

	drawBackground(draw, canvas.ID, *width, *height)
	drawShapes(draw, canvas.ID)
	drawText(draw, canvas.ID, regular.Name())

	pixels := make(chan *paintd.Pixmap, 1)
	draw <- paintd.DrawOp{CanvasID: canvas.ID, Op: paintd.GetImageData{Reply: pixels}}
	pm := <-pixels

	ack := make(chan struct{}, 1)
	control <- paintd.Exit{Reply: ack}
	<-ack

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	defer f.Close()
	if err := pm.EncodePNG(f); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Demo saved to %s (%dx%d)\n", *output, *width, *height)
}

func drawBackground(draw chan<- paintd.Command, id paintd.CanvasID, w, h int) {
	sky := paintd.NewLinearGradient(0, 0, 0, float64(h),
		paintd.ColorStop{Offset: 0, Color: paintd.RGB(0.1, 0.2, 0.4)},
		paintd.ColorStop{Offset: 1, Color: paintd.RGB(0.5, 0.5, 0.6)},
	)
	draw <- paintd.DrawOp{CanvasID: id, Op: paintd.FillRect{
		Rect:        paintd.NewRect(0, 0, float64(w), float64(h)),
		Style:       sky,
		Composition: paintd.DefaultCompositionOptions(),
		Transform:   paintd.Identity(),
	}}
}

func drawShapes(draw chan<- paintd.Command, id paintd.CanvasID) {
	shadow := paintd.ShadowOptions{
		OffsetX: 6,
		OffsetY: 6,
		Blur:    8,
		Color:   paintd.NewRGBA(0, 0, 0, 0.5),
	}

	// Overlapping translucent circles.
	for i, c := range []paintd.RGBA{
		paintd.NewRGBA(1, 0.3, 0.3, 0.8),
		paintd.NewRGBA(0.3, 1, 0.3, 0.8),
		paintd.NewRGBA(0.3, 0.3, 1, 0.8),
	} {
		circle := paintd.NewPath()
		circle.Circle(150+float64(i)*50, 150, 60)
		draw <- paintd.DrawOp{CanvasID: id, Op: paintd.FillPath{
			Path:        circle,
			Style:       paintd.Solid(c),
			Shadow:      shadow,
			Composition: paintd.DefaultCompositionOptions(),
			Transform:   paintd.Identity(),
		}}
	}

	// A rotated stroked square with dashes.
	square := paintd.NewPath()
	square.Rectangle(-60, -60, 120, 120)
	draw <- paintd.DrawOp{CanvasID: id, Op: paintd.StrokePath{
		Path:  square,
		Style: paintd.Solid(paintd.White),
		Line: paintd.LineOptions{
			Width:      6,
			Cap:        paintd.LineCapRound,
			Join:       paintd.LineJoinRound,
			MiterLimit: 10,
			Dash:       []float64{18, 9},
		},
		Composition: paintd.DefaultCompositionOptions(),
		Transform: paintd.Translate(550, 180).
			Multiply(paintd.Rotate(math.Pi / 6)),
	}}

	// A radial highlight composited with screen.
	glow := paintd.NewRadialGradient(550, 180, 0, 550, 180, 140,
		paintd.ColorStop{Offset: 0, Color: paintd.NewRGBA(1, 1, 0.6, 0.9)},
		paintd.ColorStop{Offset: 1, Color: paintd.NewRGBA(1, 1, 0.6, 0)},
	)
	disc := paintd.NewPath()
	disc.Circle(550, 180, 140)
	draw <- paintd.DrawOp{CanvasID: id, Op: paintd.FillPath{
		Path:        disc,
		Style:       glow,
		Composition: paintd.CompositionOptions{Alpha: 1, Op: paintd.OpScreen},
		Transform:   paintd.Identity(),
	}}
}

func drawText(draw chan<- paintd.Command, id paintd.CanvasID, family string) {
	draw <- paintd.DrawOp{CanvasID: id, Op: paintd.FillText{
		Text:  "paintd software canvas",
		X:     400,
		Y:     480,
		Style: paintd.Solid(paintd.White),
		Options: paintd.TextOptions{
			Family:   family,
			Size:     42,
			Align:    paintd.TextAlignCenter,
			Baseline: paintd.TextBaselineAlphabetic,
		},
		Shadow: paintd.ShadowOptions{
			OffsetX: 3,
			OffsetY: 3,
			Blur:    4,
			Color:   paintd.NewRGBA(0, 0, 0, 0.7),
		},
		Composition: paintd.DefaultCompositionOptions(),
		Transform:   paintd.Identity(),
	}}
}
