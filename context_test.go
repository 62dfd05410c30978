package paintd

import (
	"image"
	"testing"

	"github.com/gogpu/paintd/text"
)

func newTestContext(w, h int) *CanvasContext {
	return newCanvasContext(NewSoftwareBackend(), text.NewFontContext(nil), NewMemCompositor(), Size{Width: w, Height: h})
}

func TestContextSaveRestore(t *testing.T) {
	c := newTestContext(10, 10)

	c.state.Transform = Translate(5, 5)
	c.state.FillStyle = Solid(Red)
	c.state.Line.Width = 7
	c.apply(Save{})

	c.state.Transform = Scale(2, 2)
	c.state.FillStyle = Solid(Blue)
	c.state.Line.Width = 1
	c.apply(Restore{})

	if c.state.Transform != Translate(5, 5) {
		t.Errorf("transform not restored: %+v", c.state.Transform)
	}
	if c.state.FillStyle != Solid(Red) {
		t.Errorf("fill style not restored: %+v", c.state.FillStyle)
	}
	if c.state.Line.Width != 7 {
		t.Errorf("line width not restored: %v", c.state.Line.Width)
	}
}

func TestContextRestoreOnEmptyStackIsNoop(t *testing.T) {
	c := newTestContext(10, 10)
	c.state.Line.Width = 3

	c.apply(Restore{})

	if c.state.Line.Width != 3 {
		t.Errorf("state changed by restore on empty stack")
	}
}

func TestContextSaveSnapshotsDash(t *testing.T) {
	c := newTestContext(10, 10)
	c.state.Line.Dash = []float64{4, 2}
	c.apply(Save{})

	// Mutating the live dash slice must not corrupt the snapshot.
	c.state.Line.Dash[0] = 99
	c.apply(Restore{})

	if c.state.Line.Dash[0] != 4 {
		t.Errorf("snapshot dash = %v, want 4", c.state.Line.Dash[0])
	}
}

func TestContextFillAndReadPixels(t *testing.T) {
	c := newTestContext(10, 10)

	c.apply(FillRect{
		Rect:        NewRect(0, 0, 10, 10),
		Style:       Solid(Red),
		Composition: DefaultCompositionOptions(),
		Transform:   Identity(),
	})

	reply := make(chan *Pixmap, 1)
	c.apply(GetImageData{Reply: reply})
	pm := <-reply
	if got := pm.GetPixel(5, 5); got != Red {
		t.Errorf("read pixel = %+v, want red", got)
	}
}

func TestContextGetImageDataRegion(t *testing.T) {
	c := newTestContext(10, 10)
	c.apply(FillRect{
		Rect:        NewRect(0, 0, 5, 10),
		Style:       Solid(Blue),
		Composition: DefaultCompositionOptions(),
		Transform:   Identity(),
	})

	region := image.Rect(4, 0, 12, 2)
	reply := make(chan *Pixmap, 1)
	c.apply(GetImageData{Region: &region, Reply: reply})
	pm := <-reply

	if pm.Width() != 8 || pm.Height() != 2 {
		t.Fatalf("region size = %dx%d, want 8x2", pm.Width(), pm.Height())
	}
	if got := pm.GetPixel(0, 0); got != Blue {
		t.Errorf("pixel inside fill = %+v, want blue", got)
	}
	if got := pm.GetPixel(7, 0); got != Transparent {
		t.Errorf("pixel past surface = %+v, want transparent", got)
	}
}

func TestContextPutImageDataBypassesState(t *testing.T) {
	c := newTestContext(10, 10)

	// Transform and clip must not affect raw writes.
	c.state.Transform = Translate(100, 100)
	clip := NewPath()
	clip.Rectangle(0, 0, 1, 1)
	c.apply(ClipPath{Path: clip, Transform: Identity()})

	src := NewPixmap(2, 2)
	src.Clear(Green)
	c.apply(PutImageData{Pixels: src, Rect: image.Rect(4, 4, 6, 6)})

	reply := make(chan *Pixmap, 1)
	c.apply(GetImageData{Reply: reply})
	pm := <-reply
	if got := pm.GetPixel(4, 4); got != Green {
		t.Errorf("raw write pixel = %+v, want green", got)
	}
}

func TestContextRecreatePreservesStateAndKey(t *testing.T) {
	comp := NewMemCompositor()
	c := newCanvasContext(NewSoftwareBackend(), text.NewFontContext(nil), comp, Size{Width: 10, Height: 10})
	key := c.ImageKey()

	c.state.Line.Width = 9
	c.apply(Save{})
	c.apply(FillRect{
		Rect:        NewRect(0, 0, 10, 10),
		Style:       Solid(Red),
		Composition: DefaultCompositionOptions(),
		Transform:   Identity(),
	})

	bigger := Size{Width: 20, Height: 15}
	c.recreate(&bigger)

	if c.ImageKey() != key {
		t.Errorf("image key changed across recreate")
	}
	if c.Size() != bigger {
		t.Errorf("size = %+v, want %+v", c.Size(), bigger)
	}
	if c.state.Line.Width != 9 {
		t.Errorf("draw state lost across recreate")
	}
	if len(c.saved) != 1 {
		t.Errorf("save stack lost across recreate")
	}
	if got := c.surface.GetPixel(5, 5); got != Transparent {
		t.Errorf("pixels survived recreate: %+v", got)
	}
	if comp.Image(key) == nil {
		t.Errorf("compositor entry dropped across recreate")
	}
}

func TestContextRecreateNilSizeKeepsDimensions(t *testing.T) {
	c := newTestContext(7, 3)
	c.recreate(nil)
	if c.Size() != (Size{Width: 7, Height: 3}) {
		t.Errorf("size = %+v, want 7x3", c.Size())
	}
}

func TestContextUpdateImagePublishes(t *testing.T) {
	comp := NewMemCompositor()
	c := newCanvasContext(NewSoftwareBackend(), text.NewFontContext(nil), comp, Size{Width: 4, Height: 4})

	c.apply(FillRect{
		Rect:        NewRect(0, 0, 4, 4),
		Style:       Solid(Red),
		Composition: DefaultCompositionOptions(),
		Transform:   Identity(),
	})

	ack := make(chan struct{}, 1)
	c.apply(UpdateImage{Reply: ack})
	<-ack

	pm := comp.Image(c.ImageKey())
	if pm == nil {
		t.Fatal("no compositor image")
	}
	if got := pm.GetPixel(2, 2); got != Red {
		t.Errorf("published pixel = %+v, want red", got)
	}
	if comp.UpdateCount(c.ImageKey()) != 1 {
		t.Errorf("update count = %d, want 1", comp.UpdateCount(c.ImageKey()))
	}
}

func TestContextMeasureTextWithoutFont(t *testing.T) {
	c := newTestContext(4, 4)
	reply := make(chan text.Metrics, 1)
	c.apply(MeasureText{Text: "hello", Options: DefaultTextOptions(), Reply: reply})
	m := <-reply
	if m.Width != 0 {
		t.Errorf("width without font = %v, want 0", m.Width)
	}
}
