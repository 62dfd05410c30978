package paintd

import (
	"math"
	"testing"
)

func newTestState() DrawState {
	return defaultDrawState()
}

func TestSoftwareFillRect(t *testing.T) {
	b := NewSoftwareBackend()
	pm := NewPixmap(20, 20)
	state := newTestState()

	b.FillPath(pm, NewRect(5, 5, 10, 10).Path(), Solid(Red), &state)

	if got := pm.GetPixel(10, 10); got != Red {
		t.Errorf("center pixel = %+v, want red", got)
	}
	if got := pm.GetPixel(2, 2); got != Transparent {
		t.Errorf("outside pixel = %+v, want transparent", got)
	}
}

func TestSoftwareFillTransformed(t *testing.T) {
	b := NewSoftwareBackend()
	pm := NewPixmap(20, 20)
	state := newTestState()
	state.Transform = Translate(10, 0)

	b.FillPath(pm, NewRect(0, 0, 5, 5).Path(), Solid(Blue), &state)

	if got := pm.GetPixel(12, 2); got != Blue {
		t.Errorf("translated pixel = %+v, want blue", got)
	}
	if got := pm.GetPixel(2, 2); got != Transparent {
		t.Errorf("untranslated pixel = %+v, want transparent", got)
	}
}

func TestSoftwareGlobalAlpha(t *testing.T) {
	b := NewSoftwareBackend()
	pm := NewPixmap(10, 10)
	state := newTestState()
	state.Composition.Alpha = 0.5

	b.FillPath(pm, NewRect(0, 0, 10, 10).Path(), Solid(Red), &state)

	got := pm.GetPixel(5, 5)
	if math.Abs(got.A-0.5) > 0.01 {
		t.Errorf("alpha = %v, want 0.5", got.A)
	}
}

func TestSoftwareClearRect(t *testing.T) {
	b := NewSoftwareBackend()
	pm := NewPixmap(20, 20)
	pm.Clear(Green)
	state := newTestState()

	b.ClearRect(pm, NewRect(5, 5, 10, 10), &state)

	if got := pm.GetPixel(10, 10); got != Transparent {
		t.Errorf("cleared pixel = %+v, want transparent", got)
	}
	if got := pm.GetPixel(2, 2); got != Green {
		t.Errorf("preserved pixel = %+v, want green", got)
	}
}

func TestSoftwareStroke(t *testing.T) {
	b := NewSoftwareBackend()
	pm := NewPixmap(30, 30)
	state := newTestState()
	state.Line.Width = 4

	path := NewPath()
	path.MoveTo(5, 15)
	path.LineTo(25, 15)
	b.StrokePath(pm, path, Solid(Black), &state)

	if got := pm.GetPixel(15, 15); got != Black {
		t.Errorf("on-stroke pixel = %+v, want black", got)
	}
	if got := pm.GetPixel(15, 25); got != Transparent {
		t.Errorf("off-stroke pixel = %+v, want transparent", got)
	}
}

func TestSoftwareStrokeScalesWithTransform(t *testing.T) {
	b := NewSoftwareBackend()
	pm := NewPixmap(40, 40)
	state := newTestState()
	state.Line.Width = 2
	state.Transform = Scale(4, 4)

	path := NewPath()
	path.MoveTo(1, 5)
	path.LineTo(9, 5)
	b.StrokePath(pm, path, Solid(Black), &state)

	// Width 2 under 4x scale covers 8 device pixels.
	if got := pm.GetPixel(20, 17); got != Black {
		t.Errorf("pixel inside scaled stroke = %+v, want black", got)
	}
	if got := pm.GetPixel(20, 30); got != Transparent {
		t.Errorf("pixel outside scaled stroke = %+v, want transparent", got)
	}
}

func TestSoftwareDashedStroke(t *testing.T) {
	b := NewSoftwareBackend()
	pm := NewPixmap(40, 20)
	state := newTestState()
	state.Line.Width = 4
	state.Line.Dash = []float64{8, 8}

	path := NewPath()
	path.MoveTo(0, 10)
	path.LineTo(40, 10)
	b.StrokePath(pm, path, Solid(Black), &state)

	if got := pm.GetPixel(4, 10); got != Black {
		t.Errorf("on-dash pixel = %+v, want black", got)
	}
	if got := pm.GetPixel(12, 10); got != Transparent {
		t.Errorf("gap pixel = %+v, want transparent", got)
	}
}

func TestSoftwareClip(t *testing.T) {
	b := NewSoftwareBackend()
	pm := NewPixmap(20, 20)
	state := newTestState()

	clip := NewPath()
	clip.Rectangle(0, 0, 10, 20)
	state.Clip = b.RasterizeClip(pm.Size(), clip, state.Transform, nil)

	b.FillPath(pm, NewRect(0, 0, 20, 20).Path(), Solid(Red), &state)

	if got := pm.GetPixel(5, 10); got != Red {
		t.Errorf("inside-clip pixel = %+v, want red", got)
	}
	if got := pm.GetPixel(15, 10); got != Transparent {
		t.Errorf("outside-clip pixel = %+v, want transparent", got)
	}
}

func TestSoftwareClipIntersection(t *testing.T) {
	b := NewSoftwareBackend()
	pm := NewPixmap(20, 20)
	state := newTestState()

	first := NewPath()
	first.Rectangle(0, 0, 12, 20)
	state.Clip = b.RasterizeClip(pm.Size(), first, state.Transform, nil)

	second := NewPath()
	second.Rectangle(8, 0, 12, 20)
	state.Clip = b.RasterizeClip(pm.Size(), second, state.Transform, state.Clip)

	b.FillPath(pm, NewRect(0, 0, 20, 20).Path(), Solid(Red), &state)

	if got := pm.GetPixel(10, 10); got != Red {
		t.Errorf("intersection pixel = %+v, want red", got)
	}
	if got := pm.GetPixel(4, 10); got != Transparent {
		t.Errorf("first-only pixel = %+v, want transparent", got)
	}
	if got := pm.GetPixel(16, 10); got != Transparent {
		t.Errorf("second-only pixel = %+v, want transparent", got)
	}
}

func TestSoftwareNonLocalOpClearsOutsideShape(t *testing.T) {
	b := NewSoftwareBackend()
	pm := NewPixmap(20, 20)
	pm.Clear(Green)
	state := newTestState()
	state.Composition.Op = OpCopy

	b.FillPath(pm, NewRect(5, 5, 10, 10).Path(), Solid(Red), &state)

	if got := pm.GetPixel(10, 10); got != Red {
		t.Errorf("inside pixel = %+v, want red", got)
	}
	// Copy replaces the whole surface; outside the shape the source is
	// transparent.
	if got := pm.GetPixel(2, 2); got != Transparent {
		t.Errorf("outside pixel = %+v, want transparent", got)
	}
}

func TestSoftwareShadow(t *testing.T) {
	b := NewSoftwareBackend()
	pm := NewPixmap(40, 40)
	state := newTestState()
	state.Shadow = ShadowOptions{OffsetX: 10, OffsetY: 10, Color: Black}

	b.FillPath(pm, NewRect(5, 5, 10, 10).Path(), Solid(Red), &state)

	if got := pm.GetPixel(10, 10); got != Red {
		t.Errorf("shape pixel = %+v, want red", got)
	}
	// Offset region not covered by the shape shows the shadow.
	if got := pm.GetPixel(20, 20); got != Black {
		t.Errorf("shadow pixel = %+v, want black", got)
	}
}

func TestSoftwareDrawImageScaled(t *testing.T) {
	b := NewSoftwareBackend()
	dst := NewPixmap(20, 20)
	src := NewPixmap(2, 2)
	src.Clear(Blue)
	state := newTestState()

	b.DrawImage(dst, src, NewRect(0, 0, 20, 20), NewRect(0, 0, 2, 2), false, &state)

	if got := dst.GetPixel(10, 10); got != Blue {
		t.Errorf("scaled pixel = %+v, want blue", got)
	}
}

func TestSoftwareDrawImageSubRect(t *testing.T) {
	b := NewSoftwareBackend()
	dst := NewPixmap(10, 10)
	src := NewPixmap(4, 4)
	src.Clear(Red)
	src.SetPixel(2, 2, Blue)
	src.SetPixel(3, 2, Blue)
	src.SetPixel(2, 3, Blue)
	src.SetPixel(3, 3, Blue)

	state := newTestState()
	b.DrawImage(dst, src, NewRect(0, 0, 10, 10), NewRect(2, 2, 2, 2), false, &state)

	if got := dst.GetPixel(5, 5); got != Blue {
		t.Errorf("sub-rect pixel = %+v, want blue", got)
	}
}
