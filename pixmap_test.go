package paintd

import (
	"image"
	"testing"
)

func TestPixmapSetGetPixel(t *testing.T) {
	pm := NewPixmap(10, 10)

	pm.SetPixel(5, 5, Red)
	got := pm.GetPixel(5, 5)
	if got != Red {
		t.Errorf("GetPixel(5,5) = %+v, want %+v", got, Red)
	}

	// Out-of-bounds writes are ignored, reads come back transparent.
	pm.SetPixel(-1, 0, White)
	pm.SetPixel(10, 10, White)
	if got := pm.GetPixel(-1, 0); got != Transparent {
		t.Errorf("out-of-bounds read = %+v, want transparent", got)
	}
}

func TestPixmapClear(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.Clear(Blue)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := pm.GetPixel(x, y); got != Blue {
				t.Fatalf("pixel (%d,%d) = %+v after Clear", x, y, got)
			}
		}
	}
}

func TestPixmapReadRegionClamped(t *testing.T) {
	pm := NewPixmap(8, 8)
	pm.Clear(Green)

	// A region hanging off the edge keeps its requested size; the pixels
	// outside the surface read as transparent.
	r := image.Rect(6, 6, 10, 10)
	out := pm.ReadRegion(r)
	if out.Width() != 4 || out.Height() != 4 {
		t.Fatalf("region size = %dx%d, want 4x4", out.Width(), out.Height())
	}
	if got := out.GetPixel(0, 0); got != Green {
		t.Errorf("in-bounds pixel = %+v, want green", got)
	}
	if got := out.GetPixel(3, 3); got != Transparent {
		t.Errorf("out-of-bounds pixel = %+v, want transparent", got)
	}
}

func TestPixmapWriteRegion(t *testing.T) {
	pm := NewPixmap(8, 8)
	src := NewPixmap(2, 2)
	src.Clear(Red)

	pm.WriteRegion(src, image.Rect(3, 3, 5, 5))
	if got := pm.GetPixel(3, 3); got != Red {
		t.Errorf("written pixel = %+v, want red", got)
	}
	if got := pm.GetPixel(2, 3); got != Transparent {
		t.Errorf("neighbor pixel = %+v, want transparent", got)
	}
}

func TestPixmapCloneIndependence(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.Clear(White)
	cl := pm.Clone()

	pm.SetPixel(0, 0, Black)
	if got := cl.GetPixel(0, 0); got != White {
		t.Errorf("clone affected by original mutation: %+v", got)
	}
}

func TestPixmapToImageRoundTrip(t *testing.T) {
	pm := NewPixmap(3, 3)
	pm.SetPixel(1, 1, NewRGBA(1, 0, 0, 0.5))

	img := pm.ToImage()
	back := FromImage(img)
	got := back.GetPixel(1, 1)
	want := pm.GetPixel(1, 1)
	if got != want {
		t.Errorf("round trip pixel = %+v, want %+v", got, want)
	}
}
