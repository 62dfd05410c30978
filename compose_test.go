package paintd

import (
	"math"
	"testing"
)

func approxColor(a, b RGBA, tol float64) bool {
	return math.Abs(a.R-b.R) <= tol &&
		math.Abs(a.G-b.G) <= tol &&
		math.Abs(a.B-b.B) <= tol &&
		math.Abs(a.A-b.A) <= tol
}

func TestComposePixelPorterDuff(t *testing.T) {
	red := NewRGBA(1, 0, 0, 1)
	halfBlue := NewRGBA(0, 0, 1, 0.5)

	tests := []struct {
		name string
		src  RGBA
		dst  RGBA
		op   CompositionOp
		want RGBA
	}{
		{"source over opaque", red, White, OpSourceOver, red},
		{"source over transparent dst", red, Transparent, OpSourceOver, red},
		{"translucent over white", halfBlue, White, OpSourceOver, NewRGBA(0.5, 0.5, 1, 1)},
		{"copy ignores dst", halfBlue, White, OpCopy, halfBlue},
		{"destination in keeps covered dst", halfBlue, White, OpDestinationIn, NewRGBA(1, 1, 1, 0.5)},
		{"clear", red, White, OpClear, Transparent},
		{"source in opaque dst", halfBlue, White, OpSourceIn, halfBlue},
		{"source in transparent dst", red, Transparent, OpSourceIn, Transparent},
		{"destination out by opaque src", red, White, OpDestinationOut, Transparent},
		{"xor of opaque pair", red, White, OpXor, Transparent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := composePixel(tt.src, tt.dst, tt.op)
			if !approxColor(got, tt.want, 1e-6) {
				t.Errorf("composePixel = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComposePixelLighter(t *testing.T) {
	a := NewRGBA(0.25, 0, 0, 0.5)
	got := composePixel(a, a, OpLighter)
	// Lighter adds premultiplied components.
	if math.Abs(got.A-1.0) > 1e-6 {
		t.Errorf("lighter alpha = %v, want 1", got.A)
	}
	if math.Abs(got.R-0.25) > 1e-6 {
		t.Errorf("lighter red = %v, want 0.25", got.R)
	}
}

func TestComposePixelBlendModes(t *testing.T) {
	grayS := NewRGBA(0.5, 0.5, 0.5, 1)
	grayD := NewRGBA(0.5, 0.5, 0.5, 1)

	got := composePixel(grayS, grayD, OpMultiply)
	if !approxColor(got, NewRGBA(0.25, 0.25, 0.25, 1), 1e-6) {
		t.Errorf("multiply = %+v", got)
	}

	got = composePixel(grayS, grayD, OpScreen)
	if !approxColor(got, NewRGBA(0.75, 0.75, 0.75, 1), 1e-6) {
		t.Errorf("screen = %+v", got)
	}

	// Overlay at 0.5 backdrop switches between multiply and screen arms;
	// at exactly 0.5 both give 0.5.
	got = composePixel(grayS, grayD, OpOverlay)
	if !approxColor(got, grayD, 1e-6) {
		t.Errorf("overlay = %+v", got)
	}
}

func TestOpIsLocal(t *testing.T) {
	local := []CompositionOp{OpSourceOver, OpDestinationOver, OpDestinationOut, OpSourceAtop, OpXor, OpLighter, OpMultiply, OpScreen, OpOverlay}
	for _, op := range local {
		if !opIsLocal(op) {
			t.Errorf("op %v should be local", op)
		}
	}
	nonLocal := []CompositionOp{OpClear, OpCopy, OpSourceIn, OpSourceOut, OpDestinationIn, OpDestinationAtop}
	for _, op := range nonLocal {
		if opIsLocal(op) {
			t.Errorf("op %v should not be local", op)
		}
	}
}
