package paintd

// composePixel combines a source color over/into a destination color
// according to the composition operator. Both inputs are non-premultiplied;
// the math runs premultiplied and the result is returned non-premultiplied.
func composePixel(src, dst RGBA, op CompositionOp) RGBA {
	s := src.Premultiply()
	d := dst.Premultiply()

	var out RGBA
	switch op {
	case OpMultiply, OpScreen, OpOverlay:
		out = blendPixel(s, d, src, dst, op)
	default:
		fa, fb := porterDuffFactors(op, s.A, d.A)
		out = RGBA{
			R: s.R*fa + d.R*fb,
			G: s.G*fa + d.G*fb,
			B: s.B*fa + d.B*fb,
			A: s.A*fa + d.A*fb,
		}
	}

	out.R = clamp01(out.R)
	out.G = clamp01(out.G)
	out.B = clamp01(out.B)
	out.A = clamp01(out.A)
	return out.Unpremultiply()
}

// porterDuffFactors returns the source and destination coefficients of the
// Porter-Duff operator for the given alphas.
func porterDuffFactors(op CompositionOp, sa, da float64) (fa, fb float64) {
	switch op {
	case OpSourceOver:
		return 1, 1 - sa
	case OpSourceIn:
		return da, 0
	case OpSourceOut:
		return 1 - da, 0
	case OpSourceAtop:
		return da, 1 - sa
	case OpDestinationOver:
		return 1 - da, 1
	case OpDestinationIn:
		return 0, sa
	case OpDestinationOut:
		return 0, 1 - sa
	case OpDestinationAtop:
		return 1 - da, sa
	case OpCopy:
		return 1, 0
	case OpClear:
		return 0, 0
	case OpXor:
		return 1 - da, 1 - sa
	case OpLighter:
		return 1, 1
	default:
		return 1, 1 - sa
	}
}

// blendPixel applies a separable blend mode with source-over alpha
// compositing. s and d are premultiplied, srcU and dstU the same colors
// non-premultiplied.
func blendPixel(s, d, srcU, dstU RGBA, op CompositionOp) RGBA {
	blend := func(cb, cs float64) float64 {
		switch op {
		case OpMultiply:
			return cb * cs
		case OpScreen:
			return cb + cs - cb*cs
		default: // OpOverlay
			if cb <= 0.5 {
				return 2 * cb * cs
			}
			return 1 - 2*(1-cb)*(1-cs)
		}
	}

	sa, da := s.A, d.A
	co := func(cs, cb, bl float64) float64 {
		// W3C compositing: premultiplied source-over with the blended
		// color replacing the source where both layers overlap.
		return sa*(1-da)*cs + sa*da*bl + (1-sa)*da*cb
	}
	return RGBA{
		R: co(srcU.R, dstU.R, blend(dstU.R, srcU.R)),
		G: co(srcU.G, dstU.G, blend(dstU.G, srcU.G)),
		B: co(srcU.B, dstU.B, blend(dstU.B, srcU.B)),
		A: sa + da*(1-sa),
	}
}

// opIsLocal reports whether the operator leaves pixels with zero source
// coverage untouched. Non-local operators must be applied across the whole
// surface.
func opIsLocal(op CompositionOp) bool {
	switch op {
	case OpSourceOver, OpDestinationOver, OpSourceAtop, OpDestinationOut,
		OpXor, OpLighter, OpMultiply, OpScreen, OpOverlay:
		return true
	default:
		return false
	}
}
