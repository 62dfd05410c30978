// Package text provides font loading, shaping, measurement, and glyph
// outline extraction for the canvas paint actor.
//
// Shaping goes through go-text/typesetting's HarfBuzz implementation, so
// kerning, ligatures, and right-to-left scripts come out correctly. Mixed
// direction strings are segmented with the Unicode bidi algorithm before
// shaping. Glyph outlines and font-wide metrics come from
// golang.org/x/image/font/sfnt.
//
// The types here are not safe for concurrent use; the paint actor is the
// single caller.
package text
