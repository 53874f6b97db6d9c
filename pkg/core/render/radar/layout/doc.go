// Package layout computes deterministic positions for tech radar entries.
//
// # Overview
//
// A radar is a disc split two ways: angularly into one [Sector] per quadrant
// and radially into one [Band] per ring. Every entry lands somewhere inside
// the cell formed by its quadrant's sector and its ring's band. The exact
// spot is derived from the entry's identity by [HashUnit], so positions are
// stable across runs, platforms and reorderings without storing coordinates.
//
// # Geometry
//
// The canvas center is (width/2, height/2). The usable radius is
// min(width, height)/2 minus a fixed padding (default 40), clamped at zero.
// Angles are in radians and follow screen coordinates: 0 points right and
// angles grow clockwise because y grows downward.
//
// Sector i of N spans [i·2π/N, (i+1)·2π/N). Bands follow a [RadialPolicy]:
//
//   - [PolicyEqual]: M equal-width bands.
//   - [PolicyWidened] (default): the innermost band is widened by a number of
//     extra ring widths (default 1) and the rest share the remaining radius.
//
// Shared edges are computed by the same expression on both sides, so adjacent
// bands and sectors meet exactly.
//
// # Placement
//
// For an entry with key k (its name, or its canonical record under
// [KeyRecord]):
//
//	seedAngle  = HashUnit(k)
//	seedRadius = HashUnit(k + "_2")
//	angle      = start + m + (end - start - m) * seedAngle
//	radius     = inner + (outer - inner) * (fraction + spread * seedRadius)
//
// where m, fraction and spread come from [Margins]. The result is converted to
// Cartesian coordinates around the center.
//
// Entries whose quadrant or ring does not resolve are skipped silently; they
// never shift the placement of other entries.
//
// # Building a Layout
//
//	l := layout.Build(cfg, 800, 800,
//	    layout.WithRadialPolicy(layout.PolicyEqual),
//	    layout.WithMargins(layout.MarginsSimple),
//	)
//
// The returned [Layout] holds the [Structure] used to draw rings and
// dividers and one [Blip] per placed entry.
package layout
