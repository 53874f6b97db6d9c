// Package radar defines the data model for tech radar visualizations.
//
// # Overview
//
// A radar is described by a [Config]: an ordered list of [Quadrant] values
// (angular sectors), an ordered list of [Ring] values (radial bands, innermost
// first) and the [Entry] values placed on it. Entries reference their quadrant
// and ring by name.
//
// The model carries no coordinates. Positions are derived from entry identity
// by the layout package, so the same Config always renders the same picture.
//
// # References
//
// Quadrant and ring references are resolved with [Config.QuadrantIndex] and
// [Config.RingIndex]. An entry whose references do not resolve is not an error
// at this level: layout skips it. [Config.Validate] only checks what loaders
// must guarantee, namely non-empty and unique names.
//
// # Colors
//
// [RingColor] resolves the display color for a ring, falling back to a
// semantic color for the conventional ADOPT/TRIAL/ASSESS/HOLD names and then
// to a fixed palette.
package radar
