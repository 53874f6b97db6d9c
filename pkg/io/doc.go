// Package io reads and writes radar datasets.
//
// # Overview
//
// Every supported input is normalized to [radar.Config] before layout:
//
//   - json, yaml, toml: the native model, names for quadrant and ring references
//   - zalando: the radar.js entry format with index references
//   - xlsx: a spreadsheet with one entry per row
//
// # Native Format
//
//	{
//	  "title": "Platform Radar",
//	  "quadrants": [{"name": "Languages"}, {"name": "Tools"}],
//	  "rings": [{"name": "Adopt", "color": "#2e7d32"}, {"name": "Hold"}],
//	  "entries": [
//	    {"name": "Rust", "quadrant": "Languages", "ring": "Adopt", "moved": 1}
//	  ]
//	}
//
// moved is -1 (moved out), 0 (no change), 1 (moved in) or 2 (new).
//
// # Zalando Format
//
// Entries carry "label", integer "quadrant" and "ring" indexes, "moved",
// "active" and "link" (or "url"). Inactive entries and entries with an index
// out of range are dropped and counted in [Result].Skipped.
//
// # Spreadsheets
//
// The first sheet holds entries with a header row: name, quadrant, ring,
// description, link, tags (comma separated) and moved. Rows missing name,
// quadrant or ring are dropped and counted. Optional "quadrants" and "rings"
// sheets define order and colors; otherwise order of first appearance is used.
//
// # Detection
//
// [ImportFile] detects the format from the extension. A .json document whose
// entries reference quadrants by number is read as Zalando ([Sniff]).
//
// # Export
//
// [WriteJSON] writes the native format, which re-imports identically.
package io
