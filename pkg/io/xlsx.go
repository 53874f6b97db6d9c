package io

import (
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/techradar/pkg/core/radar"
	"github.com/matzehuels/techradar/pkg/errors"
)

const (
	sheetQuadrants = "quadrants"
	sheetRings     = "rings"
)

// readXLSX reads entries from the first sheet, using its first row as
// header. Recognized columns are name, quadrant, ring, description, link,
// tags and moved. Rows missing a name, quadrant or ring are skipped.
//
// Optional sheets named "quadrants" and "rings" (column "name", plus
// "color" for rings) fix the order. Without them, quadrants and rings are
// taken in order of first appearance.
func readXLSX(r io.Reader) (radar.Config, int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return radar.Config{}, 0, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	var entrySheet, quadrantSheet, ringSheet string
	for _, s := range sheets {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case sheetQuadrants:
			quadrantSheet = s
		case sheetRings:
			ringSheet = s
		default:
			if entrySheet == "" {
				entrySheet = s
			}
		}
	}
	if entrySheet == "" {
		return radar.Config{}, 0, errors.New(errors.ErrCodeInvalidFormat, "workbook has no entry sheet")
	}

	rows, err := readSheet(f, entrySheet)
	if err != nil {
		return radar.Config{}, 0, err
	}

	var cfg radar.Config
	skipped := 0
	for _, row := range rows {
		name, quadrant, ring := row["name"], row["quadrant"], row["ring"]
		if name == "" || quadrant == "" || ring == "" {
			skipped++
			continue
		}
		cfg.Entries = append(cfg.Entries, radar.Entry{
			Name:        name,
			Quadrant:    quadrant,
			Ring:        ring,
			Description: row["description"],
			Link:        row["link"],
			Tags:        splitTags(row["tags"]),
			Moved:       parseMovement(row["moved"]),
		})
	}

	if quadrantSheet != "" {
		qrows, err := readSheet(f, quadrantSheet)
		if err != nil {
			return radar.Config{}, 0, err
		}
		for _, row := range qrows {
			if row["name"] != "" {
				cfg.Quadrants = append(cfg.Quadrants, radar.Quadrant{Name: row["name"]})
			}
		}
	} else {
		for _, name := range firstAppearance(cfg.Entries, func(e radar.Entry) string { return e.Quadrant }) {
			cfg.Quadrants = append(cfg.Quadrants, radar.Quadrant{Name: name})
		}
	}

	if ringSheet != "" {
		rrows, err := readSheet(f, ringSheet)
		if err != nil {
			return radar.Config{}, 0, err
		}
		for _, row := range rrows {
			if row["name"] != "" {
				cfg.Rings = append(cfg.Rings, radar.Ring{Name: row["name"], Color: row["color"]})
			}
		}
	} else {
		for _, name := range firstAppearance(cfg.Entries, func(e radar.Entry) string { return e.Ring }) {
			cfg.Rings = append(cfg.Rings, radar.Ring{Name: name})
		}
	}

	return cfg, skipped, nil
}

// readSheet returns the data rows of a sheet keyed by lower-cased header.
func readSheet(f *excelize.File, sheet string) ([]map[string]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read sheet %q", sheet)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}
	out := make([]map[string]string, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(map[string]string, len(header))
		empty := true
		for i, c := range cells {
			if i >= len(header) || header[i] == "" {
				continue
			}
			c = strings.TrimSpace(c)
			if c != "" {
				empty = false
			}
			row[header[i]] = c
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out, nil
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// parseMovement accepts the radar.js integers as well as "new", "up" and "down".
func parseMovement(s string) radar.Movement {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "new":
		return radar.MovedNew
	case "up", "in":
		return radar.MovedUp
	case "down", "out":
		return radar.MovedDown
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return radar.MovedNone
	}
	return movementFromInt(n)
}

func firstAppearance(entries []radar.Entry, key func(radar.Entry) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		k := key(e)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
