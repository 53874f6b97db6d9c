package io

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/techradar/pkg/core/radar"
)

// zalandoDoc is the radar.js entry format: quadrants and rings are referenced
// by position instead of by name.
type zalandoDoc struct {
	Title     string           `json:"title"`
	Quadrants []radar.Quadrant `json:"quadrants"`
	Rings     []radar.Ring     `json:"rings"`
	Entries   []zalandoEntry   `json:"entries"`
}

type zalandoEntry struct {
	Label       string   `json:"label"`
	Quadrant    int      `json:"quadrant"`
	Ring        int      `json:"ring"`
	Moved       int      `json:"moved"`
	Active      *bool    `json:"active"`
	Link        string   `json:"link"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

func readZalando(r io.Reader) (radar.Config, int, error) {
	var doc zalandoDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return radar.Config{}, 0, err
	}

	cfg := radar.Config{
		Title:     doc.Title,
		Quadrants: doc.Quadrants,
		Rings:     doc.Rings,
		Entries:   make([]radar.Entry, 0, len(doc.Entries)),
	}
	skipped := 0
	for _, e := range doc.Entries {
		if e.Active != nil && !*e.Active {
			skipped++
			continue
		}
		if e.Quadrant < 0 || e.Quadrant >= len(doc.Quadrants) || e.Ring < 0 || e.Ring >= len(doc.Rings) {
			skipped++
			continue
		}
		link := e.Link
		if link == "" {
			link = e.URL
		}
		cfg.Entries = append(cfg.Entries, radar.Entry{
			Name:        e.Label,
			Quadrant:    doc.Quadrants[e.Quadrant].Name,
			Ring:        doc.Rings[e.Ring].Name,
			Description: e.Description,
			Link:        link,
			Tags:        e.Tags,
			Moved:       movementFromInt(e.Moved),
		})
	}
	return cfg, skipped, nil
}

func movementFromInt(n int) radar.Movement {
	switch m := radar.Movement(n); m {
	case radar.MovedDown, radar.MovedUp, radar.MovedNew:
		return m
	}
	return radar.MovedNone
}
