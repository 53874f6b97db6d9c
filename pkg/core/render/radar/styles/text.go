package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/matzehuels/techradar/pkg/core/radar"
)

var lower = cases.Lower(language.Und)

// RingLabel returns the short, lower-cased ring label drawn on the axes.
func RingLabel(name string) string {
	return lower.String(radar.ShortName(name))
}

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func WrapURL(buf *bytes.Buffer, url string, fn func()) {
	if url != "" {
		fmt.Fprintf(buf, `  <a href="%s" target="_blank">`, EscapeXML(url))
	}
	fn()
	if url != "" {
		buf.WriteString("</a>")
	}
}

// Degrees converts radians to degrees for SVG rotate().
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// Truncate shortens s to at most n runes, ending in "…" when cut.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:max(n-1, 0)]) + "…"
}

// WrapText breaks s into lines of at most width runes on word boundaries.
// At most maxLines lines are returned; the last one is truncated if needed.
func WrapText(s string, width, maxLines int) []string {
	words := strings.Fields(s)
	var lines []string
	var cur string
	for _, w := range words {
		switch {
		case cur == "":
			cur = w
		case utf8.RuneCountInString(cur)+1+utf8.RuneCountInString(w) <= width:
			cur += " " + w
		default:
			lines = append(lines, cur)
			cur = w
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	for i, l := range lines {
		lines[i] = Truncate(l, width)
	}
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		if last := []rune(lines[maxLines-1]); len(last) >= width {
			lines[maxLines-1] = string(last[:max(width-1, 0)]) + "…"
		} else {
			lines[maxLines-1] += "…"
		}
	}
	return lines
}

// nearAxis reports whether angle is within tolerance of 0 or π.
func nearAxis(angle float64) bool {
	const tol = 1e-6
	a := math.Mod(angle, math.Pi)
	return a < tol || math.Pi-a < tol
}
