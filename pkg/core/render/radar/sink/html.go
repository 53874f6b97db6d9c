package sink

import (
	"bytes"
	"html/template"
	"strings"


	"github.com/matzehuels/techradar/pkg/core/render/radar/layout"
	"github.com/matzehuels/techradar/pkg/errors"
)

// HTMLOption configures HTML rendering.
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	svgOpts  []SVGOption
	datasets []string
	current  string
	baseURL  string
}

// WithHTMLSVGOptions passes options through to the embedded SVG.
func WithHTMLSVGOptions(opts ...SVGOption) HTMLOption {
	return func(r *htmlRenderer) { r.svgOpts = opts }
}

// WithDatasets adds a dataset switcher. Selecting a dataset navigates to
// baseURL?dataset=<name>.
func WithDatasets(baseURL string, names []string, current string) HTMLOption {
	return func(r *htmlRenderer) {
		r.baseURL = baseURL
		r.datasets = names
		r.current = current
	}
}

const noDescriptionHTML = "<p><em>No description</em></p>"

type htmlDetail struct {
	Quadrant    string   `json:"quadrant"`
	Ring        string   `json:"ring"`
	Color       string   `json:"color"`
	Moved       string   `json:"moved,omitempty"`
	Link        string   `json:"link,omitempty"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

type htmlPage struct {
	Title    string
	SVG      template.HTML
	Legend   []LegendSection
	Details  map[string]htmlDetail
	Datasets []string
	Current  string
	BaseURL  string
}

// RenderHTML wraps the interactive SVG in a standalone page with a legend,
// a details dialog opened on radar:select and a zoom toggle.
func RenderHTML(l layout.Layout, opts ...HTMLOption) ([]byte, error) {
	r := htmlRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	page := htmlPage{
		Title:    l.Title,
		SVG:      template.HTML(RenderSVG(l, r.svgOpts...)),
		Legend:   Legend(l),
		Details:  make(map[string]htmlDetail, len(l.Blips)),
		Datasets: r.datasets,
		Current:  r.current,
		BaseURL:  r.baseURL,
	}
	if page.Title == "" {
		page.Title = "Tech Radar"
	}
	for _, b := range l.Blips {
		desc := noDescriptionHTML
		if strings.TrimSpace(b.Entry.Description) != "" {
			var err error
			if desc, err = MarkdownToHTML(b.Entry.Description); err != nil {
				return nil, err
			}
		}
		d := htmlDetail{
			Quadrant:    l.Sectors[b.Quadrant].Name,
			Ring:        l.Bands[b.Ring].Name,
			Color:       b.Color,
			Link:        b.Entry.Link,
			Description: desc,
			Tags:        b.Entry.Tags,
		}
		if sym := b.Entry.Moved.Symbol(); sym != "" {
			d.Moved = sym + " " + b.Entry.Moved.String()
		}
		page.Details[b.Entry.Name] = d
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render html")
	}
	return buf.Bytes(), nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
  body { margin: 0; font-family: Helvetica, Arial, sans-serif; color: #333; background: #fff; }
  header { display: flex; align-items: center; gap: 16px; padding: 12px 20px; border-bottom: 1px solid #eee; }
  header h1 { font-size: 20px; margin: 0; flex: 1; }
  main { display: flex; gap: 24px; padding: 20px; }
  #radar { flex: 1; overflow: auto; }
  #radar svg { width: 99%; height: auto; }
  #radar.zoomed svg { width: 200%; }
  aside { width: 280px; font-size: 13px; }
  aside h2 { font-size: 14px; margin: 16px 0 4px; }
  aside ul { list-style: none; margin: 0; padding: 0; }
  .legend-entry { cursor: pointer; padding: 1px 0; }
  .legend-entry.active { font-weight: bold; }
  .swatch { display: inline-block; width: 8px; height: 8px; border-radius: 50%; margin-right: 6px; }
  dialog { max-width: 480px; border: 1px solid #ccc; border-radius: 8px; }
  dialog .meta { color: #666; font-size: 12px; }
  dialog .tags { color: #1565c0; font-size: 12px; }
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  {{- if .Datasets}}
  <select id="dataset" aria-label="Dataset">
    {{- range .Datasets}}
    <option value="{{.}}"{{if eq . $.Current}} selected{{end}}>{{.}}</option>
    {{- end}}
  </select>
  {{- end}}
  <button id="zoom" type="button">Zoom</button>
</header>
<main>
  <div id="radar">{{.SVG}}</div>
  <aside>
    {{- range .Legend}}
    <h2>{{.Number}}. {{.Quadrant}}</h2>
    <ul>
      {{- range .Entries}}
      <li class="legend-entry" data-entry="{{.Name}}"><span class="swatch" style="background: {{.Color}}"></span>{{.Label}}</li>
      {{- end}}
    </ul>
    {{- end}}
  </aside>
</main>
<dialog id="details">
  <h3 id="details-name"></h3>
  <p class="meta" id="details-meta"></p>
  <div id="details-body"></div>
  <p class="tags" id="details-tags"></p>
  <p><a id="details-link" target="_blank" rel="noopener">More</a></p>
  <form method="dialog"><button>Close</button></form>
</dialog>
<script>
  const details = {{.Details}};
  const baseURL = {{.BaseURL}};
  document.getElementById('zoom').addEventListener('click', () => {
    document.getElementById('radar').classList.toggle('zoomed');
  });
  const picker = document.getElementById('dataset');
  if (picker) picker.addEventListener('change', () => {
    window.location = baseURL + '?dataset=' + encodeURIComponent(picker.value);
  });
  document.addEventListener('radar:select', e => {
    const d = details[e.detail.name];
    if (!d) return;
    document.getElementById('details-name').textContent = e.detail.name;
    document.getElementById('details-meta').textContent = [d.quadrant, d.ring, d.moved].filter(Boolean).join(' · ');
    document.getElementById('details-body').innerHTML = d.description;
    document.getElementById('details-tags').textContent = (d.tags || []).map(t => '#' + t).join(' ');
    const link = document.getElementById('details-link');
    link.hidden = !d.link;
    if (d.link) link.href = d.link;
    const dlg = document.getElementById('details');
    if (!dlg.open) dlg.showModal();
  });
</script>
</body>
</html>
`))
