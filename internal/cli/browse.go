package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/techradar/pkg/core/render/radar/layout"
	"github.com/matzehuels/techradar/pkg/core/render/radar/sink"
	"github.com/matzehuels/techradar/pkg/core/render/radar/styles"
	"github.com/matzehuels/techradar/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	detailsStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

const listWidth = 36

// browseCommand creates the interactive entry browser.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		src     source
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Browse the entries of a radar interactively",
		Long: `Browse the entries of a radar interactively.

Entries are listed per quadrant in legend order. Moving the cursor highlights
an entry; enter opens its details.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := src.resolve(args); err != nil {
				return err
			}
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			res, err := c.load(cmd.Context(), cfg, src)
			if err != nil {
				return err
			}
			l, _, err := c.computeLayout(cmd.Context(), cfg, res.Config, noCache)
			if err != nil {
				return err
			}
			if len(l.Blips) == 0 {
				printWarning("%s has no entries to browse", src.name())
				return nil
			}

			p := tea.NewProgram(NewBrowseModel(l), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				if cmd.Context().Err() != nil {
					return cmd.Context().Err()
				}
				return errors.Wrap(errors.ErrCodeInternal, err, "run browser")
			}
			return nil
		},
	}

	c.sourceFlags(cmd, &src)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// =============================================================================
// BrowseModel - Interactive entry browser
// =============================================================================

// HoverMsg reports that the highlighted entry changed.
type HoverMsg struct{ Name string }

// SelectMsg reports that an entry was chosen for its details.
type SelectMsg struct{ Name string }

// browseRow is one line of the entry list: a quadrant heading or an entry.
type browseRow struct {
	heading string
	entry   sink.LegendEntry
}

// BrowseModel is the bubbletea model of the entry browser. The list emits
// HoverMsg and SelectMsg; the model owns the hover and selection state.
type BrowseModel struct {
	Layout   layout.Layout
	Hovered  string
	Selected string

	rows    []browseRow
	entries []int // indices into rows of the entry lines
	cursor  int   // index into entries
	offset  int   // first visible row
	height  int
	details viewport.Model
}

// NewBrowseModel lists the placed entries of l in legend order.
func NewBrowseModel(l layout.Layout) BrowseModel {
	m := BrowseModel{
		Layout:  l,
		height:  20,
		details: viewport.New(60, 18),
	}
	for _, s := range sink.Legend(l) {
		if len(s.Entries) == 0 {
			continue
		}
		m.rows = append(m.rows, browseRow{heading: fmt.Sprintf("%d. %s", s.Number, s.Quadrant)})
		for _, e := range s.Entries {
			m.entries = append(m.entries, len(m.rows))
			m.rows = append(m.rows, browseRow{entry: e})
		}
	}
	return m
}

// Current returns the entry under the cursor.
func (m BrowseModel) Current() string {
	if len(m.entries) == 0 {
		return ""
	}
	return m.rows[m.entries[m.cursor]].entry.Name
}

func (m BrowseModel) Init() tea.Cmd {
	return hover(m.Current())
}

func hover(name string) tea.Cmd {
	return func() tea.Msg { return HoverMsg{Name: name} }
}

func selectEntry(name string) tea.Cmd {
	return func() tea.Msg { return SelectMsg{Name: name} }
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Selected != "" {
				m.Selected = ""
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.scroll()
				return m, hover(m.Current())
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				m.scroll()
				return m, hover(m.Current())
			}
		case "enter", " ":
			if name := m.Current(); name != "" {
				return m, selectEntry(name)
			}
		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			var cmd tea.Cmd
			m.details, cmd = m.details.Update(msg)
			return m, cmd
		}
	case HoverMsg:
		m.Hovered = msg.Name
	case SelectMsg:
		m.Selected = msg.Name
		m.details.SetContent(m.detailsContent(msg.Name))
		m.details.GotoTop()
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-4, 5)
		m.details.Width = max(msg.Width-listWidth-6, 20)
		m.details.Height = max(msg.Height-6, 5)
		if m.Selected != "" {
			m.details.SetContent(m.detailsContent(m.Selected))
		}
		m.scroll()
	}
	return m, nil
}

// scroll keeps the cursor row, and its quadrant heading when possible, visible.
func (m *BrowseModel) scroll() {
	if len(m.entries) == 0 {
		return
	}
	row := m.entries[m.cursor]
	if top := row - 1; top < m.offset {
		m.offset = max(top, 0)
	}
	if row >= m.offset+m.height {
		m.offset = row - m.height + 1
	}
}

func (m BrowseModel) detailsContent(name string) string {
	b, ok := m.Layout.Blip(name)
	if !ok {
		return "Entry not found"
	}
	out, err := renderMarkdown(entryMarkdown(b.Entry), max(m.details.Width-2, 20))
	if err != nil {
		return entryMarkdown(b.Entry)
	}
	return out
}

func (m BrowseModel) View() string {
	var list strings.Builder
	title := m.Layout.Title
	if title == "" {
		title = "Tech Radar"
	}
	list.WriteString(StyleTitle.Render(title))
	list.WriteString("\n")
	list.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  esc back  q quit"))
	list.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.rows))
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		if r.heading != "" {
			list.WriteString(listHeaderStyle.Render(r.heading))
			list.WriteString("\n")
			continue
		}
		cursor := "  "
		style := listNormalStyle
		if r.entry.Name == m.Hovered {
			cursor = "▸ "
			style = listSelectedStyle
		}
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(r.entry.Color)).Render("●")
		label := style.Render(styles.Truncate(r.entry.Label, listWidth-6))
		list.WriteString(cursor + dot + " " + label + "\n")
	}
	list.WriteString("\n")
	list.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.entries))))

	left := lipgloss.NewStyle().Width(listWidth).Render(list.String())
	if m.Selected == "" {
		return left
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, detailsStyle.Render(m.details.View()))
}
