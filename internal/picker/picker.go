// Package picker is the interactive live-search dropdown: type a
// query, see ranked suggestions, pick one.
package picker

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Xuni-Dizan/phimdex/internal/catalog"
	"github.com/Xuni-Dizan/phimdex/internal/debounce"
	"github.com/Xuni-Dizan/phimdex/internal/search"
)

// searchWait is the quiet period before a keystroke burst turns into a
// search run.
const searchWait = 250 * time.Millisecond

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// resultsMsg carries a finished search run back into the update loop.
type resultsMsg []search.Result

// Picker is the live-search TUI model.
type Picker struct {
	items []catalog.Item
	opts  search.Options
	base  string // prefix for yanked detail URLs

	input     textinput.Model
	debouncer *debounce.Debouncer
	pending   chan []search.Result
	lastQuery string

	results   []search.Result
	cursor    int
	selected  bool
	cancelled bool
	yanked    string

	width  int
	height int
}

// New creates a Picker over the given catalog. base prefixes the
// detail URLs put on the clipboard.
func New(items []catalog.Item, opts search.Options, base string) Picker {
	input := textinput.New()
	input.Placeholder = "Search titles, cast, genres…"
	input.CharLimit = 80
	input.Width = 48
	input.Focus()

	return Picker{
		items:     items,
		opts:      opts,
		base:      base,
		input:     input,
		debouncer: debounce.New(searchWait),
		pending:   make(chan []search.Result, 1),
		width:     80,
		height:    24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, awaitResults(p.pending))
}

// awaitResults blocks on the pending channel and feeds the next search
// run back in as a message.
func awaitResults(pending chan []search.Result) tea.Cmd {
	return func() tea.Msg {
		return resultsMsg(<-pending)
	}
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case resultsMsg:
		p.results = msg
		p.cursor = 0
		return p, awaitResults(p.pending)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			p.cancelled = true
			p.debouncer.Stop()
			return p, tea.Quit

		case tea.KeyEnter:
			if len(p.results) > 0 {
				p.selected = true
				p.debouncer.Stop()
				return p, tea.Quit
			}
			return p, nil

		case tea.KeyDown, tea.KeyCtrlN:
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}
			return p, nil

		case tea.KeyUp, tea.KeyCtrlP:
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil

		case tea.KeyCtrlY:
			if r := p.current(); r != nil {
				url := p.base + search.DetailURL(r.Item.ID, r.Type, "")
				if err := clipboard.WriteAll(url); err == nil {
					p.yanked = url
				}
			}
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)

	if query := p.input.Value(); query != p.lastQuery {
		p.lastQuery = query
		p.yanked = ""
		p.scheduleSearch(query)
	}

	return p, cmd
}

// scheduleSearch debounces a search run for the query. The run happens
// on the debouncer's timer goroutine; results come back through the
// pending channel. Only the debouncer produces into the channel, and
// it drops the stale run when a newer one finished first.
func (p *Picker) scheduleSearch(query string) {
	items, opts, pending := p.items, p.opts, p.pending
	p.debouncer.Do(func() {
		results := search.Search(items, query, opts)
		select {
		case <-pending:
		default:
		}
		pending <- results
	})
}

func (p Picker) current() *search.Result {
	if p.cursor < 0 || p.cursor >= len(p.results) {
		return nil
	}
	return &p.results[p.cursor]
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("phimdex search (%d results)", len(p.results))))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	if len(p.results) == 0 {
		if len(p.lastQuery) >= search.MinQueryLen {
			b.WriteString(metaStyle.Render("No matches"))
			b.WriteString("\n")
		}
	}

	for i, r := range p.results {
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		title := style.Render(r.Item.Title)
		if badges := badgeLine(r.Item); badges != "" {
			title += " " + badgeStyle.Render(badges)
		}

		b.WriteString(fmt.Sprintf("%s%s\n", cursor, title))
		b.WriteString(fmt.Sprintf("   %s\n", metaStyle.Render(metaLine(r))))
	}

	b.WriteString("\n")
	if p.yanked != "" {
		b.WriteString(hintStyle.Render("yanked " + p.yanked))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("↑/↓: move  Enter: open  Ctrl+Y: yank URL  Esc: cancel"))

	return b.String()
}

// metaLine formats the secondary row under a suggestion title.
func metaLine(r search.Result) string {
	year := "N/A"
	if r.Item.ReleaseYear != nil {
		year = fmt.Sprintf("%d", *r.Item.ReleaseYear)
	}

	label, _ := search.TypeBadge(r.Type)
	parts := []string{year, label}
	if r.Item.Rating != nil {
		parts = append(parts, fmt.Sprintf("★ %.1f", *r.Item.Rating))
	}
	return strings.Join(parts, " · ")
}

func badgeLine(it catalog.Item) string {
	var badges []string
	if it.Hot {
		badges = append(badges, "[HOT]")
	}
	if it.New {
		badges = append(badges, "[NEW]")
	}
	if it.Trending {
		badges = append(badges, "[TRENDING]")
	}
	return strings.Join(badges, " ")
}

// Selected returns the chosen result, or nil if cancelled.
func (p Picker) Selected() *search.Result {
	if p.cancelled || !p.selected {
		return nil
	}
	return p.current()
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
