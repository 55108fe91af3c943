package ui

import (
	"fmt"
	"strings"
	"time"

	"benchdata/internal/benchmark"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HistoryModel browses the entries of one suite: a table of commits on top
// and the benches of the selected entry, compared with the entry before it,
// underneath.
type HistoryModel struct {
	suite     string
	entries   []benchmark.Entry
	threshold float64
	now       func() time.Time

	table  table.Model
	width  int
	height int
}

// NewHistoryModel creates the history browser. The newest entry is selected.
func NewHistoryModel(suite string, entries []benchmark.Entry, threshold float64) HistoryModel {
	columns := []table.Column{
		{Title: "DATE", Width: 17},
		{Title: "COMMIT", Width: 8},
		{Title: "TOOL", Width: 22},
		{Title: "BENCHES", Width: 8},
		{Title: "MESSAGE", Width: 40},
	}

	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			time.UnixMilli(e.Date).UTC().Format("2006-01-02 15:04"),
			e.Commit.ShortID(),
			string(e.Tool),
			fmt.Sprintf("%d", len(e.Benches)),
			truncate(e.Commit.Subject(), 40),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	if len(rows) > 0 {
		t.SetCursor(len(rows) - 1)
	}

	return HistoryModel{
		suite:     suite,
		entries:   entries,
		threshold: threshold,
		now:       time.Now,
		table:     t,
	}
}

func (m HistoryModel) Init() tea.Cmd {
	return nil
}

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "home", "g":
			m.table.GotoTop()
			return m, nil
		case "end", "G":
			m.table.GotoBottom()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Leave half of the screen to the detail pane.
		h := msg.Height/2 - 2
		if h < 3 {
			h = 3
		}
		m.table.SetHeight(h)
		return m, nil
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the entry under the cursor and the one recorded before it.
func (m HistoryModel) Selected() (cur *benchmark.Entry, prev *benchmark.Entry) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return nil, nil
	}
	cur = &m.entries[i]
	if i > 0 {
		prev = &m.entries[i-1]
	}
	return cur, prev
}

func (m HistoryModel) View() string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d entries)", m.suite, len(m.entries))))
	sb.WriteString("\n")
	sb.WriteString(baseStyle.Render(m.table.View()))
	sb.WriteString("\n")
	sb.WriteString(paneStyle.Render(m.detail()))
	sb.WriteString("\n")
	sb.WriteString(footerStyle.Render("↑/↓ select • g/G first/last • q quit"))
	return sb.String()
}

func (m HistoryModel) detail() string {
	cur, prev := m.Selected()
	if cur == nil {
		return "No entries recorded."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("Commit:"), cur.Commit.ID)
	if cur.Commit.Author.Name != "" {
		fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("Author:"), cur.Commit.Author.Name)
	}
	fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("Date:"), FormatDate(cur.Date, m.now()))
	if cur.Commit.URL != "" {
		fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("URL:"), cur.Commit.URL)
	}
	sb.WriteString("\n")

	var comparisons []benchmark.Comparison
	if prev != nil {
		comparisons = benchmark.Compare(*prev, *cur)
	}
	byName := make(map[string]benchmark.Comparison, len(comparisons))
	for _, c := range comparisons {
		byName[c.Name] = c
	}

	for _, b := range cur.Benches {
		line := fmt.Sprintf("%-30s %s", b.Name, FormatValue(b.Value, b.Unit))
		c, ok := byName[b.Name]
		switch {
		case !ok:
			sb.WriteString(unchangedStyle.Render(line + "  (new)"))
		case c.Ratio > m.threshold:
			sb.WriteString(regressedStyle.Render(fmt.Sprintf("%s  %s ratio %s", line, FormatPercent(c.DiffPercent), formatRatio(c.Ratio))))
		case c.Improved():
			sb.WriteString(improvedStyle.Render(fmt.Sprintf("%s  %s", line, FormatPercent(c.DiffPercent))))
		default:
			sb.WriteString(unchangedStyle.Render(fmt.Sprintf("%s  %s", line, FormatPercent(c.DiffPercent))))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// startHistoryTUI can be replaced in tests.
var startHistoryTUI = func(m HistoryModel) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// StartHistoryTUI runs the history browser until the user quits.
func StartHistoryTUI(suite string, entries []benchmark.Entry, threshold float64) error {
	return startHistoryTUI(NewHistoryModel(suite, entries, threshold))
}

// SetStartHistoryTUIForTest allows tests to replace the TUI starter function.
func SetStartHistoryTUIForTest(fn func(m HistoryModel) error) func() {
	orig := startHistoryTUI
	startHistoryTUI = fn
	return func() { startHistoryTUI = orig }
}
