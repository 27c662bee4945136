// Package finder is the interactive selector: a query input above a
// ranked candidate list, with a preview pane for the highlighted item.
// The ranking itself lives in internal/picker; this model only routes
// keystrokes and renders the current window.
package finder

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Paintersrp/pick/internal/constants"
	"github.com/Paintersrp/pick/internal/picker"
	"github.com/Paintersrp/pick/internal/preview"
)

// chrome rows: title, input, separator, status.
const chromeRows = 4

// Result reports how the selector closed. Confirmed is false when the
// user cancelled or confirmed with an empty view.
type Result struct {
	Candidate picker.Candidate
	Action    picker.Action
	Confirmed bool
}

type Model struct {
	input       textinput.Model
	engine      *picker.Engine
	cache       *preview.Cache
	keys        *keyMap
	title       string
	width       int
	height      int
	preview     preview.Result
	showPreview bool
	status      string
	result      Result
	done        bool
}

func NewModel(engine *picker.Engine, cache *preview.Cache, title, query string) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "type to filter"
	input.Focus()

	m := Model{
		input:       input,
		engine:      engine,
		cache:       cache,
		keys:        newKeyMap(),
		title:       title,
		showPreview: cache != nil,
		preview:     preview.Result{Status: preview.StatusPending},
	}

	if query != "" {
		m.input.SetValue(query)
		m.engine.Rescan(query)
	}
	m.refreshPreview()

	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			m.done = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.confirm):
			return m.confirm(picker.ActionOpen)

		case key.Matches(msg, m.keys.confirmSwap):
			return m.confirm(picker.ActionReplace)

		case key.Matches(msg, m.keys.confirmHoriz):
			return m.confirm(picker.ActionHSplit)

		case key.Matches(msg, m.keys.confirmVert):
			return m.confirm(picker.ActionVSplit)

		case key.Matches(msg, m.keys.up):
			m.engine.MoveUp()
			m.refreshPreview()
			return m, nil

		case key.Matches(msg, m.keys.down):
			m.engine.MoveDown()
			m.refreshPreview()
			return m, nil

		case key.Matches(msg, m.keys.saveScope):
			n := m.engine.Len()
			m.engine.SaveScope()
			m.input.Reset()
			m.status = statusStyle(fmt.Sprintf("Scope saved with %d candidates", n))
			m.refreshPreview()
			return m, nil

		case key.Matches(msg, m.keys.clearScope):
			if m.engine.Scoped() {
				m.engine.ClearScope()
				m.status = statusStyle("Scope cleared")
				m.refreshPreview()
			}
			return m, nil

		case key.Matches(msg, m.keys.yank):
			if path, ok := m.selectionPath(); ok {
				if err := clipboard.WriteAll(path); err != nil {
					m.status = statusStyle("Failed to yank path")
				} else {
					m.status = statusStyle("Yanked " + path)
				}
			}
			return m, nil

		default:
			before := m.input.Value()
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			if after := m.input.Value(); after != before {
				m.engine.Rescan(after)
				m.status = ""
				m.refreshPreview()
			}
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// confirm closes the selector. Confirming with an empty view closes
// without recording a selection.
func (m Model) confirm(a picker.Action) (tea.Model, tea.Cmd) {
	if c, ok := m.engine.Selection(); ok {
		m.result = Result{Candidate: c, Action: a, Confirmed: true}
	}
	m.done = true
	return m, tea.Quit
}

// Result is only meaningful once the program has finished.
func (m Model) Result() Result {
	return m.result
}

func (m *Model) selectionPath() (string, bool) {
	c, ok := m.engine.Selection()
	if !ok {
		return "", false
	}
	src, ok := c.(preview.Source)
	if !ok {
		return "", false
	}
	return src.PreviewPath()
}

// refreshPreview re-resolves the highlighted candidate's content. The
// cache runs its live-document check on every call, so this stays correct
// when the host edits a buffer between keystrokes.
func (m *Model) refreshPreview() {
	if !m.showPreview {
		return
	}
	path, ok := m.selectionPath()
	if !ok {
		m.preview = preview.Result{Status: preview.StatusPending}
		return
	}
	m.preview = m.cache.Get(path)
}

func (m Model) rows() int {
	rows := m.height - chromeRows - appStyle.GetVerticalFrameSize()
	if rows < 1 {
		rows = 10
	}
	return rows
}

func (m Model) previewVisible() bool {
	return m.showPreview && m.width >= constants.MinWidthForPreview
}

func (m Model) View() string {
	if m.done {
		return ""
	}

	listWidth := m.width - appStyle.GetHorizontalFrameSize()
	if m.previewVisible() {
		listWidth /= 2
	}
	if listWidth < 20 {
		listWidth = 20
	}

	var b strings.Builder

	title := titleStyle.Render(m.title)
	counts := fmt.Sprintf(" %d/%d", m.engine.Len(), m.engine.Total())
	if m.engine.Scoped() {
		counts += scopeStyle.Render(" [scoped]")
	}
	b.WriteString(title + counts + "\n")
	b.WriteString(m.input.View() + "\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", listWidth)) + "\n")

	rows := m.rows()
	offset, page := m.engine.Window(rows)
	for i, match := range page {
		selected := offset+i == m.engine.Cursor()

		marker := "  "
		if selected {
			marker = "> "
		}

		line := renderMatch(m.engine.Candidate(match).Display(), match.Matched, listWidth-2)
		if selected {
			line = selectedItemStyle.Render(line)
		} else {
			line = textStyle.Render(line)
		}
		b.WriteString(marker + line + "\n")
	}
	for i := len(page); i < rows; i++ {
		b.WriteString("\n")
	}

	b.WriteString(m.status)

	left := b.String()
	if !m.previewVisible() {
		return appStyle.Render(left)
	}

	paneWidth := m.width - appStyle.GetHorizontalFrameSize() - listWidth - 2
	pane := previewStyle.Render(
		lipgloss.NewStyle().
			Width(paneWidth).
			MaxWidth(paneWidth).
			Height(rows + 3).
			MaxHeight(rows + 3).
			Render(m.renderPreview(paneWidth)),
	)

	return appStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, left, pane))
}

func (m Model) renderPreview(width int) string {
	switch m.preview.Status {
	case preview.StatusPending:
		return unavailableStyle.Render("Nothing to preview")
	case preview.StatusUnavailable:
		return unavailableStyle.Render("Preview unavailable: " + m.preview.Reason)
	}

	if strings.HasSuffix(m.preview.Path, ".md") {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dracula"),
			glamour.WithWordWrap(width),
			glamour.WithColorProfile(termenv.ANSI256),
		)
		if err == nil {
			if rendered, err := r.Render(m.preview.Content); err == nil {
				return rendered
			}
		}
		// Fall through to the plain rendering on any glamour failure.
	}

	return m.preview.Content
}

// renderMatch truncates a display line to width runes and emphasizes the
// rune offsets the scorer matched.
func renderMatch(text string, matched []int, width int) string {
	runes := []rune(text)
	if width > 0 && len(runes) > width {
		runes = runes[:width]
	}

	if len(matched) == 0 {
		return string(runes)
	}

	hl := make(map[int]bool, len(matched))
	for _, idx := range matched {
		hl[idx] = true
	}

	var b strings.Builder
	for i, r := range runes {
		if hl[i] {
			b.WriteString(matchedStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Run drives the selector to completion and reports how it closed.
func Run(m Model) (Result, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("error running picker: %w", err)
	}
	return final.(Model).Result(), nil
}
