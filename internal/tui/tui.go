package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/dpane/internal/config"
	"github.com/sokinpui/dpane/internal/document"
	"github.com/sokinpui/dpane/internal/merge"
	"github.com/sokinpui/dpane/internal/session"
	"github.com/sokinpui/dpane/model"
)

// styles are derived from the theme at construction.
type styles struct {
	title   lipgloss.Style
	cursor  lipgloss.Style
	changed lipgloss.Style
	marker  lipgloss.Style
	lineNum lipgloss.Style
	faint   lipgloss.Style
}

// Model is the dual-pane bubbletea host.
type Model struct {
	sess  *session.Session
	theme config.Theme
	st    styles

	left  viewport.Model
	right viewport.Model

	side   model.Side // pane holding the cursor
	cursor int        // 1-based line in the active pane

	width  int
	height int
	ready  bool

	status string
}

func New(sess *session.Session, theme config.Theme) Model {
	return Model{
		sess:   sess,
		theme:  theme,
		side:   model.Modified,
		cursor: 1,
		st: styles{
			title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.CursorColor)),
			cursor:  lipgloss.NewStyle().Reverse(true),
			changed: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ChangedColor)),
			marker:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.MarkerColor)),
			lineNum: lipgloss.NewStyle().Faint(true),
			faint:   lipgloss.NewStyle().Faint(true),
		},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		paneWidth := (m.width - 1) / 2
		paneHeight := m.height - 3 // title and status rows
		if !m.ready {
			m.left = viewport.New(paneWidth, paneHeight)
			m.right = viewport.New(paneWidth, paneHeight)
			m.ready = true
		} else {
			m.left.Width, m.left.Height = paneWidth, paneHeight
			m.right.Width, m.right.Height = paneWidth, paneHeight
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "j", "down":
			m.moveCursor(1)
		case "k", "up":
			m.moveCursor(-1)
		case "g":
			m.cursor = 1
		case "G":
			m.cursor = m.activeLineCount()
			m.clampCursor()
		case "tab":
			m.side = m.side.Other()
			m.clampCursor()
		case "enter", "m":
			m.mergeAtCursor()
		case ">":
			m.mergeToward(model.ToModified)
		case "<":
			m.mergeToward(model.ToOriginal)
		case "u":
			if m.sess.Undo() {
				m.status = "undid merge"
			} else {
				m.status = "nothing to undo"
			}
			m.clampCursor()
		case "U":
			if m.sess.Redo() {
				m.status = "redid merge"
			} else {
				m.status = "nothing to redo"
			}
			m.clampCursor()
		}
	}
	return m, nil
}

// mergeAtCursor pulls the hunk under the cursor from the opposite pane into
// the active one. Landing outside any hunk does nothing.
func (m *Model) mergeAtCursor() {
	dir := model.ToOriginal
	if m.side == model.Modified {
		dir = model.ToModified
	}
	if m.sess.MergeAt(m.cursor, m.side, dir) {
		m.status = fmt.Sprintf("merged %s at line %d", dir, m.cursor)
	} else {
		m.status = "no change under cursor"
	}
	m.clampCursor()
}

// mergeToward copies the hunk under the cursor in an explicit direction,
// whichever pane is active.
func (m *Model) mergeToward(dir model.Direction) {
	if m.sess.MergeAt(m.cursor, m.side, dir) {
		m.status = fmt.Sprintf("merged %s at line %d", dir, m.cursor)
	} else {
		m.status = "no change under cursor"
	}
	m.clampCursor()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	m.cursor = document.ClampLine(m.cursor, m.activeLineCount())
}

func (m *Model) activeLineCount() int {
	return m.sess.Document(m.side).LineCount()
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	markers := m.sess.Markers()
	changes := m.sess.Changes()

	m.left.SetContent(m.renderPane(model.Original, markers.Original, changes))
	m.right.SetContent(m.renderPane(model.Modified, markers.Modified, changes))
	m.scrollToCursor()

	title := m.st.title.Render(fmt.Sprintf(" original | modified · %d change(s)", len(changes)))
	panes := lipgloss.JoinHorizontal(lipgloss.Top, m.left.View(), "│", m.right.View())
	help := m.st.faint.Render(" j/k move · tab pane · enter merge · </> merge left/right · u undo · U redo · q quit")
	status := ""
	if m.status != "" {
		status = "  " + m.status
	}

	return title + "\n" + panes + "\n" + help + status
}

// renderPane draws one document with line numbers, gutter markers, and
// change highlighting.
func (m Model) renderPane(side model.Side, markers []model.Marker, changes []model.ChangeRecord) string {
	doc := m.sess.Document(side)
	count := doc.LineCount()

	markedLines := make(map[int]bool, len(markers))
	for _, marker := range markers {
		markedLines[marker.Line] = true
	}

	gutter := m.theme.MarkerLeft
	if side == model.Modified {
		gutter = m.theme.MarkerRight
	}

	var b strings.Builder
	for line := 1; line <= count; line++ {
		mark := " "
		if markedLines[line] {
			mark = m.st.marker.Render(gutter)
		}

		text := doc.Line(line)
		if _, covered := merge.Locate(changes, line, side); covered {
			text = m.st.changed.Render(text)
		}
		if side == m.side && line == m.cursor {
			text = m.st.cursor.Render(doc.Line(line))
		}

		b.WriteString(fmt.Sprintf("%s%s %s\n", m.st.lineNum.Render(fmt.Sprintf("%4d ", line)), mark, text))
	}
	if count == 0 {
		b.WriteString(m.st.faint.Render("  (empty)"))
	}
	return b.String()
}

// scrollToCursor keeps the cursor line visible in both viewports.
func (m *Model) scrollToCursor() {
	for _, vp := range []*viewport.Model{&m.left, &m.right} {
		top := vp.YOffset
		bottom := top + vp.Height - 1
		if m.cursor-1 < top {
			vp.SetYOffset(m.cursor - 1)
		} else if m.cursor-1 > bottom {
			vp.SetYOffset(m.cursor - vp.Height)
		}
	}
}
