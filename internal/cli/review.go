package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/songtiles/pkg/track"
)

// List styles
var (
	listHeaderStyle   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listOverflowStyle = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// ReviewModel - Interactive track review
// =============================================================================

// ReviewModel is the bubbletea model for reviewing tracks before rendering.
// Tracks can be edited, reordered and removed; nothing is rendered until
// the review is confirmed.
type ReviewModel struct {
	List   track.List
	Cursor int
	Offset int
	Height int

	// Editing is the field being edited, or "" when browsing.
	Editing track.Field
	Input   textinput.Model

	Confirmed bool
	Quit      bool
}

// NewReviewModel creates a review model over tracks.
func NewReviewModel(tracks track.List) ReviewModel {
	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 200
	return ReviewModel{
		List:   tracks,
		Height: 15,
		Input:  in,
	}
}

func (m ReviewModel) Init() tea.Cmd {
	return nil
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Editing != "" {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
		m.scroll()
	}
	return m, nil
}

func (m ReviewModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.List.Len()
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.Quit = true
		return m, tea.Quit
	case "enter", "ctrl+s":
		m.Confirmed = true
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < n-1 {
			m.Cursor++
		}
	case "K", "shift+up":
		if m.Cursor > 0 {
			m.List = m.List.Move(m.Cursor, m.Cursor-1)
			m.Cursor--
		}
	case "J", "shift+down":
		if m.Cursor < n-1 {
			m.List = m.List.Move(m.Cursor, m.Cursor+1)
			m.Cursor++
		}
	case "d", "delete":
		if n > 0 {
			m.List = m.List.Remove(m.Cursor)
			if m.Cursor >= m.List.Len() && m.Cursor > 0 {
				m.Cursor--
			}
		}
	case "t":
		return m.startEditing(track.FieldTitle)
	case "a":
		return m.startEditing(track.FieldArtist)
	case "y":
		return m.startEditing(track.FieldYear)
	}
	m.scroll()
	return m, nil
}

func (m ReviewModel) startEditing(f track.Field) (tea.Model, tea.Cmd) {
	if m.List.Len() == 0 {
		return m, nil
	}
	t := m.List.At(m.Cursor)
	value := t.Title
	switch f {
	case track.FieldArtist:
		value = t.Artist
	case track.FieldYear:
		value = t.YearText()
	}
	m.Editing = f
	m.Input.SetValue(value)
	m.Input.CursorEnd()
	return m, m.Input.Focus()
}

func (m ReviewModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Quit = true
		return m, tea.Quit
	case "esc":
		m.stopEditing()
		return m, nil
	case "enter":
		m.List = m.List.WithField(m.Cursor, m.Editing, strings.TrimSpace(m.Input.Value()))
		m.stopEditing()
		return m, nil
	}
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m *ReviewModel) stopEditing() {
	m.Editing = ""
	m.Input.Blur()
	m.Input.Reset()
}

// scroll keeps the cursor inside the visible window.
func (m *ReviewModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m ReviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Review Tracks"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  t/a/y edit title/artist/year  J/K move  d remove  ⏎ render  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > m.List.Len() {
		end = m.List.Len()
	}
	b.WriteString(renderTrackTable(m.List, m.Offset, end, m.Cursor))
	b.WriteString("\n\n")

	if m.Editing != "" {
		b.WriteString(StyleHighlight.Render(fmt.Sprintf("Edit %s of #%d", m.Editing, m.Cursor+1)))
		b.WriteString("\n")
		b.WriteString(m.Input.View())
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("⏎ save  esc cancel"))
		return b.String()
	}

	status := fmt.Sprintf("  [%d/%d]", m.Cursor+1, m.List.Len())
	if m.List.Len() == 0 {
		status = "  [no tracks]"
	}
	b.WriteString(listDimStyle.Render(status))
	if n := len(m.List.Warnings()); n > 0 {
		b.WriteString("  " + listOverflowStyle.Render(fmt.Sprintf("%d fields may overflow", n)))
	}
	return b.String()
}

// renderTrackTable renders tracks [start, end) as a table. The row at
// cursor is highlighted; pass -1 for none. Text past the tile limit is
// shown in the warning colour.
func renderTrackTable(tracks track.List, start, end, cursor int) string {
	overflow := make(map[[2]int]bool)
	for _, w := range tracks.Warnings() {
		col := 2
		if w.Field == track.FieldArtist {
			col = 3
		}
		overflow[[2]int{w.Index, col}] = true
	}

	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		t := tracks.At(i)
		marker := "  "
		if i == cursor {
			marker = "▸ "
		}
		year := t.YearText()
		if year == "" {
			year = "—"
		}
		rows = append(rows, []string{marker, fmt.Sprintf("%d", i+1), truncate(t.Title, 48), truncate(t.Artist, 32), year})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Title", "Artist", "Year").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			idx := start + row
			base := lipgloss.NewStyle()
			if col == 1 {
				base = base.Foreground(colorDim)
			}
			if overflow[[2]int{idx, col}] {
				base = base.Foreground(colorYellow)
			}
			if idx == cursor {
				return base.Inherit(listSelectedStyle)
			}
			return base
		}).
		Render()
}

// runReview shows the review UI. It reports false when the user quit
// without confirming.
func runReview(ctx context.Context, tracks track.List) (track.List, bool, error) {
	final, err := tea.NewProgram(NewReviewModel(tracks), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		return track.List{}, false, fmt.Errorf("review: %w", err)
	}
	m := final.(ReviewModel)
	return m.List, m.Confirmed, nil
}
