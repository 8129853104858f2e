// Package tui provides the terminal user interface for whenworks.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmerino/whenworks/internal/config"
	"github.com/dmerino/whenworks/internal/overlap"
	"github.com/dmerino/whenworks/internal/schedule"
	"github.com/dmerino/whenworks/internal/suggest"
	"github.com/dmerino/whenworks/internal/tui/commands"
	"github.com/dmerino/whenworks/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSelect      // Keyboard range selection in progress
	ModeResize      // Dragging one edge of an interval
	ModeForm        // Exact-time entry modal
)

// Position represents the cursor position in the grid.
type Position struct {
	Day schedule.Weekday
	Row int // Sample index within the day, 0 = DayStart
}

// Hour returns the hour of the cursor row.
func (p Position) Hour() schedule.Hour {
	return schedule.SampleHour(p.Row)
}

// formField identifies the focused field in the exact-time form.
type formField int

const (
	formFieldStart formField = iota
	formFieldEnd
	formFieldStatus
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   schedule.Repository
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Local owner editing state
	editor *Editor

	// Group state
	group   schedule.Group
	members []schedule.Person
	others  []schedule.Interval // every visible member but the local owner

	// Overlap state
	visibility  overlap.Visibility
	filter      overlap.FilterMode
	suggestions []suggest.Suggestion
	showPanel   bool // suggestions panel

	// Interaction state
	mode        Mode
	cursor      Position
	paintStatus schedule.Status // status painted by add drags
	drag        *DragSession

	// Exact-time form state
	formStart  textinput.Model
	formEnd    textinput.Model
	formStatus schedule.Status
	formFocus  formField

	// Layout
	width        int
	height       int
	layout       GridLayout
	scrollOffset int

	// Messages
	statusMsg  string
	statusTime time.Time
	loading    bool

	// Error state
	err error
}

// New creates a new TUI model.
func New(repo schedule.Repository, cfg *config.Config) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("frappe")
	}
	styles := NewStyles(t)

	formStart := textinput.New()
	formStart.Placeholder = "09:00"
	formStart.CharLimit = 5
	formStart.Width = 7

	formEnd := textinput.New()
	formEnd.Placeholder = "10:30"
	formEnd.CharLimit = 5
	formEnd.Width = 7

	for _, ti := range []*textinput.Model{&formStart, &formEnd} {
		ti.PlaceholderStyle = styles.FormPlaceholderStyle
		ti.TextStyle = styles.FormInputTextStyle
		ti.PromptStyle = styles.FormInputTextStyle
	}

	owner := cfg.Identity.OwnerID

	m := &Model{
		repo:        repo,
		config:      cfg,
		theme:       t,
		styles:      styles,
		editor:      NewEditor(owner),
		visibility:  overlap.NewVisibility(owner),
		mode:        ModeNormal,
		cursor:      Position{Day: 1, Row: 4}, // Monday 09:00
		paintStatus: schedule.StatusAvailable,
		formStart:   formStart,
		formEnd:     formEnd,
		formStatus:  schedule.StatusAvailable,
		showPanel:   true,
		loading:     true,
	}
	m.layout = m.buildLayout()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		commands.LoadGroup(m.repo, m.config.Group.DefaultInvite),
		tea.EnableMouseCellMotion,
	)
}

// Run starts the TUI.
func Run(repo schedule.Repository, cfg *config.Config) error {
	return RunWithDebug(repo, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(repo schedule.Repository, cfg *config.Config, debug bool) error {
	if cfg.Group.DefaultInvite == "" {
		return fmt.Errorf("no group configured: run 'whenworks group create' or 'whenworks group join <code>' first")
	}

	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	p := tea.NewProgram(New(repo, cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// localOwner returns the configured owner id.
func (m Model) localOwner() string {
	return m.config.Identity.OwnerID
}

// canEdit reports whether edits are allowed: only when the board shows just
// the local owner's schedule.
func (m Model) canEdit() bool {
	return m.visibility.SoleMember(m.localOwner())
}

// visibleIntervals returns the union of intervals shown on the board.
func (m Model) visibleIntervals() []schedule.Interval {
	return overlap.VisibleIntervals(m.visibility, m.localOwner(), m.editor.Intervals(), m.others)
}

// allIntervals returns every member's intervals, ignoring visibility.
// Suggestions always consider the whole group.
func (m Model) allIntervals() []schedule.Interval {
	out := make([]schedule.Interval, 0, len(m.editor.Intervals())+len(m.others))
	out = append(out, m.editor.Intervals()...)
	out = append(out, m.others...)
	return out
}

// refreshSuggestions recomputes the ranked suggestions for the group.
func (m *Model) refreshSuggestions() {
	m.suggestions = suggest.Suggest(m.allIntervals(), len(m.members), suggest.DefaultTopN)
}

// applyRecords splits loaded records into the editor's set and everyone
// else's intervals.
func (m *Model) applyRecords(records []schedule.Record) error {
	intervals, err := schedule.FromRecords(records)
	if err != nil {
		return err
	}

	var mine, others []schedule.Interval
	for _, iv := range intervals {
		if iv.Owner == m.localOwner() {
			mine = append(mine, iv)
		} else {
			others = append(others, iv)
		}
	}
	m.editor.SetIntervals(mine)
	// Other members' intervals are read-only projections, stored canonical
	// per owner. Merging here would coalesce across owners and break
	// distinct-owner counting.
	m.others = others
	m.refreshSuggestions()
	return nil
}

// setStatus sets a transient status message.
func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTime = time.Now()
}

// buildLayout recomputes the grid geometry from the terminal size.
func (m Model) buildLayout() GridLayout {
	colWidth := defaultColWidth
	if m.width > 0 {
		// Time gutter plus seven equal columns.
		available := m.width - timeGutterWidth
		if available/7 < colWidth {
			colWidth = available / 7
		}
		if colWidth < minColWidth {
			colWidth = minColWidth
		}
	}

	rows := m.height - headerLines - footerLines
	if rows < 1 {
		rows = 1
	}
	if rows > schedule.SamplesPerDay {
		rows = schedule.SamplesPerDay
	}

	return GridLayout{
		OriginX:      timeGutterWidth,
		OriginY:      headerLines,
		ColWidth:     colWidth,
		VisibleRows:  rows,
		ScrollOffset: m.scrollOffset,
	}
}

// ensureCursorVisible scrolls the grid so the cursor row stays on screen.
func (m *Model) ensureCursorVisible() {
	if m.cursor.Row < m.scrollOffset {
		m.scrollOffset = m.cursor.Row
	}
	if m.cursor.Row >= m.scrollOffset+m.layout.VisibleRows {
		m.scrollOffset = m.cursor.Row - m.layout.VisibleRows + 1
	}
	m.layout = m.buildLayout()
}
