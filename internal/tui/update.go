package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmerino/whenworks/internal/overlap"
	"github.com/dmerino/whenworks/internal/schedule"
	"github.com/dmerino/whenworks/internal/tui/commands"
)

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout = m.buildLayout()
		m.ensureCursorVisible()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case commands.GroupLoadedMsg:
		m.group = msg.Group
		m.members = msg.Members
		m.loading = false
		if err := m.applyRecords(msg.Records); err != nil {
			m.setStatus(fmt.Sprintf("Error loading availability: %v", err))
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Group %s (%s), %d members", m.group.Name, m.group.InviteCode, len(m.members)))
		return m, nil

	case commands.AvailabilityReloadedMsg:
		m.members = msg.Members
		// A reload must not clobber in-flight edits; only the others' side
		// refreshes while the editor is dirty.
		if m.editor.HasChanges() {
			var others []schedule.Interval
			if intervals, err := schedule.FromRecords(msg.Records); err == nil {
				for _, iv := range intervals {
					if iv.Owner != m.localOwner() {
						others = append(others, iv)
					}
				}
				m.others = others
			}
		} else if err := m.applyRecords(msg.Records); err != nil {
			m.setStatus(fmt.Sprintf("Error loading availability: %v", err))
			return m, nil
		}
		m.refreshSuggestions()
		return m, nil

	case commands.SavedMsg:
		m.editor.Commit()
		m.setStatus(fmt.Sprintf("Saved %d intervals", msg.Count))
		return m, commands.Reload(m.repo, m.group.ID)

	case commands.CopiedMsg:
		m.setStatus("Copied top suggestion")
		return m, nil

	case commands.ErrMsg:
		// A failed save keeps the working set intact; the status line is the
		// only signal.
		LogError("command", msg.Err)
		m.setStatus(fmt.Sprintf("Error: %v", msg.Err))
		return m, nil

	case commands.ClearStatusMsg:
		m.statusMsg = ""
		return m, nil
	}

	return m, nil
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeSelect:
		return m.handleSelectKeys(msg)
	case ModeResize:
		return m.handleResizeKeys(msg)
	case ModeForm:
		return m.handleFormKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		if m.editor.HasChanges() {
			m.setStatus("Unsaved changes! Press w to save or esc to discard")
			return m, nil
		}
		return m, tea.Quit

	// Navigation
	case "h", "left":
		if m.cursor.Day > 0 {
			m.cursor.Day--
		}
	case "l", "right":
		if m.cursor.Day < 6 {
			m.cursor.Day++
		}
	case "j", "down":
		if m.cursor.Row < schedule.SamplesPerDay-1 {
			m.cursor.Row++
		}
		m.ensureCursorVisible()
	case "k", "up":
		if m.cursor.Row > 0 {
			m.cursor.Row--
		}
		m.ensureCursorVisible()
	case "g":
		m.cursor.Row = 0
		m.ensureCursorVisible()
	case "G":
		m.cursor.Row = schedule.SamplesPerDay - 1
		m.ensureCursorVisible()
	case "pgdown", "ctrl+d":
		m.cursor.Row = min(schedule.SamplesPerDay-1, m.cursor.Row+m.layout.VisibleRows)
		m.ensureCursorVisible()
	case "pgup", "ctrl+u":
		m.cursor.Row = max(0, m.cursor.Row-m.layout.VisibleRows)
		m.ensureCursorVisible()

	// Editing
	case "v", " ":
		return m.startKeyboardSelect()

	case "t":
		m.paintStatus = m.paintStatus.Opposite()
		m.setStatus(fmt.Sprintf("Painting: %s", m.paintStatus))

	case "x":
		if !m.canEdit() {
			m.setStatus("Hide other members before editing (press their number)")
			return m, nil
		}
		hour := m.cursor.Hour()
		if removed := m.editor.RemoveRange(m.cursor.Day, hour, hour); removed == 0 {
			m.setStatus("Nothing to remove here")
		} else {
			m.setStatus("Removed interval")
			m.refreshSuggestions()
		}
		return m, nil

	case "r", "R":
		return m.startKeyboardResize(msg.String() == "R")

	case "enter", "a":
		return m.openForm()

	case "u":
		if !m.editor.CanUndo() {
			m.setStatus("Nothing to undo")
			return m, nil
		}
		if err := m.editor.Undo(); err != nil {
			m.setStatus(fmt.Sprintf("Error: %v", err))
			return m, nil
		}
		m.refreshSuggestions()
		if n := m.editor.UndoCount(); n > 0 {
			m.setStatus(fmt.Sprintf("Undone (%d more available)", n))
		} else {
			m.setStatus("Undone (no more changes)")
		}
		return m, nil

	case "w":
		if !m.editor.HasChanges() {
			m.setStatus("No changes to save")
			return m, nil
		}
		m.setStatus("Saving...")
		return m, commands.Save(m.repo, m.localOwner(), m.group.ID, m.editor.Records(m.group.ID))

	case "esc":
		if m.editor.HasChanges() {
			m.editor.Discard()
			m.refreshSuggestions()
			m.setStatus("Changes discarded")
		}
		return m, nil

	// Overlap controls
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return m.toggleMember(int(msg.String()[0] - '1'))

	case "f":
		m.filter = overlap.ToggleFilter(m.filter, overlap.FilterOnlyFreeOverlap)
		m.setStatus(filterStatus(m.filter))
	case "F":
		m.filter = overlap.ToggleFilter(m.filter, overlap.FilterOnlyBusyOverlap)
		m.setStatus(filterStatus(m.filter))

	case "s":
		m.showPanel = !m.showPanel

	case "y":
		if len(m.suggestions) == 0 {
			m.setStatus("No suggestions to copy")
			return m, nil
		}
		s := m.suggestions[0]
		text := fmt.Sprintf("%s %s-%s (%d people free)",
			s.Day.Name(), schedule.FormatHour(s.Start), schedule.FormatHour(s.End), s.Attendance)
		return m, commands.Copy(text)
	}

	return m, nil
}

// startKeyboardSelect enters select mode anchored at the cursor.
func (m Model) startKeyboardSelect() (tea.Model, tea.Cmd) {
	if !m.canEdit() {
		m.setStatus("Hide other members before editing (press their number)")
		return m, nil
	}
	m.drag = StartDrag(DragAdd, m.cursor.Day, m.paintStatus, m.cursor.Hour())
	LogModeChange(m.mode, ModeSelect, "keyboard_select")
	m.mode = ModeSelect
	m.setStatus(fmt.Sprintf("Selecting %s: j/k extend, Enter add, x remove, Esc cancel", m.paintStatus))
	return m, nil
}

// handleSelectKeys handles keys during a keyboard range selection.
func (m Model) handleSelectKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.drag = nil
		m.mode = ModeNormal
		m.setStatus("Selection cancelled")
		return m, nil

	case "j", "down":
		if m.cursor.Row < schedule.SamplesPerDay-1 {
			m.cursor.Row++
		}
		m.drag.Extend(m.cursor.Hour())
		m.ensureCursorVisible()
		return m, nil

	case "k", "up":
		if m.cursor.Row > 0 {
			m.cursor.Row--
		}
		m.drag.Extend(m.cursor.Hour())
		m.ensureCursorVisible()
		return m, nil

	case "enter":
		return m.commitDragAdd()

	case "x":
		start, end := m.drag.Range()
		day := m.drag.Day
		m.drag = nil
		m.mode = ModeNormal
		if removed := m.editor.RemoveRange(day, start, end); removed == 0 {
			m.setStatus("Nothing to remove in selection")
		} else {
			m.setStatus(fmt.Sprintf("Removed %d intervals", removed))
			m.refreshSuggestions()
		}
		return m, nil
	}
	return m, nil
}

// commitDragAdd commits the active drag as a new interval.
func (m Model) commitDragAdd() (tea.Model, tea.Cmd) {
	start, end := m.drag.Range()
	day, status := m.drag.Day, m.drag.Status
	m.drag = nil
	m.mode = ModeNormal

	if err := m.editor.Add(day, status, start, end); err != nil {
		if errors.Is(err, schedule.ErrConflict) {
			m.setStatus(fmt.Sprintf("Conflict: %s overlaps %s time", status, status.Opposite()))
		} else {
			m.setStatus(fmt.Sprintf("Error: %v", err))
		}
		return m, nil
	}
	m.refreshSuggestions()
	m.setStatus(fmt.Sprintf("Added %s %s %s-%s",
		status, day.Name(), schedule.FormatHour(start), schedule.FormatHour(end)))
	return m, nil
}

// startKeyboardResize enters resize mode on the interval under the cursor.
func (m Model) startKeyboardResize(startEdge bool) (tea.Model, tea.Cmd) {
	if !m.canEdit() {
		m.setStatus("Hide other members before editing (press their number)")
		return m, nil
	}
	iv := m.editor.IntervalAt(m.cursor.Day, m.cursor.Hour())
	if iv == nil {
		m.setStatus("No interval to resize here")
		return m, nil
	}

	edge := EdgeEnd
	if startEdge {
		edge = EdgeStart
	}
	if err := m.editor.StartResize(iv.ID, edge); err != nil {
		m.setStatus(fmt.Sprintf("Error: %v", err))
		return m, nil
	}
	LogModeChange(m.mode, ModeResize, "keyboard_resize")
	m.mode = ModeResize
	m.setStatus("Resizing: j/k move edge, Enter confirm, Esc cancel")
	return m, nil
}

// handleResizeKeys handles keys during a resize session.
func (m Model) handleResizeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editor.CancelResize()
		m.mode = ModeNormal
		m.setStatus("Resize cancelled")
		return m, nil

	case "enter":
		if err := m.editor.ConfirmResize(); err != nil {
			m.setStatus(fmt.Sprintf("Error: %v", err))
		} else {
			m.setStatus("Resized")
			m.refreshSuggestions()
		}
		m.mode = ModeNormal
		return m, nil

	case "j", "down", "k", "up":
		iv := m.editor.FindByID(m.editor.ResizingID())
		if iv == nil {
			m.editor.CancelResize()
			m.mode = ModeNormal
			return m, nil
		}
		edgeHour := iv.End
		if m.editor.ResizeEdge() == EdgeStart {
			edgeHour = iv.Start
		}
		delta := schedule.Step
		if msg.String() == "k" || msg.String() == "up" {
			delta = -schedule.Step
		}
		// An invalid move freezes the edge at its last valid position.
		if err := m.editor.ResizeTo(edgeHour + delta); err != nil {
			LogError("resize", err)
		}
		return m, nil
	}
	return m, nil
}

// openForm opens the exact-time entry modal.
func (m Model) openForm() (tea.Model, tea.Cmd) {
	if !m.canEdit() {
		m.setStatus("Hide other members before editing (press their number)")
		return m, nil
	}
	m.mode = ModeForm
	m.formStart.SetValue(schedule.FormatHour(m.cursor.Hour()))
	m.formEnd.SetValue("")
	m.formStatus = m.paintStatus
	m.formFocus = formFieldStart
	m.formStart.Focus()
	m.formEnd.Blur()
	return m, nil
}

// handleFormKeys handles keys in the exact-time form.
func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		return m, nil

	case "tab", "shift+tab":
		back := msg.String() == "shift+tab"
		m.formFocus = nextFormField(m.formFocus, back)
		m.formStart.Blur()
		m.formEnd.Blur()
		switch m.formFocus {
		case formFieldStart:
			m.formStart.Focus()
		case formFieldEnd:
			m.formEnd.Focus()
		}
		return m, nil

	case "left", "right":
		if m.formFocus == formFieldStatus {
			m.formStatus = m.formStatus.Opposite()
			return m, nil
		}

	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	switch m.formFocus {
	case formFieldStart:
		m.formStart, cmd = m.formStart.Update(msg)
	case formFieldEnd:
		m.formEnd, cmd = m.formEnd.Update(msg)
	}
	return m, cmd
}

// submitForm validates the form and adds the interval.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	start, err := parseFormHour(m.formStart.Value())
	if err != nil {
		m.setStatus(fmt.Sprintf("Invalid start time: %v", err))
		return m, nil
	}
	end, err := parseFormHour(m.formEnd.Value())
	if err != nil {
		m.setStatus(fmt.Sprintf("Invalid end time: %v", err))
		return m, nil
	}

	day, status := m.cursor.Day, m.formStatus
	if err := m.editor.Add(day, status, start, end); err != nil {
		m.setStatus(fmt.Sprintf("Error: %v", err))
		return m, nil
	}
	m.closeForm()
	m.refreshSuggestions()
	m.setStatus(fmt.Sprintf("Added %s %s %s-%s",
		status, day.Name(), schedule.FormatHour(start), schedule.FormatHour(end)))
	return m, nil
}

func (m *Model) closeForm() {
	m.mode = ModeNormal
	m.formStart.Blur()
	m.formEnd.Blur()
	m.formStart.SetValue("")
	m.formEnd.SetValue("")
}

func nextFormField(f formField, back bool) formField {
	if back {
		return (f + 2) % 3
	}
	return (f + 1) % 3
}

// parseFormHour parses "HH:MM" into a grid hour.
func parseFormHour(s string) (schedule.Hour, error) {
	var h, min int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &h, &min); err != nil {
		return 0, fmt.Errorf("%w: expected HH:MM", schedule.ErrValidation)
	}
	if h < 0 || h > 23 || min < 0 || min > 59 {
		return 0, fmt.Errorf("%w: time out of range", schedule.ErrValidation)
	}
	if min%15 != 0 {
		return 0, fmt.Errorf("%w: minutes must be a multiple of 15", schedule.ErrValidation)
	}
	hour := schedule.Hour(h) + schedule.Hour(min)/60.0
	if hour < schedule.DayStart || hour > schedule.DayEnd {
		return 0, fmt.Errorf("%w: outside %s-%s", schedule.ErrValidation,
			schedule.FormatHour(schedule.DayStart), schedule.FormatHour(schedule.DayEnd))
	}
	return hour, nil
}

// toggleMember toggles visibility of the i-th member (0-based).
func (m Model) toggleMember(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(m.members) {
		return m, nil
	}
	owner := m.members[i].ID
	m.visibility = m.visibility.Toggle(owner)
	if m.visibility.Contains(owner) {
		m.setStatus(fmt.Sprintf("Showing %s", m.members[i].DisplayName))
	} else {
		m.setStatus(fmt.Sprintf("Hiding %s", m.members[i].DisplayName))
	}
	return m, nil
}

// handleMouseMsg implements the pointer side of the interaction machine:
// press opens a drag or resize session, motion extends it, release commits.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollOffset = max(0, m.scrollOffset-2)
			m.layout = m.buildLayout()
			return m, nil
		case tea.MouseButtonWheelDown:
			maxOffset := max(0, schedule.SamplesPerDay-m.layout.VisibleRows)
			m.scrollOffset = min(maxOffset, m.scrollOffset+2)
			m.layout = m.buildLayout()
			return m, nil
		case tea.MouseButtonLeft, tea.MouseButtonRight:
			return m.handleMousePress(msg)
		}

	case tea.MouseActionMotion:
		return m.handleMouseMotion(msg)

	case tea.MouseActionRelease:
		return m.handleMouseRelease()
	}
	return m, nil
}

// handleMousePress starts a session at the pressed cell.
func (m Model) handleMousePress(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	day, hour, ok := m.layout.CellAt(msg.X, msg.Y)
	if !ok || m.mode == ModeForm {
		return m, nil
	}
	m.cursor = Position{Day: day, Row: int((hour - schedule.DayStart) / schedule.Step)}

	if !m.canEdit() {
		m.setStatus("Hide other members before editing (press their number)")
		return m, nil
	}

	if msg.Button == tea.MouseButtonRight {
		m.drag = StartDrag(DragRemove, day, m.paintStatus, hour)
		LogModeChange(m.mode, ModeSelect, "mouse_remove_drag")
		m.mode = ModeSelect
		return m, nil
	}

	// A press on an interval edge grabs a resize handle; inside an interval
	// it starts a remove drag, on an empty cell a paint drag.
	if iv := m.editor.IntervalAt(day, hour); iv != nil {
		if edge, ok := edgeAt(*iv, hour); ok {
			if err := m.editor.StartResize(iv.ID, edge); err == nil {
				LogModeChange(m.mode, ModeResize, "mouse_resize")
				m.mode = ModeResize
				return m, nil
			}
		}
		m.drag = StartDrag(DragRemove, day, m.paintStatus, hour)
		LogModeChange(m.mode, ModeSelect, "mouse_remove_drag")
		m.mode = ModeSelect
		return m, nil
	}

	m.drag = StartDrag(DragAdd, day, m.paintStatus, hour)
	LogModeChange(m.mode, ModeSelect, "mouse_add_drag")
	m.mode = ModeSelect
	return m, nil
}

// handleMouseMotion extends the active session.
func (m Model) handleMouseMotion(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	_, hour, ok := m.layout.CellAt(msg.X, msg.Y)
	if !ok {
		return m, nil
	}

	switch m.mode {
	case ModeSelect:
		if m.drag != nil {
			m.drag.Extend(hour)
			m.cursor.Row = int((hour - schedule.DayStart) / schedule.Step)
		}
	case ModeResize:
		target := hour
		if m.editor.ResizeEdge() == EdgeEnd {
			// The end edge is exclusive; dragging onto a cell extends
			// through it.
			target = hour + schedule.Step
		}
		if err := m.editor.ResizeTo(target); err != nil {
			LogError("resize", err)
		}
	}
	return m, nil
}

// handleMouseRelease commits the active session.
func (m Model) handleMouseRelease() (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeSelect:
		if m.drag == nil {
			m.mode = ModeNormal
			return m, nil
		}
		if m.drag.Kind == DragRemove {
			start, end := m.drag.Range()
			day := m.drag.Day
			m.drag = nil
			m.mode = ModeNormal
			if removed := m.editor.RemoveRange(day, start, end); removed > 0 {
				m.setStatus(fmt.Sprintf("Removed %d intervals", removed))
				m.refreshSuggestions()
			}
			return m, nil
		}
		return m.commitDragAdd()

	case ModeResize:
		if err := m.editor.ConfirmResize(); err == nil {
			m.setStatus("Resized")
			m.refreshSuggestions()
		}
		m.mode = ModeNormal
		return m, nil
	}
	return m, nil
}

func filterStatus(mode overlap.FilterMode) string {
	switch mode {
	case overlap.FilterOnlyFreeOverlap:
		return "Filter: shared free time only"
	case overlap.FilterOnlyBusyOverlap:
		return "Filter: shared busy time only"
	default:
		return "Filter cleared"
	}
}
