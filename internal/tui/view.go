package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmerino/whenworks/internal/overlap"
	"github.com/dmerino/whenworks/internal/schedule"
)

// View renders the whole TUI.
func (m Model) View() string {
	if m.loading {
		return m.styles.HelpStyle.Render("Loading group...")
	}
	if m.mode == ModeForm {
		return m.viewForm()
	}

	var b strings.Builder
	b.WriteString(m.viewTitle())
	b.WriteByte('\n')
	b.WriteString(m.viewDayHeader())
	b.WriteByte('\n')

	grid := m.viewGrid()
	if m.showPanel && len(m.suggestions) > 0 {
		grid = lipgloss.JoinHorizontal(lipgloss.Top, grid, " ", m.viewSuggestions())
	}
	b.WriteString(grid)
	b.WriteByte('\n')

	b.WriteString(m.viewMembers())
	b.WriteByte('\n')
	b.WriteString(m.viewStatus())
	b.WriteByte('\n')
	b.WriteString(m.viewHelp())
	return b.String()
}

// viewTitle renders the title line with the group and the dirty marker.
func (m Model) viewTitle() string {
	title := fmt.Sprintf("whenworks — %s [%s]", m.group.Name, m.group.InviteCode)
	out := m.styles.TitleStyle.Render(title)
	if m.editor.HasChanges() {
		out += " " + m.styles.WarningStyle.Render("● unsaved")
	}
	return out
}

// viewDayHeader renders the day-of-week header row.
func (m Model) viewDayHeader() string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", timeGutterWidth))
	for day := schedule.Weekday(0); day <= 6; day++ {
		name := day.Name()
		style := m.styles.DayHeaderStyle.Width(m.layout.ColWidth)
		if day == m.cursor.Day {
			style = style.Foreground(m.styles.palette.Accent)
		}
		b.WriteString(style.Render(name))
	}
	return b.String()
}

// viewGrid renders the visible quarter-hour rows.
func (m Model) viewGrid() string {
	visible := m.visibleIntervals()

	var b strings.Builder
	for line := 0; line < m.layout.VisibleRows; line++ {
		row := m.scrollOffset + line
		if row >= schedule.SamplesPerDay {
			break
		}
		hour := schedule.SampleHour(row)

		// Time labels only on full hours.
		label := ""
		if row%4 == 0 {
			label = schedule.FormatHour(hour)
		}
		b.WriteString(m.styles.TimeColumnStyle.Render(label))
		b.WriteByte(' ')

		for day := schedule.Weekday(0); day <= 6; day++ {
			b.WriteString(m.renderCell(day, hour, visible))
		}
		if line < m.layout.VisibleRows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// renderCell picks the style and content for one grid cell.
func (m Model) renderCell(day schedule.Weekday, hour schedule.Hour, visible []schedule.Interval) string {
	width := m.layout.ColWidth
	content := strings.Repeat(" ", width)
	style := m.styles.EmptyCellStyle

	freeCount := overlap.Count(day, hour, schedule.StatusAvailable, visible)

	switch {
	case m.drag != nil && m.drag.CoversCell(day, hour):
		style = m.styles.DragPreviewStyle
		if m.drag.Kind == DragRemove {
			style = m.styles.ResizeStyle
		}

	case m.editor.IsResizing() && m.coversResizing(day, hour):
		style = m.styles.ResizeStyle

	case !overlap.PassesFilter(day, hour, m.filter, visible):
		style = m.styles.FilteredCellStyle

	case freeCount >= 2:
		style = m.styles.OverlapStyle(freeCount)
		content = centerText(fmt.Sprintf("%d", freeCount), width)

	default:
		if iv := m.intervalAtVisible(day, hour, visible); iv != nil {
			if iv.Owner == m.localOwner() {
				if iv.Status == schedule.StatusAvailable {
					style = m.styles.AvailableStyle
				} else {
					style = m.styles.BusyStyle
				}
			} else {
				if iv.Status == schedule.StatusAvailable {
					style = m.styles.OtherAvailStyle
				} else {
					style = m.styles.OtherBusyStyle
				}
			}
		}
	}

	if day == m.cursor.Day && m.cursor.Hour() == hour && m.mode != ModeResize {
		style = m.styles.CursorStyle
	}

	return style.Render(content)
}

// coversResizing reports whether the interval under resize covers the cell.
func (m Model) coversResizing(day schedule.Weekday, hour schedule.Hour) bool {
	iv := m.editor.FindByID(m.editor.ResizingID())
	return iv != nil && iv.Covers(day, hour)
}

// intervalAtVisible returns the first visible interval covering a cell,
// preferring the local owner's.
func (m Model) intervalAtVisible(day schedule.Weekday, hour schedule.Hour, visible []schedule.Interval) *schedule.Interval {
	var found *schedule.Interval
	for i := range visible {
		if !visible[i].Covers(day, hour) {
			continue
		}
		if visible[i].Owner == m.localOwner() {
			iv := visible[i]
			return &iv
		}
		if found == nil {
			iv := visible[i]
			found = &iv
		}
	}
	return found
}

// viewSuggestions renders the ranked suggestions panel.
func (m Model) viewSuggestions() string {
	var b strings.Builder
	b.WriteString(m.styles.PanelTitleStyle.Render("Best times"))
	for i, s := range m.suggestions {
		b.WriteByte('\n')
		line := fmt.Sprintf("%d. %s %s-%s ", i+1,
			s.Day.Name(), schedule.FormatHour(s.Start), schedule.FormatHour(s.End))
		b.WriteString(m.styles.SuggestionStyle.Render(line))
		b.WriteString(m.styles.AttendanceStyle.Render(fmt.Sprintf("%d free", s.Attendance)))
	}
	return m.styles.PanelStyle.Render(b.String())
}

// viewMembers renders the member toggle line.
func (m Model) viewMembers() string {
	if len(m.members) == 0 {
		return m.styles.HelpStyle.Render("No members yet — share the invite code")
	}
	parts := make([]string, 0, len(m.members))
	for i, p := range m.members {
		label := fmt.Sprintf("%d %s", i+1, p.DisplayName)
		if p.ID == m.localOwner() {
			label += " (you)"
		}
		if m.visibility.Contains(p.ID) {
			parts = append(parts, m.styles.MemberVisibleStyle.Render(label))
		} else {
			parts = append(parts, m.styles.MemberHiddenStyle.Render(label))
		}
	}
	return strings.Join(parts, m.styles.HelpStyle.Render("  "))
}

// viewStatus renders the transient status line.
func (m Model) viewStatus() string {
	if m.statusMsg == "" {
		return ""
	}
	return m.styles.StatusStyle.Render(m.statusMsg)
}

// viewHelp renders the mode-dependent key hints.
func (m Model) viewHelp() string {
	var help string
	switch m.mode {
	case ModeSelect:
		help = "j/k extend • enter add • x remove • esc cancel"
	case ModeResize:
		help = "j/k move edge • enter confirm • esc cancel"
	default:
		help = "hjkl move • v select • enter exact time • x delete • r resize • t paint status • u undo • w save • 1-9 members • f/F filter • y copy • q quit"
	}
	return m.styles.HelpStyle.Render(help)
}

// viewForm renders the exact-time entry modal.
func (m Model) viewForm() string {
	var b strings.Builder
	b.WriteString(m.styles.FormTitleStyle.Render(
		fmt.Sprintf("New interval on %s", m.cursor.Day.Name())))
	b.WriteString("\n\n")

	b.WriteString(m.formLabel("Start", formFieldStart))
	b.WriteString(m.formStart.View())
	b.WriteByte('\n')
	b.WriteString(m.formLabel("End  ", formFieldEnd))
	b.WriteString(m.formEnd.View())
	b.WriteByte('\n')

	b.WriteString(m.formLabel("Kind ", formFieldStatus))
	for _, st := range []schedule.Status{schedule.StatusAvailable, schedule.StatusBusy} {
		style := m.styles.FormInactiveStyle
		if st == m.formStatus {
			style = m.styles.FormActiveStyle
		}
		b.WriteString(style.Render(fmt.Sprintf(" %s ", st)))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.FormLabelStyle.Render("tab next • ←/→ kind • enter add • esc cancel"))

	form := m.styles.FormStyle.Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
	}
	return form
}

// formLabel renders a field label, highlighted when focused.
func (m Model) formLabel(text string, field formField) string {
	style := m.styles.FormLabelStyle
	if m.formFocus == field {
		style = m.styles.FormActiveStyle
	}
	return style.Render(text+" ")
}

// centerText centers a short string in a fixed width.
func centerText(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-left-len(s))
}
