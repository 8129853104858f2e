package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dmerino/whenworks/internal/tui/theme"
)

// Grid geometry. Columns are recalculated dynamically from the terminal
// width; these are the fixed parts.
const (
	defaultColWidth = 12
	minColWidth     = 6
	timeGutterWidth = 6
	headerLines     = 2 // title + day header
	footerLines     = 3 // member line + status + help
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Title and headers
	TitleStyle      lipgloss.Style
	DayHeaderStyle  lipgloss.Style
	TimeColumnStyle lipgloss.Style

	// Cell styles
	EmptyCellStyle    lipgloss.Style
	CursorStyle       lipgloss.Style
	AvailableStyle    lipgloss.Style
	BusyStyle         lipgloss.Style
	OtherAvailStyle   lipgloss.Style // another member's free time, shown muted
	OtherBusyStyle    lipgloss.Style
	DragPreviewStyle  lipgloss.Style
	ResizeStyle       lipgloss.Style
	FilteredCellStyle lipgloss.Style // cells suppressed by the active filter

	// Member list
	MemberVisibleStyle lipgloss.Style
	MemberHiddenStyle  lipgloss.Style

	// Suggestions panel
	PanelStyle      lipgloss.Style
	PanelTitleStyle lipgloss.Style
	SuggestionStyle lipgloss.Style
	AttendanceStyle lipgloss.Style

	// Status bar and help
	StatusStyle  lipgloss.Style
	WarningStyle lipgloss.Style
	HelpStyle    lipgloss.Style

	// Exact-time form
	FormStyle            lipgloss.Style
	FormTitleStyle       lipgloss.Style
	FormLabelStyle       lipgloss.Style
	FormInputTextStyle   lipgloss.Style
	FormPlaceholderStyle lipgloss.Style
	FormActiveStyle      lipgloss.Style
	FormInactiveStyle    lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{palette: p}

	s.TitleStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Bold(true).
		Align(lipgloss.Center)

	s.TimeColumnStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Width(timeGutterWidth - 1).
		Align(lipgloss.Right)

	s.EmptyCellStyle = lipgloss.NewStyle().
		Background(p.Bg)

	s.CursorStyle = lipgloss.NewStyle().
		Background(p.BgSelection).
		Foreground(p.Fg)

	s.AvailableStyle = lipgloss.NewStyle().
		Background(p.AvailableBg).
		Foreground(p.TextOnAvailable)

	s.BusyStyle = lipgloss.NewStyle().
		Background(p.BusyBg).
		Foreground(p.TextOnBusy)

	s.OtherAvailStyle = lipgloss.NewStyle().
		Background(p.AvailableMutedBg).
		Foreground(p.FgMuted)

	s.OtherBusyStyle = lipgloss.NewStyle().
		Background(p.BusyMutedBg).
		Foreground(p.FgMuted)

	s.DragPreviewStyle = lipgloss.NewStyle().
		Background(p.Accent).
		Foreground(p.TextOnAccent)

	s.ResizeStyle = lipgloss.NewStyle().
		Background(p.Warning).
		Foreground(p.TextOnWarning)

	s.FilteredCellStyle = lipgloss.NewStyle().
		Background(p.Bg).
		Foreground(p.FgMuted)

	s.MemberVisibleStyle = lipgloss.NewStyle().
		Foreground(p.Fg)

	s.MemberHiddenStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Strikethrough(true)

	s.PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(0, 1)

	s.PanelTitleStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	s.SuggestionStyle = lipgloss.NewStyle().
		Foreground(p.Fg)

	s.AttendanceStyle = lipgloss.NewStyle().
		Foreground(p.Overlap).
		Bold(true)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(p.Fg)

	s.WarningStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)

	s.FormStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Modal.Border).
		Background(p.Modal.Bg).
		Padding(1, 2)

	s.FormTitleStyle = lipgloss.NewStyle().
		Foreground(p.Modal.Text).
		Bold(true)

	s.FormLabelStyle = lipgloss.NewStyle().
		Foreground(p.Modal.Muted)

	s.FormInputTextStyle = lipgloss.NewStyle().
		Foreground(p.Modal.Text)

	s.FormPlaceholderStyle = lipgloss.NewStyle().
		Foreground(p.Modal.Muted)

	s.FormActiveStyle = lipgloss.NewStyle().
		Foreground(p.Modal.Highlight).
		Bold(true)

	s.FormInactiveStyle = lipgloss.NewStyle().
		Foreground(p.Modal.Muted)

	return s
}

// OverlapStyle returns the cell style for a given free-member count.
func (s *Styles) OverlapStyle(count int) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(s.palette.OverlapShade(count)).
		Foreground(s.palette.TextOnOverlap)
}
