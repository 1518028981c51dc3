package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nihcosnosaj/redwood-tui/internal/state"
	"github.com/nihcosnosaj/redwood-tui/pkg/geo"
	"github.com/nihcosnosaj/redwood-tui/pkg/ranking"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	staleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Width(12)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
)

func (m Model) View() string {
	var s strings.Builder

	title := "REDWOOD · NEAREST AIRCRAFT"
	if m.view == ViewSpotter {
		title = "REDWOOD · SPOTTER"
	}
	s.WriteString(titleStyle.Render(title))
	s.WriteString("\n\n")

	if m.showHelp {
		s.WriteString(m.renderHelp())
		return s.String()
	}

	if m.snap.Outcome == state.OutcomePending {
		s.WriteString(m.spin.View())
		s.WriteString(" acquiring aircraft…")
		s.WriteString("\n\n")
		s.WriteString(m.renderStatusBar())
		return s.String()
	}

	if m.snap.Outcome == state.OutcomeFailed {
		s.WriteString(staleStyle.Render(fmt.Sprintf("stale data, last error: %s", m.snap.Err)))
		s.WriteString("\n\n")
	}

	switch m.view {
	case ViewSpotter:
		s.WriteString(m.renderSpotter())
	default:
		s.WriteString(m.renderDashboard())
	}

	s.WriteString("\n")
	s.WriteString(m.renderStatusBar())
	s.WriteString("\n")
	s.WriteString(m.help.View(m.keys))

	return s.String()
}

// renderDashboard draws the nearest-first aircraft table.
func (m Model) renderDashboard() string {
	var s strings.Builder

	if len(m.snap.Aircraft) == 0 {
		s.WriteString(dimStyle.Render(fmt.Sprintf("no aircraft within %.0f km", m.radiusKM)))
		s.WriteString("\n")
		return s.String()
	}

	s.WriteString(headerStyle.Render(fmt.Sprintf("%-10s %-8s %9s %9s %10s %10s  %s",
		"CALLSIGN", "ICAO24", "DIST", "BRG", "ALT", "SPD", "COUNTRY")))
	s.WriteString("\n")

	for i, ac := range m.snap.Aircraft {
		row := fmt.Sprintf("%-10s %-8s %9s %9s %10s %10s  %s",
			orDash(ac.Callsign),
			ac.ICAO24,
			fmt.Sprintf("%.1f km", ac.DistanceKM),
			fmt.Sprintf("%3.0f° %-3s", ac.BearingDeg, geo.Cardinal(ac.BearingDeg)),
			fmtMeters(ac.AltitudeM),
			fmtSpeed(ac.VelocityMS),
			ac.OriginCountry,
		)
		if i == m.selected {
			s.WriteString(selectedStyle.Render(row))
		} else {
			s.WriteString(row)
		}
		s.WriteString("\n")
	}

	return s.String()
}

// renderSpotter draws a detail card for the selected aircraft.
func (m Model) renderSpotter() string {
	if len(m.snap.Aircraft) == 0 {
		return dimStyle.Render(fmt.Sprintf("no aircraft within %.0f km", m.radiusKM)) + "\n"
	}

	ac := m.snap.Aircraft[m.selected]

	var c strings.Builder
	c.WriteString(headerStyle.Render(spotterTitle(ac)))
	c.WriteString("\n\n")
	c.WriteString(labelStyle.Render("ICAO24") + ac.ICAO24 + "\n")
	c.WriteString(labelStyle.Render("Country") + orDash(ac.OriginCountry) + "\n")
	c.WriteString(labelStyle.Render("Distance") + fmt.Sprintf("%.1f km", ac.DistanceKM) + "\n")
	c.WriteString(labelStyle.Render("Bearing") + fmt.Sprintf("%.0f° (%s)", ac.BearingDeg, geo.Cardinal(ac.BearingDeg)) + "\n")
	c.WriteString(labelStyle.Render("Altitude") + fmtMeters(ac.AltitudeM) + "\n")
	c.WriteString(labelStyle.Render("Speed") + fmtSpeed(ac.VelocityMS) + "\n")
	c.WriteString(labelStyle.Render("Track") + fmtTrack(ac.TrackDeg) + "\n")
	c.WriteString(labelStyle.Render("Climb") + fmtClimb(ac.VerticalRateMS))

	footer := dimStyle.Render(fmt.Sprintf("aircraft %d of %d", m.selected+1, len(m.snap.Aircraft)))

	return cardStyle.Render(c.String()) + "\n" + footer + "\n"
}

func (m Model) renderHelp() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("KEYS"))
	s.WriteString("\n\n")
	s.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	s.WriteString("\n\n")
	s.WriteString(dimStyle.Render("press ? to close"))
	return s.String()
}

// renderStatusBar summarizes the acquisition state: reference point, radius,
// aircraft count, and the age of the last successful update.
func (m Model) renderStatusBar() string {
	age := "never updated"
	if !m.snap.LastSuccess.IsZero() {
		age = "updated " + humanize.RelTime(m.snap.LastSuccess, m.now, "ago", "from now")
	}

	return dimStyle.Render(fmt.Sprintf("ref %.4f, %.4f · radius %.0f km · %d aircraft · %s",
		m.ref.Latitude, m.ref.Longitude, m.radiusKM, len(m.snap.Aircraft), age))
}

func spotterTitle(ac ranking.Aircraft) string {
	if ac.Callsign != "" {
		return ac.Callsign
	}
	return strings.ToUpper(ac.ICAO24)
}

// orDash substitutes a dash for empty strings so missing data reads as
// missing, not blank.
func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func fmtMeters(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%s m", humanize.Comma(int64(*v)))
}

func fmtSpeed(v *float64) string {
	if v == nil {
		return "—"
	}
	// Provider reports meters per second.
	return fmt.Sprintf("%.0f km/h", *v*3.6)
}

func fmtTrack(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.0f° (%s)", *v, geo.Cardinal(*v))
}

func fmtClimb(v *float64) string {
	if v == nil {
		return "—"
	}
	switch {
	case *v > 0.5:
		return fmt.Sprintf("▲ %.1f m/s", *v)
	case *v < -0.5:
		return fmt.Sprintf("▼ %.1f m/s", -*v)
	default:
		return "level"
	}
}
