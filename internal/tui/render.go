package tui

import (
	"fmt"
	"strings"

	"teampulse/internal/metrics"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1)
)

const barWidth = 10

// bar renders a fixed-width progress bar for a fraction in [0,1].
func bar(fraction float64) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*barWidth + 0.5)
	b := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	if fraction >= 0.7 {
		return goodStyle.Render(b)
	}
	return warnStyle.Render(b)
}

// mood renders an average mood score as a 1-5 dot scale.
func mood(avg float64) string {
	if avg == 0 {
		return dimStyle.Render("-")
	}
	n := int(avg + 0.5)
	if n > 5 {
		n = 5
	}
	return strings.Repeat("●", n) + dimStyle.Render(strings.Repeat("○", 5-n)) + fmt.Sprintf(" %.1f", avg)
}

// RenderDashboard renders a weekly metrics report as plain styled text,
// one section per week, newest last.
func RenderDashboard(report *metrics.Report) string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Team Pulse") + "\n")
	s.WriteString(dimStyle.Render(fmt.Sprintf(
		"%d checkins, %d kudos, %d replies, %d tasks, %d goals",
		report.Totals.Checkins, report.Totals.Kudos, report.Totals.Replies,
		report.Totals.Tasks, report.Totals.Goals)) + "\n")
	if report.Totals.Undated > 0 {
		s.WriteString(dimStyle.Render(fmt.Sprintf("%d records without a recoverable date", report.Totals.Undated)) + "\n")
	}
	s.WriteString("\n")

	for _, week := range report.Weeks {
		s.WriteString(renderWeek(report, week))
		s.WriteString("\n")
	}

	return s.String()
}

// pad right-pads a possibly styled cell to a display width. ANSI escape
// sequences would throw off fmt's %-Ns padding, lipgloss.Width does not
// count them.
func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func renderWeek(report *metrics.Report, week string) string {
	cells := report.WeekCells(week)

	header := headerStyle.Render("Week of " + week)
	if len(cells) == 0 {
		return header + "\n" + dimStyle.Render("  no activity") + "\n"
	}

	widths := []int{12, 9, 12, 7, 17}

	var body strings.Builder
	for i, col := range []string{"member", "checkins", "mood", "kudos", "pomodoros"} {
		body.WriteString(pad(col, widths[i]) + " ")
	}
	body.WriteString("goals\n")

	for _, mw := range cells {
		kudos := fmt.Sprintf("+%d/-%d", mw.KudosGiven, mw.KudosReceived)
		poms := fmt.Sprintf("%d/%d %s", mw.DonePomodoros, mw.PlannedPomodoros, bar(mw.PomodoroRate()))
		goals := dimStyle.Render("-")
		if mw.GoalsTotal > 0 {
			goals = fmt.Sprintf("%d/%d %s", mw.GoalsDone, mw.GoalsTotal, bar(mw.GoalRate()))
		}
		row := []string{mw.Member, fmt.Sprintf("%d", mw.Checkins), mood(mw.AverageMood()), kudos, poms}
		for i, col := range row {
			body.WriteString(pad(col, widths[i]) + " ")
		}
		body.WriteString(goals + "\n")
	}

	return header + "\n" + borderStyle.Render(strings.TrimRight(body.String(), "\n")) + "\n"
}
