package tui

import (
	"strings"
	"testing"

	"teampulse/backend"
	"teampulse/internal/metrics"

	tea "github.com/charmbracelet/bubbletea"
)

func testReport() *metrics.Report {
	snap := &backend.Snapshot{
		Checkins: []backend.Checkin{
			{ID: "c1", Member: "ada", Date: "2024-06-11", Mood: 4},
			{ID: "c2", Member: "grace", Date: "2024-06-12", Mood: 3},
		},
		Kudos: []backend.Kudo{
			{ID: "k1", From: "ada", To: "grace", Date: "2024-06-11"},
		},
		Tasks: []backend.Task{
			{ID: "t1", Member: "ada", Week: "2024-06-10", PlannedPomodoros: 4, DonePomodoros: 4, Done: true},
		},
		Goals: []backend.Goal{
			{ID: "g1", Member: "grace", Week: "2024-06-10", Status: backend.GoalDone},
		},
	}
	return metrics.Aggregate(snap, []string{"2024-06-03", "2024-06-10"})
}

func TestRenderDashboard(t *testing.T) {
	out := RenderDashboard(testReport())

	for _, want := range []string{"Team Pulse", "Week of 2024-06-10", "Week of 2024-06-03", "ada", "grace", "no activity"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderDashboard() missing %q", want)
		}
	}
	if !strings.Contains(out, "2 checkins, 1 kudos") {
		t.Errorf("RenderDashboard() missing totals line, got:\n%s", out)
	}
}

func TestPad(t *testing.T) {
	if got := pad("abc", 5); got != "abc  " {
		t.Errorf("pad() = %q, want %q", got, "abc  ")
	}
	if got := pad("toolong", 3); got != "toolong" {
		t.Errorf("pad() = %q, want unchanged", got)
	}
}

func TestBarBounds(t *testing.T) {
	tests := []struct {
		fraction float64
		filled   string
	}{
		{0, "░░░░░░░░░░"},
		{1, "██████████"},
		{0.5, "█████░░░░░"},
		{-1, "░░░░░░░░░░"},
		{2, "██████████"},
	}
	for _, tt := range tests {
		got := bar(tt.fraction)
		if !strings.Contains(got, tt.filled) {
			t.Errorf("bar(%v) = %q, want to contain %q", tt.fraction, got, tt.filled)
		}
	}
}

func TestDashboardModelTabNavigation(t *testing.T) {
	m := newDashboardModel(testReport())

	// Initial window size makes the model ready
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(dashboardModel)
	if !m.ready {
		t.Fatal("model should be ready after WindowSizeMsg")
	}
	if m.tab != 0 {
		t.Fatalf("initial tab = %d, want 0", m.tab)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(dashboardModel)
	if m.tab != 1 {
		t.Errorf("tab after right = %d, want 1", m.tab)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(dashboardModel)
	if m.tab != 0 {
		t.Errorf("tab after left = %d, want 0", m.tab)
	}

	// Wraps around backwards
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(dashboardModel)
	if m.tab != len(tabNames)-1 {
		t.Errorf("tab after wrap = %d, want %d", m.tab, len(tabNames)-1)
	}
}

func TestDashboardModelQuit(t *testing.T) {
	m := newDashboardModel(testReport())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(dashboardModel)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(dashboardModel)
	if !m.quitting {
		t.Error("model should be quitting after q")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
	if m.View() != "" {
		t.Error("quitting model should render empty view")
	}
}

func TestDashboardModelTabContent(t *testing.T) {
	m := newDashboardModel(testReport())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(dashboardModel)

	wants := map[string]string{
		"Checkins": "mood",
		"Kudos":    "gave 1, received 0",
		"Tasks":    "4/4 pomodoros",
		"Goals":    "1/1 goals done",
	}
	for i, name := range tabNames {
		m.tab = i
		content := m.tabContent()
		if want, ok := wants[name]; ok && !strings.Contains(content, want) {
			t.Errorf("tab %s content missing %q:\n%s", name, want, content)
		}
	}
}

func TestGetTerminalWidth(t *testing.T) {
	// Falls back to 80 when stdout is not a terminal, otherwise reports
	// the real size; either way the result must be usable.
	if width := GetTerminalWidth(); width <= 0 {
		t.Errorf("GetTerminalWidth() = %d, want > 0", width)
	}
}

func TestNewDashboardModelInitialWidth(t *testing.T) {
	m := newDashboardModel(testReport())
	if m.width != GetTerminalWidth() {
		t.Errorf("initial width = %d, want %d", m.width, GetTerminalWidth())
	}
	if m.height <= 0 {
		t.Errorf("initial height = %d, want > 0", m.height)
	}
}
