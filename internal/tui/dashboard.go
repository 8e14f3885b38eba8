package tui

import (
	"fmt"
	"strings"

	"teampulse/internal/metrics"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("241"))
	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Underline(true)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var tabNames = []string{"Overview", "Checkins", "Kudos", "Tasks", "Goals"}

// dashboardModel is the bubbletea model for the interactive dashboard
type dashboardModel struct {
	report   *metrics.Report
	viewport viewport.Model
	tab      int
	width    int
	height   int
	ready    bool
	quitting bool
}

// newDashboardModel creates a new bubbletea dashboardModel. The real size
// arrives with the first WindowSizeMsg; the probed width only covers the
// frames before that.
func newDashboardModel(report *metrics.Report) dashboardModel {
	return dashboardModel{
		report: report,
		width:  GetTerminalWidth(),
		height: 24,
	}
}

// Init initializes the dashboardModel
func (m dashboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates dashboardModel state
func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentHeight := m.height - 4 // tab bar, spacing, help line
		if contentHeight < 1 {
			contentHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, contentHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = contentHeight
		}
		m.viewport.SetContent(m.tabContent())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit

		case "right", "l", "tab":
			m.tab = (m.tab + 1) % len(tabNames)
			m.viewport.SetContent(m.tabContent())
			m.viewport.GotoTop()
			return m, nil

		case "left", "h", "shift+tab":
			m.tab = (m.tab + len(tabNames) - 1) % len(tabNames)
			m.viewport.SetContent(m.tabContent())
			m.viewport.GotoTop()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the UI
func (m dashboardModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	var tabs []string
	for i, name := range tabNames {
		if i == m.tab {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n" +
		m.viewport.View() + "\n" +
		helpStyle.Render("←/→ switch tab • ↑/↓ scroll • q quit")
}

func (m dashboardModel) tabContent() string {
	switch tabNames[m.tab] {
	case "Checkins":
		return m.renderCheckins()
	case "Kudos":
		return m.renderKudos()
	case "Tasks":
		return m.renderTasks()
	case "Goals":
		return m.renderGoals()
	default:
		return RenderDashboard(m.report)
	}
}

func (m dashboardModel) renderCheckins() string {
	return m.renderPerWeek(func(mw *metrics.MemberWeek) string {
		return fmt.Sprintf("%s %d checkins, mood %s", pad(mw.Member, 12), mw.Checkins, mood(mw.AverageMood()))
	})
}

func (m dashboardModel) renderKudos() string {
	return m.renderPerWeek(func(mw *metrics.MemberWeek) string {
		return fmt.Sprintf("%s gave %d, received %d, %d replies",
			pad(mw.Member, 12), mw.KudosGiven, mw.KudosReceived, mw.Replies)
	})
}

func (m dashboardModel) renderTasks() string {
	return m.renderPerWeek(func(mw *metrics.MemberWeek) string {
		return fmt.Sprintf("%s %d/%d tasks done, %d/%d pomodoros %s",
			pad(mw.Member, 12), mw.TasksDone, mw.TasksPlanned,
			mw.DonePomodoros, mw.PlannedPomodoros, bar(mw.PomodoroRate()))
	})
}

func (m dashboardModel) renderGoals() string {
	return m.renderPerWeek(func(mw *metrics.MemberWeek) string {
		if mw.GoalsTotal == 0 {
			return fmt.Sprintf("%s no goals", pad(mw.Member, 12))
		}
		return fmt.Sprintf("%s %d/%d goals done %s",
			pad(mw.Member, 12), mw.GoalsDone, mw.GoalsTotal, bar(mw.GoalRate()))
	})
}

func (m dashboardModel) renderPerWeek(line func(*metrics.MemberWeek) string) string {
	var s strings.Builder
	for _, week := range m.report.Weeks {
		s.WriteString(headerStyle.Render("Week of "+week) + "\n")
		cells := m.report.WeekCells(week)
		if len(cells) == 0 {
			s.WriteString(dimStyle.Render("  no activity") + "\n\n")
			continue
		}
		for _, mw := range cells {
			s.WriteString("  " + line(mw) + "\n")
		}
		s.WriteString("\n")
	}
	return s.String()
}

// RunDashboard starts the interactive dashboard and blocks until the
// user quits.
func RunDashboard(report *metrics.Report) error {
	p := tea.NewProgram(newDashboardModel(report), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
