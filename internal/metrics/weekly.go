package metrics

import (
	"sort"
	"time"

	"teampulse/backend"
	"teampulse/internal/dates"
)

// MemberWeek aggregates one member's activity inside one week.
type MemberWeek struct {
	Member string
	Week   string // Monday anchor

	Checkins      int
	MoodSum       int
	MoodCount     int // checkins that carried a mood score
	KudosGiven    int
	KudosReceived int
	Replies       int

	PlannedPomodoros int
	DonePomodoros    int
	TasksPlanned     int
	TasksDone        int

	GoalsTotal int
	GoalsDone  int
}

// AverageMood returns the mean mood for the week, or 0 when no checkin
// carried a score.
func (mw *MemberWeek) AverageMood() float64 {
	if mw.MoodCount == 0 {
		return 0
	}
	return float64(mw.MoodSum) / float64(mw.MoodCount)
}

// PomodoroRate returns done/planned pomodoros as a fraction in [0,1].
func (mw *MemberWeek) PomodoroRate() float64 {
	if mw.PlannedPomodoros == 0 {
		return 0
	}
	r := float64(mw.DonePomodoros) / float64(mw.PlannedPomodoros)
	if r > 1 {
		return 1
	}
	return r
}

// GoalRate returns the fraction of the week's goals that are done.
func (mw *MemberWeek) GoalRate() float64 {
	if mw.GoalsTotal == 0 {
		return 0
	}
	return float64(mw.GoalsDone) / float64(mw.GoalsTotal)
}

// Totals holds snapshot-wide counts, including records whose dates could
// not be recovered and therefore appear in no weekly cohort.
type Totals struct {
	Checkins int
	Kudos    int
	Replies  int
	Tasks    int
	Goals    int

	// Undated counts records with an empty date or week field.
	Undated int
}

// Report is the aggregated view of one snapshot over a window of weeks.
type Report struct {
	// Weeks is the window's Monday anchors in ascending order.
	Weeks []string

	// Members is every member seen in the window, sorted.
	Members []string

	Totals Totals

	cells map[string]map[string]*MemberWeek // week -> member -> cell
}

// Cell returns the aggregation for a member in a week, or nil when the
// member has no activity that week.
func (r *Report) Cell(week, member string) *MemberWeek {
	byMember, ok := r.cells[week]
	if !ok {
		return nil
	}
	return byMember[member]
}

// WeekCells returns every member cell for a week, sorted by member name.
func (r *Report) WeekCells(week string) []*MemberWeek {
	byMember, ok := r.cells[week]
	if !ok {
		return nil
	}
	out := make([]*MemberWeek, 0, len(byMember))
	for _, cell := range byMember {
		out = append(out, cell)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Member < out[j].Member })
	return out
}

// LastNWeeks returns the Monday anchors of the n weeks ending at the week
// containing now, ascending.
func LastNWeeks(now time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	current := dates.SnapToMonday(now.UTC().Format(dates.CanonicalLayout))
	anchor, err := time.Parse(dates.CanonicalLayout, current)
	if err != nil {
		return nil
	}

	weeks := make([]string, n)
	for i := n - 1; i >= 0; i-- {
		weeks[i] = anchor.Format(dates.CanonicalLayout)
		anchor = anchor.AddDate(0, 0, -7)
	}
	return weeks
}

// Aggregate builds a weekly report from a snapshot, restricted to the
// given window of Monday anchors. Checkins, kudos and replies are keyed
// by the Monday of their date; tasks and goals use their week anchor
// directly. Records outside the window are ignored; records with no
// recoverable date only increment the totals.
func Aggregate(snap *backend.Snapshot, weeks []string) *Report {
	report := &Report{
		Weeks: weeks,
		cells: make(map[string]map[string]*MemberWeek),
	}
	inWindow := make(map[string]bool, len(weeks))
	for _, w := range weeks {
		inWindow[w] = true
	}

	cell := func(week, member string) *MemberWeek {
		byMember, ok := report.cells[week]
		if !ok {
			byMember = make(map[string]*MemberWeek)
			report.cells[week] = byMember
		}
		mw, ok := byMember[member]
		if !ok {
			mw = &MemberWeek{Member: member, Week: week}
			byMember[member] = mw
		}
		return mw
	}

	// weekOf buckets a record date, returning "" when the date is empty
	// or the bucket falls outside the window.
	weekOf := func(date string) string {
		if date == "" {
			report.Totals.Undated++
			return ""
		}
		week := dates.SnapToMonday(date)
		if !inWindow[week] {
			return ""
		}
		return week
	}

	for _, c := range snap.Checkins {
		report.Totals.Checkins++
		week := weekOf(c.Date)
		if week == "" || c.Member == "" {
			continue
		}
		mw := cell(week, c.Member)
		mw.Checkins++
		if c.Mood > 0 {
			mw.MoodSum += c.Mood
			mw.MoodCount++
		}
	}

	for _, k := range snap.Kudos {
		report.Totals.Kudos++
		week := weekOf(k.Date)
		if week == "" {
			continue
		}
		if k.From != "" {
			cell(week, k.From).KudosGiven++
		}
		if k.To != "" {
			cell(week, k.To).KudosReceived++
		}
	}

	for _, r := range snap.Replies {
		report.Totals.Replies++
		week := weekOf(r.Date)
		if week == "" || r.Member == "" {
			continue
		}
		cell(week, r.Member).Replies++
	}

	for _, t := range snap.Tasks {
		report.Totals.Tasks++
		if t.Week == "" {
			report.Totals.Undated++
			continue
		}
		if !inWindow[t.Week] || t.Member == "" {
			continue
		}
		mw := cell(t.Week, t.Member)
		mw.TasksPlanned++
		mw.PlannedPomodoros += t.PlannedPomodoros
		mw.DonePomodoros += t.DonePomodoros
		if t.Done {
			mw.TasksDone++
		}
	}

	for _, g := range snap.Goals {
		report.Totals.Goals++
		if g.Week == "" {
			report.Totals.Undated++
			continue
		}
		if !inWindow[g.Week] || g.Member == "" {
			continue
		}
		mw := cell(g.Week, g.Member)
		mw.GoalsTotal++
		if g.Status == backend.GoalDone {
			mw.GoalsDone++
		}
	}

	report.Members = collectMembers(report.cells)
	return report
}

func collectMembers(cells map[string]map[string]*MemberWeek) []string {
	seen := make(map[string]bool)
	for _, byMember := range cells {
		for member := range byMember {
			seen[member] = true
		}
	}
	members := make([]string, 0, len(seen))
	for member := range seen {
		members = append(members, member)
	}
	sort.Strings(members)
	return members
}
