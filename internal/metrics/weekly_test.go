package metrics

import (
	"testing"
	"time"

	"teampulse/backend"
)

func testWindow() []string {
	return []string{"2024-06-03", "2024-06-10"}
}

func TestLastNWeeks(t *testing.T) {
	now := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC) // a Wednesday

	got := LastNWeeks(now, 3)
	want := []string{"2024-05-27", "2024-06-03", "2024-06-10"}
	if len(got) != len(want) {
		t.Fatalf("LastNWeeks() returned %d weeks, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("week[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if got := LastNWeeks(now, 0); got != nil {
		t.Errorf("LastNWeeks(0) = %v, want nil", got)
	}
}

func TestLastNWeeksStartsOnMonday(t *testing.T) {
	// Regardless of the weekday of now, every anchor must be a Monday.
	for day := 10; day <= 16; day++ {
		now := time.Date(2024, 6, day, 8, 0, 0, 0, time.UTC)
		for _, week := range LastNWeeks(now, 4) {
			parsed, err := time.Parse("2006-01-02", week)
			if err != nil {
				t.Fatalf("unparseable anchor %q: %v", week, err)
			}
			if parsed.Weekday() != time.Monday {
				t.Errorf("now=%s: anchor %s is a %s, want Monday", now.Format("2006-01-02"), week, parsed.Weekday())
			}
		}
	}
}

func TestAggregateCheckins(t *testing.T) {
	snap := &backend.Snapshot{
		Checkins: []backend.Checkin{
			{ID: "c1", Member: "ada", Date: "2024-06-11", Mood: 4},
			{ID: "c2", Member: "ada", Date: "2024-06-12", Mood: 2},
			{ID: "c3", Member: "ada", Date: "2024-06-05", Mood: 5},
			{ID: "c4", Member: "grace", Date: "2024-06-11"},   // no mood score
			{ID: "c5", Member: "ada", Date: ""},               // unrecoverable date
			{ID: "c6", Member: "ada", Date: "2023-01-02"},     // outside window
		},
	}

	report := Aggregate(snap, testWindow())

	mw := report.Cell("2024-06-10", "ada")
	if mw == nil {
		t.Fatal("expected cell for ada in week 2024-06-10")
	}
	if mw.Checkins != 2 {
		t.Errorf("Checkins = %d, want 2", mw.Checkins)
	}
	if avg := mw.AverageMood(); avg != 3.0 {
		t.Errorf("AverageMood() = %v, want 3.0", avg)
	}

	grace := report.Cell("2024-06-10", "grace")
	if grace == nil || grace.Checkins != 1 {
		t.Fatal("expected one checkin for grace in week 2024-06-10")
	}
	if grace.AverageMood() != 0 {
		t.Errorf("AverageMood() with no scores = %v, want 0", grace.AverageMood())
	}

	prior := report.Cell("2024-06-03", "ada")
	if prior == nil || prior.Checkins != 1 {
		t.Fatal("expected one checkin for ada in week 2024-06-03")
	}

	// All six checkins count toward totals, the undated one is flagged.
	if report.Totals.Checkins != 6 {
		t.Errorf("Totals.Checkins = %d, want 6", report.Totals.Checkins)
	}
	if report.Totals.Undated != 1 {
		t.Errorf("Totals.Undated = %d, want 1", report.Totals.Undated)
	}
}

func TestAggregateKudos(t *testing.T) {
	snap := &backend.Snapshot{
		Kudos: []backend.Kudo{
			{ID: "k1", From: "ada", To: "grace", Date: "2024-06-11"},
			{ID: "k2", From: "grace", To: "ada", Date: "2024-06-12"},
			{ID: "k3", From: "ada", To: "grace", Date: "2024-06-04"},
		},
		Replies: []backend.Reply{
			{ID: "r1", KudoID: "k1", Member: "linus", Date: "2024-06-11"},
		},
	}

	report := Aggregate(snap, testWindow())

	ada := report.Cell("2024-06-10", "ada")
	if ada == nil {
		t.Fatal("expected cell for ada")
	}
	if ada.KudosGiven != 1 || ada.KudosReceived != 1 {
		t.Errorf("ada kudos given/received = %d/%d, want 1/1", ada.KudosGiven, ada.KudosReceived)
	}

	grace := report.Cell("2024-06-03", "grace")
	if grace == nil || grace.KudosReceived != 1 {
		t.Error("expected grace to have received a kudo in week 2024-06-03")
	}

	linus := report.Cell("2024-06-10", "linus")
	if linus == nil || linus.Replies != 1 {
		t.Error("expected one reply for linus in week 2024-06-10")
	}
}

func TestAggregateTasksAndGoals(t *testing.T) {
	snap := &backend.Snapshot{
		Tasks: []backend.Task{
			{ID: "t1", Member: "ada", Week: "2024-06-10", PlannedPomodoros: 4, DonePomodoros: 3, Done: true},
			{ID: "t2", Member: "ada", Week: "2024-06-10", PlannedPomodoros: 2, DonePomodoros: 0},
			{ID: "t3", Member: "ada", Week: ""}, // no week anchor
		},
		Goals: []backend.Goal{
			{ID: "g1", Member: "ada", Week: "2024-06-10", Status: backend.GoalDone},
			{ID: "g2", Member: "ada", Week: "2024-06-10", Status: backend.GoalInProgress},
		},
	}

	report := Aggregate(snap, testWindow())

	mw := report.Cell("2024-06-10", "ada")
	if mw == nil {
		t.Fatal("expected cell for ada")
	}
	if mw.TasksPlanned != 2 || mw.TasksDone != 1 {
		t.Errorf("tasks planned/done = %d/%d, want 2/1", mw.TasksPlanned, mw.TasksDone)
	}
	if mw.PlannedPomodoros != 6 || mw.DonePomodoros != 3 {
		t.Errorf("pomodoros planned/done = %d/%d, want 6/3", mw.PlannedPomodoros, mw.DonePomodoros)
	}
	if rate := mw.PomodoroRate(); rate != 0.5 {
		t.Errorf("PomodoroRate() = %v, want 0.5", rate)
	}
	if mw.GoalsTotal != 2 || mw.GoalsDone != 1 {
		t.Errorf("goals total/done = %d/%d, want 2/1", mw.GoalsTotal, mw.GoalsDone)
	}
	if rate := mw.GoalRate(); rate != 0.5 {
		t.Errorf("GoalRate() = %v, want 0.5", rate)
	}

	if report.Totals.Tasks != 3 {
		t.Errorf("Totals.Tasks = %d, want 3", report.Totals.Tasks)
	}
	if report.Totals.Undated != 1 {
		t.Errorf("Totals.Undated = %d, want 1", report.Totals.Undated)
	}
}

func TestPomodoroRateClamped(t *testing.T) {
	mw := &MemberWeek{PlannedPomodoros: 2, DonePomodoros: 5}
	if rate := mw.PomodoroRate(); rate != 1.0 {
		t.Errorf("PomodoroRate() = %v, want clamped 1.0", rate)
	}

	empty := &MemberWeek{}
	if rate := empty.PomodoroRate(); rate != 0 {
		t.Errorf("PomodoroRate() with no plan = %v, want 0", rate)
	}
}

func TestReportMembersAndCells(t *testing.T) {
	snap := &backend.Snapshot{
		Checkins: []backend.Checkin{
			{ID: "c1", Member: "zoe", Date: "2024-06-11"},
			{ID: "c2", Member: "ada", Date: "2024-06-11"},
		},
	}

	report := Aggregate(snap, testWindow())

	if len(report.Members) != 2 || report.Members[0] != "ada" || report.Members[1] != "zoe" {
		t.Errorf("Members = %v, want [ada zoe]", report.Members)
	}

	cells := report.WeekCells("2024-06-10")
	if len(cells) != 2 {
		t.Fatalf("WeekCells() returned %d cells, want 2", len(cells))
	}
	if cells[0].Member != "ada" || cells[1].Member != "zoe" {
		t.Errorf("WeekCells() order = [%s %s], want [ada zoe]", cells[0].Member, cells[1].Member)
	}

	if cells := report.WeekCells("2020-01-06"); cells != nil {
		t.Errorf("WeekCells() for empty week = %v, want nil", cells)
	}
	if cell := report.Cell("2024-06-10", "nobody"); cell != nil {
		t.Errorf("Cell() for unknown member = %v, want nil", cell)
	}
}
