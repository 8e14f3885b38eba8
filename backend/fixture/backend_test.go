package fixture

import (
	"testing"

	"teampulse/backend"
	"teampulse/internal/dates"
)

func TestFixtureNormalizesEmbeddedRows(t *testing.T) {
	store, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	checkins, err := store.FetchCheckins()
	if err != nil {
		t.Fatalf("FetchCheckins failed: %v", err)
	}

	// Five raw rows, one stale duplicate of c-002.
	if len(checkins) != 4 {
		t.Fatalf("got %d checkins, want 4", len(checkins))
	}

	for _, c := range checkins {
		if c.ID == "" {
			t.Errorf("checkin for %s has no ID", c.Member)
		}
		if c.Date != "" && !dates.IsCanonical(c.Date) {
			t.Errorf("checkin %s has non-canonical date %q", c.ID, c.Date)
		}
	}

	byMember := map[string]backend.Checkin{}
	for _, c := range checkins {
		byMember[c.Member] = c
	}

	// 22:15 UTC rolls to the 11th under the pivot.
	if got := byMember["grace"].Date; got != "2024-06-11" {
		t.Errorf("grace date = %q, want 2024-06-11", got)
	}
	// D/M/Y with unambiguous month stays the 11th.
	if got := byMember["linus"].Date; got != "2024-06-11" {
		t.Errorf("linus date = %q, want 2024-06-11", got)
	}
	// Month abbreviation form.
	if got := byMember["barbara"].Date; got != "2024-06-12" {
		t.Errorf("barbara date = %q, want 2024-06-12", got)
	}
	if got := byMember["grace"].Today; got != "compiler pass rewrite, benchmarks" {
		t.Errorf("stale duplicate survived dedup: %q", got)
	}
}

func TestFixtureWeekAnchorsAreMondays(t *testing.T) {
	store, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tasks, err := store.FetchTasks()
	if err != nil {
		t.Fatalf("FetchTasks failed: %v", err)
	}
	goals, err := store.FetchGoals()
	if err != nil {
		t.Fatalf("FetchGoals failed: %v", err)
	}

	for _, task := range tasks {
		if task.Week == "" {
			t.Errorf("task %s has no week anchor", task.ID)
			continue
		}
		if got := dates.SnapToMonday(task.Week); got != task.Week {
			t.Errorf("task %s week %q is not a Monday", task.ID, task.Week)
		}
	}
	for _, goal := range goals {
		if got := dates.SnapToMonday(goal.Week); got != goal.Week {
			t.Errorf("goal %s week %q is not a Monday", goal.ID, goal.Week)
		}
	}
}

func TestFixtureEpochMarkerKudo(t *testing.T) {
	store, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	kudos, err := store.FetchKudos()
	if err != nil {
		t.Fatalf("FetchKudos failed: %v", err)
	}

	for _, k := range kudos {
		if k.ID == "k-002" {
			// Date(1718124300000) is 2024-06-11T16:45:00Z.
			if k.Date != "2024-06-12" {
				t.Errorf("epoch marker date = %q, want 2024-06-12", k.Date)
			}
			return
		}
	}
	t.Fatal("kudo k-002 missing from fixture")
}

func TestFixtureAppendIsVisible(t *testing.T) {
	store, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	err = store.AppendGoal(backend.Goal{
		ID:     "g-100",
		Member: "ada",
		Title:  "new goal",
		Week:   "2024-06-17",
		Status: backend.GoalPlanned,
	})
	if err != nil {
		t.Fatalf("AppendGoal failed: %v", err)
	}

	goals, err := store.FetchGoals()
	if err != nil {
		t.Fatalf("FetchGoals failed: %v", err)
	}

	for _, g := range goals {
		if g.ID == "g-100" {
			if g.Week != "2024-06-17" {
				t.Errorf("appended goal week = %q, want 2024-06-17", g.Week)
			}
			return
		}
	}
	t.Fatal("appended goal not visible in fetch")
}
