package ingest

import (
	"github.com/google/uuid"

	"teampulse/backend"
)

// Alias lists per logical field. Order matters: the camelCase spelling the
// current writer uses comes first, the PascalCase spelling older exports
// used comes second, then known legacy names.
var (
	idAliases     = []string{"id", "ID", "Id"}
	memberAliases = []string{"member", "Member", "name", "Name"}
	dateAliases   = []string{"date", "Date"}
	weekAliases   = []string{"week", "Week", "weekStart", "WeekStart"}
)

// Checkins maps raw rows to normalized check-in records, deduplicated by
// ID with last-write-wins.
func Checkins(rows []Row) []backend.Checkin {
	out := make([]backend.Checkin, 0, len(rows))
	for _, row := range rows {
		out = append(out, backend.Checkin{
			ID:        EnsureID(StringField(row, idAliases...)),
			Member:    StringField(row, memberAliases...),
			Date:      DateField(row, dateAliases...),
			Yesterday: StringField(row, "yesterday", "Yesterday"),
			Today:     StringField(row, "today", "Today"),
			Blockers:  StringField(row, "blockers", "Blockers"),
			Mood:      IntField(row, "mood", "Mood"),
			CreatedAt: DateField(row, "createdAt", "CreatedAt", "created", "Created"),
		})
	}
	return LastWriteWins(out, func(c backend.Checkin) string { return c.ID })
}

// Kudos maps raw rows to normalized kudo records.
func Kudos(rows []Row) []backend.Kudo {
	out := make([]backend.Kudo, 0, len(rows))
	for _, row := range rows {
		out = append(out, backend.Kudo{
			ID:      EnsureID(StringField(row, idAliases...)),
			From:    StringField(row, "from", "From", "sender", "Sender"),
			To:      StringField(row, "to", "To", "recipient", "Recipient"),
			Message: StringField(row, "message", "Message", "text", "Text"),
			Date:    DateField(row, dateAliases...),
		})
	}
	return LastWriteWins(out, func(k backend.Kudo) string { return k.ID })
}

// Replies maps raw rows to normalized reply records.
func Replies(rows []Row) []backend.Reply {
	out := make([]backend.Reply, 0, len(rows))
	for _, row := range rows {
		out = append(out, backend.Reply{
			ID:      EnsureID(StringField(row, idAliases...)),
			KudoID:  StringField(row, "kudoId", "KudoId", "kudoID", "KudoID"),
			Member:  StringField(row, memberAliases...),
			Message: StringField(row, "message", "Message", "text", "Text"),
			Date:    DateField(row, dateAliases...),
		})
	}
	return LastWriteWins(out, func(r backend.Reply) string { return r.ID })
}

// Tasks maps raw rows to normalized task records. The week anchor is
// derived from the week column when present, otherwise from the task date.
func Tasks(rows []Row) []backend.Task {
	out := make([]backend.Task, 0, len(rows))
	for _, row := range rows {
		task := backend.Task{
			ID:               EnsureID(StringField(row, idAliases...)),
			Member:           StringField(row, memberAliases...),
			Title:            StringField(row, "title", "Title", "summary", "Summary"),
			Date:             DateField(row, dateAliases...),
			Week:             WeekField(row, weekAliases...),
			PlannedPomodoros: IntField(row, "plannedPomodoros", "PlannedPomodoros", "pomodoros", "Pomodoros"),
			DonePomodoros:    IntField(row, "donePomodoros", "DonePomodoros"),
			Done:             BoolField(row, "done", "Done", "completed", "Completed"),
		}
		if task.Week == "" {
			task.Week = WeekField(row, dateAliases...)
		}
		out = append(out, task)
	}
	return LastWriteWins(out, func(t backend.Task) string { return t.ID })
}

// Goals maps raw rows to normalized goal records.
func Goals(rows []Row) []backend.Goal {
	out := make([]backend.Goal, 0, len(rows))
	for _, row := range rows {
		goal := backend.Goal{
			ID:       EnsureID(StringField(row, idAliases...)),
			Member:   StringField(row, memberAliases...),
			Title:    StringField(row, "title", "Title", "goal", "Goal"),
			Week:     WeekField(row, weekAliases...),
			Status:   StringField(row, "status", "Status"),
			Progress: IntField(row, "progress", "Progress"),
		}
		if goal.Status == "" {
			goal.Status = backend.GoalPlanned
		}
		out = append(out, goal)
	}
	return LastWriteWins(out, func(g backend.Goal) string { return g.ID })
}

// Snapshot maps a full raw fetch into one normalized snapshot.
func Snapshot(checkins, kudos, replies, tasks, goals []Row) *backend.Snapshot {
	return &backend.Snapshot{
		Checkins: Checkins(checkins),
		Kudos:    Kudos(kudos),
		Replies:  Replies(replies),
		Tasks:    Tasks(tasks),
		Goals:    Goals(goals),
	}
}

// EnsureID returns the given ID, or a generated random one when the row
// arrived without an identifier. Records must never be silently dropped by
// deduplication just because the sheet row lost its ID column.
func EnsureID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// LastWriteWins deduplicates records by identifier, keeping the last
// occurrence in iteration order. The store may return stale rows from an
// update history; the latest row is the current one.
func LastWriteWins[T any](items []T, id func(T) string) []T {
	latest := make(map[string]int, len(items))
	for i, item := range items {
		latest[id(item)] = i
	}

	out := make([]T, 0, len(latest))
	for i, item := range items {
		if latest[id(item)] == i {
			out = append(out, item)
		}
	}
	return out
}
