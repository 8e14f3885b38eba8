package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"teampulse/backend"
	"teampulse/internal/utils"

	_ "modernc.org/sqlite" // SQLite driver
)

// SnapshotStore keeps a local copy of the normalized record set so list
// and dashboard commands work without the network. It implements
// backend.StatusStore; appends go to the snapshot only and are replaced
// on the next refresh, so callers writing through it should refresh the
// remote first.
type SnapshotStore struct {
	db   *sql.DB
	path string
}

// Open initializes the snapshot database at the given path, creating the
// schema when needed. An empty path resolves to the XDG data directory.
func Open(customPath string) (*SnapshotStore, error) {
	dbPath, err := databasePath(customPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	store := &SnapshotStore{db: db, path: dbPath}
	if err := store.initializeSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize snapshot schema: %w", err)
	}

	return store, nil
}

// databasePath resolves the snapshot file location
// Priority: customPath > $XDG_DATA_HOME/teampulse/snapshot.db > ~/.local/share/teampulse/snapshot.db
func databasePath(customPath string) (string, error) {
	if customPath != "" {
		// Config values like "~/pulse/snapshot.db" or "$HOME/pulse" must
		// not be taken literally.
		return utils.ExpandPath(customPath)
	}

	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, "teampulse", "snapshot.db"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "teampulse", "snapshot.db"), nil
}

func (s *SnapshotStore) initializeSchema() error {
	for _, pragma := range PragmaStatements() {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute pragma %q: %w", pragma, err)
		}
	}

	for _, schema := range AllTableSchemas() {
		if _, err := s.db.Exec(schema); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, index := range AllIndexes() {
		if _, err := s.db.Exec(index); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return s.recordSchemaVersion()
}

func (s *SnapshotStore) recordSchemaVersion() error {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = ?", SchemaVersion).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check schema version: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err = s.db.Exec(
		"INSERT INTO schema_version (version, applied_at) VALUES (?, ?)",
		SchemaVersion,
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert schema version: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// Path returns the filesystem path to the snapshot file
func (s *SnapshotStore) Path() string {
	return s.path
}

// Name identifies this backend in logs and errors
func (s *SnapshotStore) Name() string {
	return "snapshot"
}

// Ping verifies the database is usable
func (s *SnapshotStore) Ping() error {
	return s.db.Ping()
}

// Replace swaps the entire snapshot for the given record set in one
// transaction. Readers never observe a half-replaced snapshot.
func (s *SnapshotStore) Replace(snap *backend.Snapshot, source string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"checkins", "kudos", "replies", "tasks", "goals"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, c := range snap.Checkins {
		_, err := tx.Exec(`
			INSERT INTO checkins (id, member, date, yesterday, today, blockers, mood, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, c.ID, c.Member, c.Date, c.Yesterday, c.Today, c.Blockers, c.Mood, c.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert checkin %s: %w", c.ID, err)
		}
	}
	for _, k := range snap.Kudos {
		_, err := tx.Exec(`
			INSERT INTO kudos (id, from_member, to_member, message, date)
			VALUES (?, ?, ?, ?, ?)
		`, k.ID, k.From, k.To, k.Message, k.Date)
		if err != nil {
			return fmt.Errorf("failed to insert kudo %s: %w", k.ID, err)
		}
	}
	for _, r := range snap.Replies {
		_, err := tx.Exec(`
			INSERT INTO replies (id, kudo_id, member, message, date)
			VALUES (?, ?, ?, ?, ?)
		`, r.ID, r.KudoID, r.Member, r.Message, r.Date)
		if err != nil {
			return fmt.Errorf("failed to insert reply %s: %w", r.ID, err)
		}
	}
	for _, t := range snap.Tasks {
		done := 0
		if t.Done {
			done = 1
		}
		_, err := tx.Exec(`
			INSERT INTO tasks (id, member, title, date, week, planned_pomodoros, done_pomodoros, done)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, t.ID, t.Member, t.Title, t.Date, t.Week, t.PlannedPomodoros, t.DonePomodoros, done)
		if err != nil {
			return fmt.Errorf("failed to insert task %s: %w", t.ID, err)
		}
	}
	for _, g := range snap.Goals {
		_, err := tx.Exec(`
			INSERT INTO goals (id, member, title, week, status, progress)
			VALUES (?, ?, ?, ?, ?, ?)
		`, g.ID, g.Member, g.Title, g.Week, g.Status, g.Progress)
		if err != nil {
			return fmt.Errorf("failed to insert goal %s: %w", g.ID, err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO refresh_metadata (id, source, refreshed_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET source = excluded.source, refreshed_at = excluded.refreshed_at
	`, source, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to record refresh metadata: %w", err)
	}

	return tx.Commit()
}

// LastRefresh returns the source and time of the last snapshot replace,
// or a zero time when the snapshot has never been filled.
func (s *SnapshotStore) LastRefresh() (string, time.Time, error) {
	var source string
	var refreshedAt int64
	err := s.db.QueryRow("SELECT source, refreshed_at FROM refresh_metadata WHERE id = 1").Scan(&source, &refreshedAt)
	if err == sql.ErrNoRows {
		return "", time.Time{}, nil
	}
	if err != nil {
		return "", time.Time{}, err
	}
	return source, time.Unix(refreshedAt, 0), nil
}

// FetchCheckins returns all snapshot check-ins ordered by date
func (s *SnapshotStore) FetchCheckins() ([]backend.Checkin, error) {
	rows, err := s.db.Query(`
		SELECT id, member, date, yesterday, today, blockers, mood, created_at
		FROM checkins ORDER BY date, member
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []backend.Checkin
	for rows.Next() {
		var c backend.Checkin
		if err := rows.Scan(&c.ID, &c.Member, &c.Date, &c.Yesterday, &c.Today, &c.Blockers, &c.Mood, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// FetchKudos returns all snapshot kudos ordered by date
func (s *SnapshotStore) FetchKudos() ([]backend.Kudo, error) {
	rows, err := s.db.Query(`
		SELECT id, from_member, to_member, message, date
		FROM kudos ORDER BY date, id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []backend.Kudo
	for rows.Next() {
		var k backend.Kudo
		if err := rows.Scan(&k.ID, &k.From, &k.To, &k.Message, &k.Date); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// FetchReplies returns all snapshot replies
func (s *SnapshotStore) FetchReplies() ([]backend.Reply, error) {
	rows, err := s.db.Query(`
		SELECT id, kudo_id, member, message, date
		FROM replies ORDER BY date, id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []backend.Reply
	for rows.Next() {
		var r backend.Reply
		if err := rows.Scan(&r.ID, &r.KudoID, &r.Member, &r.Message, &r.Date); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// FetchTasks returns all snapshot tasks ordered by week
func (s *SnapshotStore) FetchTasks() ([]backend.Task, error) {
	rows, err := s.db.Query(`
		SELECT id, member, title, date, week, planned_pomodoros, done_pomodoros, done
		FROM tasks ORDER BY week, member, id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []backend.Task
	for rows.Next() {
		var t backend.Task
		var done int
		if err := rows.Scan(&t.ID, &t.Member, &t.Title, &t.Date, &t.Week, &t.PlannedPomodoros, &t.DonePomodoros, &done); err != nil {
			return nil, err
		}
		t.Done = done == 1
		out = append(out, t)
	}
	return out, rows.Err()
}

// FetchGoals returns all snapshot goals ordered by week
func (s *SnapshotStore) FetchGoals() ([]backend.Goal, error) {
	rows, err := s.db.Query(`
		SELECT id, member, title, week, status, progress
		FROM goals ORDER BY week, member, id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []backend.Goal
	for rows.Next() {
		var g backend.Goal
		if err := rows.Scan(&g.ID, &g.Member, &g.Title, &g.Week, &g.Status, &g.Progress); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// AppendCheckin upserts a check-in into the snapshot
func (s *SnapshotStore) AppendCheckin(c backend.Checkin) error {
	_, err := s.db.Exec(`
		INSERT INTO checkins (id, member, date, yesterday, today, blockers, mood, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			member = excluded.member, date = excluded.date,
			yesterday = excluded.yesterday, today = excluded.today,
			blockers = excluded.blockers, mood = excluded.mood,
			created_at = excluded.created_at
	`, c.ID, c.Member, c.Date, c.Yesterday, c.Today, c.Blockers, c.Mood, c.CreatedAt)
	return err
}

// AppendKudo upserts a kudo into the snapshot
func (s *SnapshotStore) AppendKudo(k backend.Kudo) error {
	_, err := s.db.Exec(`
		INSERT INTO kudos (id, from_member, to_member, message, date)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			from_member = excluded.from_member, to_member = excluded.to_member,
			message = excluded.message, date = excluded.date
	`, k.ID, k.From, k.To, k.Message, k.Date)
	return err
}

// AppendReply upserts a reply into the snapshot
func (s *SnapshotStore) AppendReply(r backend.Reply) error {
	_, err := s.db.Exec(`
		INSERT INTO replies (id, kudo_id, member, message, date)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kudo_id = excluded.kudo_id, member = excluded.member,
			message = excluded.message, date = excluded.date
	`, r.ID, r.KudoID, r.Member, r.Message, r.Date)
	return err
}

// AppendTask upserts a task into the snapshot
func (s *SnapshotStore) AppendTask(t backend.Task) error {
	done := 0
	if t.Done {
		done = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO tasks (id, member, title, date, week, planned_pomodoros, done_pomodoros, done)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			member = excluded.member, title = excluded.title,
			date = excluded.date, week = excluded.week,
			planned_pomodoros = excluded.planned_pomodoros,
			done_pomodoros = excluded.done_pomodoros, done = excluded.done
	`, t.ID, t.Member, t.Title, t.Date, t.Week, t.PlannedPomodoros, t.DonePomodoros, done)
	return err
}

// AppendGoal upserts a goal into the snapshot
func (s *SnapshotStore) AppendGoal(g backend.Goal) error {
	_, err := s.db.Exec(`
		INSERT INTO goals (id, member, title, week, status, progress)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			member = excluded.member, title = excluded.title,
			week = excluded.week, status = excluded.status,
			progress = excluded.progress
	`, g.ID, g.Member, g.Title, g.Week, g.Status, g.Progress)
	return err
}

// Stats returns basic snapshot statistics
func (s *SnapshotStore) Stats() (SnapshotStats, error) {
	stats := SnapshotStats{}

	counts := []struct {
		table string
		dest  *int
	}{
		{"checkins", &stats.Checkins},
		{"kudos", &stats.Kudos},
		{"replies", &stats.Replies},
		{"tasks", &stats.Tasks},
		{"goals", &stats.Goals},
	}
	for _, c := range counts {
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + c.table).Scan(c.dest); err != nil {
			return stats, fmt.Errorf("failed to count %s: %w", c.table, err)
		}
	}

	return stats, nil
}

// SnapshotStats holds per-family record counts
type SnapshotStats struct {
	Checkins int
	Kudos    int
	Replies  int
	Tasks    int
	Goals    int
}

// String returns a human-readable representation of snapshot statistics
func (s SnapshotStats) String() string {
	return fmt.Sprintf(
		"Checkins: %d | Kudos: %d | Replies: %d | Tasks: %d | Goals: %d",
		s.Checkins, s.Kudos, s.Replies, s.Tasks, s.Goals,
	)
}
