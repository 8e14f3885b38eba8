package sqlite

// Schema version for migration management
const SchemaVersion = 1

// SQL statements for the local snapshot schema. The snapshot mirrors the
// normalized record set pulled from the remote store; it is replaced
// wholesale on every refresh, never mutated row by row.

// CheckinsTableSQL creates the checkins snapshot table
const CheckinsTableSQL = `
CREATE TABLE IF NOT EXISTS checkins (
    id TEXT PRIMARY KEY,
    member TEXT NOT NULL,
    date TEXT,
    yesterday TEXT,
    today TEXT,
    blockers TEXT,
    mood INTEGER DEFAULT 0,
    created_at TEXT
);
`

// KudosTableSQL creates the kudos snapshot table
const KudosTableSQL = `
CREATE TABLE IF NOT EXISTS kudos (
    id TEXT PRIMARY KEY,
    from_member TEXT NOT NULL,
    to_member TEXT NOT NULL,
    message TEXT,
    date TEXT
);
`

// RepliesTableSQL creates the replies snapshot table
const RepliesTableSQL = `
CREATE TABLE IF NOT EXISTS replies (
    id TEXT PRIMARY KEY,
    kudo_id TEXT NOT NULL,
    member TEXT NOT NULL,
    message TEXT,
    date TEXT
);
`

// TasksTableSQL creates the tasks snapshot table
const TasksTableSQL = `
CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    member TEXT NOT NULL,
    title TEXT NOT NULL,
    date TEXT,
    week TEXT,
    planned_pomodoros INTEGER DEFAULT 0,
    done_pomodoros INTEGER DEFAULT 0,
    done INTEGER DEFAULT 0
);
`

// GoalsTableSQL creates the goals snapshot table
const GoalsTableSQL = `
CREATE TABLE IF NOT EXISTS goals (
    id TEXT PRIMARY KEY,
    member TEXT NOT NULL,
    title TEXT NOT NULL,
    week TEXT,
    status TEXT,
    progress INTEGER DEFAULT 0
);
`

// RefreshMetadataTableSQL tracks when the snapshot was last replaced
const RefreshMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS refresh_metadata (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    source TEXT,
    refreshed_at INTEGER
);
`

// SchemaVersionTableSQL creates the schema version table for migration tracking
const SchemaVersionTableSQL = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at INTEGER NOT NULL
);
`

// Index creation statements for the week- and member-keyed queries the
// dashboard runs

const SnapshotIndexesSQL = `
CREATE INDEX IF NOT EXISTS idx_checkins_member ON checkins(member);
CREATE INDEX IF NOT EXISTS idx_checkins_date ON checkins(date);
CREATE INDEX IF NOT EXISTS idx_tasks_week ON tasks(week);
CREATE INDEX IF NOT EXISTS idx_tasks_member ON tasks(member);
CREATE INDEX IF NOT EXISTS idx_goals_week ON goals(week);
CREATE INDEX IF NOT EXISTS idx_replies_kudo_id ON replies(kudo_id);
`

// AllTableSchemas returns all table creation statements in order
func AllTableSchemas() []string {
	return []string{
		CheckinsTableSQL,
		KudosTableSQL,
		RepliesTableSQL,
		TasksTableSQL,
		GoalsTableSQL,
		RefreshMetadataTableSQL,
		SchemaVersionTableSQL,
	}
}

// AllIndexes returns all index creation statements
func AllIndexes() []string {
	return []string{
		SnapshotIndexesSQL,
	}
}

// PragmaStatements returns pragmas applied on every open
func PragmaStatements() []string {
	return []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	}
}
