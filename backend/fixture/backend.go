package fixture

import (
	"encoding/json"
	"fmt"
	"sync"

	"teampulse/backend"
	"teampulse/internal/ingest"

	_ "embed"
)

//go:embed fixture.json
var fixtureData []byte

// rawTabs mirrors the tab layout of the remote sheet. Rows stay
// loosely-typed so the fixture exercises the same ingestion path as the
// real endpoint, messy date shapes included.
type rawTabs struct {
	Checkins []ingest.Row `json:"checkins"`
	Kudos    []ingest.Row `json:"kudos"`
	Replies  []ingest.Row `json:"replies"`
	Tasks    []ingest.Row `json:"tasks"`
	Goals    []ingest.Row `json:"goals"`
}

// FixtureBackend implements backend.StatusStore over embedded sample
// rows. It is selected when no endpoint URL is configured; appends only
// live for the process lifetime.
type FixtureBackend struct {
	mu   sync.Mutex
	tabs rawTabs
}

// New creates a fixture backend from the embedded sample data
func New() (*FixtureBackend, error) {
	var tabs rawTabs
	if err := json.Unmarshal(fixtureData, &tabs); err != nil {
		return nil, fmt.Errorf("failed to parse embedded fixture data: %w", err)
	}
	return &FixtureBackend{tabs: tabs}, nil
}

// Name identifies this backend in logs and errors
func (f *FixtureBackend) Name() string {
	return "fixture"
}

// Ping always succeeds; the fixture is in memory
func (f *FixtureBackend) Ping() error {
	return nil
}

func (f *FixtureBackend) FetchCheckins() ([]backend.Checkin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return ingest.Checkins(f.tabs.Checkins), nil
}

func (f *FixtureBackend) FetchKudos() ([]backend.Kudo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return ingest.Kudos(f.tabs.Kudos), nil
}

func (f *FixtureBackend) FetchReplies() ([]backend.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return ingest.Replies(f.tabs.Replies), nil
}

func (f *FixtureBackend) FetchTasks() ([]backend.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return ingest.Tasks(f.tabs.Tasks), nil
}

func (f *FixtureBackend) FetchGoals() ([]backend.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return ingest.Goals(f.tabs.Goals), nil
}

// appendRow converts a typed record back into a raw row via its JSON
// form, the same shape a remote append would write.
func appendRow(rows []ingest.Row, record any) []ingest.Row {
	data, err := json.Marshal(record)
	if err != nil {
		return rows
	}
	var row ingest.Row
	if err := json.Unmarshal(data, &row); err != nil {
		return rows
	}
	return append(rows, row)
}

func (f *FixtureBackend) AppendCheckin(c backend.Checkin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tabs.Checkins = appendRow(f.tabs.Checkins, c)
	return nil
}

func (f *FixtureBackend) AppendKudo(k backend.Kudo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tabs.Kudos = appendRow(f.tabs.Kudos, k)
	return nil
}

func (f *FixtureBackend) AppendReply(r backend.Reply) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tabs.Replies = appendRow(f.tabs.Replies, r)
	return nil
}

func (f *FixtureBackend) AppendTask(t backend.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tabs.Tasks = appendRow(f.tabs.Tasks, t)
	return nil
}

func (f *FixtureBackend) AppendGoal(g backend.Goal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tabs.Goals = appendRow(f.tabs.Goals, g)
	return nil
}
