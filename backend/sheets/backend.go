package sheets

import (
	"teampulse/backend"
	"teampulse/internal/ingest"
)

// Config holds the settings needed to reach the spreadsheet endpoint.
// Tab names default to the standard layout when left empty.
type Config struct {
	BaseURL  string
	APIToken string
	Tabs     TabNames
}

// TabNames maps record families to spreadsheet tab names
type TabNames struct {
	Checkins string
	Kudos    string
	Replies  string
	Tasks    string
	Goals    string
}

func (t *TabNames) applyDefaults() {
	if t.Checkins == "" {
		t.Checkins = backend.TabCheckins
	}
	if t.Kudos == "" {
		t.Kudos = backend.TabKudos
	}
	if t.Replies == "" {
		t.Replies = backend.TabReplies
	}
	if t.Tasks == "" {
		t.Tasks = backend.TabTasks
	}
	if t.Goals == "" {
		t.Goals = backend.TabGoals
	}
}

// SheetsBackend implements backend.StatusStore against the remote
// spreadsheet endpoint. Rows are normalized on the way in; writes send the
// already-canonical record as a new row.
type SheetsBackend struct {
	client *APIClient
	tabs   TabNames
}

// New creates a sheets backend from config
func New(cfg Config) *SheetsBackend {
	cfg.Tabs.applyDefaults()
	return &SheetsBackend{
		client: NewAPIClient(cfg.BaseURL, cfg.APIToken),
		tabs:   cfg.Tabs,
	}
}

// Name identifies this backend in logs and errors
func (s *SheetsBackend) Name() string {
	return "sheets"
}

// Ping verifies the endpoint is reachable and the token is accepted
func (s *SheetsBackend) Ping() error {
	_, err := s.client.GetRows("Ping", s.tabs.Checkins)
	return err
}

// FetchCheckins retrieves and normalizes all check-in rows
func (s *SheetsBackend) FetchCheckins() ([]backend.Checkin, error) {
	rows, err := s.client.GetRows("FetchCheckins", s.tabs.Checkins)
	if err != nil {
		return nil, err
	}
	return ingest.Checkins(rows), nil
}

// FetchKudos retrieves and normalizes all kudo rows
func (s *SheetsBackend) FetchKudos() ([]backend.Kudo, error) {
	rows, err := s.client.GetRows("FetchKudos", s.tabs.Kudos)
	if err != nil {
		return nil, err
	}
	return ingest.Kudos(rows), nil
}

// FetchReplies retrieves and normalizes all reply rows
func (s *SheetsBackend) FetchReplies() ([]backend.Reply, error) {
	rows, err := s.client.GetRows("FetchReplies", s.tabs.Replies)
	if err != nil {
		return nil, err
	}
	return ingest.Replies(rows), nil
}

// FetchTasks retrieves and normalizes all task rows
func (s *SheetsBackend) FetchTasks() ([]backend.Task, error) {
	rows, err := s.client.GetRows("FetchTasks", s.tabs.Tasks)
	if err != nil {
		return nil, err
	}
	return ingest.Tasks(rows), nil
}

// FetchGoals retrieves and normalizes all goal rows
func (s *SheetsBackend) FetchGoals() ([]backend.Goal, error) {
	rows, err := s.client.GetRows("FetchGoals", s.tabs.Goals)
	if err != nil {
		return nil, err
	}
	return ingest.Goals(rows), nil
}

// AppendCheckin writes a new check-in row
func (s *SheetsBackend) AppendCheckin(c backend.Checkin) error {
	return s.client.AppendRow("AppendCheckin", s.tabs.Checkins, c)
}

// AppendKudo writes a new kudo row
func (s *SheetsBackend) AppendKudo(k backend.Kudo) error {
	return s.client.AppendRow("AppendKudo", s.tabs.Kudos, k)
}

// AppendReply writes a new reply row
func (s *SheetsBackend) AppendReply(r backend.Reply) error {
	return s.client.AppendRow("AppendReply", s.tabs.Replies, r)
}

// AppendTask writes a new task row
func (s *SheetsBackend) AppendTask(t backend.Task) error {
	return s.client.AppendRow("AppendTask", s.tabs.Tasks, t)
}

// AppendGoal writes a new goal row
func (s *SheetsBackend) AppendGoal(g backend.Goal) error {
	return s.client.AppendRow("AppendGoal", s.tabs.Goals, g)
}
