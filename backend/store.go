package backend

import "fmt"

// Record families stored in the spreadsheet, one tab per family.
const (
	TabCheckins = "checkins"
	TabKudos    = "kudos"
	TabReplies  = "replies"
	TabTasks    = "tasks"
	TabGoals    = "goals"
)

// Checkin is a daily status entry for one team member. Date is canonical
// YYYY-MM-DD or empty.
type Checkin struct {
	ID        string `json:"id"`
	Member    string `json:"member"`
	Date      string `json:"date"`
	Yesterday string `json:"yesterday"`
	Today     string `json:"today"`
	Blockers  string `json:"blockers"`
	Mood      int    `json:"mood"` // 1 (rough) .. 5 (great), 0 when unset
	CreatedAt string `json:"createdAt"`
}

// Kudo is a public thank-you from one member to another.
type Kudo struct {
	ID      string `json:"id"`
	From    string `json:"from"`
	To      string `json:"to"`
	Message string `json:"message"`
	Date    string `json:"date"`
}

// Reply is a comment attached to a kudo.
type Reply struct {
	ID      string `json:"id"`
	KudoID  string `json:"kudoId"`
	Member  string `json:"member"`
	Message string `json:"message"`
	Date    string `json:"date"`
}

// Task is a planned piece of work with pomodoro estimates. Week is the
// Monday anchor of the week the task belongs to.
type Task struct {
	ID               string `json:"id"`
	Member           string `json:"member"`
	Title            string `json:"title"`
	Date             string `json:"date"`
	Week             string `json:"week"`
	PlannedPomodoros int    `json:"plannedPomodoros"`
	DonePomodoros    int    `json:"donePomodoros"`
	Done             bool   `json:"done"`
}

// Goal statuses. Anything else coming from the store is kept verbatim.
const (
	GoalPlanned    = "planned"
	GoalInProgress = "in_progress"
	GoalDone       = "done"
	GoalDropped    = "dropped"
)

// Goal is a weekly objective for one member. Week is the Monday anchor.
type Goal struct {
	ID       string `json:"id"`
	Member   string `json:"member"`
	Title    string `json:"title"`
	Week     string `json:"week"`
	Status   string `json:"status"`
	Progress int    `json:"progress"` // 0-100
}

// Snapshot is the full normalized record set as of one fetch. Every
// date-bearing field is "" or canonical; Week fields fall on a Monday.
type Snapshot struct {
	Checkins []Checkin
	Kudos    []Kudo
	Replies  []Reply
	Tasks    []Task
	Goals    []Goal
}

// Counts returns the total number of records across all families.
func (s *Snapshot) Counts() int {
	return len(s.Checkins) + len(s.Kudos) + len(s.Replies) + len(s.Tasks) + len(s.Goals)
}

// StatusStore is the contract every storage backend implements. Fetch
// methods return fully normalized records; Append methods persist a new
// record to the underlying store.
type StatusStore interface {
	FetchCheckins() ([]Checkin, error)
	FetchKudos() ([]Kudo, error)
	FetchReplies() ([]Reply, error)
	FetchTasks() ([]Task, error)
	FetchGoals() ([]Goal, error)

	AppendCheckin(c Checkin) error
	AppendKudo(k Kudo) error
	AppendReply(r Reply) error
	AppendTask(t Task) error
	AppendGoal(g Goal) error

	// Ping verifies the store is reachable.
	Ping() error

	// Name identifies the backend in logs and errors.
	Name() string
}

// FetchAll pulls every record family from a store into one snapshot.
// Families are fetched independently; the first failure aborts so a
// partial snapshot is never mistaken for a full one.
func FetchAll(store StatusStore) (*Snapshot, error) {
	snap := &Snapshot{}
	var err error

	if snap.Checkins, err = store.FetchCheckins(); err != nil {
		return nil, fmt.Errorf("fetch checkins from %s: %w", store.Name(), err)
	}
	if snap.Kudos, err = store.FetchKudos(); err != nil {
		return nil, fmt.Errorf("fetch kudos from %s: %w", store.Name(), err)
	}
	if snap.Replies, err = store.FetchReplies(); err != nil {
		return nil, fmt.Errorf("fetch replies from %s: %w", store.Name(), err)
	}
	if snap.Tasks, err = store.FetchTasks(); err != nil {
		return nil, fmt.Errorf("fetch tasks from %s: %w", store.Name(), err)
	}
	if snap.Goals, err = store.FetchGoals(); err != nil {
		return nil, fmt.Errorf("fetch goals from %s: %w", store.Name(), err)
	}

	return snap, nil
}
