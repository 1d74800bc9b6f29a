package core

import "time"

type User struct {
	ID          int64      `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	LastLoginAt *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
}

type Project struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	StartDate   time.Time `db:"start_date" json:"start_date"`
	EndDate     time.Time `db:"end_date" json:"end_date"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Task struct {
	ID           int64      `db:"id" json:"id"`
	ProjectID    int64      `db:"project_id" json:"project_id"`
	Title        string     `db:"title" json:"title"`
	Done         bool       `db:"done" json:"done"`
	DueDate      *time.Time `db:"due_date" json:"due_date,omitempty"`
	AssigneeID   *int64     `db:"assignee_id" json:"assignee_id,omitempty"` // nil when unassigned
	AssigneeName *string    `db:"assignee_name" json:"assignee_name,omitempty"`
}

// Participant is a project member as listed on the project page.
type Participant struct {
	UserID int64  `db:"user_id" json:"user_id"`
	Name   string `db:"name" json:"name"`
}

// TaskInput is one task row of a create/update request. ID is accepted from
// clients but never reused: every save inserts fresh rows.
type TaskInput struct {
	ID         *int64
	Title      string
	Done       bool
	DueDate    *time.Time
	AssigneeID *int64
}

type ProjectInput struct {
	Name           string
	Description    string
	StartDate      time.Time
	EndDate        time.Time
	Tasks          []TaskInput
	ParticipantIDs []int64
}

// ProjectSummary is one dashboard card.
type ProjectSummary struct {
	ProjectID  int64     `db:"project_id" json:"project_id"`
	Name       string    `db:"name" json:"name"`
	EndDate    time.Time `db:"end_date" json:"end_date"`
	DoneCount  int       `db:"done_count" json:"done_count"`
	TotalCount int       `db:"total_count" json:"total_count"`
	OpenTasks  []Task    `db:"-" json:"open_tasks"`
}

// IsDone reports completion derived from the counts; a project without
// tasks is never done.
func (p ProjectSummary) IsDone() bool {
	return p.TotalCount > 0 && p.DoneCount == p.TotalCount
}

// Session identifies the caller of a request. The zero value is logged out.
type Session struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	Username string `json:"name"`
}

func (s Session) IsLoggedIn() bool {
	return s.UserID > 0
}
