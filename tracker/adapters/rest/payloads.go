package rest

import (
	"encoding/json"
	"fmt"
	"time"

	"deadline-tracker/tracker/core"
)

const dateLayout = "2006-01-02"

// Date is a calendar day encoded as "YYYY-MM-DD".
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	d.Time = t
	return nil
}

// in

type NameIn struct {
	Name string `json:"name"`
}

type TaskIn struct {
	ID         *int64 `json:"id,omitempty"` // accepted, never reused
	Title      string `json:"title"`
	Done       bool   `json:"done"`
	DueDate    *Date  `json:"due_date,omitempty"`
	AssigneeID *int64 `json:"assignee_id,omitempty"`
}

type ProjectIn struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	StartDate      *Date    `json:"start_date"`
	EndDate        *Date    `json:"end_date"`
	Tasks          []TaskIn `json:"tasks"`
	ParticipantIDs []int64  `json:"participant_ids"`
}

func (in ProjectIn) ToCore() core.ProjectInput {
	out := core.ProjectInput{
		Name:           in.Name,
		Description:    in.Description,
		ParticipantIDs: in.ParticipantIDs,
		Tasks:          make([]core.TaskInput, 0, len(in.Tasks)),
	}
	if in.StartDate != nil {
		out.StartDate = in.StartDate.Time
	}
	if in.EndDate != nil {
		out.EndDate = in.EndDate.Time
	}
	for _, t := range in.Tasks {
		ti := core.TaskInput{
			ID:         t.ID,
			Title:      t.Title,
			Done:       t.Done,
			AssigneeID: t.AssigneeID,
		}
		if t.DueDate != nil {
			due := t.DueDate.Time
			ti.DueDate = &due
		}
		out.Tasks = append(out.Tasks, ti)
	}
	return out
}

// out

type ProjectOut struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   Date      `json:"start_date"`
	EndDate     Date      `json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TaskOut struct {
	ID           int64   `json:"id"`
	ProjectID    int64   `json:"project_id"`
	Title        string  `json:"title"`
	Done         bool    `json:"done"`
	DueDate      *Date   `json:"due_date,omitempty"`
	AssigneeID   *int64  `json:"assignee_id,omitempty"`
	AssigneeName *string `json:"assignee_name,omitempty"`
}

type SummaryOut struct {
	ProjectID  int64     `json:"project_id"`
	Name       string    `json:"name"`
	EndDate    Date      `json:"end_date"`
	DoneCount  int       `json:"done_count"`
	TotalCount int       `json:"total_count"`
	IsDone     bool      `json:"is_done"`
	OpenTasks  []TaskOut `json:"open_tasks"`
}

func ProjectToOut(p core.Project) ProjectOut {
	return ProjectOut{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   Date{p.StartDate},
		EndDate:     Date{p.EndDate},
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func TaskToOut(t core.Task) TaskOut {
	out := TaskOut{
		ID:           t.ID,
		ProjectID:    t.ProjectID,
		Title:        t.Title,
		Done:         t.Done,
		AssigneeID:   t.AssigneeID,
		AssigneeName: t.AssigneeName,
	}
	if t.DueDate != nil {
		out.DueDate = &Date{*t.DueDate}
	}
	return out
}

func TasksToOut(items []core.Task) []TaskOut {
	out := make([]TaskOut, 0, len(items))
	for _, t := range items {
		out = append(out, TaskToOut(t))
	}
	return out
}

func SummaryToOut(s core.ProjectSummary) SummaryOut {
	return SummaryOut{
		ProjectID:  s.ProjectID,
		Name:       s.Name,
		EndDate:    Date{s.EndDate},
		DoneCount:  s.DoneCount,
		TotalCount: s.TotalCount,
		IsDone:     s.IsDone(),
		OpenTasks:  TasksToOut(s.OpenTasks),
	}
}
