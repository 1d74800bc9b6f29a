package core

import (
	"context"
	"fmt"
	"strings"
	"time"
)

func (s *Service) CreateProject(ctx context.Context, in ProjectInput) (int64, error) {
	in, err := prepareProject(in)
	if err != nil {
		return 0, err
	}
	return s.db.CreateProject(ctx, in)
}

func (s *Service) GetProjectDetail(ctx context.Context, id int64) (Project, error) {
	if id <= 0 {
		return Project{}, ErrProjectInvalidArgs
	}
	return s.db.GetProject(ctx, id)
}

func (s *Service) GetParticipants(ctx context.Context, projectID int64) ([]Participant, error) {
	if projectID <= 0 {
		return nil, ErrProjectInvalidArgs
	}
	return s.db.ListParticipants(ctx, projectID)
}

func (s *Service) GetTasks(ctx context.Context, projectID int64) ([]Task, error) {
	if projectID <= 0 {
		return nil, ErrProjectInvalidArgs
	}
	return s.db.ListTasks(ctx, projectID)
}

// UpdateProject replaces the project's fields, tasks and participants with
// the given ones. Task rows are recreated, so task ids change on every save.
func (s *Service) UpdateProject(ctx context.Context, id int64, in ProjectInput) error {
	if id <= 0 {
		return ErrProjectInvalidArgs
	}
	in, err := prepareProject(in)
	if err != nil {
		return err
	}
	return s.db.UpdateProject(ctx, id, in)
}

func (s *Service) DeleteProject(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrProjectInvalidArgs
	}
	return s.db.DeleteProject(ctx, id)
}

// MarkTaskDone reports false when no task has the given id; a task that is
// already done still reports true.
func (s *Service) MarkTaskDone(ctx context.Context, taskID int64) (bool, error) {
	if taskID <= 0 {
		return false, ErrTaskInvalidArgs
	}
	return s.db.MarkTaskDone(ctx, taskID)
}

// prepareProject validates in and returns its normalized copy: trimmed text,
// date-only times, distinct participants, and assignees cleared when they
// are not participants.
func prepareProject(in ProjectInput) (ProjectInput, error) {
	out := ProjectInput{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
	}
	if out.Name == "" {
		return ProjectInput{}, fmt.Errorf("%w: name is required", ErrProjectInvalidArgs)
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return ProjectInput{}, fmt.Errorf("%w: start and end dates are required", ErrProjectInvalidArgs)
	}
	out.StartDate = dateOnly(in.StartDate)
	out.EndDate = dateOnly(in.EndDate)

	members := make(map[int64]struct{}, len(in.ParticipantIDs))
	out.ParticipantIDs = make([]int64, 0, len(in.ParticipantIDs))
	for _, uid := range in.ParticipantIDs {
		if uid <= 0 {
			return ProjectInput{}, fmt.Errorf("%w: participant id %d", ErrProjectInvalidArgs, uid)
		}
		if _, dup := members[uid]; dup {
			continue
		}
		members[uid] = struct{}{}
		out.ParticipantIDs = append(out.ParticipantIDs, uid)
	}

	out.Tasks = make([]TaskInput, 0, len(in.Tasks))
	for _, t := range in.Tasks {
		task := TaskInput{
			ID:    t.ID,
			Title: strings.TrimSpace(t.Title),
			Done:  t.Done,
		}
		if task.Title == "" {
			return ProjectInput{}, fmt.Errorf("%w: title is required", ErrTaskInvalidArgs)
		}
		if t.DueDate != nil {
			due := dateOnly(*t.DueDate)
			task.DueDate = &due
		}
		if t.AssigneeID != nil {
			if _, ok := members[*t.AssigneeID]; ok {
				aid := *t.AssigneeID
				task.AssigneeID = &aid
			}
		}
		out.Tasks = append(out.Tasks, task)
	}

	return out, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
