package tests

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"deadline-tracker/tracker/core"
)

type fakeDB struct {
	mu sync.RWMutex

	nextUserID    int64
	nextProjectID int64
	nextTaskID    int64

	users        map[int64]core.User
	projects     map[int64]core.Project
	tasks        map[int64]core.Task
	participants map[int64][]int64 // project id -> user ids
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		nextUserID:    1,
		nextProjectID: 1,
		nextTaskID:    1,
		users:         make(map[int64]core.User),
		projects:      make(map[int64]core.Project),
		tasks:         make(map[int64]core.Task),
		participants:  make(map[int64][]int64),
	}
}

func (db *fakeDB) Ping(context.Context) error {
	return nil
}

func (db *fakeDB) findUser(normalized string) (core.User, bool) {
	for _, u := range db.users {
		if core.NormalizeUsername(u.Name) == normalized {
			return u, true
		}
	}
	return core.User{}, false
}

func (db *fakeDB) insertUser(name string) core.User {
	now := time.Now().UTC()
	u := core.User{ID: db.nextUserID, Name: name, CreatedAt: now, LastLoginAt: &now}
	db.nextUserID++
	db.users[u.ID] = u
	return u
}

func (db *fakeDB) UpsertUser(_ context.Context, name, normalized string) (core.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if u, ok := db.findUser(normalized); ok {
		now := time.Now().UTC()
		u.LastLoginAt = &now
		db.users[u.ID] = u
		return u, nil
	}
	return db.insertUser(name), nil
}

func (db *fakeDB) CreateUser(_ context.Context, name, normalized string) (core.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.findUser(normalized); ok {
		return core.User{}, core.ErrUserAlreadyExists
	}
	return db.insertUser(name), nil
}

func (db *fakeDB) GetUserByName(_ context.Context, normalized string) (core.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	u, ok := db.findUser(normalized)
	if !ok {
		return core.User{}, core.ErrUserNotFound
	}
	return u, nil
}

func (db *fakeDB) TouchLogin(_ context.Context, id int64) (core.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	u, ok := db.users[id]
	if !ok {
		return core.User{}, core.ErrUserNotFound
	}
	now := time.Now().UTC()
	u.LastLoginAt = &now
	db.users[id] = u
	return u, nil
}

func (db *fakeDB) ListUsers(context.Context) ([]core.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.User, 0, len(db.users))
	for _, u := range db.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if li != lj {
			return li < lj
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// checkRefs validates every referenced user before anything is written,
// which mirrors a rolled back transaction.
func (db *fakeDB) checkRefs(in core.ProjectInput) error {
	for _, uid := range in.ParticipantIDs {
		if _, ok := db.users[uid]; !ok {
			return core.ErrUserNotFound
		}
	}
	for _, t := range in.Tasks {
		if t.AssigneeID != nil {
			if _, ok := db.users[*t.AssigneeID]; !ok {
				return core.ErrUserNotFound
			}
		}
	}
	return nil
}

func (db *fakeDB) insertChildren(projectID int64, in core.ProjectInput) {
	db.participants[projectID] = append([]int64(nil), in.ParticipantIDs...)
	for _, t := range in.Tasks {
		task := core.Task{
			ID:        db.nextTaskID,
			ProjectID: projectID,
			Title:     t.Title,
			Done:      t.Done,
		}
		db.nextTaskID++
		if t.DueDate != nil {
			due := *t.DueDate
			task.DueDate = &due
		}
		if t.AssigneeID != nil {
			aid := *t.AssigneeID
			task.AssigneeID = &aid
		}
		db.tasks[task.ID] = task
	}
}

func (db *fakeDB) deleteChildren(projectID int64) {
	for id, t := range db.tasks {
		if t.ProjectID == projectID {
			delete(db.tasks, id)
		}
	}
	delete(db.participants, projectID)
}

func (db *fakeDB) CreateProject(_ context.Context, in core.ProjectInput) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.checkRefs(in); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	p := core.Project{
		ID:          db.nextProjectID,
		Name:        in.Name,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	db.nextProjectID++
	db.projects[p.ID] = p
	db.insertChildren(p.ID, in)

	return p.ID, nil
}

func (db *fakeDB) GetProject(_ context.Context, id int64) (core.Project, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	p, ok := db.projects[id]
	if !ok {
		return core.Project{}, core.ErrProjectNotFound
	}
	return p, nil
}

func (db *fakeDB) ListParticipants(_ context.Context, projectID int64) ([]core.Participant, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.Participant, 0)
	for _, uid := range db.participants[projectID] {
		out = append(out, core.Participant{UserID: uid, Name: db.users[uid].Name})
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (db *fakeDB) withAssignee(t core.Task) core.Task {
	if t.AssigneeID != nil {
		if u, ok := db.users[*t.AssigneeID]; ok {
			name := u.Name
			t.AssigneeName = &name
		}
	}
	return t
}

func (db *fakeDB) ListTasks(_ context.Context, projectID int64) ([]core.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.Task, 0)
	for _, t := range db.tasks {
		if t.ProjectID == projectID {
			out = append(out, db.withAssignee(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (db *fakeDB) UpdateProject(_ context.Context, id int64, in core.ProjectInput) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.projects[id]
	if !ok {
		return core.ErrProjectNotFound
	}
	if err := db.checkRefs(in); err != nil {
		return err
	}

	p.Name = in.Name
	p.Description = in.Description
	p.StartDate = in.StartDate
	p.EndDate = in.EndDate
	p.UpdatedAt = time.Now().UTC()
	db.projects[id] = p

	db.deleteChildren(id)
	db.insertChildren(id, in)
	return nil
}

func (db *fakeDB) DeleteProject(_ context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.projects[id]; !ok {
		return core.ErrProjectNotFound
	}
	db.deleteChildren(id)
	delete(db.projects, id)
	return nil
}

func (db *fakeDB) MarkTaskDone(_ context.Context, taskID int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	t, ok := db.tasks[taskID]
	if !ok {
		return false, nil
	}
	t.Done = true
	db.tasks[taskID] = t
	return true, nil
}

func (db *fakeDB) ProjectSummaries(_ context.Context, userID *int64) ([]core.ProjectSummary, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.ProjectSummary, 0)
	for _, p := range db.projects {
		if userID != nil && !db.isParticipant(p.ID, *userID) {
			continue
		}
		s := core.ProjectSummary{ProjectID: p.ID, Name: p.Name, EndDate: p.EndDate}
		for _, t := range db.tasks {
			if t.ProjectID != p.ID {
				continue
			}
			s.TotalCount++
			if t.Done {
				s.DoneCount++
			}
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EndDate.Equal(out[j].EndDate) {
			return out[i].EndDate.Before(out[j].EndDate)
		}
		return out[i].ProjectID > out[j].ProjectID
	})
	return out, nil
}

func (db *fakeDB) isParticipant(projectID, userID int64) bool {
	for _, uid := range db.participants[projectID] {
		if uid == userID {
			return true
		}
	}
	return false
}

func (db *fakeDB) OpenTasks(_ context.Context, projectIDs []int64) ([]core.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	want := make(map[int64]struct{}, len(projectIDs))
	for _, id := range projectIDs {
		want[id] = struct{}{}
	}

	out := make([]core.Task, 0)
	for _, t := range db.tasks {
		if _, ok := want[t.ProjectID]; ok && !t.Done {
			out = append(out, db.withAssignee(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
