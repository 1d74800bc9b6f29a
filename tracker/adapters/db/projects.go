package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"deadline-tracker/tracker/core"
)

const taskColumns = `
	t.id, t.project_id, t.title, t.done, t.due_date, t.assignee_id, u.name AS assignee_name
`

// CreateProject inserts the project with its tasks and participant links in
// one transaction.
func (db *DB) CreateProject(ctx context.Context, in core.ProjectInput) (int64, error) {
	const q = `
		INSERT INTO projects (name, description, start_date, end_date)
		VALUES (?, NULLIF(?, ''), ?, ?)
		RETURNING id;
	`

	var id int64
	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.QueryRowxContext(ctx, tx.Rebind(q), in.Name, in.Description, in.StartDate, in.EndDate).Scan(&id); err != nil {
			return writeErr("insert project", err)
		}
		return insertChildren(ctx, tx, id, in)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (db *DB) GetProject(ctx context.Context, id int64) (core.Project, error) {
	const q = `
		SELECT id, name, COALESCE(description, '') AS description, start_date, end_date, created_at, updated_at
		FROM projects
		WHERE id = ?;
	`

	var p core.Project
	if err := db.conn.GetContext(ctx, &p, db.conn.Rebind(q), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Project{}, core.ErrProjectNotFound
		}
		return core.Project{}, storageErr("get project", err)
	}
	return p, nil
}

func (db *DB) ListParticipants(ctx context.Context, projectID int64) ([]core.Participant, error) {
	const q = `
		SELECT u.id AS user_id, u.name
		FROM project_participants pp
		JOIN users u ON u.id = pp.user_id
		WHERE pp.project_id = ?
		ORDER BY lower(u.name) ASC, u.id ASC;
	`

	out := make([]core.Participant, 0)
	if err := db.conn.SelectContext(ctx, &out, db.conn.Rebind(q), projectID); err != nil {
		return nil, storageErr("list participants", err)
	}
	return out, nil
}

func (db *DB) ListTasks(ctx context.Context, projectID int64) ([]core.Task, error) {
	const q = `
		SELECT ` + taskColumns + `
		FROM tasks t
		LEFT JOIN users u ON u.id = t.assignee_id
		WHERE t.project_id = ?
		ORDER BY t.id ASC;
	`

	out := make([]core.Task, 0)
	if err := db.conn.SelectContext(ctx, &out, db.conn.Rebind(q), projectID); err != nil {
		return nil, storageErr("list tasks", err)
	}
	return out, nil
}

// UpdateProject rewrites the project row and recreates all of its tasks and
// participant links in one transaction.
func (db *DB) UpdateProject(ctx context.Context, id int64, in core.ProjectInput) error {
	const q = `
		UPDATE projects
		SET name = ?,
		    description = NULLIF(?, ''),
		    start_date = ?,
		    end_date = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?;
	`

	return db.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(q), in.Name, in.Description, in.StartDate, in.EndDate, id)
		if err != nil {
			return writeErr("update project", err)
		}
		if aff, _ := res.RowsAffected(); aff == 0 {
			return core.ErrProjectNotFound
		}

		if err := deleteChildren(ctx, tx, id); err != nil {
			return err
		}
		return insertChildren(ctx, tx, id, in)
	})
}

// DeleteProject removes tasks, participant links and the project row, in
// that order, in one transaction.
func (db *DB) DeleteProject(ctx context.Context, id int64) error {
	return db.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := deleteChildren(ctx, tx, id); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM projects WHERE id = ?`), id)
		if err != nil {
			return storageErr("delete project", err)
		}
		if aff, _ := res.RowsAffected(); aff == 0 {
			return core.ErrProjectNotFound
		}
		return nil
	})
}

func (db *DB) MarkTaskDone(ctx context.Context, taskID int64) (bool, error) {
	const q = `
		UPDATE tasks
		SET done = TRUE,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?;
	`

	res, err := db.conn.ExecContext(ctx, db.conn.Rebind(q), taskID)
	if err != nil {
		return false, storageErr("mark task done", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, storageErr("mark task done", err)
	}
	return aff > 0, nil
}

// tx helpers

func insertChildren(ctx context.Context, tx *sqlx.Tx, projectID int64, in core.ProjectInput) error {
	const taskQ = `
		INSERT INTO tasks (project_id, title, done, due_date, assignee_id)
		VALUES (?, ?, ?, ?, ?);
	`
	for _, t := range in.Tasks {
		if _, err := tx.ExecContext(ctx, tx.Rebind(taskQ), projectID, t.Title, t.Done, t.DueDate, t.AssigneeID); err != nil {
			return writeErr("insert task", err)
		}
	}

	const memberQ = `INSERT INTO project_participants (project_id, user_id) VALUES (?, ?);`
	for _, uid := range in.ParticipantIDs {
		if _, err := tx.ExecContext(ctx, tx.Rebind(memberQ), projectID, uid); err != nil {
			return writeErr("insert participant", err)
		}
	}
	return nil
}

func deleteChildren(ctx context.Context, tx *sqlx.Tx, projectID int64) error {
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM tasks WHERE project_id = ?`), projectID); err != nil {
		return storageErr("delete tasks", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM project_participants WHERE project_id = ?`), projectID); err != nil {
		return storageErr("delete participants", err)
	}
	return nil
}

// writeErr maps constraint violations of project writes to domain errors.
// The only foreign keys a caller controls point at users.
func writeErr(op string, err error) error {
	switch {
	case isForeignKeyViolation(err):
		return core.ErrUserNotFound
	case isCheckViolation(err):
		return core.ErrProjectInvalidArgs
	default:
		return storageErr(op, err)
	}
}
