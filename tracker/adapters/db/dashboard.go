package db

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"deadline-tracker/tracker/core"
)

// ProjectSummaries returns per-project task counts, soonest deadline first.
// A nil userID selects every project.
func (db *DB) ProjectSummaries(ctx context.Context, userID *int64) ([]core.ProjectSummary, error) {
	var (
		sb   strings.Builder
		args []any
	)

	sb.WriteString(`
		SELECT p.id AS project_id,
		       p.name,
		       p.end_date,
		       COUNT(t.id) AS total_count,
		       COALESCE(SUM(CASE WHEN t.done THEN 1 ELSE 0 END), 0) AS done_count
		FROM projects p
		LEFT JOIN tasks t ON t.project_id = p.id
	`)

	if userID != nil {
		sb.WriteString(` WHERE p.id IN (SELECT project_id FROM project_participants WHERE user_id = ?)`)
		args = append(args, *userID)
	}

	sb.WriteString(`
		GROUP BY p.id, p.name, p.end_date
		ORDER BY p.end_date ASC, p.id DESC
	`)

	out := make([]core.ProjectSummary, 0)
	if err := db.conn.SelectContext(ctx, &out, db.conn.Rebind(sb.String()), args...); err != nil {
		return nil, storageErr("project summaries", err)
	}
	return out, nil
}

// OpenTasks returns the not-done tasks of the given projects ordered by id.
func (db *DB) OpenTasks(ctx context.Context, projectIDs []int64) ([]core.Task, error) {
	if len(projectIDs) == 0 {
		return []core.Task{}, nil
	}

	q, args, err := sqlx.In(`
		SELECT `+taskColumns+`
		FROM tasks t
		LEFT JOIN users u ON u.id = t.assignee_id
		WHERE NOT t.done AND t.project_id IN (?)
		ORDER BY t.id ASC
	`, projectIDs)
	if err != nil {
		return nil, storageErr("open tasks", err)
	}

	out := make([]core.Task, 0)
	if err := db.conn.SelectContext(ctx, &out, db.conn.Rebind(q), args...); err != nil {
		return nil, storageErr("open tasks", err)
	}
	return out, nil
}
