package db

import (
	"context"
	"database/sql"
	"errors"

	"deadline-tracker/tracker/core"
)

const userColumns = `id, name, created_at, last_login_at`

// UpsertUser inserts the user or, when the normalized name is taken, only
// stamps the login time of the existing row.
func (db *DB) UpsertUser(ctx context.Context, name, normalized string) (core.User, error) {
	const q = `
		INSERT INTO users (name, name_normalized, last_login_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (name_normalized) DO UPDATE SET last_login_at = CURRENT_TIMESTAMP;
	`

	if _, err := db.conn.ExecContext(ctx, db.conn.Rebind(q), name, normalized); err != nil {
		if isCheckViolation(err) {
			return core.User{}, core.ErrUserInvalidArgs
		}
		return core.User{}, storageErr("upsert user", err)
	}
	return db.GetUserByName(ctx, normalized)
}

func (db *DB) CreateUser(ctx context.Context, name, normalized string) (core.User, error) {
	const q = `
		INSERT INTO users (name, name_normalized, last_login_at)
		VALUES (?, ?, CURRENT_TIMESTAMP);
	`

	if _, err := db.conn.ExecContext(ctx, db.conn.Rebind(q), name, normalized); err != nil {
		if isUniqueViolation(err) {
			return core.User{}, core.ErrUserAlreadyExists
		}
		if isCheckViolation(err) {
			return core.User{}, core.ErrUserInvalidArgs
		}
		return core.User{}, storageErr("insert user", err)
	}
	return db.GetUserByName(ctx, normalized)
}

func (db *DB) GetUserByName(ctx context.Context, normalized string) (core.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE name_normalized = ?`

	var u core.User
	if err := db.conn.GetContext(ctx, &u, db.conn.Rebind(q), normalized); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, core.ErrUserNotFound
		}
		return core.User{}, storageErr("get user", err)
	}
	return u, nil
}

func (db *DB) TouchLogin(ctx context.Context, id int64) (core.User, error) {
	const q = `UPDATE users SET last_login_at = CURRENT_TIMESTAMP WHERE id = ?`

	res, err := db.conn.ExecContext(ctx, db.conn.Rebind(q), id)
	if err != nil {
		return core.User{}, storageErr("touch user login", err)
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return core.User{}, core.ErrUserNotFound
	}

	const sel = `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	var u core.User
	if err := db.conn.GetContext(ctx, &u, db.conn.Rebind(sel), id); err != nil {
		return core.User{}, storageErr("get user", err)
	}
	return u, nil
}

func (db *DB) ListUsers(ctx context.Context) ([]core.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY lower(name) ASC, id ASC`

	out := make([]core.User, 0)
	if err := db.conn.SelectContext(ctx, &out, q); err != nil {
		return nil, storageErr("list users", err)
	}
	return out, nil
}
