package core

import (
	"context"
	"time"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// DB is the relational store behind the service. Inputs reaching it are
// already validated and normalized.
type DB interface {
	Pinger

	// users
	UpsertUser(ctx context.Context, name, normalized string) (User, error)
	CreateUser(ctx context.Context, name, normalized string) (User, error)
	GetUserByName(ctx context.Context, normalized string) (User, error)
	TouchLogin(ctx context.Context, id int64) (User, error)
	ListUsers(ctx context.Context) ([]User, error)

	// projects
	CreateProject(ctx context.Context, in ProjectInput) (int64, error)
	GetProject(ctx context.Context, id int64) (Project, error)
	ListParticipants(ctx context.Context, projectID int64) ([]Participant, error)
	ListTasks(ctx context.Context, projectID int64) ([]Task, error)
	UpdateProject(ctx context.Context, id int64, in ProjectInput) error
	DeleteProject(ctx context.Context, id int64) error
	MarkTaskDone(ctx context.Context, taskID int64) (bool, error)

	// dashboard
	ProjectSummaries(ctx context.Context, userID *int64) ([]ProjectSummary, error)
	OpenTasks(ctx context.Context, projectIDs []int64) ([]Task, error)
}

// SessionStore keeps issued sessions by token.
type SessionStore interface {
	Save(ctx context.Context, s Session, ttl time.Duration) error
	Get(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
}
