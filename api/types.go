package api

import (
	"context"

	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/board"
)

// SessionStore persists one board.State per browser session.
type SessionStore interface {
	Load(ctx context.Context, id string) (*board.State, error)
	Save(ctx context.Context, id string, st *board.State) error
	Delete(ctx context.Context, id string) error
}
