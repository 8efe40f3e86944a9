package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/board"
	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/storage"
)

const (
	sessionCookieName = "task_session"
	sessionContextKey = "session"
)

type session struct {
	id    string
	state *board.State
	store SessionStore
}

func (s *session) save(ctx context.Context) error {
	return s.store.Save(ctx, s.id, s.state)
}

func (s *session) end(ctx context.Context) error {
	return s.store.Delete(ctx, s.id)
}

// SessionMiddleware resolves the task_session cookie to a board.State.
// Unknown or expired sessions start from a fresh state; a missing or
// malformed cookie gets a new session id.
func SessionMiddleware(store SessionStore, logger *log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			id := ""
			if ck, err := c.Cookie(sessionCookieName); err == nil {
				if parsed, err := uuid.Parse(ck.Value); err == nil {
					id = parsed.String()
				}
			}

			var st *board.State
			if id == "" {
				id = uuid.NewString()
				st = board.NewState()
			} else {
				var err error
				st, err = store.Load(ctx, id)
				if errors.Is(err, storage.ErrNotFound) {
					st = board.NewState()
				} else if err != nil {
					logger.WithError(err).WithField("session", id).Error("load session failed")
					return c.String(http.StatusServiceUnavailable, "session store unavailable")
				}
			}

			c.SetCookie(&http.Cookie{
				Name:     sessionCookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			c.Set(sessionContextKey, &session{id: id, state: st, store: store})
			return next(c)
		}
	}
}

func sessionFrom(c echo.Context) *session {
	s, _ := c.Get(sessionContextKey).(*session)
	return s
}
