package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/board"
	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/render"
)

// Register wires up the board routes on the provided Echo instance. Every
// POST is one UI event and answers with a redirect to the page.
func Register(e *echo.Echo, ctl *board.Controller, sessions SessionStore, logger *log.Logger) {
	e.GET("/healthz", healthz())

	ui := e.Group("", SessionMiddleware(sessions, logger))
	ui.GET("/", getPage(ctl, logger))
	ui.POST("/refresh", action("refresh", ctl, logger, refresh(ctl)))
	ui.POST("/filter", action("filter", ctl, logger, changeFilter))
	ui.POST("/tasks", action("submit", ctl, logger, submit(ctl)))
	ui.POST("/tasks/new", action("new", ctl, logger, resetForm(ctl)))
	ui.POST("/tasks/cancel", action("cancel", ctl, logger, resetForm(ctl)))
	ui.POST("/tasks/:id/edit", action("edit", ctl, logger, edit(ctl)))
	ui.POST("/tasks/:id/delete", action("delete", ctl, logger, requestDelete(ctl)))
	ui.POST("/tasks/:id/delete/confirm", action("confirm_delete", ctl, logger, confirmDelete(ctl)))
	ui.POST("/alert/dismiss", action("dismiss_alert", ctl, logger, dismissAlert(ctl)))
	ui.POST("/session/end", endSession(logger))
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

type actionFunc func(c echo.Context, st *board.State, m *actionMetrics) error

// action runs fn against the session state, saves the state and redirects
// back to the page. A session that has not been opened yet is opened before
// fn runs, so the event always applies to a loaded board. Upstream failures
// are already reflected in the state, so they are logged and never turned
// into an error page.
func action(name string, ctl *board.Controller, logger *log.Logger, fn actionFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		metrics := newActionMetrics(logger, name)
		status := http.StatusSeeOther
		var actionErr error
		defer func() {
			metrics.Log(status, actionErr)
		}()

		sess := sessionFrom(c)
		if sess == nil {
			status = http.StatusInternalServerError
			metrics.SetErrorStage("session")
			return c.String(status, "no session")
		}

		if !sess.state.Loaded {
			ctx := c.Request().Context()
			if openErr := timed(metrics, func() error { return ctl.Open(ctx, sess.state) }); openErr != nil {
				logger.WithError(openErr).Warn("initial load failed")
			}
		}

		actionErr = fn(c, sess.state, metrics)
		var httpErr *echo.HTTPError
		if errors.As(actionErr, &httpErr) {
			status = httpErr.Code
			metrics.SetErrorStage("request")
			return c.String(status, fmt.Sprint(httpErr.Message))
		}
		if actionErr != nil {
			metrics.SetErrorStage("upstream")
		}
		metrics.SetTasksCached(len(sess.state.Tasks))

		if err := sess.save(c.Request().Context()); err != nil {
			status = http.StatusServiceUnavailable
			metrics.SetErrorStage("session_save")
			actionErr = err
			return c.String(status, "session store unavailable")
		}
		return c.Redirect(status, "/")
	}
}

func timed(m *actionMetrics, fn func() error) error {
	start := time.Now()
	err := fn()
	m.ObserveUpstream(time.Since(start))
	return err
}

func taskID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}
	return id, nil
}

func getPage(ctl *board.Controller, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		metrics := newActionMetrics(logger, "page")
		status := http.StatusOK
		defer func() {
			metrics.Log(status, err)
		}()

		sess := sessionFrom(c)
		if sess == nil {
			status = http.StatusInternalServerError
			return c.String(status, "no session")
		}
		ctx := c.Request().Context()
		if !sess.state.Loaded {
			if openErr := timed(metrics, func() error { return ctl.Open(ctx, sess.state) }); openErr != nil {
				metrics.SetErrorStage("upstream")
				logger.WithError(openErr).Warn("initial load failed")
			}
		}
		metrics.SetTasksCached(len(sess.state.Tasks))
		if saveErr := sess.save(ctx); saveErr != nil {
			status = http.StatusServiceUnavailable
			metrics.SetErrorStage("session_save")
			return c.String(status, "session store unavailable")
		}
		err = c.Render(status, render.PageTemplate, sess.state)
		if err != nil {
			metrics.SetErrorStage("render")
		}
		return err
	}
}

func refresh(ctl *board.Controller) actionFunc {
	return func(c echo.Context, st *board.State, m *actionMetrics) error {
		ctx := c.Request().Context()
		return timed(m, func() error { return ctl.Load(ctx, st) })
	}
}

func changeFilter(c echo.Context, st *board.State, _ *actionMetrics) error {
	st.SetFilter(c.FormValue("status"))
	return nil
}

func submit(ctl *board.Controller) actionFunc {
	return func(c echo.Context, st *board.State, m *actionMetrics) error {
		form := board.Form{
			ID:          c.FormValue("id"),
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
			Status:      c.FormValue("status"),
			Category:    c.FormValue("category"),
			Priority:    c.FormValue("priority"),
			DueDate:     c.FormValue("due_date"),
		}
		ctx := c.Request().Context()
		return timed(m, func() error { return ctl.Submit(ctx, st, form) })
	}
}

func resetForm(ctl *board.Controller) actionFunc {
	return func(_ echo.Context, st *board.State, _ *actionMetrics) error {
		ctl.Cancel(st)
		return nil
	}
}

func edit(ctl *board.Controller) actionFunc {
	return func(c echo.Context, st *board.State, _ *actionMetrics) error {
		id, err := taskID(c)
		if err != nil {
			return err
		}
		ctl.Edit(st, id)
		return nil
	}
}

func requestDelete(ctl *board.Controller) actionFunc {
	return func(c echo.Context, st *board.State, _ *actionMetrics) error {
		id, err := taskID(c)
		if err != nil {
			return err
		}
		ctl.RequestDelete(st, id)
		return nil
	}
}

func confirmDelete(ctl *board.Controller) actionFunc {
	return func(c echo.Context, st *board.State, m *actionMetrics) error {
		id, err := taskID(c)
		if err != nil {
			return err
		}
		if st.PendingDelete != id {
			// Stale confirmation for a prompt that is no longer open.
			return nil
		}
		yes := c.FormValue("answer") == "yes"
		ctx := c.Request().Context()
		return timed(m, func() error { return ctl.ConfirmDelete(ctx, st, yes) })
	}
}

func dismissAlert(ctl *board.Controller) actionFunc {
	return func(_ echo.Context, st *board.State, _ *actionMetrics) error {
		ctl.DismissAlert(st)
		return nil
	}
}

func endSession(logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := sessionFrom(c)
		if sess != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			if err := sess.end(ctx); err != nil {
				logger.WithError(err).Warn("end session failed")
			}
		}
		c.SetCookie(&http.Cookie{
			Name:     sessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
		return c.Redirect(http.StatusSeeOther, "/")
	}
}
