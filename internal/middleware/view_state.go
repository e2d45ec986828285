package middleware

import (
	"commission-central/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	viewStateKey      = "view_state"
	sessionPeriodKey  = "selected_period"
	sessionDetailsKey = "show_details"
)

// ViewStateMiddleware loads the viewer's display state from the cookie
// session. A missing or unreadable session yields the defaults.
func ViewStateMiddleware(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view := models.ViewState{SelectedPeriod: models.DefaultPeriod}

		sess, err := store.Get(c)
		if err == nil {
			if period, ok := sess.Get(sessionPeriodKey).(string); ok && period != "" {
				view.SelectedPeriod = period
			}
			if show, ok := sess.Get(sessionDetailsKey).(bool); ok {
				view.ShowDetails = show
			}
		}

		c.Locals(viewStateKey, view)
		return c.Next()
	}
}

// CurrentViewState returns the state loaded by ViewStateMiddleware.
func CurrentViewState(c *fiber.Ctx) models.ViewState {
	if view, ok := c.Locals(viewStateKey).(models.ViewState); ok {
		return view
	}
	return models.ViewState{SelectedPeriod: models.DefaultPeriod}
}

// SaveViewState persists view to the cookie session and refreshes the
// request-scoped copy.
func SaveViewState(c *fiber.Ctx, store *session.Store, view models.ViewState) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessionPeriodKey, view.SelectedPeriod)
	sess.Set(sessionDetailsKey, view.ShowDetails)
	if err := sess.Save(); err != nil {
		return err
	}

	c.Locals(viewStateKey, view)
	return nil
}

// ValidPeriod reports whether period is one of the header's options.
func ValidPeriod(period string) bool {
	for _, p := range models.PeriodOptions {
		if p == period {
			return true
		}
	}
	return false
}
