package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/julianstephens/tend/internal/analytics"
	"github.com/julianstephens/tend/internal/auth"
	"github.com/julianstephens/tend/internal/constants"
	"github.com/julianstephens/tend/internal/dateutil"
	apperrors "github.com/julianstephens/tend/internal/errors"
	"github.com/julianstephens/tend/internal/models"
	"github.com/julianstephens/tend/internal/storage"
)

// reportWindow resolves the start/end query params, defaulting to the 30 days
// ending today.
func (s *Server) reportWindow(c *fiber.Ctx) (start, end string, err error) {
	today := s.clock.Today()
	start = c.Query("start")
	end = c.Query("end")
	if end == "" {
		end = today
	}
	if start == "" {
		t, parseErr := dateutil.Parse(today)
		if parseErr != nil {
			return "", "", parseErr
		}
		start = t.AddDate(0, 0, -29).Format(constants.DateFormat)
	}

	if _, err := dateutil.DaysBetween(start, end); err != nil {
		return "", "", apperrors.InvalidWrap(err, "invalid date range")
	}
	return start, end, nil
}

// userOptions loads a user's label options, falling back to the defaults when
// none have been saved yet.
func (s *Server) userOptions(userID string) (models.UserOptions, error) {
	opts, err := s.store.GetOptions(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return defaultOptions(userID), nil
		}
		return models.UserOptions{}, err
	}
	return opts, nil
}

func (s *Server) habitSummary(c *fiber.Ctx) error {
	habit, err := s.ownedHabit(c, c.Params("id"))
	if err != nil {
		return err
	}
	start, end, err := s.reportWindow(c)
	if err != nil {
		return err
	}

	summary, err := analytics.Summarize(&habit, start, end, s.clock.Today())
	if err != nil {
		return apperrors.InvalidWrap(err, "invalid summary window")
	}
	return c.JSON(summary)
}

func (s *Server) overviewReport(c *fiber.Ctx) error {
	start, end, err := s.reportWindow(c)
	if err != nil {
		return err
	}

	// Inactive habits are fetched too so totalHabits can count them; the
	// aggregation itself excludes them from activity figures.
	habits, err := s.store.GetHabitsForUser(auth.UserID(c), true, false)
	if err != nil {
		return err
	}

	report, err := analytics.Overview(habits, start, end, s.clock.Today())
	if err != nil {
		return apperrors.InvalidWrap(err, "invalid report window")
	}
	return c.JSON(report)
}

func (s *Server) journalReport(c *fiber.Ctx) error {
	start, end, err := s.reportWindow(c)
	if err != nil {
		return err
	}

	userID := auth.UserID(c)
	notes, err := s.store.GetNotes(userID, start, end)
	if err != nil {
		return err
	}
	opts, err := s.userOptions(userID)
	if err != nil {
		return err
	}

	return c.JSON(analytics.Journal(notes, opts))
}

func (s *Server) correlationReport(c *fiber.Ctx) error {
	habit, err := s.ownedHabit(c, c.Params("id"))
	if err != nil {
		return err
	}
	start, end, err := s.reportWindow(c)
	if err != nil {
		return err
	}

	userID := auth.UserID(c)
	notes, err := s.store.GetNotes(userID, start, end)
	if err != nil {
		return err
	}
	opts, err := s.userOptions(userID)
	if err != nil {
		return err
	}

	return c.JSON(analytics.Correlate(&habit, notes, opts))
}
