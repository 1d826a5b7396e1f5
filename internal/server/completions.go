package server

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/julianstephens/tend/internal/errors"
	"github.com/julianstephens/tend/internal/ledger"
	"github.com/julianstephens/tend/internal/models"
	"github.com/julianstephens/tend/internal/streak"
)

// applyLedgerChanges mutates one habit's ledger and recomputes its cached
// streak fields inside the store's per-habit critical section.
func (s *Server) applyLedgerChanges(habitID string, changes []ledger.Change) (models.Habit, error) {
	today := s.clock.Today()
	return s.store.MutateHabitLedger(habitID, func(h *models.Habit) error {
		led := h.Ledger()
		for _, ch := range changes {
			if err := led.SetCompleted(ch.Date, ch.Completed); err != nil {
				return apperrors.InvalidWrap(err, "invalid completion date")
			}
		}
		h.CompletedDays = led.Encoded()

		res := streak.Recompute(led, h.Rule(), today, h.BestStreak)
		h.CurrentStreak = res.CurrentStreak
		h.BestStreak = res.BestStreak
		h.CurrentCounter = res.CurrentCounter
		return nil
	})
}

func (s *Server) toggleCompletion(c *fiber.Ctx) error {
	habit, err := s.ownedHabit(c, c.Params("id"))
	if err != nil {
		return err
	}

	var req completionRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	updated, err := s.applyLedgerChanges(habit.ID, []ledger.Change{
		{HabitID: habit.ID, Date: req.Date, Completed: *req.Completed},
	})
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (s *Server) listCompletions(c *fiber.Ctx) error {
	habit, err := s.ownedHabit(c, c.Params("id"))
	if err != nil {
		return err
	}

	led := habit.Ledger()
	start := c.Query("start")
	end := c.Query("end")
	if start == "" && end == "" {
		return c.JSON(led.Records(habit.ID))
	}

	records, err := led.RecordsInRange(habit.ID, start, end)
	if err != nil {
		return apperrors.InvalidWrap(err, "invalid date range")
	}
	return c.JSON(records)
}

func (s *Server) batchCompletions(c *fiber.Ctx) error {
	var req batchRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	// Validate ownership and collect ledgers before touching anything, so a
	// bad change anywhere rejects the whole batch.
	changes := make([]ledger.Change, 0, len(req.Changes))
	ledgers := make(map[string]*ledger.Ledger)
	for _, ch := range req.Changes {
		if _, ok := ledgers[ch.HabitID]; !ok {
			habit, err := s.ownedHabit(c, ch.HabitID)
			if err != nil {
				return err
			}
			ledgers[ch.HabitID] = habit.Ledger()
		}
		changes = append(changes, ledger.Change{
			HabitID:   ch.HabitID,
			Date:      ch.Date,
			Completed: *ch.Completed,
		})
	}

	affected, err := ledger.BatchApply(ledgers, changes)
	if err != nil {
		return apperrors.InvalidWrap(err, "invalid batch")
	}

	// Persist per habit, replaying that habit's changes inside its critical
	// section. Affected ids keep first-seen order.
	byHabit := make(map[string][]ledger.Change)
	for _, ch := range changes {
		byHabit[ch.HabitID] = append(byHabit[ch.HabitID], ch)
	}

	habits := make([]models.Habit, 0, len(affected))
	for _, id := range affected {
		habit, err := s.applyLedgerChanges(id, byHabit[id])
		if err != nil {
			return err
		}
		habits = append(habits, habit)
	}
	return c.JSON(batchResponse{Habits: habits})
}
