package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/julianstephens/tend/internal/auth"
	apperrors "github.com/julianstephens/tend/internal/errors"
	"github.com/julianstephens/tend/internal/models"
	"github.com/julianstephens/tend/internal/streak"
)

// ownedHabit loads a habit and verifies it belongs to the authenticated
// user. Foreign habits read as missing rather than forbidden.
func (s *Server) ownedHabit(c *fiber.Ctx, id string) (models.Habit, error) {
	habit, err := s.store.GetHabit(id)
	if err != nil {
		return models.Habit{}, err
	}
	if habit.UserID != auth.UserID(c) {
		return models.Habit{}, apperrors.NotFound("habit %s not found", id)
	}
	return habit, nil
}

func (s *Server) listHabits(c *fiber.Ctx) error {
	includeInactive := c.QueryBool("include_inactive")
	habits, err := s.store.GetHabitsForUser(auth.UserID(c), includeInactive, false)
	if err != nil {
		return err
	}
	return c.JSON(habits)
}

func (s *Server) createHabit(c *fiber.Ctx) error {
	var req habitRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}
	rule, err := req.rule()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	habit := models.Habit{
		ID:             uuid.New().String(),
		UserID:         auth.UserID(c),
		Name:           req.Name,
		Tag:            req.Tag,
		Description:    req.Description,
		MotivationNote: req.MotivationNote,
		Repetition:     rule.Repetition,
		SpecificDays:   rule.SpecificDays,
		GoalValue:      req.GoalValue,
		IsActive:       true,
		Order:          req.Order,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.IsActive != nil {
		habit.IsActive = *req.IsActive
	}

	if err := s.store.AddHabit(habit); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(habit)
}

func (s *Server) getHabit(c *fiber.Ctx) error {
	habit, err := s.ownedHabit(c, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(habit)
}

func (s *Server) updateHabit(c *fiber.Ctx) error {
	habit, err := s.ownedHabit(c, c.Params("id"))
	if err != nil {
		return err
	}

	var req habitRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}
	rule, err := req.rule()
	if err != nil {
		return err
	}

	today := s.clock.Today()
	updated, err := s.store.MutateHabitLedger(habit.ID, func(h *models.Habit) error {
		// Ledger and the derived streak fields are never accepted from clients
		h.Name = req.Name
		h.Tag = req.Tag
		h.Description = req.Description
		h.MotivationNote = req.MotivationNote
		h.Repetition = rule.Repetition
		h.SpecificDays = rule.SpecificDays
		h.GoalValue = req.GoalValue
		h.Order = req.Order
		if req.IsActive != nil {
			h.IsActive = *req.IsActive
		}

		// A cadence change moves the staleness threshold, so the cached
		// streak fields are recomputed under the new rule.
		res := streak.Recompute(h.Ledger(), h.Rule(), today, h.BestStreak)
		h.CurrentStreak = res.CurrentStreak
		h.BestStreak = res.BestStreak
		h.CurrentCounter = res.CurrentCounter
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (s *Server) deleteHabit(c *fiber.Ctx) error {
	if _, err := s.ownedHabit(c, c.Params("id")); err != nil {
		return err
	}
	if err := s.store.DeleteHabit(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) restoreHabit(c *fiber.Ctx) error {
	id := c.Params("id")

	// GetHabit hides deleted rows, so ownership is checked against the full
	// list before restoring.
	habits, err := s.store.GetHabitsForUser(auth.UserID(c), true, true)
	if err != nil {
		return err
	}
	owned := false
	for _, h := range habits {
		if h.ID == id {
			owned = true
			break
		}
	}
	if !owned {
		return apperrors.NotFound("habit %s not found", id)
	}

	if err := s.store.RestoreHabit(id); err != nil {
		return err
	}
	habit, err := s.store.GetHabit(id)
	if err != nil {
		return err
	}
	return c.JSON(habit)
}
