package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/julianstephens/tend/internal/auth"
	"github.com/julianstephens/tend/internal/dateutil"
	apperrors "github.com/julianstephens/tend/internal/errors"
	"github.com/julianstephens/tend/internal/models"
	"github.com/julianstephens/tend/internal/storage"
)

// noteDay validates the :day route param.
func noteDay(c *fiber.Ctx) (string, error) {
	day := c.Params("day")
	if _, err := dateutil.Parse(day); err != nil {
		return "", apperrors.InvalidWrap(err, "invalid day")
	}
	return day, nil
}

func (s *Server) listNotes(c *fiber.Ctx) error {
	start, end, err := s.reportWindow(c)
	if err != nil {
		return err
	}
	notes, err := s.store.GetNotes(auth.UserID(c), start, end)
	if err != nil {
		return err
	}
	return c.JSON(notes)
}

func (s *Server) getNote(c *fiber.Ctx) error {
	day, err := noteDay(c)
	if err != nil {
		return err
	}
	note, err := s.store.GetNote(auth.UserID(c), day)
	if err != nil {
		return err
	}
	return c.JSON(note)
}

func (s *Server) saveNote(c *fiber.Ctx) error {
	day, err := noteDay(c)
	if err != nil {
		return err
	}

	var req noteRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	userID := auth.UserID(c)
	now := time.Now().UTC()

	note := models.JournalNote{
		ID:                uuid.New().String(),
		UserID:            userID,
		Day:               day,
		Content:           req.Content,
		Mood:              req.Mood,
		ProductivityLevel: req.ProductivityLevel,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	// Preserve identity and creation time when rewriting an existing note
	if existing, err := s.store.GetNote(userID, day); err == nil {
		note.ID = existing.ID
		note.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	if err := s.store.SaveNote(note); err != nil {
		return err
	}
	return c.JSON(note)
}

func (s *Server) deleteNote(c *fiber.Ctx) error {
	day, err := noteDay(c)
	if err != nil {
		return err
	}
	if err := s.store.DeleteNote(auth.UserID(c), day); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
