package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/julianstephens/tend/internal/errors"
	"github.com/julianstephens/tend/internal/models"
	"github.com/julianstephens/tend/internal/recurrence"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type habitRequest struct {
	Name           string  `json:"name" validate:"required"`
	Tag            string  `json:"tag"`
	Description    string  `json:"description"`
	MotivationNote string  `json:"motivation_note"`
	Repetition     string  `json:"repetition" validate:"required"`
	SpecificDays   []int   `json:"specific_days"`
	GoalValue      float64 `json:"goal_value"`
	IsActive       *bool   `json:"is_active"`
	Order          int     `json:"order"`
}

// rule coerces the loose wire payload into a validated recurrence rule.
// Clients send repetition in whatever case they like; the core only sees the
// strict lowercase form.
func (r habitRequest) rule() (recurrence.Rule, error) {
	rule := recurrence.Rule{
		Repetition:   recurrence.Repetition(strings.ToLower(strings.TrimSpace(r.Repetition))),
		SpecificDays: r.SpecificDays,
	}
	if err := rule.Validate(); err != nil {
		return recurrence.Rule{}, apperrors.InvalidWrap(err, "invalid recurrence")
	}
	return rule, nil
}

type completionRequest struct {
	Date      string `json:"date" validate:"required"`
	Completed *bool  `json:"completed" validate:"required"`
}

type batchChange struct {
	HabitID   string `json:"habit_id" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Completed *bool  `json:"completed" validate:"required"`
}

type batchRequest struct {
	Changes []batchChange `json:"changes" validate:"required,min=1,dive"`
}

type batchResponse struct {
	Habits []models.Habit `json:"habits"`
}

type noteRequest struct {
	Content           string `json:"content"`
	Mood              string `json:"mood"`
	ProductivityLevel string `json:"productivity_level"`
}

type labelOptionPayload struct {
	Label string  `json:"label" validate:"required"`
	Value float64 `json:"value"`
}

type optionsRequest struct {
	Moods              []labelOptionPayload `json:"moods" validate:"dive"`
	ProductivityLevels []labelOptionPayload `json:"productivity_levels" validate:"dive"`
}

func (r optionsRequest) model(userID string) models.UserOptions {
	opts := models.UserOptions{
		UserID:             userID,
		Moods:              make([]models.LabelOption, 0, len(r.Moods)),
		ProductivityLevels: make([]models.LabelOption, 0, len(r.ProductivityLevels)),
	}
	for _, m := range r.Moods {
		opts.Moods = append(opts.Moods, models.LabelOption{Label: m.Label, Value: m.Value})
	}
	for _, p := range r.ProductivityLevels {
		opts.ProductivityLevels = append(opts.ProductivityLevels, models.LabelOption{Label: p.Label, Value: p.Value})
	}
	return opts
}

// parseBody decodes and validates a JSON request body, mapping failures to
// 400s.
func (s *Server) parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.InvalidWrap(err, "malformed request body")
	}
	if err := s.validate.Struct(dst); err != nil {
		return apperrors.InvalidWrap(err, "invalid request")
	}
	return nil
}
