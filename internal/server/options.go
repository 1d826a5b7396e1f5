package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/julianstephens/tend/internal/auth"
	"github.com/julianstephens/tend/internal/models"
)

// defaultOptions is the label set users start from before customizing.
func defaultOptions(userID string) models.UserOptions {
	return models.UserOptions{
		UserID: userID,
		Moods: []models.LabelOption{
			{Label: "awful", Value: 1},
			{Label: "bad", Value: 2},
			{Label: "okay", Value: 3},
			{Label: "good", Value: 4},
			{Label: "great", Value: 5},
		},
		ProductivityLevels: []models.LabelOption{
			{Label: "low", Value: 1},
			{Label: "medium", Value: 2},
			{Label: "high", Value: 3},
		},
	}
}

func (s *Server) getOptions(c *fiber.Ctx) error {
	opts, err := s.userOptions(auth.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(opts)
}

func (s *Server) saveOptions(c *fiber.Ctx) error {
	var req optionsRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	opts := req.model(auth.UserID(c))
	if err := s.store.SaveOptions(opts); err != nil {
		return err
	}
	return c.JSON(opts)
}
