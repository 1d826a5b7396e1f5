package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/julianstephens/tend/internal/auth"
	apperrors "github.com/julianstephens/tend/internal/errors"
	"github.com/julianstephens/tend/internal/models"
	"github.com/julianstephens/tend/internal/storage"
)

func (s *Server) register(c *fiber.Ctx) error {
	var req registerRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	if _, err := s.store.GetUserByEmail(req.Email); err == nil {
		return apperrors.Conflict("email %s is already registered", req.Email)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.AddUser(user); err != nil {
		return err
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(tokenResponse{Token: token, User: user})
}

func (s *Server) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	user, err := s.store.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.Unauthorized("invalid email or password")
		}
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return apperrors.Unauthorized("invalid email or password")
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return err
	}
	return c.JSON(tokenResponse{Token: token, User: user})
}
