package service

import (
	"context"
	"fmt"
	"strings"

	"lendit/internal/database"
	"lendit/internal/domain"
	"lendit/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewUserService(repo domain.Repository, logger *zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required: %w", database.ErrInvalidCondition)
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("malformed email %q: %w", email, database.ErrInvalidCondition)
	}
	return nil
}

func (s *UserService) CreateUser(ctx context.Context, user *models.User) error {
	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.TrimSpace(user.Email)

	if user.Name == "" {
		return fmt.Errorf("name is required: %w", database.ErrInvalidCondition)
	}
	if err := validateEmail(user.Email); err != nil {
		return err
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", user.ID).Msg("user created")
	return nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.GetAllUsers(ctx)
}

// UpdateUser применяет частичное обновление профиля.
func (s *UserService) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("name must not be blank: %w", database.ErrInvalidCondition)
	}
	if patch.Email != nil {
		trimmed := strings.TrimSpace(*patch.Email)
		if err := validateEmail(trimmed); err != nil {
			return nil, err
		}
		patch.Email = &trimmed
	}
	return s.repo.UpdateUser(ctx, id, patch)
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}
