package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
	userRepo "github.com/m04kA/SMC-ShareIt/internal/infra/storage/user"
	"github.com/m04kA/SMC-ShareIt/internal/service/users/models"
)

// Service сервис пользователей
type Service struct {
	userRepo UserRepository
	logger   Logger
}

func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{userRepo: userRepo, logger: logger}
}

// Create регистрирует пользователя
func (s *Service) Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error) {
	s.logger.Info("Create: registering user email=%s", req.Email)

	if err := validateEmail(req.Email); err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, err
	}
	if err := validateName(req.Name); err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, &domain.User{Name: req.Name, Email: req.Email})
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailAlreadyExists) {
			s.logger.Warn("Create: email=%s already taken", req.Email)
			return nil, ErrEmailAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: user id=%d created", user.ID)
	return models.FromDomainUser(user), nil
}

// Update частично обновляет пользователя; пустые поля не меняются
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.UserResponse, error) {
	s.logger.Info("Update: user id=%d", id)

	user, err := s.getUser(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		if err := validateName(*req.Name); err != nil {
			return nil, err
		}
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != "" {
		if err := validateEmail(*req.Email); err != nil {
			s.logger.Warn("Update: %v", err)
			return nil, err
		}
		user.Email = *req.Email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, userRepo.ErrEmailAlreadyExists):
			s.logger.Warn("Update: email=%s already taken", user.Email)
			return nil, ErrEmailAlreadyExists
		case errors.Is(err, userRepo.ErrUserNotFound):
			return nil, ErrUserNotFound
		default:
			s.logger.Error("Update: repository error for user id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	return models.FromDomainUser(user), nil
}

// GetByID получает пользователя
func (s *Service) GetByID(ctx context.Context, id int64) (*models.UserResponse, error) {
	user, err := s.getUser(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainUser(user), nil
}

// List все пользователи
func (s *Service) List(ctx context.Context) ([]*models.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainUserList(users), nil
}

// Delete удаляет пользователя
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: user id=%d", id)

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Delete: user id=%d not found", id)
			return ErrUserNotFound
		}
		s.logger.Error("Delete: repository error for user id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) getUser(ctx context.Context, op string, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("%s: user id=%d not found", op, id)
			return nil, ErrUserNotFound
		}
		s.logger.Error("%s: repository error for user id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return user, nil
}
