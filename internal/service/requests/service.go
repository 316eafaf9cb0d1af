package requests

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
	requestRepo "github.com/m04kA/SMC-ShareIt/internal/infra/storage/request"
	"github.com/m04kA/SMC-ShareIt/internal/service/requests/models"
)

// Service сервис запросов вещей
type Service struct {
	requestRepo  RequestRepository
	userRepo     UserRepository
	itemRepo     ItemRepository
	timeProvider TimeProvider
	logger       Logger
}

func NewService(requestRepo RequestRepository, userRepo UserRepository, itemRepo ItemRepository, logger Logger) *Service {
	return &Service{
		requestRepo:  requestRepo,
		userRepo:     userRepo,
		itemRepo:     itemRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create сохраняет запрос пользователя
func (s *Service) Create(ctx context.Context, req *models.CreateRequestRequest) (*models.RequestResponse, error) {
	s.logger.Info("Create: requester=%d", req.RequesterID)

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if domain.TooLong(description, domain.MaxDescriptionLength) {
		return nil, fmt.Errorf("%w: description is too long", ErrInvalidInput)
	}

	if err := s.ensureUser(ctx, "Create", req.RequesterID); err != nil {
		return nil, err
	}

	created, err := s.requestRepo.Create(ctx, &domain.ItemRequest{
		Description: description,
		RequesterID: req.RequesterID,
		Created:     s.timeProvider.Now(),
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: request id=%d created by user=%d", created.ID, created.RequesterID)
	return models.FromDomainRequest(created), nil
}

// ListOwn запросы пользователя, от новых к старым
func (s *Service) ListOwn(ctx context.Context, userID int64) ([]*models.RequestResponse, error) {
	if err := s.ensureUser(ctx, "ListOwn", userID); err != nil {
		return nil, err
	}

	reqs, err := s.requestRepo.ListByRequester(ctx, userID)
	if err != nil {
		s.logger.Error("ListOwn: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListOwn - repository error: %v", ErrInternal, err)
	}

	if err := s.attachItems(ctx, "ListOwn", reqs); err != nil {
		return nil, err
	}
	return models.FromDomainRequestList(reqs), nil
}

// ListOthers запросы остальных пользователей постранично
func (s *Service) ListOthers(ctx context.Context, userID int64, page domain.Page) ([]*models.RequestResponse, error) {
	if err := s.ensureUser(ctx, "ListOthers", userID); err != nil {
		return nil, err
	}

	reqs, err := s.requestRepo.ListOthers(ctx, userID, page)
	if err != nil {
		s.logger.Error("ListOthers: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListOthers - repository error: %v", ErrInternal, err)
	}

	if err := s.attachItems(ctx, "ListOthers", reqs); err != nil {
		return nil, err
	}
	return models.FromDomainRequestList(reqs), nil
}

// GetByID запрос по идентификатору; доступен любому существующему пользователю
func (s *Service) GetByID(ctx context.Context, userID, requestID int64) (*models.RequestResponse, error) {
	if err := s.ensureUser(ctx, "GetByID", userID); err != nil {
		return nil, err
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("GetByID: request id=%d not found", requestID)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("GetByID: repository error for request id=%d: %v", requestID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.attachItems(ctx, "GetByID", []*domain.ItemRequest{req}); err != nil {
		return nil, err
	}
	return models.FromDomainRequest(req), nil
}

func (s *Service) attachItems(ctx context.Context, op string, reqs []*domain.ItemRequest) error {
	if len(reqs) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.ID)
	}

	items, err := s.itemRepo.ListByRequestIDs(ctx, ids)
	if err != nil {
		s.logger.Error("%s: failed to load items: %v", op, err)
		return fmt.Errorf("%w: %s - load items: %v", ErrInternal, op, err)
	}

	byRequest := make(map[int64][]*domain.Item, len(reqs))
	for _, item := range items {
		if item.RequestID != nil {
			byRequest[*item.RequestID] = append(byRequest[*item.RequestID], item)
		}
	}
	for _, r := range reqs {
		r.Items = byRequest[r.ID]
	}
	return nil
}

func (s *Service) ensureUser(ctx context.Context, op string, userID int64) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		s.logger.Error("%s: failed to check user=%d: %v", op, userID, err)
		return fmt.Errorf("%w: %s - check user: %v", ErrInternal, op, err)
	}
	if !exists {
		s.logger.Warn("%s: user=%d not found", op, userID)
		return ErrUserNotFound
	}
	return nil
}
