package items

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
	itemRepo "github.com/m04kA/SMC-ShareIt/internal/infra/storage/item"
	requestRepo "github.com/m04kA/SMC-ShareIt/internal/infra/storage/request"
	"github.com/m04kA/SMC-ShareIt/internal/service/items/models"
)

// Service сервис вещей
type Service struct {
	itemRepo     ItemRepository
	userRepo     UserRepository
	requestRepo  RequestRepository
	bookingRepo  BookingRepository
	commentRepo  CommentRepository
	timeProvider TimeProvider
	logger       Logger
}

func NewService(
	itemRepo ItemRepository,
	userRepo UserRepository,
	requestRepo RequestRepository,
	bookingRepo BookingRepository,
	commentRepo CommentRepository,
	logger Logger,
) *Service {
	return &Service{
		itemRepo:     itemRepo,
		userRepo:     userRepo,
		requestRepo:  requestRepo,
		bookingRepo:  bookingRepo,
		commentRepo:  commentRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create добавляет вещь владельцу, при необходимости связывая её с запросом
func (s *Service) Create(ctx context.Context, req *models.CreateItemRequest) (*models.ItemResponse, error) {
	s.logger.Info("Create: owner=%d", req.OwnerID)

	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if err := s.ensureUser(ctx, "Create", req.OwnerID); err != nil {
		return nil, err
	}

	if req.RequestID != nil {
		if _, err := s.requestRepo.GetByID(ctx, *req.RequestID); err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				s.logger.Warn("Create: request id=%d not found", *req.RequestID)
				return nil, ErrRequestNotFound
			}
			s.logger.Error("Create: failed to get request id=%d: %v", *req.RequestID, err)
			return nil, fmt.Errorf("%w: Create - get request: %v", ErrInternal, err)
		}
	}

	item, err := s.itemRepo.Create(ctx, &domain.Item{
		Name:        *req.Name,
		Description: *req.Description,
		Available:   *req.Available,
		OwnerID:     req.OwnerID,
		RequestID:   req.RequestID,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: item id=%d created by owner=%d", item.ID, item.OwnerID)
	return models.FromDomainItem(item), nil
}

// Update частично обновляет вещь владельца
func (s *Service) Update(ctx context.Context, req *models.UpdateItemRequest) (*models.ItemResponse, error) {
	s.logger.Info("Update: item id=%d by user=%d", req.ItemID, req.OwnerID)

	if err := validateUpdate(req); err != nil {
		return nil, err
	}

	if err := s.ensureUser(ctx, "Update", req.OwnerID); err != nil {
		return nil, err
	}

	item, err := s.getItem(ctx, "Update", req.ItemID)
	if err != nil {
		return nil, err
	}

	if !item.IsOwnedBy(req.OwnerID) {
		s.logger.Warn("Update: user=%d is not owner of item id=%d", req.OwnerID, req.ItemID)
		return nil, ErrNotOwner
	}

	domain.ItemPatch{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	}.Apply(item)

	if err := s.itemRepo.Update(ctx, item); err != nil {
		if errors.Is(err, itemRepo.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		s.logger.Error("Update: repository error for item id=%d: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainItem(item), nil
}

// GetByID вещь с отзывами; владелец дополнительно видит последнее и следующее бронирование
func (s *Service) GetByID(ctx context.Context, userID, itemID int64) (*models.ItemDetailsResponse, error) {
	s.logger.Info("GetByID: item id=%d for user=%d", itemID, userID)

	if err := s.ensureUser(ctx, "GetByID", userID); err != nil {
		return nil, err
	}

	item, err := s.getItem(ctx, "GetByID", itemID)
	if err != nil {
		return nil, err
	}

	details, err := s.details(ctx, "GetByID", userID, []*domain.Item{item})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

// ListByOwner вещи владельца с отзывами и бронированиями
func (s *Service) ListByOwner(ctx context.Context, ownerID int64, page domain.Page) ([]*models.ItemDetailsResponse, error) {
	s.logger.Info("ListByOwner: owner=%d, offset=%d, limit=%d", ownerID, page.Offset, page.Limit)

	if err := s.ensureUser(ctx, "ListByOwner", ownerID); err != nil {
		return nil, err
	}

	items, err := s.itemRepo.ListByOwner(ctx, ownerID, page)
	if err != nil {
		s.logger.Error("ListByOwner: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ListByOwner - repository error: %v", ErrInternal, err)
	}

	return s.details(ctx, "ListByOwner", ownerID, items)
}

// Search поиск доступных вещей по тексту; пустой текст даёт пустой список
func (s *Service) Search(ctx context.Context, text string, page domain.Page) ([]*models.ItemResponse, error) {
	if strings.TrimSpace(text) == "" {
		return []*models.ItemResponse{}, nil
	}

	items, err := s.itemRepo.Search(ctx, text, page)
	if err != nil {
		s.logger.Error("Search: repository error for text=%q: %v", text, err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Search: text=%q found %d items", text, len(items))
	return models.FromDomainItemList(items), nil
}

// details дополняет вещи отзывами и, для вещей viewerID, ближайшими бронированиями
func (s *Service) details(ctx context.Context, op string, viewerID int64, items []*domain.Item) ([]*models.ItemDetailsResponse, error) {
	ids := make([]int64, 0, len(items))
	ownedIDs := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
		if item.IsOwnedBy(viewerID) {
			ownedIDs = append(ownedIDs, item.ID)
		}
	}

	comments, err := s.commentRepo.ListByItemIDs(ctx, ids)
	if err != nil {
		s.logger.Error("%s: failed to load comments: %v", op, err)
		return nil, fmt.Errorf("%w: %s - load comments: %v", ErrInternal, op, err)
	}
	commentsByItem := make(map[int64][]*domain.Comment, len(items))
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], c)
	}

	bookingsByItem := make(map[int64][]*domain.Booking, len(ownedIDs))
	if len(ownedIDs) > 0 {
		bookings, err := s.bookingRepo.ListApprovedByItemIDs(ctx, ownedIDs)
		if err != nil {
			s.logger.Error("%s: failed to load bookings: %v", op, err)
			return nil, fmt.Errorf("%w: %s - load bookings: %v", ErrInternal, op, err)
		}
		for _, b := range bookings {
			bookingsByItem[b.ItemID] = append(bookingsByItem[b.ItemID], b)
		}
	}

	now := s.timeProvider.Now()
	result := make([]*models.ItemDetailsResponse, 0, len(items))
	for _, item := range items {
		var annotation domain.ItemBookings
		if item.IsOwnedBy(viewerID) {
			annotation = domain.LastAndNext(bookingsByItem[item.ID], now)
		}
		result = append(result, models.NewItemDetails(item, commentsByItem[item.ID], annotation))
	}
	return result, nil
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

func (s *Service) getItem(ctx context.Context, op string, itemID int64) (*domain.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, itemRepo.ErrItemNotFound) {
			s.logger.Warn("%s: item id=%d not found", op, itemID)
			return nil, ErrItemNotFound
		}
		s.logger.Error("%s: repository error for item id=%d: %v", op, itemID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return item, nil
}
