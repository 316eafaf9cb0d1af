package create_comment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
	itemRepo "github.com/m04kA/SMC-ShareIt/internal/infra/storage/item"
	userRepo "github.com/m04kA/SMC-ShareIt/internal/infra/storage/user"
	"github.com/m04kA/SMC-ShareIt/internal/service/items/models"
)

// UseCase use case для добавления отзыва
type UseCase struct {
	commentRepo  CommentRepository
	itemRepo     ItemRepository
	userRepo     UserRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(
	commentRepo CommentRepository,
	itemRepo ItemRepository,
	userRepo UserRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		commentRepo:  commentRepo,
		itemRepo:     itemRepo,
		userRepo:     userRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute добавляет отзыв. Оставить его может только арендатор
// с одобренным бронированием этой вещи, которое уже началось.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateComment: author=%d, item=%d", req.AuthorID, req.ItemID)

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	if domain.TooLong(text, domain.MaxCommentLength) {
		return nil, fmt.Errorf("%w: text is too long", ErrInvalidInput)
	}

	item, err := uc.itemRepo.GetByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, itemRepo.ErrItemNotFound) {
			uc.logger.Warn("CreateComment: item id=%d not found", req.ItemID)
			return nil, ErrItemNotFound
		}
		uc.logger.Error("CreateComment: failed to get item id=%d: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: failed to get item: %v", ErrInternal, err)
	}

	author, err := uc.userRepo.GetByID(ctx, req.AuthorID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateComment: user id=%d not found", req.AuthorID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateComment: failed to get user id=%d: %v", req.AuthorID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	eligible, err := uc.bookingRepo.HasStartedApprovedBooking(ctx, author.ID, item.ID, now)
	if err != nil {
		uc.logger.Error("CreateComment: failed to check bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to check bookings: %v", ErrInternal, err)
	}
	if !eligible {
		uc.logger.Warn("CreateComment: user id=%d has no started approved booking of item id=%d", author.ID, item.ID)
		return nil, ErrNotEligible
	}

	created, err := uc.commentRepo.Create(ctx, &domain.Comment{
		Text:       text,
		ItemID:     item.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    now,
	})
	if err != nil {
		uc.logger.Error("CreateComment: failed to create comment: %v", err)
		return nil, fmt.Errorf("%w: failed to create comment: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateComment: comment id=%d added to item id=%d", created.ID, item.ID)
	return models.FromDomainComment(created), nil
}
