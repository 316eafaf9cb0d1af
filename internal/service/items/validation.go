package items

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
	"github.com/m04kA/SMC-ShareIt/internal/service/items/models"
)

func validateCreate(req *models.CreateItemRequest) error {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Description == nil || strings.TrimSpace(*req.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if req.Available == nil {
		return fmt.Errorf("%w: available is required", ErrInvalidInput)
	}
	if domain.TooLong(*req.Name, domain.MaxNameLength) {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if domain.TooLong(*req.Description, domain.MaxDescriptionLength) {
		return fmt.Errorf("%w: description is too long", ErrInvalidInput)
	}
	if req.RequestID != nil && *req.RequestID <= 0 {
		return fmt.Errorf("%w: requestId must be positive", ErrInvalidInput)
	}
	return nil
}

func validateUpdate(req *models.UpdateItemRequest) error {
	if req.Name != nil && domain.TooLong(*req.Name, domain.MaxNameLength) {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if req.Description != nil && domain.TooLong(*req.Description, domain.MaxDescriptionLength) {
		return fmt.Errorf("%w: description is too long", ErrInvalidInput)
	}
	return nil
}
