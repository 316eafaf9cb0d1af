package create_item

import "github.com/m04kA/SMC-ShareIt/internal/service/items/models"

// CreateItemRequest HTTP request model
type CreateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
	RequestID   *int64  `json:"requestId,omitempty"`
}

func (r *CreateItemRequest) ToServiceRequest(ownerID int64) *models.CreateItemRequest {
	return &models.CreateItemRequest{
		OwnerID:     ownerID,
		Name:        r.Name,
		Description: r.Description,
		Available:   r.Available,
		RequestID:   r.RequestID,
	}
}
