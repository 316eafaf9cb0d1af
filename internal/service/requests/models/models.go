package models

import (
	"github.com/m04kA/SMC-ShareIt/internal/domain"
	"github.com/m04kA/SMC-ShareIt/pkg/types"
)

// CreateRequestRequest новый запрос вещи
type CreateRequestRequest struct {
	RequesterID int64
	Description string
}

// RequestResponse запрос в ответе API вместе с вещами, добавленными в ответ на него
type RequestResponse struct {
	ID          int64                  `json:"id"`
	Description string                 `json:"description"`
	Created     types.DateTime         `json:"created"`
	Items       []*RequestItemResponse `json:"items"`
}

// RequestItemResponse вещь, предложенная в ответ на запрос
type RequestItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   int64  `json:"requestId"`
	OwnerID     int64  `json:"ownerId"`
}

func FromDomainRequest(r *domain.ItemRequest) *RequestResponse {
	resp := &RequestResponse{
		ID:          r.ID,
		Description: r.Description,
		Created:     types.NewDateTime(r.Created),
		Items:       make([]*RequestItemResponse, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		resp.Items = append(resp.Items, &RequestItemResponse{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Available:   item.Available,
			RequestID:   r.ID,
			OwnerID:     item.OwnerID,
		})
	}
	return resp
}

func FromDomainRequestList(reqs []*domain.ItemRequest) []*RequestResponse {
	result := make([]*RequestResponse, 0, len(reqs))
	for _, r := range reqs {
		result = append(result, FromDomainRequest(r))
	}
	return result
}
