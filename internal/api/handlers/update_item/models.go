package update_item

// UpdateItemRequest HTTP request model; отсутствующие поля не меняются
type UpdateItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}
