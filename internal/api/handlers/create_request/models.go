package create_request

// CreateRequestRequest HTTP request model
type CreateRequestRequest struct {
	Description string `json:"description"`
}
