package create_comment

// CreateCommentRequest HTTP request model
type CreateCommentRequest struct {
	Text string `json:"text"`
}
