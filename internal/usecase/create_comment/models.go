package create_comment

import "github.com/m04kA/SMC-ShareIt/internal/service/items/models"

// Request отзыв пользователя о вещи
type Request struct {
	AuthorID int64
	ItemID   int64
	Text     string
}

// Response созданный отзыв в том же виде, что и в карточке вещи
type Response = models.CommentResponse
