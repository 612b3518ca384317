package domain

import "context"

// CommentableType — тег типа полиморфной цели комментария.
type CommentableType string

// CommentableUser — единственный поддерживаемый сегодня тип цели.
const CommentableUser CommentableType = "User"

// Commentable — полиморфная цель комментария: тег типа + ID цели.
// Новые типы целей добавляются новым значением тега, без перестройки модели.
type Commentable struct {
	Type     CommentableType
	TargetID int64
}

// Comment представляет комментарий, оставленный пользователем на цели.
type Comment struct {
	ID          int64
	AuthorID    int64
	Body        string
	Commentable Commentable
}

// CommentRepository определяет контракт для работы с хранилищем комментариев.
type CommentRepository interface {
	// ListForCommentable возвращает комментарии, привязанные к цели.
	ListForCommentable(ctx context.Context, target Commentable) ([]*Comment, error)
	// GetAuthorByCommentID возвращает автора комментария через join на users.
	GetAuthorByCommentID(ctx context.Context, commentID int64) (*User, error)
}
