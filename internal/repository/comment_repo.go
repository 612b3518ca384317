package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"highfive-service/internal/domain"
)

// CommentRepository реализует взаимодействие с данными комментариев в PostgreSQL.
type CommentRepository struct {
	db *sql.DB
}

// NewCommentRepository создает новый экземпляр CommentRepository.
func NewCommentRepository(db *sql.DB) domain.CommentRepository {
	return &CommentRepository{db: db}
}

// ListForCommentable возвращает комментарии, привязанные к полиморфной цели.
func (r *CommentRepository) ListForCommentable(ctx context.Context, target domain.Commentable) ([]*domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, COALESCE(creator_id, 0), commentable_type, commentable_id, content
		 FROM comments
		 WHERE commentable_type = $1 AND commentable_id = $2`,
		string(target.Type), target.TargetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*domain.Comment, 0)
	for rows.Next() {
		var (
			comment        domain.Comment
			commentableRaw string
		)
		err := rows.Scan(&comment.ID, &comment.AuthorID, &commentableRaw,
			&comment.Commentable.TargetID, &comment.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comment.Commentable.Type = domain.CommentableType(commentableRaw)
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}

	return comments, nil
}

// GetAuthorByCommentID возвращает автора комментария через join на users.
func (r *CommentRepository) GetAuthorByCommentID(ctx context.Context, commentID int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT u.id, u.first_name, u.last_name, u.email, u.role, u.city, u.state, u.job_title, u.active
		 FROM comments c
		 JOIN users u ON u.id = c.creator_id
		 WHERE c.id = $1`,
		commentID)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get comment author: %w", err)
	}

	return user, nil
}
