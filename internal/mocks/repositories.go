// Package mocks содержит testify-моки контрактов domain для тестов.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"highfive-service/internal/domain"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*domain.User), args.Error(1)
}

func (m *UserRepository) GetActiveByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetCredentialsByEmail(ctx context.Context, email string) (*domain.UserCredentials, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserCredentials), args.Error(1)
}

func (m *UserRepository) ListByTeamID(ctx context.Context, teamID int64) ([]*domain.User, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

type TeamRepository struct {
	mock.Mock
}

func (m *TeamRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Team, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*domain.Team), args.Error(1)
}

func (m *TeamRepository) ListActive(ctx context.Context) ([]*domain.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Team), args.Error(1)
}

type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) ListForCommentable(ctx context.Context, target domain.Commentable) ([]*domain.Comment, error) {
	args := m.Called(ctx, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

func (m *CommentRepository) GetAuthorByCommentID(ctx context.Context, commentID int64) (*domain.User, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type HighFiveRepository struct {
	mock.Mock
}

func (m *HighFiveRepository) ListByRecipientID(ctx context.Context, userID int64) ([]*domain.HighFive, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.HighFive), args.Error(1)
}
