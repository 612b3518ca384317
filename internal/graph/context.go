package graph

import (
	"context"
	"errors"

	"highfive-service/internal/domain"
	"highfive-service/internal/loader"
)

// Repositories — набор хранилищ, доступный резолверам.
type Repositories struct {
	Users     domain.UserRepository
	Teams     domain.TeamRepository
	Comments  domain.CommentRepository
	HighFives domain.HighFiveRepository
}

// Loaders — лоадеры одного запроса. Живут не дольше своего RequestContext.
type Loaders struct {
	Users *loader.Loader[int64, *domain.User]
	Teams *loader.Loader[int64, *domain.Team]
}

// RequestContext — неизменяемое значение одного входящего запроса:
// разрешенная identity (или nil) плюс доступ к данным. Собирается один раз
// перед исполнением запроса и после этого не мутирует.
type RequestContext struct {
	identity *domain.User
	repos    Repositories
	loaders  *Loaders
}

// NewRequestContext собирает контекст запроса со свежим набором лоадеров.
// Кэш лоадеров приватен для этого контекста: переиспользование между
// запросами означало бы утечку данных между пользователями.
func NewRequestContext(identity *domain.User, repos Repositories) *RequestContext {
	return &RequestContext{
		identity: identity,
		repos:    repos,
		loaders: &Loaders{
			Users: loader.New(repos.Users.GetByIDs),
			Teams: loader.New(repos.Teams.GetByIDs),
		},
	}
}

// Identity возвращает аутентифицированного пользователя запроса или nil.
func (rc *RequestContext) Identity() *domain.User {
	return rc.identity
}

// Repos возвращает набор хранилищ.
func (rc *RequestContext) Repos() Repositories {
	return rc.repos
}

// Loaders возвращает лоадеры этого запроса.
func (rc *RequestContext) Loaders() *Loaders {
	return rc.loaders
}

type ctxKey struct{}

// WithRequestContext кладет RequestContext в context.Context запроса.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

var errNoRequestContext = errors.New("no request context")

// FromContext достает RequestContext; отсутствие — ошибка монтажа сервера.
func FromContext(ctx context.Context) (*RequestContext, error) {
	rc, ok := ctx.Value(ctxKey{}).(*RequestContext)
	if !ok {
		return nil, errNoRequestContext
	}
	return rc, nil
}
