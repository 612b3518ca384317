package graph

import (
	"context"
	"errors"
	"strconv"

	graphql "github.com/graph-gophers/graphql-go"

	"highfive-service/internal/domain"
)

// Resolver — корень Query: привязывает поля схемы к выборкам сущностей
// и значениям контекста запроса.
type Resolver struct{}

func (r *Resolver) Hello(args struct{ Name *string }) string {
	name := "World"
	if args.Name != nil && *args.Name != "" {
		name = *args.Name
	}
	return "Hello " + name
}

// Viewer возвращает identity, уже разрешенную на контексте. Без I/O.
func (r *Resolver) Viewer(ctx context.Context) (*userResolver, error) {
	rc, err := FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if rc.Identity() == nil {
		return nil, nil
	}
	return &userResolver{user: rc.Identity()}, nil
}

func (r *Resolver) Teams(ctx context.Context) (*[]*teamResolver, error) {
	rc, err := FromContext(ctx)
	if err != nil {
		return nil, err
	}

	teams, err := rc.Repos().Teams.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	resolvers := make([]*teamResolver, 0, len(teams))
	for _, team := range teams {
		resolvers = append(resolvers, &teamResolver{team: team})
	}
	return &resolvers, nil
}

// Team — поле, требующее аутентификации: без identity в контексте запрос
// этого поля завершается ошибкой аутентификации на уровне поля.
func (r *Resolver) Team(ctx context.Context, args struct{ ID graphql.ID }) (*teamResolver, error) {
	rc, err := FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if rc.Identity() == nil {
		return nil, domain.ErrAuthenticationRequired
	}

	id, ok := parseID(args.ID)
	if !ok {
		return nil, nil
	}

	team, err := rc.Loaders().Teams.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, nil
	}
	return &teamResolver{team: team}, nil
}

func (r *Resolver) User(ctx context.Context, args struct{ ID graphql.ID }) (*userResolver, error) {
	rc, err := FromContext(ctx)
	if err != nil {
		return nil, err
	}

	id, ok := parseID(args.ID)
	if !ok {
		return nil, nil
	}

	user, err := rc.Loaders().Users.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return &userResolver{user: user}, nil
}

type userResolver struct {
	user *domain.User
}

func (r *userResolver) ID() graphql.ID {
	return formatID(r.user.ID)
}

func (r *userResolver) FirstName() *string { return optional(r.user.FirstName) }
func (r *userResolver) LastName() *string  { return optional(r.user.LastName) }
func (r *userResolver) FullName() *string  { return optional(r.user.FullName) }
func (r *userResolver) Email() string      { return r.user.Email }
func (r *userResolver) Role() *string      { return optional(r.user.Role) }
func (r *userResolver) City() *string      { return optional(r.user.City) }
func (r *userResolver) State() *string     { return optional(r.user.State) }
func (r *userResolver) JobTitle() *string  { return optional(r.user.JobTitle) }

func (r *userResolver) HighFives(ctx context.Context) (*[]*highFiveResolver, error) {
	rc, err := FromContext(ctx)
	if err != nil {
		return nil, err
	}

	highFives, err := rc.Repos().HighFives.ListByRecipientID(ctx, r.user.ID)
	if err != nil {
		return nil, err
	}

	resolvers := make([]*highFiveResolver, 0, len(highFives))
	for _, hf := range highFives {
		resolvers = append(resolvers, &highFiveResolver{highFive: hf})
	}
	return &resolvers, nil
}

func (r *userResolver) Comments(ctx context.Context) (*[]*commentResolver, error) {
	rc, err := FromContext(ctx)
	if err != nil {
		return nil, err
	}

	comments, err := rc.Repos().Comments.ListForCommentable(ctx, domain.Commentable{
		Type:     domain.CommentableUser,
		TargetID: r.user.ID,
	})
	if err != nil {
		return nil, err
	}

	resolvers := make([]*commentResolver, 0, len(comments))
	for _, comment := range comments {
		resolvers = append(resolvers, &commentResolver{comment: comment})
	}
	return &resolvers, nil
}

type teamResolver struct {
	team *domain.Team
}

func (r *teamResolver) ID() graphql.ID {
	return formatID(r.team.ID)
}

func (r *teamResolver) Name() *string {
	return optional(r.team.Name)
}

func (r *teamResolver) Users(ctx context.Context) (*[]*userResolver, error) {
	rc, err := FromContext(ctx)
	if err != nil {
		return nil, err
	}

	users, err := rc.Repos().Users.ListByTeamID(ctx, r.team.ID)
	if err != nil {
		return nil, err
	}

	resolvers := make([]*userResolver, 0, len(users))
	for _, user := range users {
		resolvers = append(resolvers, &userResolver{user: user})
	}
	return &resolvers, nil
}

type commentResolver struct {
	comment *domain.Comment
}

func (r *commentResolver) ID() graphql.ID {
	return formatID(r.comment.ID)
}

func (r *commentResolver) Body() string {
	return r.comment.Body
}

// Author предпочитает уже известный AuthorID через лоадер пользователей
// и откатывается на join comment -> user, когда автор в строке не заполнен.
func (r *commentResolver) Author(ctx context.Context) (*userResolver, error) {
	rc, err := FromContext(ctx)
	if err != nil {
		return nil, err
	}

	if r.comment.AuthorID != 0 {
		user, err := rc.Loaders().Users.Load(ctx, r.comment.AuthorID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domain.ErrUserNotFound
		}
		return &userResolver{user: user}, nil
	}

	user, err := rc.Repos().Comments.GetAuthorByCommentID(ctx, r.comment.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &userResolver{user: user}, nil
}

type highFiveResolver struct {
	highFive *domain.HighFive
}

func (r *highFiveResolver) ID() graphql.ID {
	return formatID(r.highFive.ID)
}

// Author обязателен по схеме, но хранилище автора не фиксирует — строка
// high_fives несет только получателя. Запрос поля отдает явную ошибку.
func (r *highFiveResolver) Author(ctx context.Context) (*userResolver, error) {
	return nil, domain.ErrHighFiveAuthorUnknown
}

func parseID(id graphql.ID) (int64, bool) {
	parsed, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func formatID(id int64) graphql.ID {
	return graphql.ID(strconv.FormatInt(id, 10))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
