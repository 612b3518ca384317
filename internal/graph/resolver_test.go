package graph_test

import (
	"context"
	"testing"

	"highfive-service/internal/domain"
	"highfive-service/internal/graph"
	"highfive-service/internal/mocks"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testRepos struct {
	users     *mocks.UserRepository
	teams     *mocks.TeamRepository
	comments  *mocks.CommentRepository
	highFives *mocks.HighFiveRepository
}

func newTestRepos() testRepos {
	return testRepos{
		users:     &mocks.UserRepository{},
		teams:     &mocks.TeamRepository{},
		comments:  &mocks.CommentRepository{},
		highFives: &mocks.HighFiveRepository{},
	}
}

func (r testRepos) repositories() graph.Repositories {
	return graph.Repositories{
		Users:     r.users,
		Teams:     r.teams,
		Comments:  r.comments,
		HighFives: r.highFives,
	}
}

func execQuery(identity *domain.User, repos graph.Repositories, query string) *graphql.Response {
	schema := graph.NewSchema()
	rc := graph.NewRequestContext(identity, repos)
	ctx := graph.WithRequestContext(context.Background(), rc)
	return schema.Exec(ctx, query, "", nil)
}

func TestQuery_Hello(t *testing.T) {
	repos := newTestRepos()

	resp := execQuery(nil, repos.repositories(), `{ hello }`)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"hello": "Hello World"}`, string(resp.Data))

	resp = execQuery(nil, repos.repositories(), `{ hello(name: "Gopher") }`)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"hello": "Hello Gopher"}`, string(resp.Data))
}

func TestQuery_ViewerWithoutIdentityIsNull(t *testing.T) {
	repos := newTestRepos()

	resp := execQuery(nil, repos.repositories(), `{ viewer { id email } }`)

	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"viewer": null}`, string(resp.Data))
}

func TestQuery_ViewerReturnsIdentity(t *testing.T) {
	repos := newTestRepos()
	identity := &domain.User{ID: 1, Email: "ada@example.com", FullName: "Ada Lovelace", IsActive: true}

	resp := execQuery(identity, repos.repositories(), `{ viewer { id email fullName } }`)

	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"viewer": {"id": "1", "email": "ada@example.com", "fullName": "Ada Lovelace"}}`, string(resp.Data))
}

func TestQuery_TeamRequiresIdentity(t *testing.T) {
	repos := newTestRepos()

	resp := execQuery(nil, repos.repositories(), `{ team(id: "1") { id name } }`)

	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0].Error(), "authentication required")
}

func TestQuery_TeamReturnsTeamForIdentity(t *testing.T) {
	repos := newTestRepos()
	identity := &domain.User{ID: 1, Email: "ada@example.com"}
	repos.teams.On("GetByIDs", mock.Anything, []int64{7}).Return(map[int64]*domain.Team{
		7: {ID: 7, Name: "Platform", IsActive: true},
	}, nil)

	resp := execQuery(identity, repos.repositories(), `{ team(id: "7") { id name } }`)

	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"team": {"id": "7", "name": "Platform"}}`, string(resp.Data))
}

func TestQuery_TeamUnknownIDIsNull(t *testing.T) {
	repos := newTestRepos()
	identity := &domain.User{ID: 1, Email: "ada@example.com"}
	repos.teams.On("GetByIDs", mock.Anything, []int64{99}).Return(map[int64]*domain.Team{}, nil)

	resp := execQuery(identity, repos.repositories(), `{ team(id: "99") { id name } }`)

	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"team": null}`, string(resp.Data))
}

func TestQuery_TeamsListsActiveTeams(t *testing.T) {
	repos := newTestRepos()
	repos.teams.On("ListActive", mock.Anything).Return([]*domain.Team{
		{ID: 1, Name: "Platform", IsActive: true},
		{ID: 2, Name: "Research", IsActive: true},
	}, nil)

	resp := execQuery(nil, repos.repositories(), `{ teams { id name } }`)

	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"teams": [{"id": "1", "name": "Platform"}, {"id": "2", "name": "Research"}]}`, string(resp.Data))
}

func TestQuery_TeamUsersListsMembers(t *testing.T) {
	repos := newTestRepos()
	identity := &domain.User{ID: 1, Email: "ada@example.com"}
	repos.teams.On("GetByIDs", mock.Anything, []int64{7}).Return(map[int64]*domain.Team{
		7: {ID: 7, Name: "Platform", IsActive: true},
	}, nil)
	repos.users.On("ListByTeamID", mock.Anything, int64(7)).Return([]*domain.User{
		{ID: 1, Email: "ada@example.com", FullName: "Ada Lovelace"},
		{ID: 2, Email: "grace@example.com", FullName: "Grace Hopper"},
	}, nil)

	resp := execQuery(identity, repos.repositories(), `{ team(id: "7") { users { id fullName } } }`)

	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"team": {"users": [{"id": "1", "fullName": "Ada Lovelace"}, {"id": "2", "fullName": "Grace Hopper"}]}}`, string(resp.Data))
}

func TestQuery_UserUnknownIDIsNull(t *testing.T) {
	repos := newTestRepos()
	repos.users.On("GetByIDs", mock.Anything, []int64{42}).Return(map[int64]*domain.User{}, nil)

	resp := execQuery(nil, repos.repositories(), `{ user(id: "42") { id } }`)

	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"user": null}`, string(resp.Data))
}

func TestQuery_UserNonNumericIDIsNullWithoutFetch(t *testing.T) {
	repos := newTestRepos()

	resp := execQuery(nil, repos.repositories(), `{ user(id: "abc") { id } }`)

	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"user": null}`, string(resp.Data))
	repos.users.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestQuery_UserCommentsResolveAuthorsThroughLoader(t *testing.T) {
	repos := newTestRepos()
	repos.users.On("GetByIDs", mock.Anything, mock.Anything).Return(map[int64]*domain.User{
		1: {ID: 1, Email: "ada@example.com", FullName: "Ada Lovelace"},
		2: {ID: 2, Email: "grace@example.com", FullName: "Grace Hopper"},
		3: {ID: 3, Email: "alan@example.com", FullName: "Alan Turing"},
	}, nil)
	repos.comments.On("ListForCommentable", mock.Anything, domain.Commentable{Type: domain.CommentableUser, TargetID: 1}).
		Return([]*domain.Comment{
			{ID: 10, AuthorID: 2, Body: "Great pairing session today!"},
			{ID: 11, AuthorID: 3, Body: "Thanks for the code review."},
		}, nil)

	resp := execQuery(nil, repos.repositories(), `{ user(id: "1") { comments { id body author { fullName } } } }`)

	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"user": {"comments": [
		{"id": "10", "body": "Great pairing session today!", "author": {"fullName": "Grace Hopper"}},
		{"id": "11", "body": "Thanks for the code review.", "author": {"fullName": "Alan Turing"}}
	]}}`, string(resp.Data))
}

func TestQuery_CommentWithoutAuthorIDFallsBackToJoin(t *testing.T) {
	repos := newTestRepos()
	repos.users.On("GetByIDs", mock.Anything, []int64{1}).Return(map[int64]*domain.User{
		1: {ID: 1, Email: "ada@example.com"},
	}, nil)
	repos.comments.On("ListForCommentable", mock.Anything, domain.Commentable{Type: domain.CommentableUser, TargetID: 1}).
		Return([]*domain.Comment{{ID: 10, AuthorID: 0, Body: "orphaned row"}}, nil)
	repos.comments.On("GetAuthorByCommentID", mock.Anything, int64(10)).
		Return(&domain.User{ID: 5, Email: "grace@example.com", FullName: "Grace Hopper"}, nil)

	resp := execQuery(nil, repos.repositories(), `{ user(id: "1") { comments { author { fullName } } } }`)

	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"user": {"comments": [{"author": {"fullName": "Grace Hopper"}}]}}`, string(resp.Data))
}

func TestQuery_HighFivesResolveWithoutAuthor(t *testing.T) {
	repos := newTestRepos()
	repos.users.On("GetByIDs", mock.Anything, []int64{1}).Return(map[int64]*domain.User{
		1: {ID: 1, Email: "ada@example.com"},
	}, nil)
	repos.highFives.On("ListByRecipientID", mock.Anything, int64(1)).Return([]*domain.HighFive{
		{ID: 100, RecipientID: 1},
		{ID: 101, RecipientID: 1},
	}, nil)

	resp := execQuery(nil, repos.repositories(), `{ user(id: "1") { highFives { id } } }`)

	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"user": {"highFives": [{"id": "100"}, {"id": "101"}]}}`, string(resp.Data))
}

func TestQuery_HighFiveAuthorSurfacesKnownGap(t *testing.T) {
	repos := newTestRepos()
	repos.users.On("GetByIDs", mock.Anything, []int64{1}).Return(map[int64]*domain.User{
		1: {ID: 1, Email: "ada@example.com"},
	}, nil)
	repos.highFives.On("ListByRecipientID", mock.Anything, int64(1)).Return([]*domain.HighFive{
		{ID: 100, RecipientID: 1},
	}, nil)

	resp := execQuery(nil, repos.repositories(), `{ user(id: "1") { highFives { author { id } } } }`)

	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0].Error(), "high five author is not tracked")
}

func TestQuery_StoreFailureSurfacesAsError(t *testing.T) {
	repos := newTestRepos()
	repos.teams.On("ListActive", mock.Anything).Return(nil, assert.AnError)

	resp := execQuery(nil, repos.repositories(), `{ teams { id } }`)

	require.NotEmpty(t, resp.Errors)
}
