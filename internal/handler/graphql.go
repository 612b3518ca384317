package handler

import (
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"highfive-service/internal/graph"
)

// GraphQLHandler исполняет запросы против фиксированной схемы.
type GraphQLHandler struct {
	*BaseHandler
	schema *graphql.Schema
	repos  graph.Repositories
}

// NewGraphQLHandler создает новый экземпляр GraphQLHandler.
func NewGraphQLHandler(schema *graphql.Schema, repos graph.Repositories, logger *logrus.Logger) *GraphQLHandler {
	return &GraphQLHandler{
		BaseHandler: NewBaseHandler(logger),
		schema:      schema,
		repos:       repos,
	}
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Query — точка входа GraphQL. Identity к этому моменту уже разрешена (или
// нет) необязательным auth-гейтом; здесь на каждый запрос собирается свежий
// контекст разрешения со своим набором лоадеров.
func (h *GraphQLHandler) Query(c echo.Context) error {
	var req graphqlRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid graphql request")
	}

	rc := graph.NewRequestContext(CurrentIdentity(c), h.repos)
	ctx := graph.WithRequestContext(c.Request().Context(), rc)

	resp := h.schema.Exec(ctx, req.Query, req.OperationName, req.Variables)
	if len(resp.Errors) > 0 {
		h.logRequest(c, "graphql").WithField("errors", len(resp.Errors)).Warn("Query completed with errors")
	}

	return c.JSON(http.StatusOK, resp)
}

// Playground отдает страницу интерактивного плейграунда. Токен из cookie
// прокидывается в Authorization-заголовок самой страницы — оба пути питают
// одну и ту же проверку на /graphql.
func (h *GraphQLHandler) Playground(c echo.Context) error {
	headers := map[string]string{}
	if cookie, err := c.Cookie("jwt"); err == nil && cookie.Value != "" {
		headers["Authorization"] = "Bearer " + cookie.Value
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return playgroundTemplate.Execute(c.Response(), map[string]interface{}{
		"Endpoint": "/graphql",
		"Headers":  headers,
	})
}
