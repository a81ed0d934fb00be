package handlers

import (
	"context"
	"errors"
	"expvar"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hexagonal-users/internal/application"
	"github.com/oksasatya/go-hexagonal-users/internal/domain"
	"github.com/oksasatya/go-hexagonal-users/pkg/helpers"
	"github.com/oksasatya/go-hexagonal-users/pkg/response"
	"github.com/oksasatya/go-hexagonal-users/pkg/validation"
)

var usersCreated = expvar.NewInt("users_created_total")

// CreatedHook reacts to a committed user registration. Failures are logged and
// never change the HTTP outcome.
type CreatedHook interface {
	UserCreated(ctx context.Context, u application.UserResponse) error
}

// UserSearcher backs GET /users/search.
type UserSearcher interface {
	Enabled() bool
	SearchUsers(ctx context.Context, q string, size int) ([]application.UserResponse, error)
}

type UserHandler struct {
	Create *application.CreateUser
	Get    *application.GetUser
	List   *application.ListUsers
	Search UserSearcher
	Hooks  []CreatedHook
	Logger logrus.FieldLogger
}

func NewUserHandler(create *application.CreateUser, get *application.GetUser, list *application.ListUsers, search UserSearcher, logger logrus.FieldLogger, hooks ...CreatedHook) *UserHandler {
	return &UserHandler{Create: create, Get: get, List: list, Search: search, Hooks: hooks, Logger: logger}
}

// Binding only checks presence; the value objects own the format rules.
type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type listUsersQuery struct {
	Offset int `form:"offset,default=0" binding:"gte=0"`
	Limit  int `form:"limit,default=10" binding:"pagelimit"`
}

type searchUsersQuery struct {
	Q    string `form:"q" binding:"required"`
	Size int    `form:"size,default=10" binding:"searchsize"`
}

type userIDURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Create.Execute(c.Request.Context(), application.CreateUserRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	usersCreated.Add(1)
	h.runHooks(c, *res)
	response.Success(c, http.StatusCreated, res, "user created", nil)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	var uri userIDURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid user id", validation.ToDetails(err))
		return
	}
	id, err := uuid.Parse(uri.ID)
	if err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid user id", map[string]string{"id": "must be a valid UUID"})
		return
	}

	res, err := h.Get.Execute(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, "user", nil)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	var q listUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid query", validation.ToDetails(err))
		return
	}

	res, err := h.List.Execute(c.Request.Context(), application.ListUsersRequest{Offset: q.Offset, Limit: q.Limit})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, "users", nil)
}

func (h *UserHandler) SearchUsers(c *gin.Context) {
	if h.Search == nil || !h.Search.Enabled() {
		response.Error[any](c, http.StatusServiceUnavailable, "search is not configured", nil)
		return
	}
	var q searchUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid query", validation.ToDetails(err))
		return
	}

	users, err := h.Search.SearchUsers(c.Request.Context(), q.Q, q.Size)
	if err != nil {
		helpers.LogError(h.Logger, "user search failed", err, logrus.Fields{"request_id": c.GetString("request_id")})
		response.Error[any](c, http.StatusBadGateway, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, users, "search results", map[string]any{"count": len(users)})
}

// fail maps use-case errors onto HTTP statuses.
func (h *UserHandler) fail(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error[any](c, http.StatusUnprocessableEntity, verr.Message, nil)
	case errors.Is(err, application.ErrUserAlreadyExists):
		response.Error[any](c, http.StatusConflict, application.ErrUserAlreadyExists.Error(), nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, application.ErrUserNotFound.Error(), nil)
	default:
		helpers.LogError(h.Logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		})
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}

func (h *UserHandler) runHooks(c *gin.Context, u application.UserResponse) {
	for _, hook := range h.Hooks {
		if err := hook.UserCreated(c.Request.Context(), u); err != nil {
			helpers.LogWarn(h.Logger, "post-create hook failed", err, logrus.Fields{
				"user_id":    u.ID.String(),
				"request_id": c.GetString("request_id"),
			})
		}
	}
}
