package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-hexagonal-users/internal/interface/http"
)

// UserModule wires user HTTP handlers into routes:
// POST /users, GET /users, GET /users/search, GET /users/:id
// All routes are registered under the given RouterGroup (usually /api)
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.POST("", m.Handler.CreateUser)
	users.GET("", m.Handler.ListUsers)
	users.GET("/search", m.Handler.SearchUsers)
	users.GET("/:id", m.Handler.GetUser)
}
