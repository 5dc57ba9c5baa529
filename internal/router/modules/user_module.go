package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/artwork-marketplace/internal/interface/http"
)

type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.GET("", m.Handler.List)
	users.GET("/:id", m.Handler.Get)
	users.PUT("/:id", m.Handler.Update)
	users.DELETE("/:id", m.Handler.Delete)
	users.GET("/:id/artworks", m.Handler.Artworks)
	users.GET("/:id/reviews", m.Handler.Reviews)
}
