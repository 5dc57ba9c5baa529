package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/artwork-marketplace/internal/interface/http"
)

// AuthModule serves the session banner, registration and login.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Session gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, session gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Session: session}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Session, m.Handler.Index)
	rg.GET("/register", m.Handler.RegisterInfo)
	rg.POST("/register", m.Handler.Register)
	rg.POST("/login", m.Handler.Login)
}
