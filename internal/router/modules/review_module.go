package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/artwork-marketplace/internal/interface/http"
)

type ReviewModule struct {
	Handler *handlers.ReviewHandler
}

func NewReviewModule(h *handlers.ReviewHandler) *ReviewModule {
	return &ReviewModule{Handler: h}
}

func (m *ReviewModule) Register(rg *gin.RouterGroup) {
	reviews := rg.Group("/reviews")
	reviews.POST("", m.Handler.Create)
	reviews.GET("", m.Handler.List)
	reviews.GET("/:id", m.Handler.Get)
	reviews.PUT("/:id", m.Handler.Update)
	reviews.DELETE("/:id", m.Handler.Delete)
}
