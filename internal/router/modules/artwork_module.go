package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/artwork-marketplace/internal/interface/http"
)

type ArtworkModule struct {
	Handler *handlers.ArtworkHandler
}

func NewArtworkModule(h *handlers.ArtworkHandler) *ArtworkModule {
	return &ArtworkModule{Handler: h}
}

func (m *ArtworkModule) Register(rg *gin.RouterGroup) {
	artworks := rg.Group("/artworks")
	artworks.POST("", m.Handler.Create)
	artworks.GET("", m.Handler.List)
	artworks.GET("/search", m.Handler.Search)
	artworks.GET("/:id", m.Handler.Get)
	artworks.PUT("/:id", m.Handler.Update)
	artworks.DELETE("/:id", m.Handler.Delete)
	artworks.GET("/:id/reviews", m.Handler.Reviews)
}
