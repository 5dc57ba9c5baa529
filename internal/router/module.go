package router

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/artwork-marketplace/internal/router/modules"
)

// Module describes a feature module that can register its routes on a RouterGroup
type Module interface {
	Register(rg *gin.RouterGroup)
}

var (
	_ Module = (*modules.AuthModule)(nil)
	_ Module = (*modules.UserModule)(nil)
	_ Module = (*modules.ArtworkModule)(nil)
	_ Module = (*modules.ReviewModule)(nil)
	_ Module = (*modules.DebugModule)(nil)
)
