package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/artwork-marketplace/internal/domain/apperr"
	"github.com/oksasatya/artwork-marketplace/pkg/response"
)

// RequireJSON rejects POST, PUT and PATCH requests whose body is not declared as
// application/json with 415.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			if c.ContentType() != gin.MIMEJSON {
				response.Error[any](c, http.StatusUnsupportedMediaType, "Content-Type must be application/json",
					response.ErrorBody{Kind: string(apperr.KindUnsupportedType)})
				return
			}
		}
		c.Next()
	}
}
