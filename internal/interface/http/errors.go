package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artwork-marketplace/internal/domain/apperr"
	"github.com/oksasatya/artwork-marketplace/pkg/response"
	"github.com/oksasatya/artwork-marketplace/pkg/validation"
)

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindDuplicate:
		return http.StatusConflict
	case apperr.KindNotFound, apperr.KindReference:
		return http.StatusNotFound
	case apperr.KindAuthentication, apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// fail translates a service error into the error envelope. Internal errors are
// logged and answered with a generic message.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	kind := apperr.KindOf(err)
	status := statusOf(kind)
	msg := apperr.Public(err, http.StatusText(status))
	if kind == apperr.KindInternal {
		msg = "Internal server error"
		if logger != nil {
			logger.WithError(err).
				WithField("path", c.FullPath()).
				WithField("request_id", c.GetString("request_id")).
				Error("request failed")
		}
	}
	response.Error[any](c, status, msg, response.ErrorBody{Kind: string(kind)})
}

// badRequest answers a payload that failed binding or validation.
func badRequest(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, validation.Message(err), response.ErrorBody{
		Kind:    string(apperr.KindValidation),
		Details: validation.ToDetails(err),
	})
}

func notFound(c *gin.Context, msg string) {
	response.Error[any](c, http.StatusNotFound, msg, response.ErrorBody{Kind: string(apperr.KindNotFound)})
}

// pathID parses :id. A non-numeric id cannot name a record, so it is answered
// like an unknown one: "User abc not found.".
func pathID(c *gin.Context, entity string) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		notFound(c, entity+" "+raw+" not found.")
		return 0, false
	}
	return id, true
}
