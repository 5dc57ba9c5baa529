package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artwork-marketplace/internal/application"
	"github.com/oksasatya/artwork-marketplace/internal/domain/entity"
	"github.com/oksasatya/artwork-marketplace/pkg/response"
)

type ReviewHandler struct {
	Svc    *application.ReviewService
	Logger *logrus.Logger
}

func NewReviewHandler(svc *application.ReviewService, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{Svc: svc, Logger: logger}
}

type createReviewRequest struct {
	Content   *string `json:"content" binding:"required"`
	Rating    *int    `json:"rating" binding:"required"`
	UserID    *int64  `json:"user_id" binding:"required"`
	ArtworkID *int64  `json:"artwork_id" binding:"required"`
}

type updateReviewRequest struct {
	Content *string `json:"content"`
	Rating  *int    `json:"rating"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	rv := &entity.Review{Content: *req.Content, Rating: *req.Rating, UserID: *req.UserID, ArtworkID: *req.ArtworkID}
	if err := h.Svc.Create(c.Request.Context(), rv); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, rv, "Review created successfully", nil)
}

// List GET /reviews. Unlike users and artworks, an empty list is a 200.
func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.Svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, reviews, "reviews", nil)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "Review")
	if !ok {
		return
	}
	rv, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, rv, "review", nil)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "Review")
	if !ok {
		return
	}
	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	rv, err := h.Svc.Update(c.Request.Context(), id, entity.ReviewPatch{Content: req.Content, Rating: req.Rating})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, rv, "Review updated successfully", nil)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "Review")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Review deleted successfully", nil)
}
