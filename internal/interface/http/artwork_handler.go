package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artwork-marketplace/internal/application"
	"github.com/oksasatya/artwork-marketplace/internal/domain/entity"
	"github.com/oksasatya/artwork-marketplace/pkg/response"
)

type ArtworkHandler struct {
	Svc    *application.ArtworkService
	Logger *logrus.Logger
}

func NewArtworkHandler(svc *application.ArtworkService, logger *logrus.Logger) *ArtworkHandler {
	return &ArtworkHandler{Svc: svc, Logger: logger}
}

type createArtworkRequest struct {
	Title       *string  `json:"title" binding:"required"`
	Description *string  `json:"description" binding:"required"`
	Price       *float64 `json:"price" binding:"required"`
	ArtistID    *int64   `json:"artist_id" binding:"required"`
}

// artist_id is not updatable.
type updateArtworkRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

func (h *ArtworkHandler) Create(c *gin.Context) {
	var req createArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a := &entity.Artwork{Title: *req.Title, Description: *req.Description, Price: *req.Price, ArtistID: *req.ArtistID}
	if err := h.Svc.Create(c.Request.Context(), a); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, a, "Artwork created successfully", nil)
}

// List GET /artworks. An empty store is answered with 404.
func (h *ArtworkHandler) List(c *gin.Context) {
	artworks, err := h.Svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if len(artworks) == 0 {
		notFound(c, "No artworks found.")
		return
	}
	response.Success(c, http.StatusOK, artworks, "artworks", nil)
}

// Search GET /artworks/search?q=
func (h *ArtworkHandler) Search(c *gin.Context) {
	artworks, err := h.Svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, artworks, "artworks", map[string]any{"query": c.Query("q"), "count": len(artworks)})
}

func (h *ArtworkHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "Artwork")
	if !ok {
		return
	}
	a, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, a, "artwork", nil)
}

func (h *ArtworkHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "Artwork")
	if !ok {
		return
	}
	var req updateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := h.Svc.Update(c.Request.Context(), id, entity.ArtworkPatch{Title: req.Title, Description: req.Description, Price: req.Price})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, a, "Artwork updated successfully", nil)
}

func (h *ArtworkHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "Artwork")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Artwork deleted successfully", nil)
}

// Reviews GET /artworks/:id/reviews
func (h *ArtworkHandler) Reviews(c *gin.Context) {
	id, ok := pathID(c, "Artwork")
	if !ok {
		return
	}
	reviews, err := h.Svc.ReviewsOf(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, reviews, "reviews", nil)
}
