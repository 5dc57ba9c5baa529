package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artwork-marketplace/internal/application"
	"github.com/oksasatya/artwork-marketplace/internal/domain/entity"
	"github.com/oksasatya/artwork-marketplace/pkg/response"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	IsArtist *bool   `json:"is_artist"`
}

// List GET /users. An empty store is answered with 404.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if len(users) == 0 {
		notFound(c, "No users found.")
		return
	}
	response.Success(c, http.StatusOK, publicUsers(users), "users", nil)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "User")
	if !ok {
		return
	}
	u, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u.Public(), "user", nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "User")
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), id, entity.UserPatch{Name: req.Name, Email: req.Email, IsArtist: req.IsArtist})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u.Public(), "User updated successfully", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "User")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "User deleted successfully", nil)
}

// Artworks GET /users/:id/artworks
func (h *UserHandler) Artworks(c *gin.Context) {
	id, ok := pathID(c, "User")
	if !ok {
		return
	}
	artworks, err := h.Svc.ArtworksOf(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, artworks, "artworks", nil)
}

// Reviews GET /users/:id/reviews
func (h *UserHandler) Reviews(c *gin.Context) {
	id, ok := pathID(c, "User")
	if !ok {
		return
	}
	reviews, err := h.Svc.ReviewsBy(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, reviews, "reviews", nil)
}
