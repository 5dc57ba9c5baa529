package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artwork-marketplace/internal/application"
	"github.com/oksasatya/artwork-marketplace/internal/domain/entity"
	"github.com/oksasatya/artwork-marketplace/internal/interface/middleware"
	"github.com/oksasatya/artwork-marketplace/pkg/helpers"
	"github.com/oksasatya/artwork-marketplace/pkg/response"
)

type AuthHandler struct {
	Svc     *application.UserService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.UserService, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

type registerRequest struct {
	Name     *string `json:"name" binding:"required"`
	Email    *string `json:"email" binding:"required"`
	Password *string `json:"password" binding:"required"`
	IsArtist *bool   `json:"is_artist"`
}

type loginRequest struct {
	Email    *string `json:"email" binding:"required"`
	Password *string `json:"password" binding:"required"`
}

// Index GET /
func (h *AuthHandler) Index(c *gin.Context) {
	if id, ok := middleware.CurrentIdentity(c); ok {
		response.Success[any](c, http.StatusOK, nil, "Logged in as "+id.Name, nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "You are not logged in", nil)
}

// RegisterInfo GET /register
func (h *AuthHandler) RegisterInfo(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"example_request": gin.H{
			"name":      "John Doe",
			"email":     "john@example.com",
			"password":  "securepassword",
			"is_artist": false,
		},
	}, "Send a POST request to register a user.", nil)
}

// Register POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	in := application.RegisterInput{Name: *req.Name, Email: *req.Email, Password: *req.Password}
	if req.IsArtist != nil {
		in.IsArtist = *req.IsArtist
	}
	u, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, u.Public(), "User registered successfully", nil)
}

// Login POST /login. Every successful login gets a fresh session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	token := uuid.NewString()
	u, err := h.Svc.Login(c.Request.Context(), token, *req.Email, *req.Password)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.Cookies.SetSession(c, token)
	response.Success(c, http.StatusOK, gin.H{"user": u.Public()}, "Login successful", nil)
}

func publicUsers(users []entity.User) []entity.PublicUser {
	out := make([]entity.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out
}
