package handlers

import (
	"net/http"

	"taskdeck/internal/domain"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

// userResponse is the outward user shape; the password hash never leaves
// the server.
type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

func newAuthResponse(u *domain.User, token string) authResponse {
	return authResponse{
		User:  userResponse{ID: u.ID, Email: u.Email},
		Token: token,
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	user, token, err := h.Auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newAuthResponse(user, token))
}

func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	user, token, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newAuthResponse(user, token))
}
