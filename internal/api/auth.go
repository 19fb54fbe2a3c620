package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"oakvale/server/internal/auth"
)

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) SignUp(c *gin.Context) {
	var req auth.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, err := h.auth.SignUp(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to create account")
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	session, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err, "Failed to sign in")
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *Handler) SignOut(c *gin.Context) {
	if err := h.auth.SignOut(c.GetString(ContextKeyToken)); err != nil {
		h.respondError(c, err, "Failed to sign out")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.auth.CurrentUser(c.Request.Context(), c.GetString(ContextKeyToken))
	if err != nil {
		h.respondError(c, err, "Failed to load account")
		return
	}
	c.JSON(http.StatusOK, user)
}
