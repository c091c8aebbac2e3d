// Package handler wires the HTTP surface onto the session manager,
// attendance store, and report formatter.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"attendease/internal/clock"
	"attendease/internal/directory"
	"attendease/internal/session"
)

// Handler carries the service dependencies for all routes.
type Handler struct {
	sessions *session.Manager
	store    attendanceStore
	dir      *directory.Directory
	clk      clock.Clock
}

// New creates a handler set.
func New(sessions *session.Manager, store attendanceStore, dir *directory.Directory, clk clock.Clock) *Handler {
	if clk == nil {
		clk = clock.System{}
	}
	return &Handler{sessions: sessions, store: store, dir: dir, clk: clk}
}

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Role       string `json:"role" binding:"required,oneof=admin staff"`
}

// Login authenticates against the directory and opens a session.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.sessions.Login(c.Request.Context(), req.Identifier, req.Password, directory.Role(req.Role))
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": publicUser(user)})
}

// Logout clears the session; it always succeeds.
func (h *Handler) Logout(c *gin.Context) {
	h.sessions.Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// Session returns the identity behind the presented token.
func (h *Handler) Session(c *gin.Context) {
	claims, ok := session.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no session"})
		return
	}
	user := h.dir.ByID(claims.UserID)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": publicUser(user), "authenticated": true})
}

// publicUser strips the stored credential from API responses.
func publicUser(u *directory.User) directory.User {
	out := *u
	out.Password = ""
	return out
}
