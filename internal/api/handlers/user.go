package handlers

import (
	"strconv"

	"todo-panel/internal/api/middleware"
	"todo-panel/internal/config"
	"todo-panel/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(cfg *config.Config) *UserHandler {
	return &UserHandler{
		userService: services.NewUserService(cfg),
	}
}

type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

// GetUsers returns all users (admin only).
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.GetUsers()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get users"})
		return
	}

	c.JSON(200, gin.H{"users": users})
}

// GetUser returns a specific user (admin only).
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := h.userService.GetUser(uint(id))
	if err != nil {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, user)
}

// UpdatePassword updates a user's password. Users may change their own;
// admins may change anyone's.
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid user ID"})
		return
	}

	claims := middleware.CurrentClaims(c)
	if claims.UserID != uint(id) && !claims.Role.IsAdmin() {
		c.JSON(403, gin.H{"error": "Forbidden: insufficient permissions"})
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := h.userService.UpdatePassword(uint(id), req.Password); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"message": "Password updated successfully"})
}

// DeleteUser deletes a user and their tasks (admin only).
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := h.userService.DeleteUser(uint(id)); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if claims := middleware.CurrentClaims(c); claims != nil {
		logAudit(c, claims.UserID, "delete", "user", c.Param("id"))
	}
	c.JSON(200, gin.H{"message": "User deleted successfully"})
}
