package handlers

import (
	"todo-panel/internal/models"
	"todo-panel/internal/services"

	"github.com/gin-gonic/gin"
)

// logAudit records an audit entry. Best effort: the request outcome
// never depends on the audit trail. The address is derived the same way
// as the lockout key.
func logAudit(c *gin.Context, userID uint, action, resource, resourceID string) {
	models.DB.Create(&models.AuditLog{
		UserID:     userID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		IPAddress:  services.ClientAddress(c.Request),
		UserAgent:  c.GetHeader("User-Agent"),
	})
}
