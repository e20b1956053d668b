package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/umeedai/umeed-api/internal/middleware"
	"github.com/umeedai/umeed-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// actorFromContext resolves the identifier recorded in audit entries.
// Falls back to the system placeholder when no authenticated actor exists.
func actorFromContext(c *gin.Context) string {
	claims := claimsFromContext(c)
	if claims == nil {
		return models.AuditActorSystem
	}
	if claims.Email != "" {
		return claims.Email
	}
	if claims.UserID != "" {
		return claims.UserID
	}
	return models.AuditActorSystem
}
