package controllers

import (
	"fmt"
	"strings"

	"auction-backend/auctionerrors"
	"auction-backend/models"

	"github.com/gin-gonic/gin"
)

// Keys under which RequireAuth stores the caller on the gin context.
const (
	ContextClaims = "claims"
	ContextUserID = "userId"
	ContextRole   = "role"
)

// RequireAuth rejects requests without a valid bearer token.
func (ctrl *Controller) RequireAuth(c *gin.Context) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		respondError(c, "RequireAuth", fmt.Errorf("%w: missing bearer token", auctionerrors.ErrUnauthorized), map[string]any{
			"path": c.Request.URL.Path,
		})
		return
	}

	ctx, cancel := ctrl.requestContext(c)
	defer cancel()

	claims, err := ctrl.Auth.Authenticate(ctx, token)
	if err != nil {
		respondError(c, "RequireAuth", err, map[string]any{"path": c.Request.URL.Path})
		return
	}

	c.Set(ContextClaims, claims)
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextRole, claims.Role)
	c.Next()
}

// RequireAdmin must run after RequireAuth.
func (ctrl *Controller) RequireAdmin(c *gin.Context) {
	if c.GetString(ContextRole) != models.RoleAdmin {
		respondError(c, "RequireAdmin", auctionerrors.ErrForbidden, map[string]any{
			"path":    c.Request.URL.Path,
			"user_id": c.GetString(ContextUserID),
		})
		return
	}
	c.Next()
}

func claimsFrom(c *gin.Context) models.Claims {
	v, _ := c.Get(ContextClaims)
	claims, _ := v.(models.Claims)
	return claims
}
