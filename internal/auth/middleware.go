package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperr "github.com/amoryapp/amory-backend/internal/errors"
)

const viewerKey = "viewer_id"

// RequireAuth resolves the viewer id from the Authorization header and
// aborts with 401 when no valid session is present.
func (s *Sessions) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}
		userID, err := s.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set(viewerKey, userID)
		c.Next()
	}
}

// ViewerID returns the authenticated user id set by RequireAuth.
func ViewerID(c *gin.Context) (uint64, error) {
	v, ok := c.Get(viewerKey)
	if !ok {
		return 0, apperr.ErrNotAuthenticated
	}
	id, ok := v.(uint64)
	if !ok || id == 0 {
		return 0, apperr.ErrNotAuthenticated
	}
	return id, nil
}

func extractBearer(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return ""
}
