package middleware

import (
	"net/http"
	"strings"

	"tourops/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const authContextKey = "auth_context"

// RequireAdmin validates the Bearer token and only lets admin users through.
// The verified claims end up in the request context as a RequestContext.
func RequireAdmin(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		rc := domain.RequestContext{}
		if v, ok := claims["user_id"].(float64); ok {
			rc.UserID = domain.ID(v)
		}
		if v, ok := claims["role"].(string); ok {
			rc.Role = v
		}
		if rc.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}

		c.Set(authContextKey, rc)
		c.Next()
	}
}

// GetAuth returns the authenticated caller, when the auth middleware ran.
func GetAuth(c *gin.Context) (domain.RequestContext, bool) {
	if v, ok := c.Get(authContextKey); ok {
		if rc, ok := v.(domain.RequestContext); ok {
			return rc, true
		}
	}
	return domain.RequestContext{}, false
}
