package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/rentdesk/internal/auth"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/repository"
)

// Error codes written by the role gate.
const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
)

const (
	// ClaimsKey is the context key for the authenticated token claims
	ClaimsKey = "claims"
	// SupervisorKey is the context key for the supervisor record loaded by RequirePermission
	SupervisorKey = "supervisor"
	// TokenKey is the context key for the raw bearer token
	TokenKey = "token"
)

// SupervisorLookup loads a supervisor with its permission set.
type SupervisorLookup interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Supervisor, error)
}

// abortJSON writes the standard error envelope and stops the chain.
func abortJSON(c *gin.Context, status int, code, message string) {
	requestID := GetRequestID(c)
	if log := GetLogger(c); log != nil && status < http.StatusInternalServerError {
		log.Warn("Request rejected", map[string]interface{}{
			"status":     status,
			"code":       code,
			"message":    message,
			"request_id": requestID,
			"path":       c.Request.URL.Path,
		})
	}

	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":       code,
			"message":    message,
			"request_id": requestID,
		},
	})
}

// Authenticate requires a valid, unrevoked bearer token and stores its
// claims in the context.
func Authenticate(tokens *auth.TokenManager, store auth.TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			abortJSON(c, http.StatusUnauthorized, CodeUnauthorized, "Missing bearer token")
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, CodeUnauthorized, "Invalid or expired token")
			return
		}

		revoked, err := store.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			if log := GetLogger(c); log != nil {
				log.Error("Failed to check token revocation", err, map[string]interface{}{
					"request_id": GetRequestID(c),
				})
			}
			abortJSON(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred")
			return
		}
		if revoked {
			abortJSON(c, http.StatusUnauthorized, CodeUnauthorized, "Token has been revoked")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(TokenKey, raw)
		if log := GetLogger(c); log != nil {
			c.Set(loggerKey, log.WithUser(claims.UserID))
		}

		c.Next()
	}
}

// GetClaims returns the authenticated claims, or nil outside Authenticate.
func GetClaims(c *gin.Context) *auth.Claims {
	if v, exists := c.Get(ClaimsKey); exists {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetSupervisor returns the supervisor loaded by RequirePermission, or nil.
func GetSupervisor(c *gin.Context) *models.Supervisor {
	if v, exists := c.Get(SupervisorKey); exists {
		if s, ok := v.(*models.Supervisor); ok {
			return s
		}
	}
	return nil
}

func requireRole(message string, allowed func(*auth.Claims) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			abortJSON(c, http.StatusUnauthorized, CodeUnauthorized, "Authentication required")
			return
		}
		if !allowed(claims) {
			abortJSON(c, http.StatusForbidden, CodeForbidden, message)
			return
		}
		c.Next()
	}
}

// RequireSuperuser admits superusers only.
func RequireSuperuser() gin.HandlerFunc {
	return requireRole("Superuser access required", func(cl *auth.Claims) bool {
		return cl.IsSuperuser
	})
}

// RequireTenant admits tenant accounts only.
func RequireTenant() gin.HandlerFunc {
	return requireRole("Tenant access required", func(cl *auth.Claims) bool {
		return cl.IsTenant
	})
}

// RequireSupervisor admits supervisors and superusers.
func RequireSupervisor() gin.HandlerFunc {
	return requireRole("Supervisor access required", func(cl *auth.Claims) bool {
		return cl.IsSupervisor || cl.IsSuperuser
	})
}

// RequirePermission admits superusers, and supervisors whose permission set
// contains name. The supervisor record is stored under SupervisorKey.
func RequirePermission(supervisors SupervisorLookup, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			abortJSON(c, http.StatusUnauthorized, CodeUnauthorized, "Authentication required")
			return
		}
		if claims.IsSuperuser {
			c.Next()
			return
		}
		if !claims.IsSupervisor {
			abortJSON(c, http.StatusForbidden, CodeForbidden, "Permission "+name+" required")
			return
		}

		sup, err := supervisors.GetByUserID(c.Request.Context(), claims.UserID)
		if errors.Is(err, repository.ErrNotFound) {
			abortJSON(c, http.StatusForbidden, CodeForbidden, "Permission "+name+" required")
			return
		}
		if err != nil {
			if log := GetLogger(c); log != nil {
				log.Error("Failed to load supervisor permissions", err, map[string]interface{}{
					"user_id":    claims.UserID,
					"permission": name,
				})
			}
			abortJSON(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred")
			return
		}
		if !sup.HasPermission(name) {
			abortJSON(c, http.StatusForbidden, CodeForbidden, "Permission "+name+" required")
			return
		}

		c.Set(SupervisorKey, sup)
		c.Next()
	}
}
