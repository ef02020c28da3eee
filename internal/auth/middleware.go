package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"urbancart-backend/internal/models"
)

// CookieName is the cookie carrying the access token.
const CookieName = "accessToken"

const principalKey = "principal"

// Principal is the authenticated identity attached to the request context.
// Exactly one of User or Admin is set, matching Role.
type Principal struct {
	ID    primitive.ObjectID
	Role  models.Role
	User  *models.User
	Admin *models.Admin
}

// PrincipalResolver loads the full record behind a token subject id. Tokens
// are role-agnostic, so the backing lookup probes the user collection first
// and falls back to admins (user wins if both somehow match).
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, id primitive.ObjectID) (*Principal, error)
}

// Authenticate extracts the token from the accessToken cookie or the
// Authorization header (cookie first), verifies it and resolves the subject.
// Missing token aborts with 401; a bad token or an unknown subject with 400.
func Authenticate(tokens *TokenService, resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(CookieName)
		if err != nil || raw == "" {
			raw = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "Access denied. No token provided.",
			})
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false, "message": "Invalid token.",
			})
			return
		}
		id, err := primitive.ObjectIDFromHex(claims.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false, "message": "Invalid token.",
			})
			return
		}

		principal, err := resolver.ResolvePrincipal(c.Request.Context(), id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false, "message": "Invalid token. User or Admin not found.",
			})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated principal holds one of
// the allowed roles. Must be mounted after Authenticate.
func RequireRole(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFrom(c)
		if principal != nil {
			for _, role := range allowed {
				if principal.Role == role {
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Access denied. You are not authorized to access this resource.",
		})
	}
}

// PrincipalFrom returns the principal set by Authenticate, or nil.
func PrincipalFrom(c *gin.Context) *Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	principal, _ := v.(*Principal)
	return principal
}
