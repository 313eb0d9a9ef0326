package security

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"assettrack/pkg/roles"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// JWTMiddleware validates the bearer token and stores its claims on the
// request context. Anonymous requests never reach a handler body.
func JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return secret(), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		claims := token.Claims.(jwt.MapClaims)
		c.Set("userID", claims["userID"])
		c.Set("role", claims["role"])
		superuser, _ := claims["superuser"].(bool)
		c.Set("superuser", superuser)
		c.Next()
	}
}

// RequireManagerOrAdmin gates mutating operations. The check runs
// before the handler body, so a rejected request has no side effects.
func RequireManagerOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsManagerOrAdmin(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Authorize ensures the user holds at least the required role.
func Authorize(requiredRole roles.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := contextRole(c)
		if !ok || !role.HasPermission(requiredRole) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// IsManagerOrAdmin evaluates the mutation gate for the current request.
func IsManagerOrAdmin(c *gin.Context) bool {
	role, ok := contextRole(c)
	if !ok {
		return false
	}
	superuser := c.GetBool("superuser")
	return roles.IsManagerOrAdmin(role, superuser)
}

// ActingUserID returns the authenticated user's id, or nil when the
// claim is missing or malformed.
func ActingUserID(c *gin.Context) *int {
	raw, exists := c.Get("userID")
	if !exists {
		return nil
	}

	value, ok := raw.(string)
	if !ok {
		return nil
	}

	id, err := strconv.Atoi(value)
	if err != nil || id == 0 {
		return nil
	}
	return &id
}

func contextRole(c *gin.Context) (roles.Role, bool) {
	raw, exists := c.Get("role")
	if !exists {
		return "", false
	}
	value, ok := raw.(string)
	if !ok {
		return "", false
	}

	role := roles.Role(value)
	if !role.IsValid() {
		return "", false
	}
	return role, true
}
