package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	authorizationHeader = "Authorization"
	authorizationType   = "Bearer"
	SessionCookieName   = "sessionToken"

	ContextUserIDKey   = "userID"
	ContextIdentityKey = "identity"
)

// TokenValidator resolves a session token to a user id.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

// Identity is who the current request acts as.
type Identity struct {
	UserID        string
	Authenticated bool
	Guest         bool
	Demo          bool
}

// Authenticate attaches the user of a valid bearer token or session cookie.
// Requests without credentials pass through so guest resolution can run; a
// bearer header that is present but invalid is rejected.
func Authenticate(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, fromHeader, ok := extractToken(c)
		if !ok {
			c.Next()
			return
		}

		userID, err := tokens.ValidateToken(c.Request.Context(), token)
		if err != nil {
			if fromHeader {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"message": "Invalid or expired token",
				})
				return
			}
			// Stale cookie: fall back to guest identity.
			c.Next()
			return
		}

		SetIdentity(c, Identity{UserID: userID, Authenticated: true})
		c.Next()
	}
}

// RequireIdentity aborts with 401 when no identity was resolved.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetIdentity(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorized",
			})
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) (token string, fromHeader bool, ok bool) {
	if authHeader := c.GetHeader(authorizationHeader); authHeader != "" {
		fields := strings.Fields(authHeader)
		if len(fields) == 2 && strings.EqualFold(fields[0], authorizationType) {
			return fields[1], true, true
		}
		return "", true, false
	}

	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie, false, true
	}
	return "", false, false
}

func SetIdentity(c *gin.Context, id Identity) {
	c.Set(ContextIdentityKey, id)
	c.Set(ContextUserIDKey, id.UserID)
}

func GetIdentity(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(ContextIdentityKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok && id.UserID != ""
}

func GetUserID(c *gin.Context) (string, bool) {
	id, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", false
	}
	idStr, ok := id.(string)
	return idStr, ok && idStr != ""
}
