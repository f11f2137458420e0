package middleware

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/comitanigiacomo/smokefree-tracker/internal/platform/logger"
)

const (
	GuestCookieName   = "tracker_guest_id"
	guestCookieMaxAge = int((365 * 24 * time.Hour) / time.Second)
	guestPrefix       = "guest_"
)

var guestIDPattern = regexp.MustCompile(`^guest_[0-9a-f]{32}$`)

// IdentityResolver decides who an unauthenticated request acts as.
type IdentityResolver interface {
	Resolve(c *gin.Context) (Identity, error)
}

// GuestStore makes sure a guest id has a backing user record.
type GuestStore interface {
	EnsureGuest(ctx context.Context, guestID string) error
}

// PersistedGuestResolver keeps anonymous visitors on a stable guest id stored
// in a long-lived cookie; their data is persisted like any other user's.
type PersistedGuestResolver struct {
	store  GuestStore
	secure bool
}

func NewPersistedGuestResolver(store GuestStore, secureCookie bool) *PersistedGuestResolver {
	return &PersistedGuestResolver{store: store, secure: secureCookie}
}

func (r *PersistedGuestResolver) Resolve(c *gin.Context) (Identity, error) {
	guestID, err := c.Cookie(GuestCookieName)
	if err != nil || !guestIDPattern.MatchString(guestID) {
		guestID = NewGuestID()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(GuestCookieName, guestID, guestCookieMaxAge, "/", "", r.secure, true)
	}

	if err := r.store.EnsureGuest(c.Request.Context(), guestID); err != nil {
		return Identity{}, err
	}
	return Identity{UserID: guestID, Guest: true}, nil
}

// DemoResolver serves every anonymous visitor the same read-only demo identity.
type DemoResolver struct {
	UserID string
}

func (r DemoResolver) Resolve(*gin.Context) (Identity, error) {
	return Identity{UserID: r.UserID, Guest: true, Demo: true}, nil
}

func NewGuestID() string {
	return guestPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ResolveIdentity runs the resolver for requests that Authenticate left
// without an identity.
func ResolveIdentity(resolver IdentityResolver, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetIdentity(c); ok || resolver == nil {
			c.Next()
			return
		}

		id, err := resolver.Resolve(c)
		if err != nil {
			log.Error("guest identity resolution failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Internal server error",
			})
			return
		}

		SetIdentity(c, id)
		c.Next()
	}
}
