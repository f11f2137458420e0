package http

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/smokefree-tracker/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
	"github.com/comitanigiacomo/smokefree-tracker/internal/core/progress"
	"github.com/comitanigiacomo/smokefree-tracker/internal/platform/logger"
)

// envelope is the body shape of every API response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, envelope{Success: true, Data: data, Message: message})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Success: false, Message: message})
}

var badRequestErrors = []error{
	domain.ErrInvalidEmail,
	domain.ErrPasswordTooShort,
	domain.ErrConsentRequired,
	domain.ErrQuitDateRequired,
	domain.ErrQuitDateInFuture,
	domain.ErrQuitDateTooOld,
	domain.ErrInvalidCigarettesPerDay,
	domain.ErrTooManyCigarettesPerDay,
	domain.ErrInvalidCostPerPack,
	domain.ErrInvalidCigarettesPack,
	domain.ErrPersonalGoalTooLong,
	domain.ErrCheckInDateRequired,
	domain.ErrCheckInDateInFuture,
	domain.ErrInvalidCravingIntensity,
	domain.ErrMoodRequired,
	domain.ErrMoodTooLong,
	domain.ErrNotesTooLong,
	progress.ErrInvalidArgument,
}

func handleError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidEmail):
		fail(c, http.StatusBadRequest, "Please enter a valid email.")

	case errors.Is(err, domain.ErrConsentRequired):
		fail(c, http.StatusBadRequest, "Consent is required to subscribe.")

	case isBadRequest(err):
		fail(c, http.StatusBadRequest, sentence(err.Error()))

	case errors.Is(err, domain.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, "Invalid email or password.")

	case errors.Is(err, domain.ErrUnauthorized):
		fail(c, http.StatusUnauthorized, "Unauthorized")

	case errors.Is(err, domain.ErrDemoReadOnly):
		fail(c, http.StatusForbidden, "Demo mode is read-only. Sign up to save your progress.")

	case errors.Is(err, domain.ErrQuitProfileNotFound):
		fail(c, http.StatusNotFound, "No quit profile found")

	case errors.Is(err, domain.ErrCheckInExists):
		fail(c, http.StatusConflict, "A check-in already exists for this date")

	case errors.Is(err, domain.ErrEmailAlreadyExists):
		fail(c, http.StatusConflict, "An account with this email already exists. Try signing in.")

	default:
		log.Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		fail(c, http.StatusInternalServerError, "Internal server error")
	}
}

func isBadRequest(err error) bool {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func sentence(msg string) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return msg
	}
	r := []rune(msg)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// identity returns the resolved caller or writes a 401.
func identity(c *gin.Context) (middleware.Identity, bool) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Unauthorized")
		return middleware.Identity{}, false
	}
	return id, true
}
