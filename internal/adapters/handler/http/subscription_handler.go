package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/smokefree-tracker/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
	"github.com/comitanigiacomo/smokefree-tracker/internal/core/services"
	"github.com/comitanigiacomo/smokefree-tracker/internal/platform/logger"
)

type SubscriptionHandler struct {
	svc   *services.SubscriptionService
	users *services.AuthService
	log   *logger.Logger
}

func NewSubscriptionHandler(svc *services.SubscriptionService, users *services.AuthService, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc, users: users, log: log}
}

// Consent is a pointer so that only a literal true counts.
type subscribeRequest struct {
	Email   string `json:"email"`
	Consent *bool  `json:"consent"`
	Source  string `json:"source"`
}

type subscriptionStatus struct {
	SignedIn   bool   `json:"signedIn"`
	Subscribed bool   `json:"subscribed"`
	Email      string `json:"email,omitempty"`
}

func (h *SubscriptionHandler) RegisterRoutes(router *gin.RouterGroup) {
	subscribe := router.Group("/subscribe")
	{
		subscribe.POST("", h.Subscribe)
		subscribe.GET("/status", h.Status)
	}
}

// Subscribe godoc
// @Summary Join the newsletter
// @Tags subscribe
// @Accept json
// @Produce json
// @Router /subscribe [post]
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	_, err := h.svc.Subscribe(c.Request.Context(), services.SubscribeInput{
		Email:   req.Email,
		Consent: req.Consent != nil && *req.Consent,
		Source:  req.Source,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	respond(c, http.StatusOK, nil, "You’re in. Updates coming your way.")
}

// Status godoc
// @Summary Newsletter status of the signed-in user
// @Tags subscribe
// @Produce json
// @Router /subscribe/status [get]
func (h *SubscriptionHandler) Status(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok || !id.Authenticated {
		respond(c, http.StatusOK, subscriptionStatus{}, "")
		return
	}

	user, err := h.users.CurrentUser(c.Request.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respond(c, http.StatusOK, subscriptionStatus{}, "")
			return
		}
		handleError(c, h.log, err)
		return
	}
	if user.Email == nil || *user.Email == "" {
		respond(c, http.StatusOK, subscriptionStatus{}, "")
		return
	}
	email := *user.Email

	status := subscriptionStatus{SignedIn: true, Email: email}
	sub, err := h.svc.Status(c.Request.Context(), email)
	switch {
	case err == nil:
		status.Subscribed = sub.Consent
	case errors.Is(err, domain.ErrSubscriberNotFound):
	default:
		handleError(c, h.log, err)
		return
	}

	respond(c, http.StatusOK, status, "")
}
