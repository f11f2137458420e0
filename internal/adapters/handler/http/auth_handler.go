package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/smokefree-tracker/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/smokefree-tracker/internal/core/services"
	"github.com/comitanigiacomo/smokefree-tracker/internal/platform/logger"
)

type AuthHandler struct {
	service      *services.AuthService
	sessionTTL   time.Duration
	secureCookie bool
	log          *logger.Logger
}

func NewAuthHandler(service *services.AuthService, sessionTTL time.Duration, secureCookie bool, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service:      service,
		sessionTTL:   sessionTTL,
		secureCookie: secureCookie,
		log:          log,
	}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type signupResponse struct {
	UserID string `json:"userId"`
}

type loginResponse struct {
	UserID    string    `json:"userId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
	}
}

// Signup godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Email and password are required.")
		return
	}

	session, err := h.service.Signup(c.Request.Context(), services.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	respond(c, http.StatusCreated, signupResponse{UserID: session.User.ID}, "Account created.")
}

// Login godoc
// @Summary Log in and receive a session token
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Email and password are required.")
		return
	}

	session, err := h.service.Login(c.Request.Context(), services.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	h.setSessionCookie(c, session.Token, int(h.sessionTTL.Seconds()))

	respond(c, http.StatusOK, loginResponse{
		UserID:    session.User.ID,
		Token:     session.Token,
		ExpiresAt: time.Now().UTC().Add(h.sessionTTL),
	}, "Logged in successfully.")
}

// Logout godoc
// @Summary Clear the session cookie
// @Tags auth
// @Produce json
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	respond(c, http.StatusOK, nil, "Logged out.")
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, value, maxAge, "/", "", h.secureCookie, true)
}
