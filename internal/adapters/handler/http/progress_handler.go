package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
	"github.com/comitanigiacomo/smokefree-tracker/internal/core/services"
	"github.com/comitanigiacomo/smokefree-tracker/internal/platform/logger"
)

type ProgressHandler struct {
	svc *services.ProgressService
	log *logger.Logger
}

func NewProgressHandler(svc *services.ProgressService, log *logger.Logger) *ProgressHandler {
	return &ProgressHandler{svc: svc, log: log}
}

func (h *ProgressHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/progress", h.Get)
}

// Get godoc
// @Summary Derived progress summary
// @Tags progress
// @Produce json
// @Router /progress [get]
func (h *ProgressHandler) Get(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	var (
		summary *domain.ProgressSummary
		err     error
	)
	if id.Demo {
		summary, err = h.svc.DemoSummary()
	} else {
		summary, err = h.svc.GetSummary(c.Request.Context(), id.UserID)
	}
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	respond(c, http.StatusOK, summary, "")
}
