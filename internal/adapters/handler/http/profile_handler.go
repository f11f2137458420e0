package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
	"github.com/comitanigiacomo/smokefree-tracker/internal/core/services"
	"github.com/comitanigiacomo/smokefree-tracker/internal/platform/logger"
)

type ProfileHandler struct {
	svc *services.ProfileService
	log *logger.Logger
}

func NewProfileHandler(svc *services.ProfileService, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, log: log}
}

type saveProfileRequest struct {
	QuitDate          string   `json:"quitDate" binding:"required"`
	CigarettesPerDay  *int     `json:"cigarettesPerDay" binding:"required"`
	CostPerPack       *float64 `json:"costPerPack" binding:"required"`
	CigarettesPerPack *int     `json:"cigarettesPerPack"`
	PersonalGoal      *string  `json:"personalGoal"`
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/quit-profile")
	{
		profile.GET("", h.Get)
		profile.POST("", h.Save)
	}
}

// Get godoc
// @Summary Current quit profile with headline stats
// @Tags quit-profile
// @Produce json
// @Router /quit-profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	if id.Demo {
		view, err := h.svc.Demo()
		if err != nil {
			handleError(c, h.log, err)
			return
		}
		respond(c, http.StatusOK, view, "")
		return
	}

	view, err := h.svc.Get(c.Request.Context(), id.UserID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, view, "")
}

// Save godoc
// @Summary Create or replace the quit profile
// @Tags quit-profile
// @Accept json
// @Produce json
// @Router /quit-profile [post]
func (h *ProfileHandler) Save(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if id.Demo {
		handleError(c, h.log, domain.ErrDemoReadOnly)
		return
	}

	var req saveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Missing required fields: quitDate, cigarettesPerDay, costPerPack")
		return
	}

	quitDate, err := domain.ParseDate(req.QuitDate)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid quitDate")
		return
	}

	input := services.SaveProfileInput{
		UserID:            id.UserID,
		QuitDate:          quitDate,
		CigarettesPerDay:  *req.CigarettesPerDay,
		CostPerPack:       *req.CostPerPack,
		CigarettesPerPack: req.CigarettesPerPack,
	}
	if req.PersonalGoal != nil {
		input.PersonalGoal = *req.PersonalGoal
	}

	view, err := h.svc.Save(c.Request.Context(), input)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, view, "Quit profile saved successfully")
}
