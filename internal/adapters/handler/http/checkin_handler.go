package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
	"github.com/comitanigiacomo/smokefree-tracker/internal/core/services"
	"github.com/comitanigiacomo/smokefree-tracker/internal/platform/logger"
)

type CheckInHandler struct {
	svc *services.CheckInService
	log *logger.Logger
}

func NewCheckInHandler(svc *services.CheckInService, log *logger.Logger) *CheckInHandler {
	return &CheckInHandler{svc: svc, log: log}
}

type createCheckInRequest struct {
	Date             string  `json:"date" binding:"required"`
	CravingIntensity *int    `json:"cravingIntensity" binding:"required"`
	Mood             string  `json:"mood" binding:"required"`
	Notes            *string `json:"notes"`
}

// checkInResponse renders the date as a plain calendar day.
type checkInResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	Date             string    `json:"date"`
	CravingIntensity int       `json:"cravingIntensity"`
	Mood             string    `json:"mood"`
	Notes            *string   `json:"notes"`
	CreatedAt        time.Time `json:"createdAt"`
}

func toCheckInResponse(c *domain.CheckIn) checkInResponse {
	return checkInResponse{
		ID:               c.ID,
		UserID:           c.UserID,
		Date:             c.Date.Format(domain.DateLayout),
		CravingIntensity: c.CravingIntensity,
		Mood:             c.Mood,
		Notes:            c.Notes,
		CreatedAt:        c.CreatedAt,
	}
}

func (h *CheckInHandler) RegisterRoutes(router *gin.RouterGroup) {
	checkIns := router.Group("/checkins")
	{
		checkIns.GET("", h.List)
		checkIns.POST("", h.Create)
	}
}

// List godoc
// @Summary Check-ins, newest first
// @Tags checkins
// @Produce json
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Router /checkins [get]
func (h *CheckInHandler) List(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	from, okFrom := parseOptionalDate(c.Query("from"))
	to, okTo := parseOptionalDate(c.Query("to"))
	if !okFrom || !okTo {
		fail(c, http.StatusBadRequest, "Invalid date")
		return
	}

	var list []*domain.CheckIn
	if id.Demo {
		list = filterByRange(h.svc.Demo(), from, to)
	} else {
		var err error
		list, err = h.svc.List(c.Request.Context(), id.UserID, from, to)
		if err != nil {
			handleError(c, h.log, err)
			return
		}
	}

	out := make([]checkInResponse, 0, len(list))
	for _, checkIn := range list {
		out = append(out, toCheckInResponse(checkIn))
	}
	respond(c, http.StatusOK, out, "")
}

// Create godoc
// @Summary Record today's (or a past day's) check-in
// @Tags checkins
// @Accept json
// @Produce json
// @Router /checkins [post]
func (h *CheckInHandler) Create(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if id.Demo {
		handleError(c, h.log, domain.ErrDemoReadOnly)
		return
	}

	var req createCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Missing required fields: date, cravingIntensity, mood")
		return
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid date")
		return
	}

	input := services.CreateCheckInInput{
		UserID:           id.UserID,
		Date:             date,
		CravingIntensity: *req.CravingIntensity,
		Mood:             req.Mood,
	}
	if req.Notes != nil {
		input.Notes = *req.Notes
	}

	checkIn, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	respond(c, http.StatusCreated, toCheckInResponse(checkIn), "Check-in created successfully")
}

func parseOptionalDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	t, err := domain.ParseDate(raw)
	return t, err == nil
}

func filterByRange(list []*domain.CheckIn, from, to time.Time) []*domain.CheckIn {
	out := make([]*domain.CheckIn, 0, len(list))
	for _, c := range list {
		if !from.IsZero() && c.Date.Before(domain.TruncateToDay(from)) {
			continue
		}
		if !to.IsZero() && c.Date.After(domain.TruncateToDay(to)) {
			continue
		}
		out = append(out, c)
	}
	return out
}
