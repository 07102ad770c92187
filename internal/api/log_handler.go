package api

import (
	"innovafit/gym-backend/internal/logger"
	"innovafit/gym-backend/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// LogHandler records completed exercises and serves the weekly history.
type LogHandler struct {
	logs        service.ExerciseLogService
	history     service.HistoryService
	defaultZone *time.Location
	log         *logger.Logger
}

func NewLogHandler(logs service.ExerciseLogService, history service.HistoryService, defaultZone *time.Location, log *logger.Logger) *LogHandler {
	return &LogHandler{logs: logs, history: history, defaultZone: defaultZone, log: log}
}

type LogExerciseRequest struct {
	MachineID string `json:"machineId" binding:"required"`
	VideoID   string `json:"videoId" binding:"required"`
}

type LogExerciseResponse struct {
	Created bool `json:"created"`
}

// LogExercise godoc
// @Summary Record a completed exercise video
// @Description At most one log per user, video and local calendar day (zone from X-Timezone).
// @Tags History
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param log body LogExerciseRequest true "Machine and video"
// @Success 201 {object} LogExerciseResponse "Log created"
// @Success 200 {object} LogExerciseResponse "Already logged today"
// @Failure 404 {object} gin.H "Unknown machine or video"
// @Router /me/logs [post]
func (h *LogHandler) LogExercise(c *gin.Context) {
	var req LogExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	loc, err := requestLocation(c, h.defaultZone)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.logs.LogExercise(c.Request.Context(), userID, req.MachineID, req.VideoID, loc)
	if err != nil {
		respondWithServiceError(c, h.log, err, "record exercise")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, LogExerciseResponse{Created: created})
}

// WeeklySummary godoc
// @Summary Current week's exercise history
// @Tags History
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.WeeklySummary
// @Router /me/logs/week [get]
func (h *LogHandler) WeeklySummary(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	loc, err := requestLocation(c, h.defaultZone)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.history.WeeklySummary(c.Request.Context(), userID, loc)
	if err != nil {
		respondWithServiceError(c, h.log, err, "retrieve weekly history")
		return
	}
	c.JSON(http.StatusOK, summary)
}
