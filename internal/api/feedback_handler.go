package api

import (
	"innovafit/gym-backend/internal/domain"
	"innovafit/gym-backend/internal/logger"
	"innovafit/gym-backend/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	feedback service.FeedbackService
	log      *logger.Logger
}

func NewFeedbackHandler(feedback service.FeedbackService, log *logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback, log: log}
}

type SubmitFeedbackRequest struct {
	GymID    string `json:"gymId" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Answer   string `json:"answer" binding:"required"`
	Comment  string `json:"comment" binding:"max=2000"`
	Platform string `json:"platform" binding:"required"`
}

type FeedbackPromptResponse struct {
	DeviceID string `json:"deviceId"`
	Asked    bool   `json:"asked"`
}

// SubmitFeedback godoc
// @Summary Rate a gym
// @Tags Feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param feedback body SubmitFeedbackRequest true "Feedback"
// @Success 201 {object} domain.Feedback
// @Failure 400 {object} gin.H "Invalid input"
// @Router /feedback [post]
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	saved, err := h.feedback.Submit(c.Request.Context(), &domain.Feedback{
		GymID:    req.GymID,
		UserID:   userID,
		Rating:   req.Rating,
		Answer:   domain.FeedbackAnswer(req.Answer),
		Comment:  req.Comment,
		Platform: req.Platform,
	})
	if err != nil {
		respondWithServiceError(c, h.log, err, "submit feedback")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// GetFeedbackPrompt reports whether the device was already asked for feedback.
func (h *FeedbackHandler) GetFeedbackPrompt(c *gin.Context) {
	deviceID := c.Param("deviceId")
	asked, err := h.feedback.HasAskedFeedback(c.Request.Context(), deviceID)
	if err != nil {
		respondWithServiceError(c, h.log, err, "read feedback prompt flag")
		return
	}
	c.JSON(http.StatusOK, FeedbackPromptResponse{DeviceID: deviceID, Asked: asked})
}

// MarkFeedbackPrompt records that the device has been asked. Idempotent.
func (h *FeedbackHandler) MarkFeedbackPrompt(c *gin.Context) {
	deviceID := c.Param("deviceId")
	if err := h.feedback.MarkFeedbackAsked(c.Request.Context(), deviceID); err != nil {
		respondWithServiceError(c, h.log, err, "store feedback prompt flag")
		return
	}
	c.JSON(http.StatusOK, FeedbackPromptResponse{DeviceID: deviceID, Asked: true})
}
