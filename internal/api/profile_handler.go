package api

import (
	"innovafit/gym-backend/internal/domain"
	"innovafit/gym-backend/internal/logger"
	"innovafit/gym-backend/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profiles service.ProfileService
	log      *logger.Logger
}

func NewProfileHandler(profiles service.ProfileService, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, log: log}
}

// SaveProfileRequest is the editable part of a profile. The id comes from the token.
type SaveProfileRequest struct {
	Name        string      `json:"name"`
	PhoneNumber string      `json:"phoneNumber"`
	Age         int         `json:"age" binding:"omitempty,min=0,max=120"`
	Gender      string      `json:"gender"`
	GymID       string      `json:"gymId" binding:"required"`
	Gym         *domain.Gym `json:"gym,omitempty"`
	Weight      float64     `json:"weight" binding:"omitempty,min=0"`
	Height      float64     `json:"height" binding:"omitempty,min=0"`
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.UserProfile
// @Failure 404 {object} gin.H "No profile saved yet"
// @Router /me/profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	profile, err := h.profiles.FetchProfile(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, h.log, err, "retrieve profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SaveProfile godoc
// @Summary Create or replace the caller's profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body SaveProfileRequest true "Profile"
// @Success 200 {object} domain.UserProfile
// @Failure 400 {object} gin.H "Invalid input"
// @Router /me/profile [put]
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	saved, err := h.profiles.SaveProfile(c.Request.Context(), &domain.UserProfile{
		ID:          userID,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Age:         req.Age,
		Gender:      req.Gender,
		GymID:       req.GymID,
		Gym:         req.Gym,
		Weight:      req.Weight,
		Height:      req.Height,
	})
	if err != nil {
		respondWithServiceError(c, h.log, err, "save profile")
		return
	}
	c.JSON(http.StatusOK, saved)
}
