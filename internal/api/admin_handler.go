package api

import (
	"innovafit/gym-backend/internal/domain"
	"innovafit/gym-backend/internal/logger"
	"innovafit/gym-backend/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes catalog writes to operators.
type AdminHandler struct {
	admin service.AdminService
	log   *logger.Logger
}

func NewAdminHandler(admin service.AdminService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, log: log}
}

type CreateTagRequest struct {
	Tag       string `json:"tag"` // Generated when empty
	GymID     string `json:"gymId" binding:"required"`
	MachineID string `json:"machineId" binding:"required"`
}

type MediaUploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// CreateGym godoc
// @Summary Create a gym
// @Tags Admin
// @Accept json
// @Produce json
// @Param X-Admin-Key header string true "Operator key"
// @Param gym body domain.Gym true "Gym; id is generated when empty"
// @Success 201 {object} domain.Gym
// @Failure 409 {object} gin.H "Gym id already exists"
// @Router /admin/gyms [post]
func (h *AdminHandler) CreateGym(c *gin.Context) {
	var gym domain.Gym
	if err := c.ShouldBindJSON(&gym); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	created, err := h.admin.CreateGym(c.Request.Context(), &gym)
	if err != nil {
		respondWithServiceError(c, h.log, err, "create gym")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// CreateMachine godoc
// @Summary Create a machine with its videos
// @Tags Admin
// @Accept json
// @Produce json
// @Param X-Admin-Key header string true "Operator key"
// @Param machine body domain.Machine true "Machine"
// @Success 201 {object} domain.Machine
// @Router /admin/machines [post]
func (h *AdminHandler) CreateMachine(c *gin.Context) {
	var machine domain.Machine
	if err := c.ShouldBindJSON(&machine); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	created, err := h.admin.CreateMachine(c.Request.Context(), &machine)
	if err != nil {
		respondWithServiceError(c, h.log, err, "create machine")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *AdminHandler) CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	created, err := h.admin.CreateTag(c.Request.Context(), &domain.Tag{ID: req.Tag, GymID: req.GymID, MachineID: req.MachineID})
	if err != nil {
		respondWithServiceError(c, h.log, err, "create tag")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *AdminHandler) LinkMachine(c *gin.Context) {
	gymID, machineID := c.Param("gymId"), c.Param("machineId")
	if err := h.admin.LinkMachine(c.Request.Context(), gymID, machineID); err != nil {
		respondWithServiceError(c, h.log, err, "link machine")
		return
	}
	c.JSON(http.StatusOK, domain.GymMachine{GymID: gymID, MachineID: machineID})
}

// MediaUploadURL godoc
// @Summary Presign an upload for machine media
// @Description Returns a PUT URL; store the returned objectKey as the machine's imageUrl or a video cover.
// @Tags Admin
// @Accept json
// @Produce json
// @Param X-Admin-Key header string true "Operator key"
// @Param machineId path string true "Machine ID"
// @Param upload body MediaUploadRequest true "File details"
// @Success 200 {object} service.MediaUpload
// @Failure 503 {object} gin.H "Object storage not configured"
// @Router /admin/machines/{machineId}/media-upload-url [post]
func (h *AdminHandler) MediaUploadURL(c *gin.Context) {
	var req MediaUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	upload, err := h.admin.MediaUploadURL(c.Request.Context(), c.Param("machineId"), req.FileName, req.ContentType)
	if err != nil {
		respondWithServiceError(c, h.log, err, "prepare media upload")
		return
	}
	c.JSON(http.StatusOK, upload)
}
