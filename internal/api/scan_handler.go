package api

import (
	"innovafit/gym-backend/internal/logger"
	"innovafit/gym-backend/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ScanHandler serves QR scans and raw tag lookups.
type ScanHandler struct {
	scanService service.ScanService
	tagService  service.TagService
	log         *logger.Logger
}

func NewScanHandler(scanService service.ScanService, tagService service.TagService, log *logger.Logger) *ScanHandler {
	return &ScanHandler{scanService: scanService, tagService: tagService, log: log}
}

// ScanRequest carries the raw QR payload: a URL or a bare tag.
type ScanRequest struct {
	Payload string `json:"payload" binding:"required"`
}

// Scan godoc
// @Summary Resolve a scanned QR code
// @Description Resolves the payload to its tag, then loads the gym and machine.
// @Tags Scans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param scan body ScanRequest true "QR payload"
// @Success 200 {object} service.ScanResult
// @Failure 400 {object} gin.H "Malformed payload"
// @Failure 404 {object} gin.H "Unknown tag, gym or machine"
// @Failure 409 {object} gin.H "A newer scan by the same user replaced this one"
// @Router /scans [post]
func (h *ScanHandler) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	result, err := h.scanService.Scan(c.Request.Context(), userID, req.Payload)
	if err != nil {
		respondWithServiceError(c, h.log, err, "resolve scan")
		return
	}
	c.JSON(http.StatusOK, result)
}

// ResolveTag godoc
// @Summary Look up a tag
// @Tags Scans
// @Produce json
// @Security BearerAuth
// @Param tag path string true "Tag"
// @Success 200 {object} domain.TagRef
// @Failure 404 {object} gin.H "Unknown tag"
// @Router /tags/{tag} [get]
func (h *ScanHandler) ResolveTag(c *gin.Context) {
	ref, err := h.tagService.ResolveTag(c.Request.Context(), c.Param("tag"))
	if err != nil {
		respondWithServiceError(c, h.log, err, "resolve tag")
		return
	}
	c.JSON(http.StatusOK, ref)
}
