package api

import (
	"innovafit/gym-backend/internal/domain"
	"innovafit/gym-backend/internal/logger"
	"innovafit/gym-backend/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves read-only gym and machine data.
type CatalogHandler struct {
	catalog  service.CatalogService
	profiles service.ProfileService
	log      *logger.Logger
}

func NewCatalogHandler(catalog service.CatalogService, profiles service.ProfileService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, profiles: profiles, log: log}
}

// ListGyms godoc
// @Summary List all gyms
// @Tags Catalog
// @Produce json
// @Success 200 {array} domain.Gym
// @Router /gyms [get]
func (h *CatalogHandler) ListGyms(c *gin.Context) {
	gyms, err := h.profiles.FetchGyms(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, h.log, err, "retrieve gyms")
		return
	}
	if gyms == nil {
		gyms = []domain.Gym{}
	}
	c.JSON(http.StatusOK, gyms)
}

func (h *CatalogHandler) GetGym(c *gin.Context) {
	gym, err := h.catalog.LoadGym(c.Request.Context(), c.Param("gymId"))
	if err != nil {
		respondWithServiceError(c, h.log, err, "retrieve gym")
		return
	}
	c.JSON(http.StatusOK, gym)
}

// ListGymMachines godoc
// @Summary List the machines of a gym
// @Tags Catalog
// @Produce json
// @Param gymId path string true "Gym ID"
// @Success 200 {array} domain.Machine
// @Router /gyms/{gymId}/machines [get]
func (h *CatalogHandler) ListGymMachines(c *gin.Context) {
	gymID := c.Param("gymId")
	if _, err := h.catalog.LoadGym(c.Request.Context(), gymID); err != nil {
		respondWithServiceError(c, h.log, err, "retrieve gym")
		return
	}
	machines, err := h.catalog.LoadMachinesForGym(c.Request.Context(), gymID)
	if err != nil {
		respondWithServiceError(c, h.log, err, "retrieve machines")
		return
	}
	if machines == nil {
		machines = []domain.Machine{}
	}
	c.JSON(http.StatusOK, machines)
}

func (h *CatalogHandler) GetMachine(c *gin.Context) {
	machine, err := h.catalog.LoadMachine(c.Request.Context(), c.Param("machineId"))
	if err != nil {
		respondWithServiceError(c, h.log, err, "retrieve machine")
		return
	}
	c.JSON(http.StatusOK, machine)
}
