// server/internal/api/handlers/archive_handler.go
package handlers

import (
	"errors"
	"net/http"

	"gesla-logistics-api-server/internal/loads"

	"github.com/gin-gonic/gin"
)

type ArchiveHandler struct {
	Service *loads.Service
}

// GetArchivedLoads lists active loads in COMPLETED or CANCELLED status.
func (h *ArchiveHandler) GetArchivedLoads(c *gin.Context) {
	result, err := h.Service.ListArchive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query archive"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// RestoreLoad brings an archived load back to TRANSIT, appending a new
// history entry like any other transition.
func (h *ArchiveHandler) RestoreLoad(c *gin.Context) {
	load, err := h.Service.Restore(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		if errors.Is(err, loads.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Load not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restore load"})
		return
	}
	c.JSON(http.StatusOK, load)
}
