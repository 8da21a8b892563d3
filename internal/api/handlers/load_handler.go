// server/internal/api/handlers/load_handler.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"gesla-logistics-api-server/internal/loads"
	"gesla-logistics-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

type LoadHandler struct {
	Service *loads.Service
}

// --- Structs for Request Body ---

type SaveLoadRequest struct {
	Status               models.LoadStatus     `json:"status"`
	ShippingType         models.ShippingType   `json:"shippingType" binding:"required,oneof=CIF FOB"`
	MovementType         string                `json:"movementType"`
	CarrierID            string                `json:"carrierID"`
	Carrier              string                `json:"carrier"`
	Deliveries           []models.Delivery     `json:"deliveries" binding:"required"`
	Financial            *models.LoadFinancial `json:"financial"`
	Vehicle              *models.LoadVehicle   `json:"vehicle"`
	FreightValue         float64               `json:"freightValue"`
	HasDifal             bool                  `json:"hasDifal"`
	DifalGuide           string                `json:"difalGuide"`
	PaymentProof         string                `json:"paymentProof"`
	DeliveryProof        string                `json:"deliveryProof"`
	Date                 *time.Time            `json:"date"`
	ExpectedDeliveryDate *time.Time            `json:"expectedDeliveryDate"`
	TotalWeight          float64               `json:"totalWeight"`
	TotalVolume          float64               `json:"totalVolume"`
}

type UpdateStatusRequest struct {
	Status models.LoadStatus `json:"status" binding:"required,oneof=TRANSIT ARRIVED IDENTIFIED BILLED DISPATCHED COMPLETED CANCELLED"`
	Notes  string            `json:"notes"`
}

func (r SaveLoadRequest) toModel() models.Load {
	load := models.Load{
		Status:               r.Status,
		ShippingType:         r.ShippingType,
		MovementType:         r.MovementType,
		CarrierID:            r.CarrierID,
		Carrier:              r.Carrier,
		Deliveries:           r.Deliveries,
		Financial:            r.Financial,
		Vehicle:              r.Vehicle,
		FreightValue:         r.FreightValue,
		HasDifal:             r.HasDifal,
		DifalGuide:           r.DifalGuide,
		PaymentProof:         r.PaymentProof,
		DeliveryProof:        r.DeliveryProof,
		ExpectedDeliveryDate: r.ExpectedDeliveryDate,
		TotalWeight:          r.TotalWeight,
		TotalVolume:          r.TotalVolume,
	}
	if r.Date != nil {
		load.Date = *r.Date
	}
	return load
}

// --- Handlers ---

// CreateLoad creates a new load; status defaults to TRANSIT.
func (h *LoadHandler) CreateLoad(c *gin.Context) {
	var req SaveLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	load, err := h.Service.Save(c.Request.Context(), req.toModel(), c.GetString("user_id"))
	if err != nil {
		if isValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create load", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, load)
}

// UpdateLoad edits an existing load. The stored history is preserved no
// matter what the client sends.
func (h *LoadHandler) UpdateLoad(c *gin.Context) {
	var req SaveLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := req.toModel()
	input.LoadID = c.Param("id")

	load, err := h.Service.Save(c.Request.Context(), input, c.GetString("user_id"))
	if err != nil {
		switch {
		case errors.Is(err, loads.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Load not found"})
		case isValidationErr(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update load", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, load)
}

// GetAllLoads lists active loads, optionally filtered by status.
// Example: /loads?status=TRANSIT
func (h *LoadHandler) GetAllLoads(c *gin.Context) {
	status := models.LoadStatus(c.Query("status"))

	result, err := h.Service.ListActive(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query loads"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetLoad returns one load by id, soft-deleted included.
func (h *LoadHandler) GetLoad(c *gin.Context) {
	load, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, loads.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Load not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve load"})
		return
	}
	c.JSON(http.StatusOK, load)
}

// UpdateLoadStatus runs the state machine transition.
func (h *LoadHandler) UpdateLoadStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	load, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, c.GetString("user_id"), req.Notes)
	if err != nil {
		if errors.Is(err, loads.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Load not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, load)
}

// DeleteLoad soft-deletes: the record stays addressable by id but leaves
// every listing and aggregate.
func (h *LoadHandler) DeleteLoad(c *gin.Context) {
	err := h.Service.SoftDelete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, loads.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Load not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete load"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Load deactivated"})
}

// GetPendingFiscal lists active, non-terminal loads missing DIFAL documents.
func (h *LoadHandler) GetPendingFiscal(c *gin.Context) {
	result, err := h.Service.PendingFiscal(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query pending fiscal loads"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func isValidationErr(err error) bool {
	return errors.Is(err, loads.ErrNoDeliveries) || errors.Is(err, loads.ErrDeliveryWithoutItems)
}
