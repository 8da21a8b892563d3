// server/internal/api/handlers/carrier_handler.go
package handlers

import (
	"net/http"
	"time"

	"gesla-logistics-api-server/internal/models"
	"gesla-logistics-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type CarrierHandler struct {
	Store *store.Collection
}

type SaveCarrierRequest struct {
	Name     string `json:"name" binding:"required"`
	Document string `json:"document"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	UF       string `json:"uf"`
}

// CreateCarrier registers a new carrier.
func (h *CarrierHandler) CreateCarrier(c *gin.Context) {
	var req SaveCarrierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	carrier := models.Carrier{
		CarrierID: uuid.New().String(),
		Name:      req.Name,
		Document:  req.Document,
		Email:     req.Email,
		Phone:     req.Phone,
		City:      req.City,
		UF:        req.UF,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.Store.Create(c.Request.Context(), carrier); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create carrier"})
		return
	}

	c.JSON(http.StatusCreated, carrier)
}

// GetAllCarriers lists carriers; soft-deleted ones are filtered out unless
// ?includeInactive=true.
func (h *CarrierHandler) GetAllCarriers(c *gin.Context) {
	var carriers []models.Carrier
	if err := h.Store.GetAll(c.Request.Context(), &carriers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query carriers"})
		return
	}

	if c.Query("includeInactive") != "true" {
		active := carriers[:0]
		for _, carrier := range carriers {
			if carrier.Active {
				active = append(active, carrier)
			}
		}
		carriers = active
	}
	if carriers == nil {
		carriers = []models.Carrier{}
	}

	c.JSON(http.StatusOK, carriers)
}

// GetCarrierByID returns one carrier.
func (h *CarrierHandler) GetCarrierByID(c *gin.Context) {
	var carrier models.Carrier
	err := h.Store.GetByID(c.Request.Context(), c.Param("id"), &carrier)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Carrier not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve carrier"})
		}
		return
	}
	c.JSON(http.StatusOK, carrier)
}

// UpdateCarrier shallow-merges the editable fields.
func (h *CarrierHandler) UpdateCarrier(c *gin.Context) {
	var req SaveCarrierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Store.Update(c.Request.Context(), c.Param("id"), bson.M{
		"name":      req.Name,
		"document":  req.Document,
		"email":     req.Email,
		"phone":     req.Phone,
		"city":      req.City,
		"uf":        req.UF,
		"updatedAt": time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update carrier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Carrier updated successfully"})
}

// DeleteCarrier soft-deletes: carriers stay referenced by historical loads.
func (h *CarrierHandler) DeleteCarrier(c *gin.Context) {
	err := h.Store.Update(c.Request.Context(), c.Param("id"), bson.M{
		"active":    false,
		"updatedAt": time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete carrier"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Carrier deactivated successfully"})
}
