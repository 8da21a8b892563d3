// server/internal/api/handlers/material_handler.go
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

type MaterialHandler struct {
	Store *store.Collection
}

type SaveMaterialRequest struct {
	Description string  `json:"description" binding:"required"`
	Unit        string  `json:"unit" binding:"required"`
	UnitWeight  float64 `json:"unitWeight"`
	UnitVolume  float64 `json:"unitVolume"`
}

func (h *MaterialHandler) CreateMaterial(c *gin.Context) {
	var req SaveMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	material := models.Material{
		MaterialID:  uuid.New().String(),
		Description: req.Description,
		Unit:        req.Unit,
		UnitWeight:  req.UnitWeight,
		UnitVolume:  req.UnitVolume,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.Store.Create(c.Request.Context(), material); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create material"})
		return
	}

	c.JSON(http.StatusCreated, material)
}

func (h *MaterialHandler) GetAllMaterials(c *gin.Context) {
	var materials []models.Material
	if err := h.Store.GetAll(c.Request.Context(), &materials); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query materials"})
		return
	}
	if materials == nil {
		materials = []models.Material{}
	}
	c.JSON(http.StatusOK, materials)
}

func (h *MaterialHandler) GetMaterialByID(c *gin.Context) {
	var material models.Material
	err := h.Store.GetByID(c.Request.Context(), c.Param("id"), &material)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Material not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve material"})
		}
		return
	}
	c.JSON(http.StatusOK, material)
}

func (h *MaterialHandler) UpdateMaterial(c *gin.Context) {
	var req SaveMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Store.Update(c.Request.Context(), c.Param("id"), bson.M{
		"description": req.Description,
		"unit":        req.Unit,
		"unitWeight":  req.UnitWeight,
		"unitVolume":  req.UnitVolume,
		"updatedAt":   time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update material"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Material updated successfully"})
}

// DeleteMaterial removes the record physically. Materials are catalog
// entries, not audited documents.
func (h *MaterialHandler) DeleteMaterial(c *gin.Context) {
	if err := h.Store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete material"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Material deleted successfully"})
}
