// server/internal/api/handlers/client_handler.go
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

type ClientHandler struct {
	Store *store.Collection
}

type SaveClientRequest struct {
	Name       string            `json:"name" binding:"required"`
	Document   string            `json:"document"`
	ClientType models.ClientType `json:"clientType" binding:"required,oneof=CONTRIBUTOR NON_CONTRIBUTOR"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Address    string            `json:"address"`
	City       string            `json:"city"`
	UF         string            `json:"uf"`
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req SaveClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	client := models.Client{
		ClientID:   uuid.New().String(),
		Name:       req.Name,
		Document:   req.Document,
		ClientType: req.ClientType,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		UF:         req.UF,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.Store.Create(c.Request.Context(), client); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) GetAllClients(c *gin.Context) {
	var clients []models.Client
	if err := h.Store.GetAll(c.Request.Context(), &clients); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query clients"})
		return
	}

	if c.Query("includeInactive") != "true" {
		active := clients[:0]
		for _, client := range clients {
			if client.Active {
				active = append(active, client)
			}
		}
		clients = active
	}
	if clients == nil {
		clients = []models.Client{}
	}

	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) GetClientByID(c *gin.Context) {
	var client models.Client
	err := h.Store.GetByID(c.Request.Context(), c.Param("id"), &client)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		}
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var req SaveClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Store.Update(c.Request.Context(), c.Param("id"), bson.M{
		"name":       req.Name,
		"document":   req.Document,
		"clientType": req.ClientType,
		"email":      req.Email,
		"phone":      req.Phone,
		"address":    req.Address,
		"city":       req.City,
		"uf":         req.UF,
		"updatedAt":  time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client updated successfully"})
}

// DeleteClient soft-deletes, same as carriers.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	err := h.Store.Update(c.Request.Context(), c.Param("id"), bson.M{
		"active":    false,
		"updatedAt": time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deactivated successfully"})
}
