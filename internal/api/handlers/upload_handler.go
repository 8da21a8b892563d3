// server/internal/api/handlers/upload_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"gesla-logistics-api-server/internal/loads"
	"gesla-logistics-api-server/internal/s3"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadHandler struct {
	Uploader *s3.Uploader
	Service  *loads.Service
}

// UploadDocument attaches a fiscal or delivery document to a load.
// The kind path segment selects the target field:
// payment-proof | difal-guide | delivery-proof.
func (h *UploadHandler) UploadDocument(c *gin.Context) {
	if h.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Document storage is not configured"})
		return
	}

	kind := loads.DocumentKind(c.Param("kind"))
	switch kind {
	case loads.DocPaymentProof, loads.DocDifalGuide, loads.DocDeliveryProof:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown document kind %q", kind)})
		return
	}

	loadID := c.Param("id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	objectKey := fmt.Sprintf("loads/%s/%s-%s%s", loadID, kind, uuid.New().String()[:8], filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")

	url, err := h.Uploader.UploadFile(c.Request.Context(), file, objectKey, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload document", "details": err.Error()})
		return
	}

	load, err := h.Service.AttachDocument(c.Request.Context(), loadID, kind, url)
	if err != nil {
		if errors.Is(err, loads.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Load not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach document", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "url": url, "load": load})
}
