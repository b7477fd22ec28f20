package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xaosao/xaosao-admin-sub001/internal/middleware"
	"github.com/xaosao/xaosao-admin-sub001/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadBytes = 10 << 20 // 10 MiB

type UploadHandler struct {
	cloud cloudinary.Client // nil when uploads are not configured
}

func NewUploadHandler(cloud cloudinary.Client) *UploadHandler {
	return &UploadHandler{cloud: cloud}
}

// UploadImage handles POST /admin/uploads. Multipart field "file".
func (h *UploadHandler) UploadImage(c *gin.Context) {
	if h.cloud == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads not configured"})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}
	defer f.Close()

	publicID := fmt.Sprintf("admin_%d_%s_%s", middleware.GetUserID(c), time.Now().Format("20060102"), uuid.NewString())
	url, thumb, err := h.cloud.UploadImage(c.Request.Context(), f, "admin", publicID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "thumbnail_url": thumb, "public_id": publicID})
}
