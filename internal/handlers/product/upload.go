package product

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"aodai_back_end/internal/apperr"
)

// Upload stores a product image and returns its public URL.
func (h *Handler) Upload(c *gin.Context) {
	if h.uploads == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Image upload is not configured"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation("An image file is required"), err))
		return
	}

	url, err := h.uploads.Upload(c.Request.Context(), file)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	log.Printf("🖼️ Image uploaded: %s", url)
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
