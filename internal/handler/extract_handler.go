package handler

import (
	"net/http"

	"github.com/anusasana/portal/internal/service"
	"github.com/anusasana/portal/pkg/response"
	"github.com/gin-gonic/gin"
)

type ExtractHandler struct {
	service service.ExtractService
}

func NewExtractHandler(service service.ExtractService) *ExtractHandler {
	return &ExtractHandler{service: service}
}

// ExtractText handles the multipart upload, runs the extraction collaborator
// and returns the plain text. Unsupported formats are not an error: the
// extractor reports them as text.
func (h *ExtractHandler) ExtractText(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	result, err := h.service.ExtractFromUpload(c.Request.Context(), fh)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
