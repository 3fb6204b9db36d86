package handler

import (
	"net/http"

	"github.com/anusasana/portal/internal/service"
	"github.com/anusasana/portal/pkg/response"
	"github.com/gin-gonic/gin"
)

type SupportHandler struct {
	service service.SupportService
}

func NewSupportHandler(service service.SupportService) *SupportHandler {
	return &SupportHandler{service: service}
}

func (h *SupportHandler) ListForUser(c *gin.Context) {
	messages, err := h.service.ListForUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}
