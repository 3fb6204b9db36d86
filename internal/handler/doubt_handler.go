package handler

import (
	"net/http"

	"github.com/anusasana/portal/internal/dto"
	"github.com/anusasana/portal/internal/service"
	"github.com/anusasana/portal/pkg/response"
	"github.com/gin-gonic/gin"
)

type DoubtHandler struct {
	service service.DoubtService
}

func NewDoubtHandler(service service.DoubtService) *DoubtHandler {
	return &DoubtHandler{service: service}
}

func (h *DoubtHandler) Create(c *gin.Context) {
	var req dto.CreateDoubtInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text, studentId, and status are required"})
		return
	}

	d, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, d)
}

func (h *DoubtHandler) List(c *gin.Context) {
	doubts, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doubts)
}

func (h *DoubtHandler) Resolve(c *gin.Context) {
	var req dto.ResolveDoubtInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	d, err := h.service.Resolve(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, d)
}
