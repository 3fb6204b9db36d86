package handler

import (
	"net/http"

	"github.com/anusasana/portal/internal/dto"
	"github.com/anusasana/portal/internal/service"
	"github.com/anusasana/portal/pkg/response"
	"github.com/anusasana/portal/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AssignmentHandler struct {
	service service.AssignmentService
}

func NewAssignmentHandler(service service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

func (h *AssignmentHandler) Submit(c *gin.Context) {
	var req dto.SubmitAssignmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, text, and studentId are required"})
		return
	}

	a, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, a)
}

func (h *AssignmentHandler) List(c *gin.Context) {
	assignments, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}

func (h *AssignmentHandler) Grade(c *gin.Context) {
	var req dto.GradeAssignmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	a, err := h.service.Grade(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, a)
}
