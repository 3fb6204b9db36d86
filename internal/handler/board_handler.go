package handler

import (
	"net/http"

	"github.com/anusasana/portal/internal/dto"
	"github.com/anusasana/portal/internal/service"
	"github.com/anusasana/portal/pkg/response"
	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	service service.BoardService
}

func NewBoardHandler(service service.BoardService) *BoardHandler {
	return &BoardHandler{service: service}
}

func (h *BoardHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, dueDate, and teacherId are required"})
		return
	}

	t, err := h.service.CreateTask(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

func (h *BoardHandler) ListTasks(c *gin.Context) {
	tasks, err := h.service.ListTasks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *BoardHandler) CreateClass(c *gin.Context) {
	var req dto.CreateClassInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and teacherId are required"})
		return
	}

	cl, err := h.service.CreateClass(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, cl)
}

func (h *BoardHandler) ListClasses(c *gin.Context) {
	classes, err := h.service.ListClasses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, classes)
}

func (h *BoardHandler) CreateAnnouncement(c *gin.Context) {
	var req dto.CreateAnnouncementInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text, teacherId, and timestamp are required"})
		return
	}

	a, err := h.service.CreateAnnouncement(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, a)
}

func (h *BoardHandler) ListAnnouncements(c *gin.Context) {
	announcements, err := h.service.ListAnnouncements(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, announcements)
}
