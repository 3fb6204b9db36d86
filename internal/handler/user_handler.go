package handler

import (
	"net/http"

	"github.com/anusasana/portal/internal/entity"
	"github.com/anusasana/portal/internal/service"
	"github.com/anusasana/portal/pkg/response"
	"github.com/gin-gonic/gin"
)

// UserHandler serves the student/teacher directory endpoints. Lookups by
// uniqueId go through the role-scoped path so the STU- and TCH- namespaces
// never bleed into each other.
type UserHandler struct {
	service service.AuthService
}

func NewUserHandler(service service.AuthService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) GetStudents(c *gin.Context) {
	h.listByRole(c, entity.RoleStudent)
}

func (h *UserHandler) GetTeachers(c *gin.Context) {
	h.listByRole(c, entity.RoleTeacher)
}

func (h *UserHandler) listByRole(c *gin.Context, role string) {
	users, err := h.service.ListByRole(c.Request.Context(), role)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetStudentByUniqueID(c *gin.Context) {
	h.lookupByUniqueID(c, entity.RoleStudent)
}

func (h *UserHandler) GetTeacherByUniqueID(c *gin.Context) {
	h.lookupByUniqueID(c, entity.RoleTeacher)
}

func (h *UserHandler) lookupByUniqueID(c *gin.Context, role string) {
	uniqueID := c.Param("uniqueId")

	user, err := h.service.LookupByUniqueID(c.Request.Context(), uniqueID, role)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Public())
}
