package handler

import (
	"net/http"

	"github.com/anusasana/portal/internal/dto"
	"github.com/anusasana/portal/internal/service"
	"github.com/anusasana/portal/pkg/response"
	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	service service.MessageService
}

func NewMessageHandler(service service.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

func (h *MessageHandler) Send(c *gin.Context) {
	var req dto.CreateMessageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	m, err := h.service.Send(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         m.ID.Hex(),
		"senderId":   m.SenderID,
		"receiverId": m.ReceiverID,
		"text":       m.Text,
		"timestamp":  m.Timestamp,
		"success":    true,
	})
}

func (h *MessageHandler) ListRecent(c *gin.Context) {
	messages, err := h.service.ListRecent(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

func (h *MessageHandler) ListForUser(c *gin.Context) {
	messages, err := h.service.ListForUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}
