package messaging

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amoryapp/amory-backend/internal/auth"
	apperr "github.com/amoryapp/amory-backend/internal/errors"
)

// Handler exposes message requests and chat messaging over HTTP.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/requests", h.sendRequest)
	rg.POST("/requests/:sender_id/reply", h.respond)
	rg.POST("/chats/:chat_id/messages", h.sendMessage)
	rg.POST("/chats/:chat_id/read", h.markRead)
}

type sendRequestRequest struct {
	ReceiverID uint64 `json:"receiver_id" binding:"required"`
	Text       string `json:"text" binding:"required"`
}

func (h *Handler) sendRequest(c *gin.Context) {
	viewer, err := auth.ViewerID(c)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	var req sendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.svc.SendRequest(c.Request.Context(), viewer, req.ReceiverID, req.Text)
	if err != nil {
		status, errMsg := apperr.Map(err)
		c.JSON(status, gin.H{"error": errMsg})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

type textRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *Handler) respond(c *gin.Context) {
	viewer, err := auth.ViewerID(c)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	senderID, err := strconv.ParseUint(c.Param("sender_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sender_id must be a valid uint64"})
		return
	}

	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.svc.Respond(c.Request.Context(), viewer, senderID, req.Text)
	if err != nil {
		status, errMsg := apperr.Map(err)
		c.JSON(status, gin.H{"error": errMsg})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

func (h *Handler) sendMessage(c *gin.Context) {
	viewer, err := auth.ViewerID(c)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	chatID, err := strconv.ParseUint(c.Param("chat_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chat_id must be a valid uint64"})
		return
	}

	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.svc.SendMessage(c.Request.Context(), viewer, chatID, req.Text)
	if err != nil {
		status, errMsg := apperr.Map(err)
		c.JSON(status, gin.H{"error": errMsg})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

func (h *Handler) markRead(c *gin.Context) {
	viewer, err := auth.ViewerID(c)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	chatID, err := strconv.ParseUint(c.Param("chat_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chat_id must be a valid uint64"})
		return
	}

	updated, err := h.svc.MarkRead(c.Request.Context(), viewer, chatID)
	if err != nil {
		status, errMsg := apperr.Map(err)
		c.JSON(status, gin.H{"error": errMsg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
