package inbox

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amoryapp/amory-backend/internal/auth"
	"github.com/amoryapp/amory-backend/internal/engine"
	apperr "github.com/amoryapp/amory-backend/internal/errors"
	"github.com/amoryapp/amory-backend/internal/service/profile"
)

const defaultPageSize = 20

// Handler exposes the inbox views over HTTP.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/inbox/matches", h.matchStrip)
	rg.GET("/inbox/liked-by", h.likedBy)
	rg.GET("/inbox/liked-by/count", h.countLikedYou)
	rg.GET("/inbox/chats", h.chats)
}

type matchView struct {
	User      profile.View `json:"user"`
	MatchedAt time.Time    `json:"matched_at"`
}

func (h *Handler) matchStrip(c *gin.Context) {
	viewer, err := auth.ViewerID(c)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	entries, err := h.svc.MatchStrip(c.Request.Context(), viewer)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	out := make([]matchView, 0, len(entries))
	for _, e := range entries {
		out = append(out, matchView{User: profile.NewView(e.User), MatchedAt: e.MatchedAt})
	}
	c.JSON(http.StatusOK, gin.H{"matches": out})
}

type likedByView struct {
	User    profile.View `json:"user"`
	LikedAt time.Time    `json:"liked_at"`
}

type requestView struct {
	Sender profile.View `json:"sender"`
	Text   string       `json:"text,omitempty"`
	SentAt time.Time    `json:"sent_at"`
}

func (h *Handler) likedBy(c *gin.Context) {
	viewer, err := auth.ViewerID(c)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	var token *string
	if t := c.Query("page_token"); t != "" {
		token = &t
	}
	limit := defaultPageSize
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}

	grid, requests, nextToken, err := h.svc.LikedBy(c.Request.Context(), viewer, token, limit)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	gridOut := make([]likedByView, 0, len(grid))
	for _, e := range grid {
		gridOut = append(gridOut, likedByView{User: profile.NewView(e.User), LikedAt: e.LikedAt})
	}
	reqOut := make([]requestView, 0, len(requests))
	for _, r := range requests {
		reqOut = append(reqOut, requestView{Sender: profile.NewView(r.Sender), Text: r.Text, SentAt: r.SentAt})
	}

	resp := gin.H{"liked_by": gridOut, "requests": reqOut}
	if nextToken != nil {
		resp["next_page_token"] = *nextToken
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) countLikedYou(c *gin.Context) {
	viewer, err := auth.ViewerID(c)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	count, err := h.svc.CountLikedYou(c.Request.Context(), viewer)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

type chatView struct {
	ChatID      uint64       `json:"chat_id"`
	Counterpart profile.View `json:"counterpart"`
	LastMessage messageView  `json:"last_message"`
	Unread      int          `json:"unread"`
}

type messageView struct {
	SenderID uint64    `json:"sender_id"`
	Content  string    `json:"content"`
	SentAt   time.Time `json:"sent_at"`
}

func (h *Handler) chats(c *gin.Context) {
	viewer, err := auth.ViewerID(c)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	entries, err := h.svc.Chats(c.Request.Context(), viewer)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	out := make([]chatView, 0, len(entries))
	for _, e := range entries {
		out = append(out, newChatView(e))
	}
	c.JSON(http.StatusOK, gin.H{"chats": out})
}

func newChatView(e engine.ChatEntry) chatView {
	return chatView{
		ChatID:      e.ChatID,
		Counterpart: profile.NewView(e.Counterpart),
		LastMessage: messageView{
			SenderID: e.LastMessage.SenderID,
			Content:  e.LastMessage.Content,
			SentAt:   e.LastMessage.SentAt,
		},
		Unread: e.Unread,
	}
}
