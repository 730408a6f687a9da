package relationship

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amoryapp/amory-backend/internal/auth"
	"github.com/amoryapp/amory-backend/internal/engine"
	apperr "github.com/amoryapp/amory-backend/internal/errors"
)

// Handler exposes the affinity operations over HTTP.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register attaches the swipe/unmatch routes to an authenticated group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/swipes", h.putSwipe)
	rg.DELETE("/swipes/:target_id", h.undoSwipe)
	rg.DELETE("/matches/:user_id", h.unmatch)
}

type swipeRequest struct {
	TargetID uint64 `json:"target_id" binding:"required"`
	Liked    *bool  `json:"liked" binding:"required"`
}

func (h *Handler) putSwipe(c *gin.Context) {
	viewer, err := auth.ViewerID(c)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	var req swipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	matched, err := h.svc.Swipe(c.Request.Context(), viewer, req.TargetID, *req.Liked)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"matched": matched})
}

func (h *Handler) undoSwipe(c *gin.Context) {
	viewer, err := auth.ViewerID(c)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	targetID, err := strconv.ParseUint(c.Param("target_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_id must be a valid uint64"})
		return
	}

	kind := engine.SwipeKind(c.DefaultQuery("kind", string(engine.KindLike)))
	if err := h.svc.Undo(c.Request.Context(), viewer, targetID, kind); err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) unmatch(c *gin.Context) {
	viewer, err := auth.ViewerID(c)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	otherID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id must be a valid uint64"})
		return
	}

	if err := h.svc.Unmatch(c.Request.Context(), viewer, otherID); err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.Status(http.StatusNoContent)
}
