package profile

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amoryapp/amory-backend/internal/auth"
	"github.com/amoryapp/amory-backend/internal/db"
	apperr "github.com/amoryapp/amory-backend/internal/errors"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/users/:id", h.getUser)
	rg.PUT("/me", h.updateMe)
	rg.POST("/me/images", h.addImage)
}

func (h *Handler) getUser(c *gin.Context) {
	if _, err := auth.ViewerID(c); err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid uint64"})
		return
	}

	view, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": view})
}

type updateRequest struct {
	Name         string   `json:"name" binding:"required"`
	Age          int      `json:"age" binding:"required,gte=18"`
	City         string   `json:"city"`
	Country      string   `json:"country"`
	Bio          string   `json:"bio"`
	Religion     string   `json:"religion"`
	HasKids      bool     `json:"has_kids"`
	WantsKids    bool     `json:"wants_kids"`
	Ethnicities  []string `json:"ethnicities"`
	Intents      []string `json:"intents"`
	SubstanceUse []string `json:"substance_use"`
}

func (h *Handler) updateMe(c *gin.Context) {
	viewer, err := auth.ViewerID(c)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := db.User{
		ID:           viewer,
		Name:         req.Name,
		Age:          req.Age,
		City:         req.City,
		Country:      req.Country,
		Bio:          req.Bio,
		Religion:     req.Religion,
		HasKids:      req.HasKids,
		WantsKids:    req.WantsKids,
		Ethnicities:  joinTags(req.Ethnicities),
		Intents:      joinTags(req.Intents),
		SubstanceUse: joinTags(req.SubstanceUse),
	}
	if err := h.svc.Update(c.Request.Context(), &user); err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.Status(http.StatusNoContent)
}

type addImageRequest struct {
	URL string `json:"url" binding:"required,url"`
}

func (h *Handler) addImage(c *gin.Context) {
	viewer, err := auth.ViewerID(c)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	var req addImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	img, err := h.svc.AddImage(c.Request.Context(), viewer, req.URL)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"image": gin.H{
		"object_key": img.ObjectKey,
		"url":        img.URL,
		"position":   img.Position,
	}})
}
