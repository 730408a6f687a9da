package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amoryapp/amory-backend/internal/app"
	"github.com/amoryapp/amory-backend/internal/db"
	apperr "github.com/amoryapp/amory-backend/internal/errors"
	"github.com/amoryapp/amory-backend/internal/repository"
)

// Handler serves signup and login.
type Handler struct {
	appCtx   *app.AppContext
	users    *repository.UserRepository
	sessions *Sessions
}

func NewHandler(appCtx *app.AppContext, sessions *Sessions) *Handler {
	return &Handler{
		appCtx:   appCtx,
		users:    repository.NewUserRepository(appCtx.DB),
		sessions: sessions,
	}
}

// Register attaches the public auth routes.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/register", h.register)
	rg.POST("/login", h.login)
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Gender   string `json:"gender" binding:"required"`
	Age      int    `json:"age" binding:"required,gte=18"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	user := db.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Gender:       req.Gender,
		Age:          req.Age,
		Active:       true,
	}
	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		h.appCtx.Logger.Error("failed to create user", "email", req.Email, "err", err)
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user_id": user.ID})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil || !CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		status, msg := apperr.Map(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": user.ID})
}
