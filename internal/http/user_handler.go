package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-coach/internal/domain"
	"career-coach/internal/service"
)

var errJWTNotConfigured = errors.New("jwt not configured")

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type sessionResponse struct {
	User   domain.User       `json:"user"`
	Tokens service.TokenPair `json:"tokens"`
}

// UserHandler expone registro, login y rotación de tokens.
type UserHandler struct {
	logger   *zap.Logger
	userServ *service.UserService
	jwtServ  *service.JWTService
}

func NewUserHandler(logger *zap.Logger, userServ *service.UserService, jwtServ *service.JWTService) *UserHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserHandler{logger: logger, userServ: userServ, jwtServ: jwtServ}
}

// Register maneja POST /auth/register.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if !h.bind(c, &req, "register") {
		return
	}
	user, err := h.userServ.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		h.writeAuthError(c, "register", err)
		return
	}
	h.startSession(c, http.StatusCreated, user)
}

// Login maneja POST /auth/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if !h.bind(c, &req, "login") {
		return
	}
	user, err := h.userServ.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeAuthError(c, "login", err)
		return
	}
	h.startSession(c, http.StatusOK, user)
}

// RefreshToken maneja POST /auth/refresh. Un refresh token sirve una sola vez.
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req refreshRequest
	if !h.bind(c, &req, "refresh") || !h.jwtReady(c) {
		return
	}
	tokens, err := h.jwtServ.RefreshPair(req.RefreshToken)
	if err != nil {
		h.logger.Info("refresh rejected", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// Logout maneja POST /auth/logout; siempre 204 aunque el token ya no exista.
func (h *UserHandler) Logout(c *gin.Context) {
	var req refreshRequest
	if !h.bind(c, &req, "logout") || !h.jwtReady(c) {
		return
	}
	if err := h.jwtServ.RevokeRefresh(req.RefreshToken); err != nil {
		h.logger.Debug("logout with unusable token", zap.Error(err))
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) bind(c *gin.Context, dst any, op string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.logger.Warn("invalid auth request", zap.String("op", op), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return false
	}
	return true
}

func (h *UserHandler) jwtReady(c *gin.Context) bool {
	if h.jwtServ == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": errJWTNotConfigured.Error()})
		return false
	}
	return true
}

func (h *UserHandler) startSession(c *gin.Context, status int, user domain.User) {
	tokens, err := h.issueTokens(user)
	if err != nil {
		h.logger.Error("jwt issue failed", zap.String("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue tokens"})
		return
	}
	c.JSON(status, sessionResponse{User: user, Tokens: tokens})
}

func (h *UserHandler) issueTokens(user domain.User) (service.TokenPair, error) {
	if h.jwtServ == nil {
		return service.TokenPair{}, errJWTNotConfigured
	}
	return h.jwtServ.GeneratePair(user)
}

// writeAuthError traduce errores de UserService; los de validación se devuelven tal cual.
func (h *UserHandler) writeAuthError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
	case errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, service.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts"})
	default:
		h.logger.Error("auth operation failed", zap.String("op", op), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not complete " + op})
	}
}
