package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maryrl/loja-fullstack/internal/apperrors"
	"github.com/maryrl/loja-fullstack/internal/middleware"
	"github.com/maryrl/loja-fullstack/internal/models"
	"go.uber.org/zap"
)

type AuthController struct {
	authService AuthService
	logger      *zap.Logger
}

func NewAuthController(svc AuthService, logger *zap.Logger) *AuthController {
	return &AuthController{authService: svc, logger: logger}
}

// Register handles POST /auth/register.
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, ac.logger, bindError(err))
		return
	}

	token, err := ac.authService.Register(c.Request.Context(), req)
	if err != nil {
		apperrors.Respond(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// Login handles POST /auth/login.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, ac.logger, bindError(err))
		return
	}

	token, err := ac.authService.Login(c.Request.Context(), req)
	if err != nil {
		apperrors.Respond(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// Me handles GET /auth/me.
func (ac *AuthController) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apperrors.Respond(c, ac.logger, apperrors.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, user)
}
