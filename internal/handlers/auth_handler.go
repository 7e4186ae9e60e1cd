package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-sales/internal/dto"
	"github.com/BruksfildServices01/barber-sales/internal/httperr"
	"github.com/BruksfildServices01/barber-sales/internal/httpresp"
	"github.com/BruksfildServices01/barber-sales/internal/logger"
	"github.com/BruksfildServices01/barber-sales/internal/middleware"
	ucaccount "github.com/BruksfildServices01/barber-sales/internal/usecase/account"
	ucreset "github.com/BruksfildServices01/barber-sales/internal/usecase/passwordreset"
)

type AuthHandler struct {
	login        *ucaccount.Login
	logout       *ucaccount.Logout
	me           *ucaccount.Me
	change       *ucaccount.ChangePassword
	requestReset *ucreset.RequestReset
	log          *zap.Logger
}

func NewAuthHandler(
	login *ucaccount.Login,
	logout *ucaccount.Logout,
	me *ucaccount.Me,
	change *ucaccount.ChangePassword,
	requestReset *ucreset.RequestReset,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		login:        login,
		logout:       logout,
		me:           me,
		change:       change,
		requestReset: requestReset,
		log:          log,
	}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.login.Execute(c.Request.Context(), ucaccount.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      out.Token,
		"expires_at": out.ExpiresAt,
		"user":       dto.FromUser(*out.User),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	in := ucaccount.LogoutInput{Caller: middleware.IdentityFrom(c)}
	if claims := middleware.ClaimsFrom(c); claims != nil {
		in.TokenID = claims.ID
		if claims.ExpiresAt != nil {
			in.ExpiresAt = claims.ExpiresAt.Time
		} else {
			in.ExpiresAt = time.Now().Add(24 * time.Hour)
		}
	}

	if err := h.logout.Execute(c.Request.Context(), in); err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	httpresp.NoContent(c)
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.me.Execute(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(*u))
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.change.Execute(c.Request.Context(), ucaccount.ChangePasswordInput{
		Caller:          middleware.IdentityFrom(c),
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed."})
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	req, err := h.requestReset.Execute(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":      req.ID,
		"status":  req.Status,
		"message": "Your request was sent to the admin.",
	})
}
