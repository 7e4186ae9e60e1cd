package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-sales/internal/dto"
	"github.com/BruksfildServices01/barber-sales/internal/httperr"
	"github.com/BruksfildServices01/barber-sales/internal/httpresp"
	"github.com/BruksfildServices01/barber-sales/internal/logger"
	"github.com/BruksfildServices01/barber-sales/internal/middleware"
	ucaccount "github.com/BruksfildServices01/barber-sales/internal/usecase/account"
)

type UserHandler struct {
	list   *ucaccount.ListUsers
	create *ucaccount.CreateBarberUser
	reset  *ucaccount.ResetUserPassword
	delete *ucaccount.DeleteUser
	log    *zap.Logger
}

func NewUserHandler(
	list *ucaccount.ListUsers,
	create *ucaccount.CreateBarberUser,
	reset *ucaccount.ResetUserPassword,
	del *ucaccount.DeleteUser,
	log *zap.Logger,
) *UserHandler {
	return &UserHandler{list: list, create: create, reset: reset, delete: del, log: log}
}

type CreateBarberUserRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required"`
	BarberID *uint  `json:"barber_id"`
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.list.Execute(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	out := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, dto.FromUser(u))
	}
	httpresp.List(c, out)
}

func (h *UserHandler) CreateBarber(c *gin.Context) {
	var req CreateBarberUserRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.create.Execute(c.Request.Context(), ucaccount.CreateBarberUserInput{
		Caller:   middleware.IdentityFrom(c),
		Username: req.Username,
		Password: req.Password,
		BarberID: req.BarberID,
	})
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	httpresp.Created(c, dto.FromUser(*u))
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	err := h.reset.Execute(c.Request.Context(), ucaccount.ResetUserPasswordInput{
		Caller: middleware.IdentityFrom(c),
		UserID: id,
	})
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset. The user must change it at next login."})
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	err := h.delete.Execute(c.Request.Context(), ucaccount.DeleteUserInput{
		Caller: middleware.IdentityFrom(c),
		UserID: id,
	})
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	httpresp.NoContent(c)
}
