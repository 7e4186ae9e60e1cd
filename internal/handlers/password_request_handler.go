package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-sales/internal/dto"
	"github.com/BruksfildServices01/barber-sales/internal/httperr"
	"github.com/BruksfildServices01/barber-sales/internal/httpresp"
	"github.com/BruksfildServices01/barber-sales/internal/logger"
	"github.com/BruksfildServices01/barber-sales/internal/middleware"
	ucreset "github.com/BruksfildServices01/barber-sales/internal/usecase/passwordreset"
)

type PasswordRequestHandler struct {
	list    *ucreset.ListPending
	approve *ucreset.Approve
	reject  *ucreset.Reject
	log     *zap.Logger
}

func NewPasswordRequestHandler(
	list *ucreset.ListPending,
	approve *ucreset.Approve,
	reject *ucreset.Reject,
	log *zap.Logger,
) *PasswordRequestHandler {
	return &PasswordRequestHandler{list: list, approve: approve, reject: reject, log: log}
}

func (h *PasswordRequestHandler) ListPending(c *gin.Context) {
	reqs, err := h.list.Execute(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	out := make([]dto.PasswordRequestDTO, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, dto.FromPasswordRequest(r))
	}
	httpresp.List(c, out)
}

func (h *PasswordRequestHandler) Approve(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	req, err := h.approve.Execute(c.Request.Context(), ucreset.ReviewInput{
		Caller:    middleware.IdentityFrom(c),
		RequestID: id,
	})
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	httpresp.OK(c, gin.H{"id": req.ID, "status": req.Status})
}

func (h *PasswordRequestHandler) Reject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	req, err := h.reject.Execute(c.Request.Context(), ucreset.ReviewInput{
		Caller:    middleware.IdentityFrom(c),
		RequestID: id,
	})
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	httpresp.OK(c, gin.H{"id": req.ID, "status": req.Status})
}
