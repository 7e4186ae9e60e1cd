package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-sales/internal/httperr"
	"github.com/BruksfildServices01/barber-sales/internal/httpresp"
	"github.com/BruksfildServices01/barber-sales/internal/logger"
	"github.com/BruksfildServices01/barber-sales/internal/middleware"
	uccatalog "github.com/BruksfildServices01/barber-sales/internal/usecase/catalog"
)

// ======================================================
// BARBERS
// ======================================================

type BarberHandler struct {
	list   *uccatalog.ListBarbers
	create *uccatalog.CreateBarber
	rename *uccatalog.RenameBarber
	delete *uccatalog.DeleteBarber
	log    *zap.Logger
}

func NewBarberHandler(
	list *uccatalog.ListBarbers,
	create *uccatalog.CreateBarber,
	rename *uccatalog.RenameBarber,
	del *uccatalog.DeleteBarber,
	log *zap.Logger,
) *BarberHandler {
	return &BarberHandler{list: list, create: create, rename: rename, delete: del, log: log}
}

type BarberRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

func (h *BarberHandler) List(c *gin.Context) {
	barbers, err := h.list.Execute(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	httpresp.List(c, barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req BarberRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.create.Execute(c.Request.Context(), uccatalog.CreateBarberInput{
		Caller: middleware.IdentityFrom(c),
		Name:   req.Name,
	})
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	httpresp.Created(c, b)
}

func (h *BarberHandler) Rename(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req BarberRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.rename.Execute(c.Request.Context(), uccatalog.RenameBarberInput{
		Caller:   middleware.IdentityFrom(c),
		BarberID: id,
		Name:     req.Name,
	})
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	httpresp.OK(c, b)
}

func (h *BarberHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	err := h.delete.Execute(c.Request.Context(), uccatalog.DeleteBarberInput{
		Caller:   middleware.IdentityFrom(c),
		BarberID: id,
	})
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// SERVICES
// ======================================================

type ServiceHandler struct {
	list   *uccatalog.ListServices
	create *uccatalog.CreateService
	update *uccatalog.UpdateService
	delete *uccatalog.DeleteService
	log    *zap.Logger
}

func NewServiceHandler(
	list *uccatalog.ListServices,
	create *uccatalog.CreateService,
	update *uccatalog.UpdateService,
	del *uccatalog.DeleteService,
	log *zap.Logger,
) *ServiceHandler {
	return &ServiceHandler{list: list, create: create, update: update, delete: del, log: log}
}

type CreateServiceRequest struct {
	Name  string   `json:"name" binding:"required,max=100"`
	Price *float64 `json:"price" binding:"required,gte=0"`
}

type UpdateServiceRequest struct {
	Name  *string  `json:"name" binding:"omitempty,max=100"`
	Price *float64 `json:"price" binding:"omitempty,gte=0"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.list.Execute(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.create.Execute(c.Request.Context(), uccatalog.CreateServiceInput{
		Caller: middleware.IdentityFrom(c),
		Name:   req.Name,
		Price:  *req.Price,
	})
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	httpresp.Created(c, s)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.update.Execute(c.Request.Context(), uccatalog.UpdateServiceInput{
		Caller:    middleware.IdentityFrom(c),
		ServiceID: id,
		Name:      req.Name,
		Price:     req.Price,
	})
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	httpresp.OK(c, s)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	err := h.delete.Execute(c.Request.Context(), uccatalog.DeleteServiceInput{
		Caller:    middleware.IdentityFrom(c),
		ServiceID: id,
	})
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	httpresp.NoContent(c)
}
