package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-sales/internal/httperr"
	"github.com/BruksfildServices01/barber-sales/internal/httpresp"
	"github.com/BruksfildServices01/barber-sales/internal/logger"
	"github.com/BruksfildServices01/barber-sales/internal/middleware"
	uccustomer "github.com/BruksfildServices01/barber-sales/internal/usecase/customer"
)

type CustomerHandler struct {
	search *uccustomer.SearchCustomers
	create *uccustomer.CreateCustomer
	log    *zap.Logger
}

func NewCustomerHandler(
	search *uccustomer.SearchCustomers,
	create *uccustomer.CreateCustomer,
	log *zap.Logger,
) *CustomerHandler {
	return &CustomerHandler{search: search, create: create, log: log}
}

type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Phone string `json:"phone" binding:"max=30"`
}

// ======================================================
// SEARCH
// ======================================================
func (h *CustomerHandler) Search(c *gin.Context) {
	customers, err := h.search.Execute(c.Request.Context(), uccustomer.SearchCustomersInput{
		Caller: middleware.IdentityFrom(c),
		Query:  c.Query("q"),
	})
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	httpresp.List(c, customers)
}

// ======================================================
// CREATE (returns the existing customer on an exact match)
// ======================================================
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.create.Execute(c.Request.Context(), uccustomer.CreateCustomerInput{
		Caller: middleware.IdentityFrom(c),
		Name:   req.Name,
		Phone:  req.Phone,
	})
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}

	status := http.StatusOK
	if out.Created {
		status = http.StatusCreated
	}
	c.JSON(status, out.Customer)
}
