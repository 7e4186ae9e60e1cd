package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-sales/internal/domain/visit"
	"github.com/BruksfildServices01/barber-sales/internal/httperr"
	"github.com/BruksfildServices01/barber-sales/internal/httpresp"
	"github.com/BruksfildServices01/barber-sales/internal/logger"
	"github.com/BruksfildServices01/barber-sales/internal/middleware"
	ucvisit "github.com/BruksfildServices01/barber-sales/internal/usecase/visit"
)

// ======================================================
// HANDLER
// ======================================================

type VisitHandler struct {
	record *ucvisit.RecordVisit
	list   *ucvisit.ListVisits
	export *ucvisit.ExportVisits
	log    *zap.Logger
}

func NewVisitHandler(
	record *ucvisit.RecordVisit,
	list *ucvisit.ListVisits,
	export *ucvisit.ExportVisits,
	log *zap.Logger,
) *VisitHandler {
	return &VisitHandler{record: record, list: list, export: export, log: log}
}

// ======================================================
// REQUESTS
// ======================================================

type VisitLineRequest struct {
	ServiceID uint     `json:"service_id" binding:"required"`
	Quantity  int      `json:"quantity"`
	UnitPrice *float64 `json:"unit_price"`
}

type RecordVisitRequest struct {
	CustomerID    uint               `json:"customer_id" binding:"required"`
	VisitDate     string             `json:"visit_date" binding:"required,date"`
	Services      []VisitLineRequest `json:"services" binding:"required,min=1,dive"`
	Notes         string             `json:"notes" binding:"max=500"`
	PaymentMethod string             `json:"payment_method"`
	MomoReference string             `json:"momo_reference"`
}

// ======================================================
// RECORD
// ======================================================

func (h *VisitHandler) Record(c *gin.Context) {
	var req RecordVisitRequest
	if !bindJSON(c, &req) {
		return
	}

	lines := make([]domain.LineInput, 0, len(req.Services))
	for _, s := range req.Services {
		lines = append(lines, domain.LineInput{
			ServiceID: s.ServiceID,
			Quantity:  s.Quantity,
			UnitPrice: s.UnitPrice,
		})
	}

	out, err := h.record.Execute(c.Request.Context(), ucvisit.RecordVisitInput{
		Caller:        middleware.IdentityFrom(c),
		CustomerID:    req.CustomerID,
		VisitDate:     req.VisitDate,
		Lines:         lines,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
		MomoReference: req.MomoReference,
	})
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	httpresp.Created(c, out)
}

// ======================================================
// LIST / EXPORT
// ======================================================

func (h *VisitHandler) listInput(c *gin.Context) (ucvisit.ListVisitsInput, bool) {
	barberID, ok := optionalUintQuery(c, "barber_id")
	if !ok {
		return ucvisit.ListVisitsInput{}, false
	}
	return ucvisit.ListVisitsInput{
		Caller:   middleware.IdentityFrom(c),
		BarberID: barberID,
		From:     c.Query("from"),
		To:       c.Query("to"),
	}, true
}

func (h *VisitHandler) List(c *gin.Context) {
	in, ok := h.listInput(c)
	if !ok {
		return
	}
	visits, err := h.list.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	httpresp.List(c, visits)
}

func (h *VisitHandler) Export(c *gin.Context) {
	in, ok := h.listInput(c)
	if !ok {
		return
	}
	out, err := h.export.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}

	// render fully before the status line so a failure can still become a 500
	var buf bytes.Buffer
	if err := h.export.WriteCSV(&buf, out.Visits); err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+out.Filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
