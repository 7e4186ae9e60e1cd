package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-sales/internal/httperr"
	"github.com/BruksfildServices01/barber-sales/internal/httpresp"
	"github.com/BruksfildServices01/barber-sales/internal/logger"
	"github.com/BruksfildServices01/barber-sales/internal/middleware"
	ucreport "github.com/BruksfildServices01/barber-sales/internal/usecase/report"
)

type ReportHandler struct {
	summary *ucreport.Summary
	log     *zap.Logger
}

func NewReportHandler(summary *ucreport.Summary, log *zap.Logger) *ReportHandler {
	return &ReportHandler{summary: summary, log: log}
}

func (h *ReportHandler) Summary(c *gin.Context) {
	out, err := h.summary.Execute(c.Request.Context(), ucreport.SummaryInput{
		Caller: middleware.IdentityFrom(c),
		From:   c.Query("from"),
		To:     c.Query("to"),
	})
	if err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}
	httpresp.OK(c, out)
}
