package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-sales/internal/authz"
	"github.com/BruksfildServices01/barber-sales/internal/httperr"
	"github.com/BruksfildServices01/barber-sales/internal/logger"
	"github.com/BruksfildServices01/barber-sales/internal/middleware"
	"github.com/BruksfildServices01/barber-sales/internal/models"
	"github.com/BruksfildServices01/barber-sales/internal/timezone"
	"github.com/BruksfildServices01/barber-sales/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db  *gorm.DB
	loc *time.Location
	log *zap.Logger
}

// NewAuditLogsHandler reads day filters in the shop's timezone.
func NewAuditLogsHandler(db *gorm.DB, tz string, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, loc: timezone.Location(tz), log: log}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	if err := authz.Check(middleware.IdentityFrom(c), authz.Admin); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	action := c.Query("action")
	entity := c.Query("entity")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	if err := validators.DateRange(fromStr, toStr); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	if action != "" {
		q = q.Where("action = ?", action)
	}

	if entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if fromStr != "" {
		from, _ := timezone.StartOfDay(fromStr, h.loc)
		q = q.Where("created_at >= ?", from.UTC())
	}

	if toStr != "" {
		to, _ := timezone.StartOfDay(toStr, h.loc)
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1).UTC())
	}

	// --------------------------------------------------
	// Total + page
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		httperr.Respond(c, logger.FromContext(c, h.log), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
