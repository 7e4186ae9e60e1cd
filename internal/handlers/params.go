package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-sales/internal/httperr"
	"github.com/BruksfildServices01/barber-sales/internal/validators"
)

// pathID reads a positive numeric path parameter. It answers 400 and
// returns false when the value is malformed.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		c.Abort()
		return 0, false
	}
	return uint(id), true
}

// optionalUintQuery parses an optional numeric query value.
func optionalUintQuery(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Invalid "+name+".")
		c.Abort()
		return nil, false
	}
	id := uint(v)
	return &id, true
}

// bindJSON binds the body and answers invalid_payload with field details on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.InvalidPayload(c, validators.ToDetails(err))
		c.Abort()
		return false
	}
	return true
}
