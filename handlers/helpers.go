package handlers

import (
	"strconv"

	"deals-backend/utils"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads a numeric path parameter. On failure it attaches a 400 and returns false.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.Error(utils.NewValidationError("Invalid id"))
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.Error(utils.NewValidationError("%s", utils.SanitizeValidationError(err)))
		return false
	}
	return true
}
