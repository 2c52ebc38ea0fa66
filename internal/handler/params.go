package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stocktrade-simulator/pkg/apperror"
)

// uintParam parses a positive numeric path parameter
func uintParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.InvalidArgument("invalid %s", name)
	}
	return uint(id), nil
}
