package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/maryrl/loja-fullstack/internal/apperrors"
)

// parsePaging reads skip and limit. Missing values default to 0 and 50;
// clamping happens in the services.
func parsePaging(c *gin.Context) (int64, int64, error) {
	skip, err := strconv.ParseInt(c.DefaultQuery("skip", "0"), 10, 64)
	if err != nil {
		return 0, 0, apperrors.BadRequest("skip must be an integer")
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if err != nil {
		return 0, 0, apperrors.BadRequest("limit must be an integer")
	}
	return skip, limit, nil
}

func bindError(err error) error {
	return apperrors.BadRequest(err.Error())
}
