package util

import (
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error  string `json:"error,omitempty"`
	Status int    `json:"status"`
}

func HandleError(c *gin.Context, statusCode int, err error) {
	Logger().Warn().Err(err).Int("status", statusCode).Str("path", c.FullPath()).Msg("request failed")
	c.JSON(statusCode, ErrorResponse{
		Error:  err.Error(),
		Status: statusCode,
	})
}
