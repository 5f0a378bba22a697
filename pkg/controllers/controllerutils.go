package controllers

import (
	"context"
	"net/http"

	"evol-jewels-io/stylist/internal/common"
	"evol-jewels-io/stylist/pkg/util"

	"github.com/gin-gonic/gin"
)

// WithTimeout creates a context with the standard request timeout, cancelled with the request.
func WithTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), common.REQUEST_TIMEOUT_SECS)
}

// BindJSONAndValidate binds JSON and handles validation errors
func BindJSONAndValidate(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		util.Logger().Debug().Err(err).Msg("JSON binding error")
		util.HandleError(c, http.StatusBadRequest, err)
		return false
	}

	if err := common.Validate.Struct(obj); err != nil {
		util.Logger().Debug().Err(err).Msg("validation error")
		util.HandleError(c, http.StatusBadRequest, err)
		return false
	}

	return true
}
