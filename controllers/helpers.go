package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/easybar-app/gateway/client"
	"github.com/easybar-app/gateway/services"
	"github.com/easybar-app/gateway/utils"
)

// respondUpstream maps a backend failure onto the gateway response. Nothing
// here is fatal; callers get an inline error and may simply retry.
func respondUpstream(c *gin.Context, err error) {
	switch {
	case errors.Is(err, client.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrForbidden):
		utils.RespondError(c, http.StatusForbidden, err)
	case errors.Is(err, services.ErrNoOpenTab), errors.Is(err, services.ErrTabNotOpen):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrNoTableHint):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusBadGateway, err)
	}
}
