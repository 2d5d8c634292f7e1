package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/easybar-app/gateway/client"
	"github.com/easybar-app/gateway/middlewares"
	"github.com/easybar-app/gateway/services"
	"github.com/easybar-app/gateway/utils"
)

type SessionController struct {
	API      *client.Client
	Sessions *services.SessionStore
}

func NewSessionController(api *client.Client, sessions *services.SessionStore) *SessionController {
	return &SessionController{API: api, Sessions: sessions}
}

// GetSession -> the caller's table binding, if any.
func (sc *SessionController) GetSession(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)

	number, bound, err := sc.Sessions.TableFor(user.ExternalID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	data := gin.H{"table_bound": bound}
	if bound {
		data["table_number"] = number
	}
	utils.RespondJSON(c, http.StatusOK, "Session", data)
}

// BindTable -> record the table number scanned at entry.
func (sc *SessionController) BindTable(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)

	var body struct {
		TableNumber int `json:"table_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.TableNumber < 1 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("table_number must be positive"))
		return
	}

	// A scanned QR code can point at a table that no longer exists.
	if _, err := sc.API.GetTableByNumber(c.Request.Context(), body.TableNumber); err != nil {
		respondUpstream(c, err)
		return
	}

	if err := sc.Sessions.BindTable(user.ExternalID, body.TableNumber); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table bound", gin.H{"table_number": body.TableNumber})
}

// ClearTable -> explicit unbind, the only way a binding goes away.
func (sc *SessionController) ClearTable(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)

	if err := sc.Sessions.ClearTable(user.ExternalID); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table binding cleared", nil)
}
