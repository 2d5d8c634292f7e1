package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/easybar-app/gateway/live"
	"github.com/easybar-app/gateway/models"
	"github.com/easybar-app/gateway/services"
	"github.com/easybar-app/gateway/utils"
)

type TableController struct {
	Tables *services.TableService
	Hub    *live.Hub
}

func NewTableController(tables *services.TableService, hub *live.Hub) *TableController {
	return &TableController{Tables: tables, Hub: hub}
}

// GetAllTables -> management view of every table, occupancy derived from
// open tabs.
func (tc *TableController) GetAllTables(c *gin.Context) {
	views, tabs, err := tc.Tables.ListAnnotated(c.Request.Context())
	if err != nil {
		respondUpstream(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of tables", gin.H{
		"tables": views,
		"tabs":   tabs,
	})
}

// GetTableTabs -> every tab a table has held, newest included; lets staff
// review a table's history before seating someone.
func (tc *TableController) GetTableTabs(c *gin.Context) {
	tableID := c.Param("table_id")

	table, err := tc.Tables.FindTable(c.Request.Context(), tableID)
	if err != nil {
		respondUpstream(c, err)
		return
	}

	tabs, err := tc.Tables.TabHistory(c.Request.Context(), tableID)
	if err != nil {
		respondUpstream(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Tabs for table", gin.H{
		"table": table,
		"tabs":  tabs,
	})
}

// OpenTab -> staff opens a tab for a customer at a free table. Two
// sequential backend writes; a partial failure leaves the table occupied
// with no tab until the occupancy derivation reconciles it.
func (tc *TableController) OpenTab(c *gin.Context) {
	tableID := c.Param("table_id")

	var body struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	views, _, err := tc.Tables.ListAnnotated(c.Request.Context())
	if err != nil {
		respondUpstream(c, err)
		return
	}

	var target *services.TableView
	for i := range views {
		if views[i].ID == tableID {
			target = &views[i]
			break
		}
	}
	if target == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}
	if target.DisplayStatus == models.TableOccupied {
		utils.RespondError(c, http.StatusConflict, errors.New("table already has an open tab"))
		return
	}

	tab, err := tc.Tables.OpenTabForTable(c.Request.Context(), &target.Table, body.UserID)
	if err != nil {
		respondUpstream(c, err)
		return
	}

	tc.Hub.BroadcastTableUpdate(target.Table)
	tc.Hub.BroadcastTabUpdate(*tab)
	utils.RespondJSON(c, http.StatusCreated, "Tab opened for table", tab)
}
