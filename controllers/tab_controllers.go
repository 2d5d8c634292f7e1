package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/easybar-app/gateway/client"
	"github.com/easybar-app/gateway/live"
	"github.com/easybar-app/gateway/middlewares"
	"github.com/easybar-app/gateway/services"
	"github.com/easybar-app/gateway/utils"
)

type TabController struct {
	API      *client.Client
	Tabs     *services.TabService
	Sessions *services.SessionStore
	Hub      *live.Hub
}

func NewTabController(api *client.Client, tabs *services.TabService, sessions *services.SessionStore, hub *live.Hub) *TabController {
	return &TabController{API: api, Tabs: tabs, Sessions: sessions, Hub: hub}
}

// GetMyTab -> the caller's open tab with derived totals, opening one bound
// to their table when none exists.
func (tc *TabController) GetMyTab(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)

	tableNumber, _, err := tc.Sessions.TableFor(user.ExternalID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tab, err := tc.Tabs.EnsureOpenTab(c.Request.Context(), user.ExternalID, tableNumber)
	if err != nil {
		respondUpstream(c, err)
		return
	}

	closing, err := tc.Sessions.IsClosing(tab.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Open tab", gin.H{
		"tab":     tab,
		"totals":  services.ComputeTotals(tab.Items),
		"closing": closing,
	})
}

// AddItem -> append a pending line item to the caller's open tab.
func (tc *TabController) AddItem(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)

	var body struct {
		ProductID string `json:"produto_id" binding:"required"`
		Quantity  int    `json:"quantidade" binding:"required"`
		Notes     string `json:"observacoes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product, err := tc.API.GetProduct(c.Request.Context(), body.ProductID)
	if err != nil {
		respondUpstream(c, err)
		return
	}

	tab, err := tc.Tabs.AddItem(c.Request.Context(), user.ExternalID, product, body.Quantity, body.Notes)
	if err != nil {
		respondUpstream(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Item added", gin.H{
		"tab":    tab,
		"totals": services.ComputeTotals(tab.Items),
	})
}

// RequestClose -> customer asks to settle; staff get notified and the tab
// shows as closing until they confirm.
func (tc *TabController) RequestClose(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)

	tableNumber, _, err := tc.Sessions.TableFor(user.ExternalID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tab, err := tc.Tabs.EnsureOpenTab(c.Request.Context(), user.ExternalID, tableNumber)
	if err != nil {
		respondUpstream(c, err)
		return
	}

	request, err := tc.Tabs.RequestClose(tab, user.ExternalID)
	if err != nil {
		respondUpstream(c, err)
		return
	}

	tc.Hub.BroadcastClosingRequest(*request)
	utils.RespondJSON(c, http.StatusAccepted, "Closing requested, await staff at your table", request)
}

// GetAllTabs -> staff listing, with the pending closing queue alongside.
func (tc *TabController) GetAllTabs(c *gin.Context) {
	tabs, err := tc.API.ListTabs(c.Request.Context())
	if err != nil {
		respondUpstream(c, err)
		return
	}

	closing, err := tc.Sessions.ListClosing()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of tabs", gin.H{
		"tabs":             tabs,
		"closing_requests": closing,
	})
}

// GetTab -> staff detail view of one tab with derived totals.
func (tc *TabController) GetTab(c *gin.Context) {
	tabID := c.Param("tab_id")

	tab, err := tc.API.GetTab(c.Request.Context(), tabID)
	if err != nil {
		respondUpstream(c, err)
		return
	}

	closing, err := tc.Sessions.IsClosing(tab.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Tab details", gin.H{
		"tab":     tab,
		"totals":  services.ComputeTotals(tab.Items),
		"closing": closing,
	})
}

// CloseTab -> staff confirmation of a close; terminal.
func (tc *TabController) CloseTab(c *gin.Context) {
	tabID := c.Param("tab_id")

	tab, err := tc.Tabs.CloseTab(c.Request.Context(), tabID)
	if err != nil {
		respondUpstream(c, err)
		return
	}

	tc.Hub.BroadcastTabUpdate(*tab)
	utils.RespondJSON(c, http.StatusOK, "Tab closed", tab)
}
