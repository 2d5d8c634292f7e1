package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/easybar-app/gateway/middlewares"
	"github.com/easybar-app/gateway/models"
	"github.com/easybar-app/gateway/services"
	"github.com/easybar-app/gateway/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// GetOrders -> role-filtered listing grouped by status.
func (oc *OrderController) GetOrders(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)

	orders, err := oc.Orders.ListOrders(c.Request.Context(), user.Role, user.ExternalID)
	if err != nil {
		respondUpstream(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", gin.H{
		"orders":  orders,
		"buckets": services.GroupByStatus(orders),
	})
}

// UpdateOrderStatus -> staff status change. Failures surface to the caller;
// the view refetches rather than rolling back silently.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)
	orderID := c.Param("order_id")

	var body struct {
		Status *models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := oc.Orders.SetStatus(c.Request.Context(), user, orderID, *body.Status); err != nil {
		respondUpstream(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order status updated", gin.H{
		"order_id": orderID,
		"status":   *body.Status,
	})
}
