package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/easybar-app/gateway/client"
	"github.com/easybar-app/gateway/controllers"
	"github.com/easybar-app/gateway/live"
	"github.com/easybar-app/gateway/middlewares"
	"github.com/easybar-app/gateway/services"
)

// SetupRouter wires the view endpoints. db is the session store, api the
// easyBar backend.
func SetupRouter(api *client.Client, db *gorm.DB, hub *live.Hub, allowedOrigin string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(allowedOrigin))
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 100).RateLimit())

	sessions := services.NewSessionStore(db)
	userSvc := services.NewUserService(api)
	tabSvc := services.NewTabService(api, sessions)
	orderSvc := services.NewOrderService(api)
	tableSvc := services.NewTableService(api)

	sessionCtrl := controllers.NewSessionController(api, sessions)
	userCtrl := controllers.NewUserController(userSvc)
	tabCtrl := controllers.NewTabController(api, tabSvc, sessions, hub)
	orderCtrl := controllers.NewOrderController(orderSvc)
	tableCtrl := controllers.NewTableController(tableSvc, hub)
	productCtrl := controllers.NewProductController(api)
	wsCtrl := controllers.NewWSController(hub)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	authed := r.Group("/")
	authed.Use(middlewares.AuthMiddleware(userSvc))
	{
		authed.GET("/session", sessionCtrl.GetSession)
		authed.POST("/session/table", sessionCtrl.BindTable)
		authed.DELETE("/session/table", sessionCtrl.ClearTable)

		authed.GET("/me", userCtrl.GetMe)
		authed.PUT("/me", userCtrl.UpdateMe)

		authed.GET("/tab", tabCtrl.GetMyTab)
		authed.POST("/tab/items", tabCtrl.AddItem)
		authed.POST("/tab/close-request", tabCtrl.RequestClose)

		authed.GET("/orders", orderCtrl.GetOrders)

		authed.GET("/menu", productCtrl.GetAllProducts)
		authed.GET("/menu/:product_id", productCtrl.GetProduct)

		authed.GET("/ws", wsCtrl.Handle)
	}

	// ----------------------------------------------------------------
	//                      STAFF ROUTES (garcom / admin)
	// ----------------------------------------------------------------
	staff := authed.Group("/")
	staff.Use(middlewares.RequireStaff())
	{
		staff.GET("/tabs", tabCtrl.GetAllTabs)
		staff.GET("/tabs/:tab_id", tabCtrl.GetTab)
		staff.PUT("/tabs/:tab_id/close", tabCtrl.CloseTab)

		staff.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)

		staff.GET("/tables", tableCtrl.GetAllTables)
		staff.GET("/tables/:table_id/tabs", tableCtrl.GetTableTabs)
		staff.POST("/tables/:table_id/tabs", tableCtrl.OpenTab)

		staff.GET("/users", userCtrl.GetAllUsers)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := authed.Group("/")
	admin.Use(middlewares.RequireAdmin())
	{
		admin.PATCH("/users/:user_id/role", userCtrl.ChangeRole)
	}

	return r
}
