package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/easybar-app/gateway/live"
	"github.com/easybar-app/gateway/middlewares"
	"github.com/easybar-app/gateway/utils"
)

type WSController struct {
	Hub *live.Hub
}

func NewWSController(hub *live.Hub) *WSController {
	return &WSController{Hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is enforced on the HTTP layer; the upgrade lets any origin that
	// survived it through.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades an authenticated view to the push channel. The connection
// is read-only from the client side; a read error means the view unmounted.
func (wc *WSController) Handle(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Websocket upgrade failed: %v", err)
		return
	}

	wc.Hub.Register(conn, user.Role)
	utils.InfoLogger.Printf("Websocket client connected (%s, role %s)", user.ExternalID, user.Role)

	go func() {
		defer wc.Hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
