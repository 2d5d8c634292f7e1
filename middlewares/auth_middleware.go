package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/easybar-app/gateway/models"
	"github.com/easybar-app/gateway/services"
	"github.com/easybar-app/gateway/utils"
)

const currentUserKey = "currentUser"

// AuthMiddleware validates the identity-provider session token and resolves
// the backend user record, creating it on first visit. The resolved record
// is what carries the role; the token never does.
func AuthMiddleware(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			// Websocket upgrades cannot set headers from the browser.
			token = c.Query("token")
		}
		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("missing session token"))
			c.Abort()
			return
		}

		token = strings.TrimPrefix(token, "Bearer ")
		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		principal := services.Principal{
			ID:    claims.Subject,
			Name:  claims.Name,
			Email: claims.Email,
			Phone: claims.Phone,
		}

		user, err := users.ResolveUser(c.Request.Context(), principal)
		if err != nil {
			utils.RespondError(c, http.StatusBadGateway, err)
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the resolved backend user for the request.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
