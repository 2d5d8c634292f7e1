package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/easybar-app/gateway/middlewares"
	"github.com/easybar-app/gateway/services"
	"github.com/easybar-app/gateway/utils"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

// GetMe -> the resolved backend record for the caller.
func (uc *UserController) GetMe(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)
	utils.RespondJSON(c, http.StatusOK, "Current user", user)
}

// UpdateMe -> profile edits (name, phone). Role is not editable here.
func (uc *UserController) UpdateMe(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)

	var body struct {
		Name  string `json:"nome" binding:"required"`
		Phone string `json:"telefone"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updated, err := uc.Users.UpdateProfile(c.Request.Context(), user.ExternalID, body.Name, body.Phone)
	if err != nil {
		respondUpstream(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User updated", updated)
}

// GetAllUsers -> staff listing for the management view.
func (uc *UserController) GetAllUsers(c *gin.Context) {
	users, err := uc.Users.ListUsers(c.Request.Context())
	if err != nil {
		respondUpstream(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of users", users)
}

// ChangeRole -> admin-only role mutation.
func (uc *UserController) ChangeRole(c *gin.Context) {
	actor, _ := middlewares.CurrentUser(c)
	targetID := c.Param("user_id")

	var body struct {
		Role string `json:"tipo" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := uc.Users.ChangeRole(c.Request.Context(), actor, targetID, body.Role); err != nil {
		respondUpstream(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Role updated", gin.H{"user_id": targetID, "tipo": body.Role})
}
