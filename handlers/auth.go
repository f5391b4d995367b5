package handlers

import (
	"net/http"

	"deals-backend/dtos"
	"deals-backend/middleware"
	"deals-backend/services"
	"deals-backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Admins *services.AdminService
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.Admins.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Me returns the profile of the admin the token belongs to.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.CurrentAdmin(c)
	if !ok {
		c.Error(utils.NewAuthError(http.StatusUnauthorized, "No token provided"))
		return
	}

	admin, err := h.Admins.GetAdminByID(c.Request.Context(), claims.AdminID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dtos.NewAdminProfile(admin))
}
