package handlers

import (
	"net/http"

	"article-cms/helper"
	"article-cms/middleware"
	"article-cms/services"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	userService services.UserService
	Helper      *helper.HTTPHelper
}

func NewProfileHandler(userService services.UserService, h *helper.HTTPHelper) *ProfileHandler {
	return &ProfileHandler{userService: userService, Helper: h}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
