package handlers

import (
	"net/http"

	"article-cms/helper"
	"article-cms/middleware"
	"article-cms/models"
	"article-cms/services"

	"github.com/gin-gonic/gin"
)

type PermissionHandler struct {
	permissionService services.PermissionService
	Helper            *helper.HTTPHelper
}

func NewPermissionHandler(permissionService services.PermissionService, h *helper.HTTPHelper) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService, Helper: h}
}

func (h *PermissionHandler) GetPermission(c *gin.Context) {
	roster, err := h.permissionService.GetRoster(c.Request.Context(), middleware.Article(c), middleware.UserID(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, roster)
}

func (h *PermissionHandler) PutPermission(c *gin.Context) {
	var req models.PermissionRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	err := h.permissionService.SetPermissions(c.Request.Context(), middleware.Article(c), middleware.UserID(c), req.Permissions)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccessWithAction(c, "Permissions updated", "OK")
}
