package handlers

import (
	"net/http"

	"article-cms/helper"
	"article-cms/services"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the reference data editors pick from.
type CatalogHandler struct {
	categoryService services.CategoryService
	Helper          *helper.HTTPHelper
}

func NewCatalogHandler(categoryService services.CategoryService, h *helper.HTTPHelper) *CatalogHandler {
	return &CatalogHandler{categoryService: categoryService, Helper: h}
}

func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.GetCategories(c.Request.Context())
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) GetLanguages(c *gin.Context) {
	languages, err := h.categoryService.GetLanguages(c.Request.Context())
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, languages)
}
