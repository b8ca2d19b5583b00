package handlers

import (
	"net/http"

	"article-cms/helper"
	"article-cms/middleware"
	"article-cms/models"
	"article-cms/services"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentService services.ContentService
	Helper         *helper.HTTPHelper
}

func NewContentHandler(contentService services.ContentService, h *helper.HTTPHelper) *ContentHandler {
	return &ContentHandler{contentService: contentService, Helper: h}
}

func (h *ContentHandler) language(c *gin.Context) (*models.Language, bool) {
	language, err := h.contentService.GetLanguage(c.Request.Context(), c.Param("language"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return nil, false
	}
	return language, true
}

func (h *ContentHandler) GetContent(c *gin.Context) {
	language, ok := h.language(c)
	if !ok {
		return
	}

	content, err := h.contentService.GetContent(c.Request.Context(), middleware.Article(c).ID, language.ID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, content)
}

func (h *ContentHandler) CreateContent(c *gin.Context) {
	var req models.ContentRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}
	language, ok := h.language(c)
	if !ok {
		return
	}

	if _, err := h.contentService.CreateContent(c.Request.Context(), middleware.Article(c).ID, language.ID, req.ContentFields()); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "A new language has been added to your article")
}

func (h *ContentHandler) UpdateContent(c *gin.Context) {
	var req models.ContentRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}
	language, ok := h.language(c)
	if !ok {
		return
	}

	if _, err := h.contentService.UpdateContent(c.Request.Context(), middleware.Article(c).ID, language.ID, req.ContentFields()); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccessWithAction(c, "Article updated", "OK")
}

func (h *ContentHandler) GetArchives(c *gin.Context) {
	language, ok := h.language(c)
	if !ok {
		return
	}

	archives, err := h.contentService.GetArchives(c.Request.Context(), middleware.Article(c).ID, language.ID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, archives)
}
