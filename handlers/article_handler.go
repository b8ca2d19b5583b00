package handlers

import (
	"net/http"

	"article-cms/helper"
	"article-cms/middleware"
	"article-cms/models"
	"article-cms/services"

	"github.com/gin-gonic/gin"
)

const maxPerPage = 100

type ArticleHandler struct {
	articleService services.ArticleService
	Helper         *helper.HTTPHelper
	perPage        int
	trashedPerPage int
}

func NewArticleHandler(articleService services.ArticleService, h *helper.HTTPHelper, perPage, trashedPerPage int) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		Helper:         h,
		perPage:        perPage,
		trashedPerPage: trashedPerPage,
	}
}

func (h *ArticleHandler) listParams(c *gin.Context, defaultPerPage int) (models.ArticleListParams, bool) {
	var params models.ArticleListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "invalid pagination parameters")
		return params, false
	}

	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage < 1 {
		params.PerPage = defaultPerPage
	}
	if params.PerPage > maxPerPage {
		params.PerPage = maxPerPage
	}
	return params, true
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	params, ok := h.listParams(c, h.perPage)
	if !ok {
		return
	}

	articles, total, err := h.articleService.GetArticles(c.Request.Context(), middleware.UserID(c), params.Page, params.PerPage)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       articles,
		"pagination": h.Helper.GeneratePaging(c, params.PerPage, params.Page, int(total)),
	})
}

func (h *ArticleHandler) GetTrashedArticles(c *gin.Context) {
	params, ok := h.listParams(c, h.trashedPerPage)
	if !ok {
		return
	}

	articles, total, err := h.articleService.GetTrashedArticles(c.Request.Context(), middleware.UserID(c), params.Page, params.PerPage)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       articles,
		"pagination": h.Helper.GeneratePaging(c, params.PerPage, params.Page, int(total)),
	})
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	article, err := h.articleService.GetArticle(c.Request.Context(), middleware.Article(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req models.CreateArticleRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	if _, err := h.articleService.CreateArticle(c.Request.Context(), req, middleware.UserID(c)); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Your article has been saved")
}

func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	var req models.UpdateArticleRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	if err := h.articleService.UpdateArticle(c.Request.Context(), middleware.Article(c), req); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccessWithAction(c, "Changes saved", "OK")
}

func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	if err := h.articleService.DeleteArticle(c.Request.Context(), middleware.Article(c)); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Your article has been moved to the trash")
}

func (h *ArticleHandler) RestoreArticle(c *gin.Context) {
	if err := h.articleService.RestoreArticle(c.Request.Context(), middleware.Article(c)); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Your article has been restored")
}

func (h *ArticleHandler) ForceDeleteArticle(c *gin.Context) {
	if err := h.articleService.ForceDeleteArticle(c.Request.Context(), middleware.Article(c)); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Your article has been removed permanently")
}
