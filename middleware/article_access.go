package middleware

import (
	"article-cms/models"
	"article-cms/repositories"
	"article-cms/services"

	"github.com/gin-gonic/gin"
)

const ContextArticle = "article"

// ResolveArticle loads the article named by the :slug path parameter.
func ResolveArticle(resolver services.ArticleResolver, scope repositories.TrashScope) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !loadArticle(c, resolver, scope) {
			return
		}
		c.Next()
	}
}

// ArticleAccess resolves the article and rejects users that are neither its
// author nor holders of a grant on it.
func ArticleAccess(resolver services.ArticleResolver, gate services.AccessGate, scope repositories.TrashScope) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !loadArticle(c, resolver, scope) {
			return
		}

		if err := gate.Authorize(c.Request.Context(), UserID(c), Article(c)); err != nil {
			HTTPHelper.SendServiceError(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}

func loadArticle(c *gin.Context, resolver services.ArticleResolver, scope repositories.TrashScope) bool {
	article, err := resolver.Resolve(c.Request.Context(), c.Param("slug"), scope)
	if err != nil {
		HTTPHelper.SendServiceError(c, err)
		c.Abort()
		return false
	}
	c.Set(ContextArticle, article)
	return true
}

// Article returns the article stored by ResolveArticle or ArticleAccess.
func Article(c *gin.Context) *models.Article {
	v, ok := c.Get(ContextArticle)
	if !ok {
		return nil
	}
	article, _ := v.(*models.Article)
	return article
}
