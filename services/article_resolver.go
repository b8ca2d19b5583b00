package services

import (
	"context"
	"errors"
	"strconv"

	"article-cms/models"
	"article-cms/repositories"

	"gorm.io/gorm"
)

// ArticleResolver turns the article reference found in a request path into an
// article. Slugs are canonical; a numeric reference that matches no slug is
// looked up as an id so older clients keep working.
type ArticleResolver interface {
	Resolve(ctx context.Context, ref string, scope repositories.TrashScope) (*models.Article, error)
}

type articleResolver struct {
	articleRepo repositories.ArticleRepository
}

func NewArticleResolver(articleRepo repositories.ArticleRepository) ArticleResolver {
	return &articleResolver{articleRepo: articleRepo}
}

func (r *articleResolver) Resolve(ctx context.Context, ref string, scope repositories.TrashScope) (*models.Article, error) {
	if ref == "" {
		return nil, models.NewNotFound("article not found")
	}

	article, err := r.articleRepo.GetBySlug(ctx, ref, scope)
	if err == nil {
		return article, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError(err, "resolve article", "article not found")
	}

	id, convErr := strconv.ParseUint(ref, 10, 32)
	if convErr != nil || id == 0 {
		return nil, models.NewNotFound("article not found")
	}
	article, err = r.articleRepo.GetByID(ctx, uint(id), scope)
	if err != nil {
		return nil, storeError(err, "resolve article", "article not found")
	}
	return article, nil
}
