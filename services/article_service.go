package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"article-cms/models"
	"article-cms/repositories"

	"gorm.io/gorm"
)

type ArticleService interface {
	GetArticles(ctx context.Context, userID uint, page, perPage int) ([]models.Article, int64, error)
	GetTrashedArticles(ctx context.Context, userID uint, page, perPage int) ([]models.Article, int64, error)
	GetArticle(ctx context.Context, article *models.Article) (*models.Article, error)
	CreateArticle(ctx context.Context, req models.CreateArticleRequest, userID uint) (*models.Article, error)
	UpdateArticle(ctx context.Context, article *models.Article, req models.UpdateArticleRequest) error
	DeleteArticle(ctx context.Context, article *models.Article) error
	RestoreArticle(ctx context.Context, article *models.Article) error
	ForceDeleteArticle(ctx context.Context, article *models.Article) error
}

type articleService struct {
	tx              repositories.Transactor
	articleRepo     repositories.ArticleRepository
	languageRepo    repositories.LanguageRepository
	permissionRepo  repositories.PermissionRepository
	contentService  ContentService
	categoryService CategoryService
	now             func() time.Time
}

func NewArticleService(
	tx repositories.Transactor,
	articleRepo repositories.ArticleRepository,
	languageRepo repositories.LanguageRepository,
	permissionRepo repositories.PermissionRepository,
	contentService ContentService,
	categoryService CategoryService,
) ArticleService {
	return &articleService{
		tx:              tx,
		articleRepo:     articleRepo,
		languageRepo:    languageRepo,
		permissionRepo:  permissionRepo,
		contentService:  contentService,
		categoryService: categoryService,
		now:             time.Now,
	}
}

func (s *articleService) GetArticles(ctx context.Context, userID uint, page, perPage int) ([]models.Article, int64, error) {
	articles, total, err := s.articleRepo.GetList(ctx, userID, false, page, perPage)
	if err != nil {
		return nil, 0, storeError(err, "list articles", "article not found")
	}
	return articles, total, nil
}

func (s *articleService) GetTrashedArticles(ctx context.Context, userID uint, page, perPage int) ([]models.Article, int64, error) {
	articles, total, err := s.articleRepo.GetList(ctx, userID, true, page, perPage)
	if err != nil {
		return nil, 0, storeError(err, "list trashed articles", "article not found")
	}
	return articles, total, nil
}

func (s *articleService) GetArticle(ctx context.Context, article *models.Article) (*models.Article, error) {
	summary, err := s.articleRepo.GetSummary(ctx, article.ID)
	if err != nil {
		return nil, storeError(err, "get article", "article not found")
	}
	return summary, nil
}

// CreateArticle stores the article with its first content, categories, the
// author's grant and its room in a single transaction.
func (s *articleService) CreateArticle(ctx context.Context, req models.CreateArticleRequest, userID uint) (*models.Article, error) {
	if _, err := s.languageRepo.GetByID(ctx, req.LanguageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewValidation("unknown language")
		}
		return nil, storeError(err, "get language", "language not found")
	}

	taken, err := s.articleRepo.SlugTaken(ctx, req.Slug, 0)
	if err != nil {
		return nil, storeError(err, "check slug", "article not found")
	}
	if taken {
		return nil, models.NewConflict("slug is already in use")
	}

	article := &models.Article{
		Slug:     req.Slug,
		AuthorID: userID,
		Image:    req.Image,
	}

	err = s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.articleRepo.Create(ctx, article); err != nil {
			return storeError(err, "create article", "article not found")
		}
		if err := s.categoryService.ReplaceCategories(ctx, article.ID, req.Categories); err != nil {
			return err
		}
		if _, err := s.contentService.CreateContent(ctx, article.ID, req.LanguageID, req.ContentFields()); err != nil {
			return err
		}
		if err := s.permissionRepo.Grant(ctx, article.ID, userID); err != nil {
			return storeError(err, "grant author", "article not found")
		}
		if err := s.articleRepo.CreateRoom(ctx, article.ID); err != nil {
			return storeError(err, "create article room", "article not found")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "article created", "article_id", article.ID, "slug", article.Slug, "author_id", userID)

	return s.GetArticle(ctx, article)
}

func (s *articleService) UpdateArticle(ctx context.Context, article *models.Article, req models.UpdateArticleRequest) error {
	taken, err := s.articleRepo.SlugTaken(ctx, req.Slug, article.ID)
	if err != nil {
		return storeError(err, "check slug", "article not found")
	}
	if taken {
		return models.NewConflict("slug is already in use")
	}

	return s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.articleRepo.Update(ctx, article.ID, req.Slug, req.Image); err != nil {
			return storeError(err, "update article", "article not found")
		}
		return s.categoryService.ReplaceCategories(ctx, article.ID, req.Categories)
	})
}

func (s *articleService) DeleteArticle(ctx context.Context, article *models.Article) error {
	if article.DeletedAt.Valid {
		return models.NewNotFound("article not found")
	}
	at := s.now().UTC().Truncate(time.Microsecond)
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		return storeError(s.articleRepo.SoftDelete(ctx, article.ID, at), "trash article", "article not found")
	})
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "article trashed", "article_id", article.ID)
	return nil
}

func (s *articleService) RestoreArticle(ctx context.Context, article *models.Article) error {
	if !article.DeletedAt.Valid {
		return models.NewNotFound("article is not in the trash")
	}
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		return storeError(s.articleRepo.Restore(ctx, article.ID), "restore article", "article not found")
	})
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "article restored", "article_id", article.ID)
	return nil
}

// ForceDeleteArticle purges a trashed article and everything it owns.
func (s *articleService) ForceDeleteArticle(ctx context.Context, article *models.Article) error {
	if !article.DeletedAt.Valid {
		return models.NewNotFound("article is not in the trash")
	}
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		return storeError(s.articleRepo.ForceDelete(ctx, article.ID), "purge article", "article not found")
	})
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "article purged", "article_id", article.ID)
	return nil
}
