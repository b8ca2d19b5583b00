package services

import (
	"context"

	"article-cms/models"
	"article-cms/repositories"
)

type CategoryService interface {
	ReplaceCategories(ctx context.Context, articleID uint, categoryIDs []uint) error
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetLanguages(ctx context.Context) ([]models.Language, error)
}

type categoryService struct {
	tx           repositories.Transactor
	categoryRepo repositories.CategoryRepository
	languageRepo repositories.LanguageRepository
}

func NewCategoryService(tx repositories.Transactor, categoryRepo repositories.CategoryRepository, languageRepo repositories.LanguageRepository) CategoryService {
	return &categoryService{
		tx:           tx,
		categoryRepo: categoryRepo,
		languageRepo: languageRepo,
	}
}

// ReplaceCategories drops every category link of the article and links the
// given categories instead. Duplicate ids are collapsed.
func (s *categoryService) ReplaceCategories(ctx context.Context, articleID uint, categoryIDs []uint) error {
	ids := dedupe(categoryIDs)

	if len(ids) > 0 {
		count, err := s.categoryRepo.CountByIDs(ctx, ids)
		if err != nil {
			return storeError(err, "check categories", "category not found")
		}
		if count != int64(len(ids)) {
			return models.NewValidation("unknown category")
		}
	}

	return s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.categoryRepo.DeleteLinks(ctx, articleID); err != nil {
			return storeError(err, "delete categories", "category not found")
		}

		links := make([]models.ArticleCategory, 0, len(ids))
		for _, id := range ids {
			links = append(links, models.ArticleCategory{ArticleID: articleID, CategoryID: id})
		}
		if err := s.categoryRepo.CreateLinks(ctx, links); err != nil {
			return storeError(err, "create categories", "category not found")
		}
		return nil
	})
}

func (s *categoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, storeError(err, "get categories", "category not found")
	}
	return categories, nil
}

func (s *categoryService) GetLanguages(ctx context.Context) ([]models.Language, error) {
	languages, err := s.languageRepo.GetAll(ctx)
	if err != nil {
		return nil, storeError(err, "get languages", "language not found")
	}
	return languages, nil
}
