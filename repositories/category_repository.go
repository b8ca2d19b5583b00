package repositories

import (
	"context"

	"article-cms/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	CountByIDs(ctx context.Context, ids []uint) (int64, error)
	DeleteLinks(ctx context.Context, articleID uint) error
	CreateLinks(ctx context.Context, links []models.ArticleCategory) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := conn(ctx, r.db).Order("name asc").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) CountByIDs(ctx context.Context, ids []uint) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Category{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// DeleteLinks permanently removes every category link of the article,
// trashed ones included.
func (r *categoryRepository) DeleteLinks(ctx context.Context, articleID uint) error {
	return conn(ctx, r.db).Unscoped().Where("article_id = ?", articleID).Delete(&models.ArticleCategory{}).Error
}

func (r *categoryRepository) CreateLinks(ctx context.Context, links []models.ArticleCategory) error {
	if len(links) == 0 {
		return nil
	}
	return conn(ctx, r.db).Omit("Category").Create(&links).Error
}
