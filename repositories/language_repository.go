package repositories

import (
	"context"

	"article-cms/models"

	"gorm.io/gorm"
)

type LanguageRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.Language, error)
	GetByID(ctx context.Context, id uint) (*models.Language, error)
	GetAll(ctx context.Context) ([]models.Language, error)
}

type languageRepository struct {
	db *gorm.DB
}

func NewLanguageRepository(db *gorm.DB) LanguageRepository {
	return &languageRepository{db: db}
}

func (r *languageRepository) GetBySlug(ctx context.Context, slug string) (*models.Language, error) {
	var language models.Language
	err := conn(ctx, r.db).Where("slug = ?", slug).First(&language).Error
	return &language, err
}

func (r *languageRepository) GetByID(ctx context.Context, id uint) (*models.Language, error) {
	var language models.Language
	err := conn(ctx, r.db).First(&language, id).Error
	return &language, err
}

func (r *languageRepository) GetAll(ctx context.Context) ([]models.Language, error) {
	var languages []models.Language
	err := conn(ctx, r.db).Order("slug asc").Find(&languages).Error
	return languages, err
}
