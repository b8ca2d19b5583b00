package repositories

import (
	"context"

	"article-cms/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContentRepository interface {
	GetByPair(ctx context.Context, articleID, languageID uint) (*models.ArticleContent, error)
	GetByPairForUpdate(ctx context.Context, articleID, languageID uint) (*models.ArticleContent, error)
	Exists(ctx context.Context, articleID, languageID uint) (bool, error)
	Create(ctx context.Context, content *models.ArticleContent) error
	UpdateIfVersion(ctx context.Context, content *models.ArticleContent, expectedVersion int) (int64, error)
	CreateArchive(ctx context.Context, archive *models.ArticleArchive) error
	GetArchives(ctx context.Context, articleID, languageID uint) ([]models.ArticleArchive, error)
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) GetByPair(ctx context.Context, articleID, languageID uint) (*models.ArticleContent, error) {
	var content models.ArticleContent
	err := conn(ctx, r.db).Preload("Language").
		Where("article_id = ? AND language_id = ?", articleID, languageID).
		First(&content).Error
	return &content, err
}

// GetByPairForUpdate locks the row until the surrounding transaction ends.
func (r *contentRepository) GetByPairForUpdate(ctx context.Context, articleID, languageID uint) (*models.ArticleContent, error) {
	var content models.ArticleContent
	err := conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("article_id = ? AND language_id = ?", articleID, languageID).
		First(&content).Error
	return &content, err
}

// Exists also sees trashed rows since they still hold the unique pair.
func (r *contentRepository) Exists(ctx context.Context, articleID, languageID uint) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Unscoped().Model(&models.ArticleContent{}).
		Where("article_id = ? AND language_id = ?", articleID, languageID).
		Count(&count).Error
	return count > 0, err
}

func (r *contentRepository) Create(ctx context.Context, content *models.ArticleContent) error {
	return conn(ctx, r.db).Omit("Language").Create(content).Error
}

// UpdateIfVersion writes the editable fields and version of content, but only
// while the stored version still equals expectedVersion.
func (r *contentRepository) UpdateIfVersion(ctx context.Context, content *models.ArticleContent, expectedVersion int) (int64, error) {
	res := conn(ctx, r.db).Model(&models.ArticleContent{}).
		Where("id = ? AND version = ?", content.ID, expectedVersion).
		Updates(map[string]interface{}{
			"title":     content.Title,
			"sub_title": content.SubTitle,
			"body":      content.Body,
			"keywords":  content.Keywords,
			"published": content.Published,
			"version":   content.Version,
		})
	return res.RowsAffected, res.Error
}

func (r *contentRepository) CreateArchive(ctx context.Context, archive *models.ArticleArchive) error {
	return conn(ctx, r.db).Create(archive).Error
}

func (r *contentRepository) GetArchives(ctx context.Context, articleID, languageID uint) ([]models.ArticleArchive, error) {
	var archives []models.ArticleArchive
	err := conn(ctx, r.db).
		Where("article_id = ? AND language_id = ?", articleID, languageID).
		Order("version desc").
		Find(&archives).Error
	return archives, err
}
