package repositories

import (
	"context"
	"time"

	"article-cms/models"

	"gorm.io/gorm"
)

// TrashScope selects which articles a lookup can see.
type TrashScope int

const (
	ScopeActive TrashScope = iota
	ScopeWithTrashed
	ScopeOnlyTrashed
)

type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetBySlug(ctx context.Context, slug string, scope TrashScope) (*models.Article, error)
	GetByID(ctx context.Context, id uint, scope TrashScope) (*models.Article, error)
	GetSummary(ctx context.Context, id uint) (*models.Article, error)
	GetList(ctx context.Context, userID uint, trashed bool, page, perPage int) ([]models.Article, int64, error)
	Update(ctx context.Context, id uint, slug, image string) error
	SlugTaken(ctx context.Context, slug string, exceptID uint) (bool, error)
	SoftDelete(ctx context.Context, id uint, at time.Time) error
	Restore(ctx context.Context, id uint) error
	ForceDelete(ctx context.Context, id uint) error
	CreateRoom(ctx context.Context, articleID uint) error
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func scoped(q *gorm.DB, scope TrashScope) *gorm.DB {
	switch scope {
	case ScopeWithTrashed:
		return q.Unscoped()
	case ScopeOnlyTrashed:
		return q.Unscoped().Where("articles.deleted_at IS NOT NULL")
	default:
		return q
	}
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	return conn(ctx, r.db).Omit("Author", "Contents", "Categories", "Permissions").Create(article).Error
}

func (r *articleRepository) GetBySlug(ctx context.Context, slug string, scope TrashScope) (*models.Article, error) {
	var article models.Article
	err := scoped(conn(ctx, r.db), scope).Where("slug = ?", slug).First(&article).Error
	return &article, err
}

func (r *articleRepository) GetByID(ctx context.Context, id uint, scope TrashScope) (*models.Article, error) {
	var article models.Article
	err := scoped(conn(ctx, r.db), scope).First(&article, id).Error
	return &article, err
}

func selectUserSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name")
}

func (r *articleRepository) GetSummary(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	err := conn(ctx, r.db).
		Preload("Author", selectUserSummary).
		Preload("Contents", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "article_id", "language_id")
		}).
		Preload("Categories.Category").
		First(&article, id).Error
	return &article, err
}

// GetList returns the articles the user authored or was granted, newest first.
func (r *articleRepository) GetList(ctx context.Context, userID uint, trashed bool, page, perPage int) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	granted := r.db.Model(&models.ArticlePermission{}).Select("article_id").Where("user_id = ?", userID)
	query := conn(ctx, r.db).Model(&models.Article{}).
		Where("articles.author_id = ? OR articles.id IN (?)", userID, granted)
	if trashed {
		query = scoped(query, ScopeOnlyTrashed)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if trashed {
		query = query.Preload("Contents", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped().Where("deleted_at IS NOT NULL")
		})
	} else {
		query = query.Preload("Categories.Category").Preload("Contents.Language")
	}

	offset := (page - 1) * perPage
	err := query.Preload("Author", selectUserSummary).
		Order("articles.created_at desc").
		Order("articles.id desc").
		Offset(offset).Limit(perPage).
		Find(&articles).Error

	return articles, total, err
}

func (r *articleRepository) Update(ctx context.Context, id uint, slug, image string) error {
	return conn(ctx, r.db).Model(&models.Article{}).Where("id = ?", id).
		Updates(map[string]interface{}{"slug": slug, "image": image}).Error
}

func (r *articleRepository) SlugTaken(ctx context.Context, slug string, exceptID uint) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Unscoped().Model(&models.Article{}).
		Where("slug = ? AND id <> ?", slug, exceptID).
		Count(&count).Error
	return count > 0, err
}

// SoftDelete trashes the article with its contents and categories, stamping
// every row with the same time.
func (r *articleRepository) SoftDelete(ctx context.Context, id uint, at time.Time) error {
	for _, model := range []interface{}{&models.ArticleContent{}, &models.ArticleCategory{}} {
		if err := conn(ctx, r.db).Model(model).Where("article_id = ?", id).Update("deleted_at", at).Error; err != nil {
			return err
		}
	}
	return conn(ctx, r.db).Model(&models.Article{}).Where("id = ?", id).Update("deleted_at", at).Error
}

// Restore brings the article back together with the contents and categories
// that were trashed alongside it, matched by the shared deleted_at stamp.
func (r *articleRepository) Restore(ctx context.Context, id uint) error {
	trashedAt := r.db.Unscoped().Model(&models.Article{}).Select("deleted_at").Where("id = ?", id)
	for _, model := range []interface{}{&models.ArticleContent{}, &models.ArticleCategory{}} {
		if err := conn(ctx, r.db).Unscoped().Model(model).
			Where("article_id = ? AND deleted_at = (?)", id, trashedAt).
			Update("deleted_at", nil).Error; err != nil {
			return err
		}
	}
	return conn(ctx, r.db).Unscoped().Model(&models.Article{}).Where("id = ?", id).Update("deleted_at", nil).Error
}

// ForceDelete purges the article and every row it owns.
func (r *articleRepository) ForceDelete(ctx context.Context, id uint) error {
	owned := []interface{}{
		&models.ArticleContent{},
		&models.ArticleCategory{},
		&models.ArticleArchive{},
		&models.ArticlePermission{},
		&models.ArticleRoom{},
	}
	for _, model := range owned {
		if err := conn(ctx, r.db).Unscoped().Where("article_id = ?", id).Delete(model).Error; err != nil {
			return err
		}
	}
	return conn(ctx, r.db).Unscoped().Delete(&models.Article{}, id).Error
}

func (r *articleRepository) CreateRoom(ctx context.Context, articleID uint) error {
	room := models.ArticleRoom{ArticleID: articleID}
	return conn(ctx, r.db).Where(models.ArticleRoom{ArticleID: articleID}).FirstOrCreate(&room).Error
}
