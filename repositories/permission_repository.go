package repositories

import (
	"context"

	"article-cms/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PermissionRepository interface {
	HasGrant(ctx context.Context, articleID, userID uint) (bool, error)
	Grant(ctx context.Context, articleID uint, userIDs ...uint) error
	RevokeUsers(ctx context.Context, articleID uint, userIDs []uint) error
	GetGrantedUsers(ctx context.Context, articleID uint) ([]models.UserSummary, error)
}

type permissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &permissionRepository{db: db}
}

func (r *permissionRepository) HasGrant(ctx context.Context, articleID, userID uint) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.ArticlePermission{}).
		Where("article_id = ? AND user_id = ?", articleID, userID).
		Count(&count).Error
	return count > 0, err
}

// Grant inserts one row per user, ignoring grants that already exist.
func (r *permissionRepository) Grant(ctx context.Context, articleID uint, userIDs ...uint) error {
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]models.ArticlePermission, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, models.ArticlePermission{ArticleID: articleID, UserID: id})
	}
	return conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "article_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&rows).Error
}

func (r *permissionRepository) RevokeUsers(ctx context.Context, articleID uint, userIDs []uint) error {
	if len(userIDs) == 0 {
		return nil
	}
	return conn(ctx, r.db).
		Where("article_id = ? AND user_id IN ?", articleID, userIDs).
		Delete(&models.ArticlePermission{}).Error
}

func (r *permissionRepository) GetGrantedUsers(ctx context.Context, articleID uint) ([]models.UserSummary, error) {
	var users []models.UserSummary
	err := conn(ctx, r.db).Model(&models.User{}).
		Select("users.id AS user_id, users.name AS name, true AS permission").
		Joins("JOIN article_permissions ON article_permissions.user_id = users.id").
		Where("article_permissions.article_id = ?", articleID).
		Order("users.id asc").
		Scan(&users).Error
	return users, err
}
