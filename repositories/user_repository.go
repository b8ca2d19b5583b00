package repositories

import (
	"context"

	"article-cms/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	HasRole(ctx context.Context, userID, roleID uint) (bool, error)
	HasCapability(ctx context.Context, userID uint, capability string) (bool, error)
	GetEligible(ctx context.Context, excludeUserID uint) ([]models.UserSummary, error)
	FilterEligible(ctx context.Context, userIDs []uint) ([]uint, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := conn(ctx, r.db).Preload("Roles.Permissions").First(&user, id).Error
	return &user, err
}

func (r *userRepository) HasRole(ctx context.Context, userID, roleID uint) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Table("user_roles").
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) HasCapability(ctx context.Context, userID uint, capability string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Table("user_roles").
		Joins("JOIN role_permissions ON role_permissions.role_id = user_roles.role_id").
		Joins("JOIN permissions ON permissions.id = role_permissions.permission_id").
		Where("user_roles.user_id = ? AND permissions.name = ?", userID, capability).
		Count(&count).Error
	return count > 0, err
}

// eligible selects users holding any role other than the super role.
func (r *userRepository) eligible(ctx context.Context) *gorm.DB {
	roles := r.db.Table("user_roles").Select("user_id").Where("role_id > ?", models.RoleSuper)
	return conn(ctx, r.db).Model(&models.User{}).Where("users.id IN (?)", roles)
}

func (r *userRepository) GetEligible(ctx context.Context, excludeUserID uint) ([]models.UserSummary, error) {
	var users []models.UserSummary
	query := r.eligible(ctx).Select("users.id AS user_id, users.name AS name")
	if excludeUserID != 0 {
		query = query.Where("users.id <> ?", excludeUserID)
	}
	err := query.Order("users.id asc").Scan(&users).Error
	return users, err
}

func (r *userRepository) FilterEligible(ctx context.Context, userIDs []uint) ([]uint, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.eligible(ctx).Where("users.id IN ?", userIDs).Order("users.id asc").Pluck("users.id", &ids).Error
	return ids, err
}
