package services

import (
	"context"
	"fmt"

	"article-cms/models"
	"article-cms/repositories"
)

// AccessGate decides what a user may do with an article.
type AccessGate interface {
	CanAccess(ctx context.Context, userID uint, article *models.Article) (bool, error)
	CanManagePermissions(ctx context.Context, userID uint, article *models.Article) (bool, error)
	Authorize(ctx context.Context, userID uint, article *models.Article) error
	HasCapability(ctx context.Context, userID uint, capability string) (bool, error)
}

type accessGate struct {
	permissionRepo repositories.PermissionRepository
	userRepo       repositories.UserRepository
}

func NewAccessGate(permissionRepo repositories.PermissionRepository, userRepo repositories.UserRepository) AccessGate {
	return &accessGate{
		permissionRepo: permissionRepo,
		userRepo:       userRepo,
	}
}

// CanAccess is true for the author and for users holding a grant.
func (g *accessGate) CanAccess(ctx context.Context, userID uint, article *models.Article) (bool, error) {
	if userID == 0 || article == nil {
		return false, nil
	}
	if article.AuthorID == userID {
		return true, nil
	}
	ok, err := g.permissionRepo.HasGrant(ctx, article.ID, userID)
	if err != nil {
		return false, fmt.Errorf("check article grant: %w", err)
	}
	return ok, nil
}

// CanManagePermissions is true for the author and for super role holders.
func (g *accessGate) CanManagePermissions(ctx context.Context, userID uint, article *models.Article) (bool, error) {
	if userID == 0 || article == nil {
		return false, nil
	}
	if article.AuthorID == userID {
		return true, nil
	}
	ok, err := g.userRepo.HasRole(ctx, userID, models.RoleSuper)
	if err != nil {
		return false, fmt.Errorf("check super role: %w", err)
	}
	return ok, nil
}

func (g *accessGate) Authorize(ctx context.Context, userID uint, article *models.Article) error {
	ok, err := g.CanAccess(ctx, userID, article)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewUnauthorized("you are not allowed to access this article")
	}
	return nil
}

func (g *accessGate) HasCapability(ctx context.Context, userID uint, capability string) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	ok, err := g.userRepo.HasCapability(ctx, userID, capability)
	if err != nil {
		return false, fmt.Errorf("check capability %q: %w", capability, err)
	}
	return ok, nil
}
