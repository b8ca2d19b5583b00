package services

import (
	"context"
	"log/slog"

	"article-cms/models"
	"article-cms/repositories"
)

// PermissionService manages the explicit grant roster of an article.
type PermissionService interface {
	GetEligibleUsers(ctx context.Context, excludeUserID uint) ([]models.UserSummary, error)
	GetGranted(ctx context.Context, articleID uint) ([]models.UserSummary, error)
	GetRoster(ctx context.Context, article *models.Article, userID uint) (*models.PermissionRoster, error)
	SetPermissions(ctx context.Context, article *models.Article, userID uint, grantedUserIDs []uint) error
}

type permissionService struct {
	tx             repositories.Transactor
	permissionRepo repositories.PermissionRepository
	userRepo       repositories.UserRepository
	gate           AccessGate
}

func NewPermissionService(
	tx repositories.Transactor,
	permissionRepo repositories.PermissionRepository,
	userRepo repositories.UserRepository,
	gate AccessGate,
) PermissionService {
	return &permissionService{
		tx:             tx,
		permissionRepo: permissionRepo,
		userRepo:       userRepo,
		gate:           gate,
	}
}

func (s *permissionService) GetEligibleUsers(ctx context.Context, excludeUserID uint) ([]models.UserSummary, error) {
	users, err := s.userRepo.GetEligible(ctx, excludeUserID)
	if err != nil {
		return nil, storeError(err, "list eligible users", "user not found")
	}
	return users, nil
}

func (s *permissionService) GetGranted(ctx context.Context, articleID uint) ([]models.UserSummary, error) {
	users, err := s.permissionRepo.GetGrantedUsers(ctx, articleID)
	if err != nil {
		return nil, storeError(err, "list granted users", "user not found")
	}
	return users, nil
}

// GetRoster lists every eligible user flagged with whether they hold a grant,
// along with the eligible granted users themselves. Readers need access to the
// article or the right to manage its permissions.
func (s *permissionService) GetRoster(ctx context.Context, article *models.Article, userID uint) (*models.PermissionRoster, error) {
	if err := s.authorizeRoster(ctx, article, userID); err != nil {
		return nil, err
	}

	eligible, err := s.GetEligibleUsers(ctx, 0)
	if err != nil {
		return nil, err
	}
	granted, err := s.eligibleGrants(ctx, article.ID)
	if err != nil {
		return nil, err
	}

	grantedIDs := make(map[uint]struct{}, len(granted))
	for _, u := range granted {
		grantedIDs[u.UserID] = struct{}{}
	}
	for i := range eligible {
		_, eligible[i].Permission = grantedIDs[eligible[i].UserID]
	}

	return &models.PermissionRoster{Users: eligible, Permissions: granted}, nil
}

// eligibleGrants lists the granted users that also hold an eligible role.
func (s *permissionService) eligibleGrants(ctx context.Context, articleID uint) ([]models.UserSummary, error) {
	granted, err := s.GetGranted(ctx, articleID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(granted))
	for _, u := range granted {
		ids = append(ids, u.UserID)
	}
	eligible, err := s.userRepo.FilterEligible(ctx, ids)
	if err != nil {
		return nil, storeError(err, "filter eligible users", "user not found")
	}
	keep := make(map[uint]struct{}, len(eligible))
	for _, id := range eligible {
		keep[id] = struct{}{}
	}
	out := make([]models.UserSummary, 0, len(eligible))
	for _, u := range granted {
		if _, ok := keep[u.UserID]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *permissionService) authorizeRoster(ctx context.Context, article *models.Article, userID uint) error {
	ok, err := s.gate.CanAccess(ctx, userID, article)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	ok, err = s.gate.CanManagePermissions(ctx, userID, article)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewUnauthorized("you are not allowed to access this article")
	}
	return nil
}

// SetPermissions replaces the grants held by eligible users with grants for
// exactly the eligible members of grantedUserIDs. Grants of non eligible users,
// such as the author's own grant when the author holds no eligible role, are
// left alone.
func (s *permissionService) SetPermissions(ctx context.Context, article *models.Article, userID uint, grantedUserIDs []uint) error {
	ok, err := s.gate.CanManagePermissions(ctx, userID, article)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewUnauthorized("you are not allowed to edit the permissions of this article")
	}

	err = s.tx.ExecTx(ctx, func(ctx context.Context) error {
		granted, err := s.permissionRepo.GetGrantedUsers(ctx, article.ID)
		if err != nil {
			return storeError(err, "list granted users", "user not found")
		}
		current := make([]uint, 0, len(granted))
		for _, u := range granted {
			current = append(current, u.UserID)
		}

		revoke, err := s.userRepo.FilterEligible(ctx, current)
		if err != nil {
			return storeError(err, "filter eligible users", "user not found")
		}
		if err := s.permissionRepo.RevokeUsers(ctx, article.ID, revoke); err != nil {
			return storeError(err, "revoke grants", "user not found")
		}

		grant, err := s.userRepo.FilterEligible(ctx, dedupe(grantedUserIDs))
		if err != nil {
			return storeError(err, "filter eligible users", "user not found")
		}
		if err := s.permissionRepo.Grant(ctx, article.ID, grant...); err != nil {
			return storeError(err, "grant users", "user not found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "article permissions updated", "article_id", article.ID, "granted", len(grantedUserIDs))
	return nil
}
