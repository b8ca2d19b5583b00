package services

import (
	"context"

	"article-cms/models"
	"article-cms/repositories"
)

type UserService interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "get user", "user not found")
	}
	return user, nil
}
