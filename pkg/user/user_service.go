package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service interface {
	Register(ctx context.Context, email, name, passwordHash string) (User, error)
	GetUser(ctx context.Context, id string) (User, error)
	GetUserWithCredentials(ctx context.Context, email string) (User, string, error)
	GetCurrentUser(ctx context.Context) (User, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewUserService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (u *ServiceImpl) Register(ctx context.Context, email, name, passwordHash string) (User, error) {
	user := User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
	}
	return u.repo.CreateUser(ctx, user, passwordHash)
}

func (u *ServiceImpl) GetUser(ctx context.Context, id string) (User, error) {
	return u.repo.GetUser(ctx, id)
}

func (u *ServiceImpl) GetUserWithCredentials(ctx context.Context, email string) (User, string, error) {
	return u.repo.GetUserByEmail(ctx, email)
}

func (u *ServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userID, err := CurrentID(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.GetUser(ctx, userID)
}
