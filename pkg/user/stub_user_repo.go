package user

import (
	"context"
	"time"
)

type StubUserRepo struct {
	users  map[string]User
	hashes map[string]string
}

func NewStubUserRepo() *StubUserRepo {
	return &StubUserRepo{
		users:  map[string]User{},
		hashes: map[string]string{},
	}
}

func (s *StubUserRepo) CreateUser(ctx context.Context, user User, passwordHash string) (User, error) {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return User{}, ErrEmailTaken
		}
	}
	user.CreatedAt = time.Now()
	s.users[user.ID] = user
	s.hashes[user.ID] = passwordHash
	return user, nil
}

func (s *StubUserRepo) GetUser(ctx context.Context, id string) (User, error) {
	user, ok := s.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *StubUserRepo) GetUserByEmail(ctx context.Context, email string) (User, string, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, s.hashes[user.ID], nil
		}
	}
	return User{}, "", ErrUserNotFound
}

func (s *StubUserRepo) Cleanup() {
	s.users = map[string]User{}
	s.hashes = map[string]string{}
}
