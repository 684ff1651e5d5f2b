package user

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, username, email, password string) (*User, error) {
	args := m.Called(username, email, password)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *MockUserRepository) ValidateUser(ctx context.Context, username, password string) (*User, error) {
	args := m.Called(username, password)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetUser(ctx context.Context, id uint) (*User, error) {
	args := m.Called(id)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *MockUserRepository) UpdateUsername(ctx context.Context, id uint, username string) (*User, error) {
	args := m.Called(id, username)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}
