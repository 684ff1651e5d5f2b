package achievement

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListUnlocked(ctx context.Context, userID string) ([]Unlocked, error) {
	args := m.Called(userID)
	unlocked, _ := args.Get(0).([]Unlocked)
	return unlocked, args.Error(1)
}

func (m *MockRepository) SaveUnlocked(ctx context.Context, userID string, unlocked []Unlocked) ([]Unlocked, error) {
	args := m.Called(userID, unlocked)
	saved, _ := args.Get(0).([]Unlocked)
	return saved, args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyUnlocked(ctx context.Context, userID string, unlocked Unlocked) {
	m.Called(userID, unlocked)
}
