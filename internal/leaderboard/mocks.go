package leaderboard

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thesrcielos/BananaRealm/internal/game"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ReplaceIfHigher(ctx context.Context, entry Entry) (Entry, bool, error) {
	args := m.Called(entry)
	return args.Get(0).(Entry), args.Bool(1), args.Error(2)
}

func (m *MockRepository) ListEntries(ctx context.Context, difficulty game.Difficulty) ([]Entry, error) {
	args := m.Called(difficulty)
	entries, _ := args.Get(0).([]Entry)
	return entries, args.Error(1)
}

func (m *MockRepository) RenameEntries(ctx context.Context, renames []Rename) (int, error) {
	args := m.Called(renames)
	return args.Int(0), args.Error(1)
}

type MockUsernameResolver struct {
	mock.Mock
}

func (m *MockUsernameResolver) ResolveUsername(ctx context.Context, userID string) string {
	args := m.Called(userID)
	return args.String(0)
}
