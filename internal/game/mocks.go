package game

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveScoreEvent(ctx context.Context, event *ScoreEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockRepository) ListScoreEvents(ctx context.Context, userID string, limit int) ([]ScoreEvent, error) {
	args := m.Called(userID, limit)
	events, _ := args.Get(0).([]ScoreEvent)
	return events, args.Error(1)
}

func (m *MockRepository) UpdateProgress(ctx context.Context, userID string, result GameResult, now time.Time) (DifficultyProgress, error) {
	args := m.Called(userID, result)
	return args.Get(0).(DifficultyProgress), args.Error(1)
}

func (m *MockRepository) UpdateGlobalStats(ctx context.Context, userID string, result GameResult, now time.Time) (GlobalStats, error) {
	args := m.Called(userID, result)
	return args.Get(0).(GlobalStats), args.Error(1)
}

func (m *MockRepository) GetProgress(ctx context.Context, userID string) (ProgressMap, error) {
	args := m.Called(userID)
	progress, _ := args.Get(0).(ProgressMap)
	return progress, args.Error(1)
}

func (m *MockRepository) GetGlobalStats(ctx context.Context, userID string) (GlobalStats, bool, error) {
	args := m.Called(userID)
	return args.Get(0).(GlobalStats), args.Bool(1), args.Error(2)
}
