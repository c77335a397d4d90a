package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"moodlist/internal/models"
)

// MockPlaylistRepository is a mock implementation of PlaylistRepository for testing
type MockPlaylistRepository struct {
	mock.Mock
}

func (m *MockPlaylistRepository) Save(ctx context.Context, playlist *models.Playlist) error {
	args := m.Called(ctx, playlist)
	return args.Error(0)
}

func (m *MockPlaylistRepository) FindByID(ctx context.Context, id string) (*models.Playlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Playlist), args.Error(1)
}

func (m *MockPlaylistRepository) FindAll(ctx context.Context) ([]*models.Playlist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Playlist), args.Error(1)
}

func (m *MockPlaylistRepository) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlaylistRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// StubCompletionService returns scripted responses in order, then repeats
// the last one. Errors can be interleaved by setting Errs at the matching
// index.
type StubCompletionService struct {
	Responses []string
	Errs      []error
	Calls     int

	// LastSystemPrompt and LastUserPrompt capture the most recent call
	LastSystemPrompt string
	LastUserPrompt   string
}

func (s *StubCompletionService) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error) {
	idx := s.Calls
	s.Calls++
	s.LastSystemPrompt = systemPrompt
	s.LastUserPrompt = userPrompt

	if idx < len(s.Errs) && s.Errs[idx] != nil {
		return "", s.Errs[idx]
	}
	if len(s.Responses) == 0 {
		return "", nil
	}
	if idx >= len(s.Responses) {
		idx = len(s.Responses) - 1
	}
	return s.Responses[idx], nil
}
