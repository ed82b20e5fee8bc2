package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) FindMembershipsExpiringTomorrow(ctx context.Context) ([]*models.ExpiringMembership, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ExpiringMembership), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSchedulerService_NoExpiringMemberships(t *testing.T) {
	repo := new(RepoMock)
	svc := NewSchedulerService(repo, newNoopLogger())

	repo.On("FindMembershipsExpiringTomorrow", mock.Anything).
		Return([]*models.ExpiringMembership{}, nil).Once()

	// Пустой список не доходит до публикации, канал не нужен.
	svc.runFindExpiringMemberships(context.Background(), nil)
	repo.AssertExpectations(t)
}

func TestSchedulerService_RepositoryError(t *testing.T) {
	repo := new(RepoMock)
	svc := NewSchedulerService(repo, newNoopLogger())

	repo.On("FindMembershipsExpiringTomorrow", mock.Anything).
		Return(nil, errors.New("connection reset")).Once()

	svc.runFindExpiringMemberships(context.Background(), nil)
	repo.AssertExpectations(t)
}
