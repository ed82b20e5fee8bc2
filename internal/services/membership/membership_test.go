package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-backoffice/internal/lib/domerr"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateStudent(ctx context.Context, st models.Student) (string, error) {
	args := m.Called(ctx, st)
	return args.String(0), args.Error(1)
}
func (m *RepoMock) GetStudent(ctx context.Context, matricula string) (*models.Student, error) {
	args := m.Called(ctx, matricula)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}
func (m *RepoMock) ListStudents(ctx context.Context, limit, offset int) ([]*models.Student, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Student), args.Error(1)
}
func (m *RepoMock) UpdateStudent(ctx context.Context, st models.Student) (int, error) {
	args := m.Called(ctx, st)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) RemoveStudent(ctx context.Context, matricula string) (int, error) {
	args := m.Called(ctx, matricula)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) UpdateRenewal(ctx context.Context, matricula string, planID int, expiration time.Time) error {
	args := m.Called(ctx, matricula, planID, expiration)
	return args.Error(0)
}
func (m *RepoMock) GetPlan(ctx context.Context, id int) (*models.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTestService(r *RepoMock, c *CacheMock, now time.Time) *MembershipService {
	svc := NewMembershipService(r, c, newNoopLogger())
	svc.now = func() time.Time { return now }
	return svc
}

func TestComputeRenewalDate(t *testing.T) {
	tests := []struct {
		name string
		base time.Time
		unit models.DurationUnit
		want time.Time
	}{
		{
			name: "daily adds one day",
			base: time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC),
			unit: models.DurationDaily,
			want: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monthly adds one month",
			base: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			unit: models.DurationMonthly,
			want: time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "yearly adds one year",
			base: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			unit: models.DurationYearly,
			want: time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "month end rolls forward",
			base: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
			unit: models.DurationMonthly,
			want: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "leap day plus year rolls forward",
			base: time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC),
			unit: models.DurationYearly,
			want: time.Date(2029, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "unknown unit falls back to monthly",
			base: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			unit: models.DurationUnit("Weekly"),
			want: time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeRenewalDate(tt.base, tt.unit)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestDeriveDisplayStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	nextMonth := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

	planID := 7

	tests := []struct {
		name       string
		planID     *int
		expiration *time.Time
		wantStatus string
		wantLabel  string
	}{
		{
			name:       "no plan",
			planID:     nil,
			expiration: nil,
			wantStatus: models.StudentStatusInactive,
			wantLabel:  models.DisplayNoPlan,
		},
		{
			name:       "stored expiration without plan reference",
			planID:     nil,
			expiration: &nextMonth,
			wantStatus: models.StudentStatusInactive,
			wantLabel:  models.DisplayNoPlan,
		},
		{
			name:       "expired yesterday",
			planID:     &planID,
			expiration: &yesterday,
			wantStatus: models.StudentStatusInactive,
			wantLabel:  models.DisplayExpired,
		},
		{
			name:       "expires today is still active",
			planID:     &planID,
			expiration: &today,
			wantStatus: models.StudentStatusActive,
			wantLabel:  "15-03-2026",
		},
		{
			name:       "active until next month",
			planID:     &planID,
			expiration: &nextMonth,
			wantStatus: models.StudentStatusActive,
			wantLabel:  "15-04-2026",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &models.Student{Matricula: "A1001", PlanID: tt.planID, ExpirationDate: tt.expiration}
			status, label := DeriveDisplayStatus(st, now)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}

func TestMembershipService_Create(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	planID := 7

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		req        models.DummyStudent
		want       string
		wantErr    bool
	}{
		{
			name: "create without plan stays inactive",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("CreateStudent", mock.Anything, mock.MatchedBy(func(st models.Student) bool {
					return st.Matricula == "A1001" &&
						st.Status == models.StudentStatusInactive &&
						st.PlanID == nil && st.ExpirationDate == nil
				})).Return("A1001", nil).Once()
				c.On("Set", "student:A1001", mock.Anything, time.Hour).Return(nil).Once()
			},
			req: models.DummyStudent{
				Matricula: "A1001",
				Name:      "Joao Silva",
				Email:     "joao@example.com",
				BirthDate: "10-03-1995",
			},
			want:    "A1001",
			wantErr: false,
		},
		{
			name: "create with plan activates membership",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("GetPlan", mock.Anything, planID).
					Return(&models.Plan{ID: planID, Name: "Monthly Basic", DurationUnit: models.DurationMonthly}, nil).Once()
				r.On("CreateStudent", mock.Anything, mock.MatchedBy(func(st models.Student) bool {
					return st.Status == models.StudentStatusActive &&
						st.PlanID != nil && *st.PlanID == planID &&
						st.ExpirationDate != nil &&
						st.ExpirationDate.Equal(time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC))
				})).Return("A1002", nil).Once()
				c.On("Set", "student:A1002", mock.Anything, time.Hour).Return(nil).Once()
			},
			req: models.DummyStudent{
				Matricula: "A1002",
				Name:      "Maria Souza",
				Email:     "maria@example.com",
				BirthDate: "01-06-1990",
				PlanID:    &planID,
			},
			want:    "A1002",
			wantErr: false,
		},
		{
			name:       "invalid birth date",
			setupMocks: func(_ *RepoMock, _ *CacheMock) {},
			req: models.DummyStudent{
				Matricula: "A1003",
				Name:      "Pedro Lima",
				Email:     "pedro@example.com",
				BirthDate: "not-a-date",
			},
			want:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			tt.setupMocks(repo, cache)
			svc := newTestService(repo, cache, now)

			got, err := svc.Create(context.Background(), tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, domerr.CodeBadRequest, domerr.CodeOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestMembershipService_Renew(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	planID := 7
	plan := &models.Plan{ID: planID, Name: "Monthly Basic", DurationUnit: models.DurationMonthly}

	t.Run("mixed batch renews and skips", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := newTestService(repo, cache, now)

		futureExp := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		pastExp := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

		repo.On("GetPlan", mock.Anything, planID).Return(plan, nil).Once()
		repo.On("GetStudent", mock.Anything, "A1001").
			Return(&models.Student{Matricula: "A1001", ExpirationDate: &futureExp}, nil).Once()
		repo.On("GetStudent", mock.Anything, "A1002").
			Return(&models.Student{Matricula: "A1002", ExpirationDate: &pastExp}, nil).Once()
		repo.On("GetStudent", mock.Anything, "GHOST").
			Return(nil, domerr.New(domerr.CodeNotFound, "student not found")).Once()

		// Действующий абонемент продлевается от даты окончания.
		repo.On("UpdateRenewal", mock.Anything, "A1001", planID,
			time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)).Return(nil).Once()
		// Истёкший — от сегодняшнего дня.
		repo.On("UpdateRenewal", mock.Anything, "A1002", planID,
			time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)).Return(nil).Once()
		cache.On("Invalidate", "student:A1001").Return(nil).Once()
		cache.On("Invalidate", "student:A1002").Return(nil).Once()

		result, err := svc.Renew(context.Background(), planID, []string{"A1001", "A1002", "GHOST"})
		require.NoError(t, err)
		assert.Equal(t, []string{"A1001", "A1002"}, result.Renewed)
		assert.Equal(t, []string{"GHOST"}, result.Skipped)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("missing plan aborts the batch", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := newTestService(repo, cache, now)

		repo.On("GetPlan", mock.Anything, planID).
			Return(nil, domerr.New(domerr.CodeNotFound, "plan not found")).Once()

		_, err := svc.Renew(context.Background(), planID, []string{"A1001"})
		require.Error(t, err)
		assert.Equal(t, domerr.CodeNotFound, domerr.CodeOf(err))
		repo.AssertNotCalled(t, "GetStudent", mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("storage failure stops the batch", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := newTestService(repo, cache, now)

		repo.On("GetPlan", mock.Anything, planID).Return(plan, nil).Once()
		repo.On("GetStudent", mock.Anything, "A1001").
			Return(nil, errors.New("connection reset")).Once()

		_, err := svc.Renew(context.Background(), planID, []string{"A1001"})
		require.Error(t, err)
	})
}

func TestMembershipService_Read(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	expiration := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	student := &models.Student{
		Matricula:      "A1001",
		Name:           "Joao Silva",
		Status:         models.StudentStatusActive,
		ExpirationDate: &expiration,
	}

	t.Run("cache miss falls back to repository", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := newTestService(repo, cache, now)

		cache.On("Get", "student:A1001", mock.Anything).Return(false, nil).Once()
		repo.On("GetStudent", mock.Anything, "A1001").Return(student, nil).Once()
		cache.On("Set", "student:A1001", student, time.Hour).Return(nil).Once()

		view, err := svc.Read(context.Background(), "A1001")
		require.NoError(t, err)
		assert.Equal(t, models.StudentStatusActive, view.DisplayStatus)
		assert.Equal(t, "01-04-2026", view.ExpirationLabel)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("expired membership is derived on read", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := newTestService(repo, cache, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

		cache.On("Get", "student:A1001", mock.Anything).Return(false, nil).Once()
		repo.On("GetStudent", mock.Anything, "A1001").Return(student, nil).Once()
		cache.On("Set", "student:A1001", student, time.Hour).Return(nil).Once()

		view, err := svc.Read(context.Background(), "A1001")
		require.NoError(t, err)
		assert.Equal(t, models.StudentStatusInactive, view.DisplayStatus)
		assert.Equal(t, models.DisplayExpired, view.ExpirationLabel)
	})
}
