package services

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-backoffice/internal/lib/domerr"
	"github.com/magabrotheeeer/gym-backoffice/internal/lib/password"
	"github.com/magabrotheeeer/gym-backoffice/internal/lib/smtp"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
	"github.com/magabrotheeeer/gym-backoffice/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateStaff(ctx context.Context, a models.StaffAccount) (string, error) {
	args := m.Called(ctx, a)
	return args.String(0), args.Error(1)
}
func (m *RepoMock) GetStaffByID(ctx context.Context, id string) (*models.StaffAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StaffAccount), args.Error(1)
}
func (m *RepoMock) GetStaffByEmail(ctx context.Context, email string) (*models.StaffAccount, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StaffAccount), args.Error(1)
}
func (m *RepoMock) GetStaffByNationalID(ctx context.Context, nationalID string) (*models.StaffAccount, error) {
	args := m.Called(ctx, nationalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StaffAccount), args.Error(1)
}
func (m *RepoMock) ListStaff(ctx context.Context, limit, offset int) ([]*models.StaffAccount, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StaffAccount), args.Error(1)
}
func (m *RepoMock) ActivateStaff(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *RepoMock) UpdateStaffPassword(ctx context.Context, id, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}
func (m *RepoMock) SetPasswordResetCode(ctx context.Context, id, code string, expiry time.Time) error {
	return m.Called(ctx, id, code, expiry).Error(0)
}
func (m *RepoMock) SoftDeleteStaff(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *RepoMock) ListAdminDeletions(ctx context.Context, limit, offset int) ([]*models.AdminDeletionRecord, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AdminDeletionRecord), args.Error(1)
}
func (m *RepoMock) DeleteAdminTx(ctx context.Context, requesterID, targetNationalID, reason string,
	verify repository.VerifyPasswordFunc) (*models.AdminDeletionRecord, error) {
	args := m.Called(ctx, requesterID, targetNationalID, reason, verify)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminDeletionRecord), args.Error(1)
}

// clientStub собирает отправленные письма, не открывая соединений.
type clientStub struct {
	data bytes.Buffer
}

func (c *clientStub) Mail(string) error          { return nil }
func (c *clientStub) Rcpt(string) error          { return nil }
func (c *clientStub) Data() (io.WriteCloser, error) {
	return nopWriteCloser{&c.data}, nil
}
func (c *clientStub) Quit() error  { return nil }
func (c *clientStub) Close() error { return nil }

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

type transportStub struct {
	client *clientStub
}

func (t *transportStub) Connect() (smtp.Client, error) { return t.client, nil }
func (t *transportStub) GetSMTPUser() string           { return "backoffice@example.com" }

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTestService(r *RepoMock, tr smtp.TransportInterface) *StaffService {
	svc := NewStaffService(r, tr, newNoopLogger())
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }
	svc.newCode = func() (string, error) { return "123456", nil }
	return svc
}

func TestStaffService_Register(t *testing.T) {
	repo := new(RepoMock)
	transport := &transportStub{client: &clientStub{}}
	svc := newTestService(repo, transport)

	wantID := uuid.New().String()
	repo.On("CreateStaff", mock.Anything, mock.MatchedBy(func(a models.StaffAccount) bool {
		return a.Email == "carlos@example.com" &&
			a.VerificationCode != nil && *a.VerificationCode == "123456" &&
			a.PasswordHash != "" && a.PasswordHash != "secret123"
	})).Return(wantID, nil).Once()

	id, err := svc.Register(context.Background(), models.DummyStaffAccount{
		Name:        "Carlos Admin",
		Email:       "carlos@example.com",
		NationalID:  "11111111111",
		Password:    "secret123",
		AccessLevel: "Administrador",
	})
	require.NoError(t, err)
	assert.Equal(t, wantID, id)
	assert.Contains(t, transport.client.data.String(), "123456")
	repo.AssertExpectations(t)
}

func TestStaffService_Register_UnknownAccessLevel(t *testing.T) {
	repo := new(RepoMock)
	svc := newTestService(repo, &transportStub{client: &clientStub{}})

	_, err := svc.Register(context.Background(), models.DummyStaffAccount{
		Name:        "Carlos",
		Email:       "carlos@example.com",
		NationalID:  "11111111111",
		Password:    "secret123",
		AccessLevel: "wizard",
	})
	require.Error(t, err)
	assert.Equal(t, domerr.CodeBadRequest, domerr.CodeOf(err))
	repo.AssertNotCalled(t, "CreateStaff", mock.Anything, mock.Anything)
}

func TestStaffService_VerifyAccount(t *testing.T) {
	code := "123456"
	wrongCode := "654321"
	future := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	past := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		account  *models.StaffAccount
		code     string
		wantCode domerr.Code
		wantErr  bool
		activate bool
	}{
		{
			name: "valid code activates the account",
			account: &models.StaffAccount{
				ID: "id-1", VerificationCode: &code, VerificationExpiry: &future,
			},
			code:     "123456",
			activate: true,
		},
		{
			name: "wrong code is rejected",
			account: &models.StaffAccount{
				ID: "id-1", VerificationCode: &wrongCode, VerificationExpiry: &future,
			},
			code:     "123456",
			wantCode: domerr.CodeUnauthorized,
			wantErr:  true,
		},
		{
			name: "expired code is rejected",
			account: &models.StaffAccount{
				ID: "id-1", VerificationCode: &code, VerificationExpiry: &past,
			},
			code:     "123456",
			wantCode: domerr.CodeUnauthorized,
			wantErr:  true,
		},
		{
			name:    "already enabled is a no-op",
			account: &models.StaffAccount{ID: "id-1", IsEnabled: true},
			code:    "123456",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := newTestService(repo, &transportStub{client: &clientStub{}})

			repo.On("GetStaffByEmail", mock.Anything, "carlos@example.com").
				Return(tt.account, nil).Once()
			if tt.activate {
				repo.On("ActivateStaff", mock.Anything, "id-1").Return(nil).Once()
			}

			err := svc.VerifyAccount(context.Background(), "carlos@example.com", tt.code)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, domerr.CodeOf(err))
			} else {
				require.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestStaffService_DeleteAdmin(t *testing.T) {
	repo := new(RepoMock)
	svc := newTestService(repo, &transportStub{client: &clientStub{}})

	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	record := &models.AdminDeletionRecord{
		ID:               1,
		TargetID:         "target-id",
		TargetNationalID: "33333333333",
		PerformedBy:      "requester-id",
		Reason:           "contract ended",
	}
	repo.On("DeleteAdminTx", mock.Anything, "requester-id", "33333333333", "contract ended",
		mock.MatchedBy(func(verify repository.VerifyPasswordFunc) bool {
			// Замыкание должно принимать правильный пароль и отвергать чужой.
			okMatch, err := verify(hash)
			if err != nil || !okMatch {
				return false
			}
			badMatch, err := verify("$2a$10$invalidhashinvalidhashinvalidhashinvalid")
			return err == nil && !badMatch
		})).Return(record, nil).Once()

	got, err := svc.DeleteAdmin(context.Background(), "requester-id", "33333333333", "secret123", "contract ended")
	require.NoError(t, err)
	assert.Equal(t, record, got)
	repo.AssertExpectations(t)
}

func TestStaffService_ChangePassword(t *testing.T) {
	code := "123456"
	future := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	repo := new(RepoMock)
	svc := newTestService(repo, &transportStub{client: &clientStub{}})

	account := &models.StaffAccount{
		ID:                  "id-1",
		Email:               "carlos@example.com",
		PasswordResetCode:   &code,
		PasswordResetExpiry: &future,
	}
	repo.On("GetStaffByEmail", mock.Anything, "carlos@example.com").Return(account, nil).Once()
	repo.On("UpdateStaffPassword", mock.Anything, "id-1", mock.MatchedBy(func(hash string) bool {
		return password.CompareHash(hash, "newsecret") == nil
	})).Return(nil).Once()

	err := svc.ChangePassword(context.Background(), "carlos@example.com", "123456", "newsecret")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestStaffService_Deactivate(t *testing.T) {
	t.Run("soft deletes an employee", func(t *testing.T) {
		repo := new(RepoMock)
		svc := newTestService(repo, &transportStub{client: &clientStub{}})

		account := &models.StaffAccount{ID: "id-7", NationalID: "44444444444", AccessLevel: "Funcionario"}
		repo.On("GetStaffByNationalID", mock.Anything, "44444444444").Return(account, nil).Once()
		repo.On("SoftDeleteStaff", mock.Anything, "id-7").Return(nil).Once()

		err := svc.Deactivate(context.Background(), "44444444444")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("refuses administrators", func(t *testing.T) {
		repo := new(RepoMock)
		svc := newTestService(repo, &transportStub{client: &clientStub{}})

		account := &models.StaffAccount{ID: "id-8", NationalID: "55555555555", AccessLevel: "administrator"}
		repo.On("GetStaffByNationalID", mock.Anything, "55555555555").Return(account, nil).Once()

		err := svc.Deactivate(context.Background(), "55555555555")
		require.Error(t, err)
		assert.Equal(t, domerr.CodeForbidden, domerr.CodeOf(err))
		repo.AssertNotCalled(t, "SoftDeleteStaff", mock.Anything, mock.Anything)
	})
}
