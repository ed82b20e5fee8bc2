package renew

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-backoffice/internal/lib/domerr"
	services "github.com/magabrotheeeer/gym-backoffice/internal/services/membership"
)

// MockService реализует интерфейс renew.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Renew(ctx context.Context, planID int, matriculas []string) (*services.RenewResult, error) {
	args := m.Called(ctx, planID, matriculas)
	if res := args.Get(0); res != nil {
		return res.(*services.RenewResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRenewHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное продление пакета",
			body: `{"plan_id": 1, "matriculas": ["SX100", "SX200", "GHOST"]}`,
			setupMock: func(m *MockService) {
				m.On("Renew", mock.Anything, 1, []string{"SX100", "SX200", "GHOST"}).
					Return(&services.RenewResult{
						Renewed: []string{"SX100", "SX200"},
						Skipped: []string{"GHOST"},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"skipped":["GHOST"]`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"plan_id": `,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name:           "пустой список номеров",
			body:           `{"plan_id": 1, "matriculas": []}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `Matriculas`,
		},
		{
			name: "тарифный план не найден",
			body: `{"plan_id": 99, "matriculas": ["SX100"]}`,
			setupMock: func(m *MockService) {
				m.On("Renew", mock.Anything, 99, []string{"SX100"}).
					Return(nil, domerr.New(domerr.CodeNotFound, "plan not found"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `plan not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/students/renew", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
