package read

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-backoffice/internal/lib/domerr"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Read(ctx context.Context, matricula string) (*models.StudentView, error) {
	args := m.Called(ctx, matricula)
	if res := args.Get(0); res != nil {
		return res.(*models.StudentView), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		url            string
		matricula      string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "успешное чтение карточки",
			url:       "/students/SX100",
			matricula: "SX100",
			setupMock: func(m *MockService) {
				view := &models.StudentView{
					Student: models.Student{
						Matricula: "SX100",
						Name:      "John Doe",
						Email:     "john@example.com",
					},
					DisplayStatus:   models.StudentStatusActive,
					ExpirationLabel: "15-04-2026",
				}
				m.On("Read", mock.Anything, "SX100").Return(view, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"ExpirationLabel":"15-04-2026"`,
		},
		{
			name:      "ученик не найден",
			url:       "/students/GHOST",
			matricula: "GHOST",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "GHOST").
					Return(nil, domerr.New(domerr.CodeNotFound, "student not found"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `student not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("matricula", tt.matricula)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
