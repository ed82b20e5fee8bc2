package financecreate

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
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

// MockService реализует интерфейс financecreate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, req models.DummyFinancialEntry) (int, error) {
	args := m.Called(ctx, req)
	return args.Int(0), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное создание записи о платеже ученика",
			body: `{"type": "Revenue", "name": "Monthly payment - John Doe (SX100)", "category": "Students", "date": "15-03-2026", "amount": 150}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(req models.DummyFinancialEntry) bool {
					return req.Type == models.FinanceTypeRevenue && req.Category == models.FinanceCategoryStudents
				})).Return(42, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":42`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"type": `,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name:           "недопустимый тип записи",
			body:           `{"type": "Transfer", "name": "x", "category": "Other", "date": "15-03-2026", "amount": 10}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `Type`,
		},
		{
			name:           "отрицательная сумма",
			body:           `{"type": "Expense", "name": "Rent", "category": "Facilities", "date": "15-03-2026", "amount": -5}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `Amount`,
		},
		{
			name: "некорректная дата операции",
			body: `{"type": "Expense", "name": "Rent", "category": "Facilities", "date": "2026/03/15", "amount": 5}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(0, domerr.New(domerr.CodeBadRequest, "invalid date format"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid date format`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/finance", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
