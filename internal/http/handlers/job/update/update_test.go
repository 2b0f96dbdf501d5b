package update

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/lifetrack-dashboard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lifetrack-dashboard/internal/models"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, req models.DummyJobApplicationUpdate, id int, userUID string) (int, error) {
	args := m.Called(ctx, req, id, userUID)
	return args.Int(0), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		url            string
		requestBody    interface{}
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное обновление статуса",
			url:  "/jobs/123",
			requestBody: models.DummyJobApplicationUpdate{
				Status:      strPtr(models.StatusApplied),
				AppliedDate: strPtr("2025-06-10"),
			},
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, mock.AnythingOfType("models.DummyJobApplicationUpdate"), 123, "uid-1").
					Return(1, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"updated_count":1`,
		},
		{
			name:           "некорректный JSON",
			url:            "/jobs/123",
			requestBody:    "not a json",
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name: "недопустимый статус",
			url:  "/jobs/123",
			requestBody: models.DummyJobApplicationUpdate{
				Status: strPtr("ghosted"),
			},
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Status must be one of the allowed values`,
		},
		{
			name:           "некорректный id в url",
			url:            "/jobs/abc",
			requestBody:    models.DummyJobApplicationUpdate{},
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid id"`,
		},
		{
			name:           "отсутствует авторизация",
			url:            "/jobs/123",
			requestBody:    models.DummyJobApplicationUpdate{},
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:        "запись не найдена",
			url:         "/jobs/123",
			requestBody: models.DummyJobApplicationUpdate{Status: strPtr(models.StatusOffer)},
			userUID:     "uid-1",
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, mock.Anything, 123, "uid-1").Return(0, nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"job application not found"`,
		},
		{
			name:        "ошибка сервиса",
			url:         "/jobs/123",
			requestBody: models.DummyJobApplicationUpdate{Status: strPtr(models.StatusOffer)},
			userUID:     "uid-1",
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, mock.Anything, 123, "uid-1").
					Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not update job application"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPut, tt.url, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", strings.TrimPrefix(tt.url, "/jobs/"))
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
