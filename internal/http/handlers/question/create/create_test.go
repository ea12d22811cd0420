package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/visahelper/visa-helper/internal/http/middlewarectx"
	"github.com/visahelper/visa-helper/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, userUID string, req models.DummyQuestion) (int, error) {
	args := m.Called(ctx, userUID, req)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestQuestionCreateHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		userUID        string
		setupMocks     func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success - create question",
			requestBody: models.DummyQuestion{
				Title:   "Work permit",
				Content: "Can I work on a D-2 visa?",
			},
			userUID: "user123",
			setupMocks: func(s *MockService) {
				s.On("Create", mock.Anything, "user123", models.DummyQuestion{
					Title:   "Work permit",
					Content: "Can I work on a D-2 visa?",
				}).Return(10, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"id":10,"status":"PENDING"}}`,
		},
		{
			name:           "invalid JSON",
			requestBody:    "not a json",
			userUID:        "user123",
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name: "missing title",
			requestBody: models.DummyQuestion{
				Content: "Can I work on a D-2 visa?",
			},
			userUID:        "user123",
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"field Title is a required field"}`,
		},
		{
			name: "missing user UID",
			requestBody: models.DummyQuestion{
				Title:   "Work permit",
				Content: "Can I work on a D-2 visa?",
			},
			userUID:        "",
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name: "service error",
			requestBody: models.DummyQuestion{
				Title:   "Work permit",
				Content: "Can I work on a D-2 visa?",
			},
			userUID: "user123",
			setupMocks: func(s *MockService) {
				s.On("Create", mock.Anything, "user123", mock.Anything).
					Return(0, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not create question"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			handler := New(newNoopLogger(), service)

			tt.setupMocks(service)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/questions", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())

			service.AssertExpectations(t)
		})
	}
}
