package login

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

	"github.com/visahelper/visa-helper/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, username, password string) (string, string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.String(1), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			requestBody: models.DummyLogin{
				Username: "alice",
				Password: "password123",
			},
			setupMocks: func(s *MockService) {
				s.On("Login", mock.Anything, "alice", "password123").
					Return("jwt-token", "user", nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"token":"jwt-token","role":"user","username":"alice"}}`,
		},
		{
			name:           "invalid JSON",
			requestBody:    "not a json",
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name: "missing password",
			requestBody: models.DummyLogin{
				Username: "alice",
			},
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"field Password is a required field"}`,
		},
		{
			name: "invalid credentials",
			requestBody: models.DummyLogin{
				Username: "alice",
				Password: "wrong",
			},
			setupMocks: func(s *MockService) {
				s.On("Login", mock.Anything, "alice", "wrong").
					Return("", "", errors.New("invalid credentials")).Once()
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"invalid credentials"}`,
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

			req := httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())

			service.AssertExpectations(t)
		})
	}
}
