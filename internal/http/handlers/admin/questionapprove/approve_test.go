package questionapprove

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/visahelper/visa-helper/internal/apperr"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Approve(ctx context.Context, questionID int) error {
	args := m.Called(ctx, questionID)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/questions/"+id+"/approve", nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
	return req.WithContext(ctx)
}

func TestQuestionApproveHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		setupMocks     func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			id:   "10",
			setupMocks: func(s *MockService) {
				s.On("Approve", mock.Anything, 10).Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"id":10,"status":"APPROVED"}}`,
		},
		{
			name:           "invalid id",
			id:             "abc",
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode id from url"}`,
		},
		{
			name: "question not found",
			id:   "99",
			setupMocks: func(s *MockService) {
				s.On("Approve", mock.Anything, 99).Return(apperr.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"could not approve question"}`,
		},
		{
			name: "already moderated",
			id:   "10",
			setupMocks: func(s *MockService) {
				s.On("Approve", mock.Anything, 10).
					Return(fmt.Errorf("question is already APPROVED: %w", apperr.ErrConflict)).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"could not approve question"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			handler := New(newNoopLogger(), service)

			tt.setupMocks(service)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, newRequest(tt.id))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())

			service.AssertExpectations(t)
		})
	}
}
