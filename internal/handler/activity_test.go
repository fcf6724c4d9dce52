package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/averyk/lifequest/internal/domain"
)

// MockActivityService mocks the activity.Service interface
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) LogActivity(ctx context.Context, input domain.ActivityInput) (*domain.ActivityResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityResult), args.Error(1)
}

func (m *MockActivityService) LogBatch(ctx context.Context, inputs []domain.ActivityInput) (*domain.ActivityBatchResult, error) {
	args := m.Called(ctx, inputs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityBatchResult), args.Error(1)
}

func (m *MockActivityService) GetActivity(ctx context.Context, id uuid.UUID) (*domain.ActivityLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityLog), args.Error(1)
}

func (m *MockActivityService) GetRecentActivities(ctx context.Context, characterID uuid.UUID, limit, offset int) ([]domain.ActivityLog, error) {
	args := m.Called(ctx, characterID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityLog), args.Error(1)
}

func (m *MockActivityService) GetActivitiesByDateRange(ctx context.Context, characterID uuid.UUID, start, end time.Time) ([]domain.ActivityLog, error) {
	args := m.Called(ctx, characterID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityLog), args.Error(1)
}

func TestHandleLogActivity(t *testing.T) {
	InitValidator()

	userID := uuid.New()

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockActivityService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			requestBody: LogActivityRequest{
				UserID:       userID.String(),
				ActivityType: "gym_session",
				ActivityData: map[string]interface{}{"duration_minutes": 60.0},
			},
			setupMock: func(m *MockActivityService) {
				m.On("LogActivity", mock.Anything, mock.MatchedBy(func(in domain.ActivityInput) bool {
					return in.UserID == userID &&
						in.ActivityType == "gym_session" &&
						in.Source == domain.SourceManual
				})).Return(&domain.ActivityResult{
					Success:   true,
					XPGranted: map[string]int{domain.StatSTR: 75, domain.StatSTA: 30},
					Message:   "Gained XP: STR+75, STA+30",
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"STR":75`,
		},
		{
			name:           "Missing activity type",
			requestBody:    LogActivityRequest{UserID: userID.String()},
			setupMock:      func(m *MockActivityService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name: "Unknown user",
			requestBody: LogActivityRequest{
				UserID:       userID.String(),
				ActivityType: "gym_session",
			},
			setupMock: func(m *MockActivityService) {
				m.On("LogActivity", mock.Anything, mock.Anything).
					Return(nil, domain.ErrCharacterNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgCharacterNotFoundError,
		},
		{
			name: "Invalid custom XP code",
			requestBody: LogActivityRequest{
				UserID:       userID.String(),
				ActivityType: "custom",
				CustomXP:     map[string]int{"AGI": 10},
			},
			setupMock: func(m *MockActivityService) {
				m.On("LogActivity", mock.Anything, mock.Anything).
					Return(nil, domain.ErrInvalidStatCode)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidStatCodeErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockActivityService{}
			tt.setupMock(mockSvc)

			handler := HandleLogActivity(mockSvc)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest("POST", "/activity/log", bytes.NewBuffer(body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHandleLogBatch(t *testing.T) {
	InitValidator()

	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockActivityService{}
		mockSvc.On("LogBatch", mock.Anything, mock.MatchedBy(func(in []domain.ActivityInput) bool {
			return len(in) == 2
		})).Return(&domain.ActivityBatchResult{
			Success:   true,
			Processed: 2,
			TotalXP:   map[string]int{domain.StatSTR: 75, domain.StatINT: 40},
		}, nil)

		body, _ := json.Marshal(LogBatchRequest{Activities: []LogActivityRequest{
			{UserID: userID.String(), ActivityType: "gym_session"},
			{UserID: userID.String(), ActivityType: "reading_session"},
		}})
		req := httptest.NewRequest("POST", "/activity/log-batch", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		HandleLogBatch(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"processed":2`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Empty batch rejected", func(t *testing.T) {
		mockSvc := &MockActivityService{}

		body, _ := json.Marshal(LogBatchRequest{Activities: []LogActivityRequest{}})
		req := httptest.NewRequest("POST", "/activity/log-batch", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		HandleLogBatch(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid entry inside batch rejected", func(t *testing.T) {
		mockSvc := &MockActivityService{}

		body, _ := json.Marshal(LogBatchRequest{Activities: []LogActivityRequest{
			{UserID: userID.String()}, // no activity type
		}})
		req := httptest.NewRequest("POST", "/activity/log-batch", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		HandleLogBatch(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleGetRecentActivities(t *testing.T) {
	characterID := uuid.New()

	t.Run("Defaults applied", func(t *testing.T) {
		mockSvc := &MockActivityService{}
		mockSvc.On("GetRecentActivities", mock.Anything, characterID, 20, 0).
			Return([]domain.ActivityLog{{ID: uuid.New(), CharacterID: characterID, ActivityType: "gym_session"}}, nil)

		req := httptest.NewRequest("GET", "/activity/recent?character_id="+characterID.String(), nil)
		w := httptest.NewRecorder()

		HandleGetRecentActivities(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"count":1`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Explicit limit and offset", func(t *testing.T) {
		mockSvc := &MockActivityService{}
		mockSvc.On("GetRecentActivities", mock.Anything, characterID, 5, 10).
			Return([]domain.ActivityLog{}, nil)

		req := httptest.NewRequest("GET",
			"/activity/recent?character_id="+characterID.String()+"&limit=5&offset=10", nil)
		w := httptest.NewRecorder()

		HandleGetRecentActivities(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Invalid limit", func(t *testing.T) {
		mockSvc := &MockActivityService{}

		req := httptest.NewRequest("GET",
			"/activity/recent?character_id="+characterID.String()+"&limit=abc", nil)
		w := httptest.NewRecorder()

		HandleGetRecentActivities(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidLimit)
	})
}

func TestHandleGetActivitiesByRange(t *testing.T) {
	characterID := uuid.New()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockActivityService{}
		mockSvc.On("GetActivitiesByDateRange", mock.Anything, characterID, start, end).
			Return([]domain.ActivityLog{}, nil)

		req := httptest.NewRequest("GET",
			"/activity/range?character_id="+characterID.String()+
				"&start="+start.Format(time.RFC3339)+"&end="+end.Format(time.RFC3339), nil)
		w := httptest.NewRecorder()

		HandleGetActivitiesByRange(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Malformed start", func(t *testing.T) {
		mockSvc := &MockActivityService{}

		req := httptest.NewRequest("GET",
			"/activity/range?character_id="+characterID.String()+"&start=yesterday&end="+end.Format(time.RFC3339), nil)
		w := httptest.NewRecorder()

		HandleGetActivitiesByRange(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleGetActivityTypes(t *testing.T) {
	req := httptest.NewRequest("GET", "/activity/types", nil)
	w := httptest.NewRecorder()

	HandleGetActivityTypes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gym_session")
	assert.Contains(t, w.Body.String(), "meditation")
}
