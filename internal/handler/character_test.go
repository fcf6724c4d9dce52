package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/averyk/lifequest/internal/domain"
)

// MockCharacterService mocks the character.Service interface
type MockCharacterService struct {
	mock.Mock
}

func (m *MockCharacterService) Create(ctx context.Context, userID uuid.UUID, name string) (*domain.CharacterSummary, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharacterSummary), args.Error(1)
}

func (m *MockCharacterService) GetSummary(ctx context.Context, characterID uuid.UUID) (*domain.CharacterSummary, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharacterSummary), args.Error(1)
}

func (m *MockCharacterService) GetSummaryByUser(ctx context.Context, userID uuid.UUID) (*domain.CharacterSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharacterSummary), args.Error(1)
}

func (m *MockCharacterService) GetFull(ctx context.Context, characterID uuid.UUID) (*domain.CharacterFull, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharacterFull), args.Error(1)
}

func (m *MockCharacterService) GetStats(ctx context.Context, characterID uuid.UUID) (map[string]domain.StatDetail, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.StatDetail), args.Error(1)
}

func (m *MockCharacterService) UpdateName(ctx context.Context, characterID uuid.UUID, name string) (*domain.CharacterSummary, error) {
	args := m.Called(ctx, characterID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharacterSummary), args.Error(1)
}

func (m *MockCharacterService) AddStatPoints(ctx context.Context, characterID uuid.UUID, points int) error {
	args := m.Called(ctx, characterID, points)
	return args.Error(0)
}

func (m *MockCharacterService) UseSkill(ctx context.Context, characterID uuid.UUID, skillCode string) error {
	args := m.Called(ctx, characterID, skillCode)
	return args.Error(0)
}

func summaryFixture(id, userID uuid.UUID, name string) *domain.CharacterSummary {
	return &domain.CharacterSummary{
		ID:            id,
		UserID:        userID,
		Name:          name,
		Level:         1,
		XPToNextLevel: 100,
		StatPoints:    0,
		RespecTokens:  1,
		Stats: map[string]int{
			domain.StatSTR: 10, domain.StatINT: 10, domain.StatWIS: 10,
			domain.StatSTA: 10, domain.StatCHA: 10, domain.StatLCK: 10,
		},
	}
}

func TestHandleCreateCharacter(t *testing.T) {
	InitValidator()

	userID := uuid.New()
	characterID := uuid.New()

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockCharacterService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Success",
			requestBody: CreateCharacterRequest{UserID: userID.String(), Name: "Avery"},
			setupMock: func(m *MockCharacterService) {
				m.On("Create", mock.Anything, userID, "Avery").
					Return(summaryFixture(characterID, userID, "Avery"), nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   MsgCharacterCreatedSuccess,
		},
		{
			name:           "Missing user ID",
			requestBody:    CreateCharacterRequest{Name: "Avery"},
			setupMock:      func(m *MockCharacterService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name:           "Malformed user ID",
			requestBody:    CreateCharacterRequest{UserID: "not-a-uuid"},
			setupMock:      func(m *MockCharacterService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Must be a valid UUID",
		},
		{
			name:        "Duplicate character",
			requestBody: CreateCharacterRequest{UserID: userID.String(), Name: "Avery"},
			setupMock: func(m *MockCharacterService) {
				m.On("Create", mock.Anything, userID, "Avery").
					Return(nil, domain.ErrCharacterExists)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgCharacterExistsError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockCharacterService{}
			tt.setupMock(mockSvc)

			handler := HandleCreateCharacter(mockSvc)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest("POST", "/character", bytes.NewBuffer(body))
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

func TestHandleGetCharacter(t *testing.T) {
	userID := uuid.New()
	characterID := uuid.New()

	t.Run("By character ID", func(t *testing.T) {
		mockSvc := &MockCharacterService{}
		mockSvc.On("GetSummary", mock.Anything, characterID).
			Return(summaryFixture(characterID, userID, "Avery"), nil)

		req := httptest.NewRequest("GET", "/character?character_id="+characterID.String(), nil)
		w := httptest.NewRecorder()

		HandleGetCharacter(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), characterID.String())
		mockSvc.AssertExpectations(t)
	})

	t.Run("By user ID", func(t *testing.T) {
		mockSvc := &MockCharacterService{}
		mockSvc.On("GetSummaryByUser", mock.Anything, userID).
			Return(summaryFixture(characterID, userID, "Avery"), nil)

		req := httptest.NewRequest("GET", "/character?user_id="+userID.String(), nil)
		w := httptest.NewRecorder()

		HandleGetCharacter(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Missing parameters", func(t *testing.T) {
		mockSvc := &MockCharacterService{}

		req := httptest.NewRequest("GET", "/character", nil)
		w := httptest.NewRecorder()

		HandleGetCharacter(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), fmt.Sprintf(ErrMsgMissingQueryParam, "user_id"))
	})

	t.Run("Not found", func(t *testing.T) {
		mockSvc := &MockCharacterService{}
		mockSvc.On("GetSummary", mock.Anything, characterID).
			Return(nil, domain.ErrCharacterNotFound)

		req := httptest.NewRequest("GET", "/character?character_id="+characterID.String(), nil)
		w := httptest.NewRecorder()

		HandleGetCharacter(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgCharacterNotFoundError)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Malformed character ID", func(t *testing.T) {
		mockSvc := &MockCharacterService{}

		req := httptest.NewRequest("GET", "/character?character_id=garbage", nil)
		w := httptest.NewRecorder()

		HandleGetCharacter(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleGetCharacterFull(t *testing.T) {
	userID := uuid.New()
	characterID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		full := &domain.CharacterFull{
			CharacterSummary:   *summaryFixture(characterID, userID, "Avery"),
			AllocatedNodeCodes: []string{"str_origin"},
			UnlockedSkillCodes: []string{},
			DerivedStats:       map[string]float64{"hp": 250},
		}

		mockSvc := &MockCharacterService{}
		mockSvc.On("GetFull", mock.Anything, characterID).Return(full, nil)

		req := httptest.NewRequest("GET", "/character/full?character_id="+characterID.String(), nil)
		w := httptest.NewRecorder()

		HandleGetCharacterFull(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "str_origin")
		assert.Contains(t, w.Body.String(), `"hp":250`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Missing character ID", func(t *testing.T) {
		mockSvc := &MockCharacterService{}

		req := httptest.NewRequest("GET", "/character/full", nil)
		w := httptest.NewRecorder()

		HandleGetCharacterFull(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleGetCharacterStat(t *testing.T) {
	characterID := uuid.New()

	stats := map[string]domain.StatDetail{
		domain.StatSTR: {Code: domain.StatSTR, Name: "Strength", Base: 11, Allocated: 2, Total: 13, Level: 11},
		domain.StatINT: {Code: domain.StatINT, Name: "Intelligence", Base: 10, Total: 10, Level: 10},
	}

	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockCharacterService{}
		mockSvc.On("GetStats", mock.Anything, characterID).Return(stats, nil)

		req := httptest.NewRequest("GET",
			"/character/stat?character_id="+characterID.String()+"&code=STR", nil)
		w := httptest.NewRecorder()

		HandleGetCharacterStat(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"stat":"STR"`)
		assert.Contains(t, w.Body.String(), `"total":13`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Lowercase code accepted", func(t *testing.T) {
		mockSvc := &MockCharacterService{}
		mockSvc.On("GetStats", mock.Anything, characterID).Return(stats, nil)

		req := httptest.NewRequest("GET",
			"/character/stat?character_id="+characterID.String()+"&code=int", nil)
		w := httptest.NewRecorder()

		HandleGetCharacterStat(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"stat":"INT"`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Unknown code rejected", func(t *testing.T) {
		mockSvc := &MockCharacterService{}

		req := httptest.NewRequest("GET",
			"/character/stat?character_id="+characterID.String()+"&code=AGI", nil)
		w := httptest.NewRecorder()

		HandleGetCharacterStat(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidStatCodeErr)
	})

	t.Run("Missing code", func(t *testing.T) {
		mockSvc := &MockCharacterService{}

		req := httptest.NewRequest("GET",
			"/character/stat?character_id="+characterID.String(), nil)
		w := httptest.NewRecorder()

		HandleGetCharacterStat(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleUpdateName(t *testing.T) {
	InitValidator()

	userID := uuid.New()
	characterID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockCharacterService{}
		mockSvc.On("UpdateName", mock.Anything, characterID, "Quest Knight").
			Return(summaryFixture(characterID, userID, "Quest Knight"), nil)

		body, _ := json.Marshal(UpdateNameRequest{CharacterID: characterID.String(), Name: "Quest Knight"})
		req := httptest.NewRequest("POST", "/character/name", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		HandleUpdateName(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), MsgNameUpdatedSuccess)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Empty name rejected", func(t *testing.T) {
		mockSvc := &MockCharacterService{}

		body, _ := json.Marshal(UpdateNameRequest{CharacterID: characterID.String()})
		req := httptest.NewRequest("POST", "/character/name", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		HandleUpdateName(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleUseSkill(t *testing.T) {
	InitValidator()

	characterID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockCharacterService{}
		mockSvc.On("UseSkill", mock.Anything, characterID, "power_through").Return(nil)

		body, _ := json.Marshal(UseSkillRequest{CharacterID: characterID.String(), SkillCode: "power_through"})
		req := httptest.NewRequest("POST", "/character/skill/use", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		HandleUseSkill(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), MsgSkillUsedSuccess)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Locked skill", func(t *testing.T) {
		mockSvc := &MockCharacterService{}
		mockSvc.On("UseSkill", mock.Anything, characterID, "power_through").
			Return(domain.ErrSkillNotFound)

		body, _ := json.Marshal(UseSkillRequest{CharacterID: characterID.String(), SkillCode: "power_through"})
		req := httptest.NewRequest("POST", "/character/skill/use", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		HandleUseSkill(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgSkillNotFoundError)
		mockSvc.AssertExpectations(t)
	})
}

func TestHandleAddStatPoints(t *testing.T) {
	InitValidator()

	characterID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockCharacterService{}
		mockSvc.On("AddStatPoints", mock.Anything, characterID, 5).Return(nil)

		body, _ := json.Marshal(AddStatPointsRequest{CharacterID: characterID.String(), Points: 5})
		req := httptest.NewRequest("POST", "/admin/character/add-points", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		HandleAddStatPoints(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Non-positive points rejected", func(t *testing.T) {
		mockSvc := &MockCharacterService{}

		body, _ := json.Marshal(AddStatPointsRequest{CharacterID: characterID.String(), Points: 0})
		req := httptest.NewRequest("POST", "/admin/character/add-points", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		HandleAddStatPoints(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
