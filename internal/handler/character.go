package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/averyk/lifequest/internal/character"
	"github.com/averyk/lifequest/internal/domain"
	"github.com/averyk/lifequest/internal/logger"
)

// CreateCharacterRequest represents a request to create a new character
type CreateCharacterRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Name   string `json:"name" validate:"max=50,excludesall=\x00\n\r\t"`
}

// UpdateNameRequest represents a request to rename a character
type UpdateNameRequest struct {
	CharacterID string `json:"character_id" validate:"required,uuid"`
	Name        string `json:"name" validate:"required,max=50,excludesall=\x00\n\r\t"`
}

// AddStatPointsRequest represents an admin request to grant unspent stat points
type AddStatPointsRequest struct {
	CharacterID string `json:"character_id" validate:"required,uuid"`
	Points      int    `json:"points" validate:"required,gt=0"`
}

// UseSkillRequest represents a request to use an unlocked skill
type UseSkillRequest struct {
	CharacterID string `json:"character_id" validate:"required,uuid"`
	SkillCode   string `json:"skill_code" validate:"required,max=50"`
}

// HandleCreateCharacter handles POST requests to create a character
func HandleCreateCharacter(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateCharacterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create character"); err != nil {
			return
		}

		userID, _ := uuid.Parse(req.UserID)
		summary, err := svc.Create(r.Context(), userID, req.Name)
		if err != nil {
			respondServiceError(w, r, "Create character", err)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{
			Message: MsgCharacterCreatedSuccess,
			Data:    summary,
		})
	}
}

// HandleGetCharacter handles GET requests for the character summary.
// Accepts either character_id or user_id as a query parameter.
func HandleGetCharacter(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if value := r.URL.Query().Get("character_id"); value != "" {
			characterID, ok := GetUUIDQueryParam(r, w, "character_id")
			if !ok {
				return
			}
			summary, err := svc.GetSummary(r.Context(), characterID)
			if err != nil {
				respondServiceError(w, r, "Get character", err)
				return
			}
			respondJSON(w, http.StatusOK, summary)
			return
		}

		userID, ok := GetUUIDQueryParam(r, w, "user_id")
		if !ok {
			return
		}
		summary, err := svc.GetSummaryByUser(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get character", err)
			return
		}
		respondJSON(w, http.StatusOK, summary)
	}
}

// HandleGetCharacterFull handles GET requests for the full character sheet
func HandleGetCharacterFull(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterID, ok := GetUUIDQueryParam(r, w, "character_id")
		if !ok {
			return
		}

		full, err := svc.GetFull(r.Context(), characterID)
		if err != nil {
			respondServiceError(w, r, "Get character sheet", err)
			return
		}

		respondJSON(w, http.StatusOK, full)
	}
}

// HandleGetCharacterStats handles GET requests for per-attribute detail
func HandleGetCharacterStats(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterID, ok := GetUUIDQueryParam(r, w, "character_id")
		if !ok {
			return
		}

		stats, err := svc.GetStats(r.Context(), characterID)
		if err != nil {
			respondServiceError(w, r, "Get character stats", err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"character_id": characterID,
			"stats":        stats,
		})
	}
}

// HandleGetCharacterStat handles GET requests for a single attribute
func HandleGetCharacterStat(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterID, ok := GetUUIDQueryParam(r, w, "character_id")
		if !ok {
			return
		}
		code, ok := GetQueryParam(r, w, "code")
		if !ok {
			return
		}

		code = strings.ToUpper(code)
		if !domain.IsCoreStat(code) {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidStatCodeErr)
			return
		}

		stats, err := svc.GetStats(r.Context(), characterID)
		if err != nil {
			respondServiceError(w, r, "Get character stat", err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"character_id": characterID,
			"stat":         code,
			"detail":       stats[code],
		})
	}
}

// HandleUpdateName handles POST requests to rename a character
func HandleUpdateName(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateNameRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update name"); err != nil {
			return
		}

		characterID, _ := uuid.Parse(req.CharacterID)
		summary, err := svc.UpdateName(r.Context(), characterID, req.Name)
		if err != nil {
			respondServiceError(w, r, "Update name", err)
			return
		}

		logger.FromContext(r.Context()).Info("Character renamed",
			"character_id", characterID, "name", req.Name)

		respondJSON(w, http.StatusOK, DataResponse{
			Message: MsgNameUpdatedSuccess,
			Data:    summary,
		})
	}
}

// HandleAddStatPoints handles admin POST requests to grant stat points
// outside the level curve.
func HandleAddStatPoints(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddStatPointsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Add stat points"); err != nil {
			return
		}

		characterID, _ := uuid.Parse(req.CharacterID)
		if err := svc.AddStatPoints(r.Context(), characterID, req.Points); err != nil {
			respondServiceError(w, r, "Add stat points", err)
			return
		}

		logger.FromContext(r.Context()).Info("Stat points granted",
			"character_id", characterID, "points", req.Points)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgStatPointsAddedSuccess})
	}
}

// HandleUseSkill handles POST requests to record a skill use
func HandleUseSkill(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UseSkillRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Use skill"); err != nil {
			return
		}

		characterID, _ := uuid.Parse(req.CharacterID)
		if err := svc.UseSkill(r.Context(), characterID, req.SkillCode); err != nil {
			respondServiceError(w, r, "Use skill", err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSkillUsedSuccess})
	}
}
