package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/averyk/lifequest/internal/activity"
	"github.com/averyk/lifequest/internal/domain"
	"github.com/averyk/lifequest/internal/logger"
)

// MaxBatchSize bounds how many activities one batch request may carry.
const MaxBatchSize = 50

// LogActivityRequest represents a request to log one real-world activity
type LogActivityRequest struct {
	UserID       string                 `json:"user_id" validate:"required,uuid"`
	ActivityType string                 `json:"activity_type" validate:"required,max=50"`
	ActivityData map[string]interface{} `json:"activity_data,omitempty"`
	Source       string                 `json:"source" validate:"max=50"`
	SourceRef    string                 `json:"source_ref,omitempty" validate:"max=100"`
	ActivityTime time.Time              `json:"activity_time,omitempty"`
	CustomXP     map[string]int         `json:"custom_xp,omitempty"`
}

// LogBatchRequest represents a request to log several activities at once
type LogBatchRequest struct {
	Activities []LogActivityRequest `json:"activities" validate:"required,min=1,max=50,dive"`
}

func (req *LogActivityRequest) toInput() domain.ActivityInput {
	userID, _ := uuid.Parse(req.UserID)
	source := req.Source
	if source == "" {
		source = domain.SourceManual
	}
	return domain.ActivityInput{
		UserID:       userID,
		ActivityType: req.ActivityType,
		ActivityData: req.ActivityData,
		Source:       source,
		SourceRef:    req.SourceRef,
		ActivityTime: req.ActivityTime,
		CustomXP:     req.CustomXP,
	}
}

// HandleLogActivity handles POST requests to log an activity and apply its XP
func HandleLogActivity(svc activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LogActivityRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Log activity"); err != nil {
			return
		}

		result, err := svc.LogActivity(r.Context(), req.toInput())
		if err != nil {
			respondServiceError(w, r, "Log activity", err)
			return
		}

		logger.FromContext(r.Context()).Info("Activity logged",
			"user_id", req.UserID,
			"activity_type", req.ActivityType,
			"level_up", result.CharacterLevelUp)

		respondJSON(w, http.StatusCreated, result)
	}
}

// HandleLogBatch handles POST requests to log several activities.
// Individual failures are skipped; the response aggregates what landed.
func HandleLogBatch(svc activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LogBatchRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Log activity batch"); err != nil {
			return
		}

		inputs := make([]domain.ActivityInput, 0, len(req.Activities))
		for i := range req.Activities {
			inputs = append(inputs, req.Activities[i].toInput())
		}

		result, err := svc.LogBatch(r.Context(), inputs)
		if err != nil {
			respondServiceError(w, r, "Log activity batch", err)
			return
		}

		logger.FromContext(r.Context()).Info("Activity batch logged",
			"submitted", len(inputs), "processed", result.Processed)

		respondJSON(w, http.StatusCreated, result)
	}
}

// HandleGetActivity handles GET requests for one activity log entry
func HandleGetActivity(svc activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUUIDQueryParam(r, w, "activity_id")
		if !ok {
			return
		}

		log, err := svc.GetActivity(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Get activity", err)
			return
		}

		respondJSON(w, http.StatusOK, log)
	}
}

// HandleGetRecentActivities handles GET requests for a character's recent history
func HandleGetRecentActivities(svc activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterID, ok := GetUUIDQueryParam(r, w, "character_id")
		if !ok {
			return
		}
		limit, ok := GetIntQueryParam(r, w, "limit", activity.DefaultRecentLimit, ErrMsgInvalidLimit)
		if !ok {
			return
		}
		offset, ok := GetIntQueryParam(r, w, "offset", 0, ErrMsgInvalidOffset)
		if !ok {
			return
		}

		activities, err := svc.GetRecentActivities(r.Context(), characterID, limit, offset)
		if err != nil {
			respondServiceError(w, r, "Get recent activities", err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"character_id": characterID,
			"count":        len(activities),
			"activities":   activities,
		})
	}
}

// HandleGetActivitiesByRange handles GET requests for history between two timestamps
func HandleGetActivitiesByRange(svc activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterID, ok := GetUUIDQueryParam(r, w, "character_id")
		if !ok {
			return
		}
		start, ok := GetTimeQueryParam(r, w, "start")
		if !ok {
			return
		}
		end, ok := GetTimeQueryParam(r, w, "end")
		if !ok {
			return
		}

		activities, err := svc.GetActivitiesByDateRange(r.Context(), characterID, start, end)
		if err != nil {
			respondServiceError(w, r, "Get activities by range", err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"character_id": characterID,
			"start":        start,
			"end":          end,
			"count":        len(activities),
			"activities":   activities,
		})
	}
}

// HandleGetActivityTypes handles GET requests for the known activity type catalog
func HandleGetActivityTypes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"activity_types": activity.KnownActivityTypes(),
		})
	}
}
