package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/averyk/lifequest/internal/logger"
	"github.com/averyk/lifequest/internal/tree"
)

// TreeHandlers groups the skill-tree endpoints around one service.
type TreeHandlers struct {
	svc tree.Service
}

// NewTreeHandlers creates handlers for the skill-tree endpoints
func NewTreeHandlers(svc tree.Service) *TreeHandlers {
	return &TreeHandlers{svc: svc}
}

// AllocateRequest represents a request to allocate one or more nodes
type AllocateRequest struct {
	CharacterID string   `json:"character_id" validate:"required,uuid"`
	Nodes       []string `json:"nodes" validate:"required,min=1,max=50,dive,required,max=50"`
}

// RespecRequest represents a request to reset all allocations
type RespecRequest struct {
	CharacterID string `json:"character_id" validate:"required,uuid"`
}

// HandleGetTree handles GET requests for the full tree.
// An optional character_id query parameter adds allocation flags.
func (h *TreeHandlers) HandleGetTree() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterID := uuid.Nil
		if r.URL.Query().Get("character_id") != "" {
			id, ok := GetUUIDQueryParam(r, w, "character_id")
			if !ok {
				return
			}
			characterID = id
		}

		view, err := h.svc.GetTree(r.Context(), characterID)
		if err != nil {
			respondServiceError(w, r, "Get tree", err)
			return
		}

		respondJSON(w, http.StatusOK, view)
	}
}

// HandleGetNode handles GET requests for a single node by code
func (h *TreeHandlers) HandleGetNode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code, ok := GetQueryParam(r, w, "code")
		if !ok {
			return
		}

		node, err := h.svc.GetNode(r.Context(), code)
		if err != nil {
			respondServiceError(w, r, "Get node", err)
			return
		}

		respondJSON(w, http.StatusOK, node)
	}
}

// HandleGetReachable handles GET requests for the allocatable frontier
func (h *TreeHandlers) HandleGetReachable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterID, ok := GetUUIDQueryParam(r, w, "character_id")
		if !ok {
			return
		}

		codes, err := h.svc.GetReachableNodes(r.Context(), characterID)
		if err != nil {
			respondServiceError(w, r, "Get reachable nodes", err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"character_id": characterID,
			"reachable":    codes,
		})
	}
}

// CanAllocateResponse reports whether a node could be allocated right now
type CanAllocateResponse struct {
	NodeCode    string `json:"node_code"`
	CanAllocate bool   `json:"can_allocate"`
	Reason      string `json:"reason,omitempty"`
}

// HandleCanAllocate handles GET requests previewing an allocation.
// A failing rule is reported in the body, not as an HTTP error.
func (h *TreeHandlers) HandleCanAllocate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterID, ok := GetUUIDQueryParam(r, w, "character_id")
		if !ok {
			return
		}
		code, ok := GetQueryParam(r, w, "code")
		if !ok {
			return
		}

		if err := h.svc.CanAllocate(r.Context(), characterID, code); err != nil {
			_, reason := mapServiceErrorToUserMessage(err)
			respondJSON(w, http.StatusOK, CanAllocateResponse{
				NodeCode:    code,
				CanAllocate: false,
				Reason:      reason,
			})
			return
		}

		respondJSON(w, http.StatusOK, CanAllocateResponse{
			NodeCode:    code,
			CanAllocate: true,
		})
	}
}

// HandleAllocate handles POST requests to spend stat points on nodes.
// Nodes are processed in order; per-node failures are reported in the
// result while the rest of the batch proceeds.
func (h *TreeHandlers) HandleAllocate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AllocateRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Allocate nodes"); err != nil {
			return
		}

		characterID, _ := uuid.Parse(req.CharacterID)
		result, err := h.svc.Allocate(r.Context(), characterID, req.Nodes)
		if err != nil {
			respondServiceError(w, r, "Allocate nodes", err)
			return
		}

		logger.FromContext(r.Context()).Info("Allocation processed",
			"character_id", characterID,
			"requested", len(req.Nodes),
			"allocated", len(result.NodesAllocated))

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleRespec handles POST requests to reset all allocations for a token
func (h *TreeHandlers) HandleRespec() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RespecRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Respec"); err != nil {
			return
		}

		characterID, _ := uuid.Parse(req.CharacterID)
		result, err := h.svc.Respec(r.Context(), characterID)
		if err != nil {
			respondServiceError(w, r, "Respec", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleInvalidateCache handles admin POST requests to drop the cached
// tree configuration after node or edge changes.
func (h *TreeHandlers) HandleInvalidateCache() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.svc.InvalidateCache()
		logger.FromContext(r.Context()).Info("Tree cache invalidated")
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTreeCacheInvalidated})
	}
}
