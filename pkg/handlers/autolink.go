package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/affiche-works/affiche-engine/pkg/services"
)

// AutoLinkRequest is the body for POST /autolink.
type AutoLinkRequest struct {
	PosterID uuid.UUID               `json:"posterId"`
	Analysis services.PosterAnalysis `json:"analysis"`
}

// AutoLinkHandler exposes the entity autolink orchestrator to the
// cataloging pipeline.
type AutoLinkHandler struct {
	autoLinker services.AutoLinker
	logger     *zap.Logger
}

// NewAutoLinkHandler creates a new AutoLinkHandler.
func NewAutoLinkHandler(autoLinker services.AutoLinker, logger *zap.Logger) *AutoLinkHandler {
	return &AutoLinkHandler{autoLinker: autoLinker, logger: logger}
}

// RegisterRoutes registers the autolink handler's routes on the given mux.
func (h *AutoLinkHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /autolink", h.AutoLink)
}

// AutoLink handles POST /autolink requests. It resolves the analyzed entity
// names and links the resulting records to the poster.
func (h *AutoLinkHandler) AutoLink(w http.ResponseWriter, r *http.Request) {
	var req AutoLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.PosterID == uuid.Nil {
		http.Error(w, "posterId is required", http.StatusBadRequest)
		return
	}

	result, err := h.autoLinker.AutoLink(r.Context(), req.PosterID, req.Analysis)
	if err != nil {
		h.logger.Error("Autolink failed",
			zap.String("poster_id", req.PosterID.String()),
			zap.Error(err))
		http.Error(w, "autolink failed", http.StatusInternalServerError)
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode autolink response", zap.Error(err))
	}
}
