package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/campaignforge/internal/campaign"
	"github.com/ignite/campaignforge/internal/pipeline"
)

type generateRequest struct {
	Prompt     string `json:"prompt"`
	CopyCount  int    `json:"copy_count"`
	ImageCount int    `json:"image_count"`
}

type generateResponse struct {
	Success   bool                      `json:"success"`
	RequestID string                    `json:"request_id"`
	Analysis  campaign.ProductAnalysis  `json:"analysis"`
	Copies    []campaign.CopyVariation  `json:"copies"`
	Images    []campaign.GeneratedImage `json:"images"`
	Campaign  campaign.Campaign         `json:"campaign"`
	Stats     campaign.GenerationStats  `json:"generation_stats"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	requestID := uuid.NewString()
	result, err := s.pipeline.Run(r.Context(), req.Prompt, req.CopyCount, req.ImageCount)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyPrompt) {
			respondError(w, http.StatusBadRequest, "prompt is required")
			return
		}
		log.Printf("[api] generate %s failed: %v", requestID, err)
		respondError(w, http.StatusInternalServerError, "generation failed")
		return
	}

	respondJSON(w, http.StatusOK, generateResponse{
		Success:   true,
		RequestID: requestID,
		Analysis:  result.Analysis,
		Copies:    result.Copies,
		Images:    result.Images,
		Campaign:  result.Campaign,
		Stats:     result.Stats,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"providers":  s.selector.Availability(s.providers),
		"force_mock": s.selector.ForceMock(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	statuses := s.selector.Availability(s.providers)
	configured := 0
	for _, st := range statuses {
		if st.Configured {
			configured++
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":               "healthy",
		"version":              Version,
		"uptime":               time.Since(s.startTime).Round(time.Second).String(),
		"providers_configured": configured,
		"providers_total":      len(statuses),
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[api] failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{"success": false, "error": message})
}
