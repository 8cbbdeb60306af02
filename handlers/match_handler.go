package handlers

import (
	"net/http"

	"github.com/Dosada05/matchplay/models"
	"github.com/Dosada05/matchplay/services"
	"github.com/go-chi/chi/v5"
)

type MatchHandler struct {
	roundService services.RoundService
}

func NewMatchHandler(roundService services.RoundService) *MatchHandler {
	return &MatchHandler{roundService: roundService}
}

// RecordResult handles POST /matches/{matchID}/result.
func (h *MatchHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")

	var input struct {
		WinnerIDs  []string       `json:"winner_ids"`
		Rankings   map[string]int `json:"rankings"`
		IsDraw     bool           `json:"is_draw"`
		Calculator string         `json:"calculator"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.roundService.RecordResult(r.Context(), matchID, &models.MatchResult{
		MatchID:   matchID,
		WinnerIDs: input.WinnerIDs,
		Rankings:  input.Rankings,
		IsDraw:    input.IsDraw,
	}, input.Calculator)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
