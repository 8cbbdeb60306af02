package handlers

import (
	"net/http"

	"github.com/Dosada05/matchplay/models"
	"github.com/Dosada05/matchplay/services"
	"github.com/go-chi/chi/v5"
)

type RoundHandler struct {
	roundService services.RoundService
}

func NewRoundHandler(roundService services.RoundService) *RoundHandler {
	return &RoundHandler{roundService: roundService}
}

// Create handles POST /tournaments/{tournamentID}/rounds.
func (h *RoundHandler) Create(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")

	var input struct {
		RoundType       string         `json:"round_type"`
		PlayersPerMatch int            `json:"players_per_match"`
		Params          map[string]any `json:"params"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.roundService.CreateRound(r.Context(), models.RoundConfig{
		TournamentID:    tournamentID,
		RoundType:       input.RoundType,
		PlayersPerMatch: input.PlayersPerMatch,
		Params:          input.Params,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// List handles GET /tournaments/{tournamentID}/rounds.
func (h *RoundHandler) List(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")

	rounds, err := h.roundService.ListRounds(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rounds": rounds}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMatches handles GET /rounds/{roundID}/matches.
func (h *RoundHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	roundID := chi.URLParam(r, "roundID")

	matches, err := h.roundService.ListMatches(r.Context(), roundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
