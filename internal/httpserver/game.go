package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/game-session/internal/actor"
	"github.com/robalobadob/wordle/apps/game-session/internal/coordinator"
	"github.com/robalobadob/wordle/apps/game-session/internal/history"
)

// event is the wire shape of everything the coordinator sends a player.
type event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

func toEvent(payload any) event {
	switch p := payload.(type) {
	case coordinator.StartSuccess:
		return event{Type: "start_success", Data: struct{}{}}
	case coordinator.WordChecked:
		return event{Type: "word_checked", Data: p}
	case coordinator.GameOver:
		return event{Type: "game_over", Data: p}
	}
	return event{Type: "unknown", Data: payload}
}

// statusFor maps coordinator and runtime errors to HTTP status + code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, coordinator.ErrInvalidWord):
		return http.StatusBadRequest, "invalid_word"
	case errors.Is(err, coordinator.ErrAlreadyInGame):
		return http.StatusConflict, "already_in_game"
	case errors.Is(err, coordinator.ErrRequestInFlight):
		return http.StatusConflict, "request_in_flight"
	case errors.Is(err, coordinator.ErrNotInGame):
		return http.StatusConflict, "not_in_game"
	case errors.Is(err, coordinator.ErrSuperseded):
		return http.StatusConflict, "superseded"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	}
	return http.StatusInternalServerError, "internal"
}

// call submits payload as player and writes the coordinator's answer.
func (s *Server) call(w http.ResponseWriter, r *http.Request, player actor.ID, payload any) {
	res, err := s.runner.Call(r.Context(), player, s.coordID, payload)
	if err != nil {
		status, code := statusFor(err)
		ev := log.Info()
		if status >= http.StatusInternalServerError {
			ev = log.Warn()
		}
		ev.Err(err).Str("user", player.String()).Int("status", status).Msg("game request failed")
		writeError(w, status, code)
		return
	}
	writeJSON(w, http.StatusOK, toEvent(res))
}

// handleStart sends StartGame and answers once the round is open.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	player, err := s.player(w, r, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_player")
		return
	}
	s.call(w, r, player, coordinator.StartGame{})
}

type guessReq struct {
	Word string `json:"word"`
}

// handleGuess sends CheckWord and answers with the score or the game result.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	player, err := s.player(w, r, false)
	if err != nil {
		writeError(w, http.StatusConflict, "not_in_game")
		return
	}
	s.call(w, r, player, coordinator.CheckWord{Word: req.Word})
}

// handleEvents drains the player's asynchronous notifications, such as a
// loss forced by the round deadline.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	player, err := s.player(w, r, false)
	if err != nil {
		writeJSON(w, http.StatusOK, []event{})
		return
	}
	var msgs []actor.Message
	if err := s.runner.Do(r.Context(), func(sys *actor.System) { msgs = sys.Drain(player) }); err != nil {
		status, code := statusFor(err)
		writeError(w, status, code)
		return
	}
	out := make([]event, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toEvent(m.Payload))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleState exports every session as JSON.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var snap coordinator.Snapshot
	if err := s.runner.Do(r.Context(), func(*actor.System) { snap = s.coord.State() }); err != nil {
		status, code := statusFor(err)
		writeError(w, status, code)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleStats returns the account's aggregate stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	me := userFrom(r.Context())
	st, err := s.history.Stats(r.Context(), me.ID)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":          me.ID,
		"gamesPlayed": st.GamesPlayed,
		"wins":        st.Wins,
		"streak":      st.Streak,
	})
}

// handleRecent lists the account's latest rounds (?limit=, default 50).
func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	me := userFrom(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rounds, err := s.history.Recent(r.Context(), me.ID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, rounds)
}
