// internal/httpserver/routes_leaderboard.go
//
// HTTP route for the daily leaderboard.
//   - GET /leaderboard?date=YYYY-MM-DD → best wins of the date (default: today, UTC)
//
// With ANSWER_MODE=daily every player guesses the same word on a date, so
// the board compares like with like.

package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/robalobadob/wordle/apps/game-session/internal/daily"
)

// handleLeaderboard returns the top wins (fewest tries first) for a date.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	day := daily.On(time.Now())
	if q := r.URL.Query().Get("date"); q != "" {
		var err error
		if day, err = daily.Parse(q); err != nil {
			writeError(w, http.StatusBadRequest, "bad_date")
			return
		}
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := s.history.Leaderboard(r.Context(), day.String(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": day.String(), "entries": rows})
}
