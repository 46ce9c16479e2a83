package http

import (
	"net/http"
	"strconv"

	"github.com/satfield/sfa-backend-go/internal/domain/leaderboard"
	"github.com/satfield/sfa-backend-go/internal/handler/http/response"
)

type LeaderboardHandler interface {
	Top(w http.ResponseWriter, r *http.Request)
}

type leaderboardHandlerImpl struct {
	leaderboardService leaderboard.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService leaderboard.LeaderboardService) LeaderboardHandler {
	return &leaderboardHandlerImpl{
		leaderboardService: leaderboardService,
	}
}

// Top implements LeaderboardHandler. The limit query parameter defaults
// to 10.
func (h *leaderboardHandlerImpl) Top(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid limit", nil)
			return
		}
		limit = parsed
	}

	entries, err := h.leaderboardService.TopN(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}
