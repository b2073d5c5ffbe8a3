package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/http/middleware"
	"github.com/saradorri/tournamenthub/internal/usecase"
)

// LeaderboardHandler serves the public ranking
type LeaderboardHandler struct {
	rankingUseCase usecase.RankingUseCase
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(rankingUseCase usecase.RankingUseCase) *LeaderboardHandler {
	return &LeaderboardHandler{rankingUseCase: rankingUseCase}
}

// Get returns the top players by wallet balance
// @Summary Leaderboard
// @Tags leaderboard
// @Produce json
// @Param X-Session-ID header string false "Client session id"
// @Param limit query int false "Number of players" default(10)
// @Success 200 {object} Response{data=[]usecase.LeaderboardEntry}
// @Failure 400 {object} ErrorResponse
// @Router /leaderboard [get]
func (h *LeaderboardHandler) Get(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			fail(c, domain.NewValidationError("limit", "must be between 1 and 100"))
			return
		}
		limit = n
	}
	respond(c, http.StatusOK, h.rankingUseCase.Leaderboard(middleware.Session(c), limit))
}
