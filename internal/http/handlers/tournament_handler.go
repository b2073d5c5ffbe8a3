package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/saradorri/tournamenthub/internal/countdown"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/http/middleware"
	"github.com/saradorri/tournamenthub/internal/state"
	"github.com/saradorri/tournamenthub/internal/usecase"
)

// TournamentHandler handles browsing, joining and admin management of tournaments
type TournamentHandler struct {
	tournamentUseCase usecase.TournamentUseCase
	store             *state.Store
	clock             clockwork.Clock
}

// NewTournamentHandler creates a new tournament handler
func NewTournamentHandler(tournamentUseCase usecase.TournamentUseCase, store *state.Store, clock clockwork.Clock) *TournamentHandler {
	return &TournamentHandler{
		tournamentUseCase: tournamentUseCase,
		store:             store,
		clock:             clock,
	}
}

// List returns every tournament with the viewer's flags
// @Summary List tournaments
// @Tags tournaments
// @Produce json
// @Param X-Session-ID header string false "Client session id"
// @Success 200 {object} Response{data=[]usecase.TournamentCard}
// @Router /tournaments [get]
func (h *TournamentHandler) List(c *gin.Context) {
	respond(c, http.StatusOK, h.tournamentUseCase.List(middleware.Session(c)))
}

// Open selects a tournament and returns its detail page
// @Summary Tournament detail
// @Description Selects the tournament on the session. Room details are revealed to participants only.
// @Tags tournaments
// @Produce json
// @Param X-Session-ID header string false "Client session id"
// @Param id path string true "Tournament ID"
// @Success 200 {object} Response{data=usecase.TournamentDetail}
// @Failure 404 {object} ErrorResponse
// @Router /tournaments/{id} [get]
func (h *TournamentHandler) Open(c *gin.Context) {
	detail, err := h.tournamentUseCase.Open(middleware.Session(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, detail)
}

// Join enters the session user into a tournament and debits the entry fee
// @Summary Join tournament
// @Tags tournaments
// @Produce json
// @Param X-Session-ID header string true "Client session id"
// @Param id path string true "Tournament ID"
// @Success 200 {object} Response{data=usecase.JoinResult}
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /tournaments/{id}/join [post]
func (h *TournamentHandler) Join(c *gin.Context) {
	result, err := h.tournamentUseCase.Join(c.Request.Context(), middleware.Session(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, result)
}

// Countdown returns the time left until the tournament starts
// @Summary Countdown
// @Tags tournaments
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} Response{data=countdown.Remaining}
// @Failure 404 {object} ErrorResponse
// @Router /tournaments/{id}/countdown [get]
func (h *TournamentHandler) Countdown(c *gin.Context) {
	t, ok := h.store.Tournament(c.Param("id"))
	if !ok {
		fail(c, tournamentNotFound())
		return
	}
	respond(c, http.StatusOK, countdown.Derive(t.StartTime, h.clock.Now()))
}

// CountdownStream streams the countdown as server-sent events, one per second,
// until it finishes or the client disconnects.
// @Summary Countdown stream
// @Tags tournaments
// @Produce text/event-stream
// @Param id path string true "Tournament ID"
// @Success 200 {object} countdown.Remaining
// @Failure 404 {object} ErrorResponse
// @Router /tournaments/{id}/countdown/stream [get]
func (h *TournamentHandler) CountdownStream(c *gin.Context) {
	t, ok := h.store.Tournament(c.Param("id"))
	if !ok {
		fail(c, tournamentNotFound())
		return
	}

	ticks := countdown.Watch(c.Request.Context(), h.clock, t.StartTime)
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		r, ok := <-ticks
		if !ok {
			return false
		}
		c.SSEvent("countdown", r)
		return r.IsRunning
	})
}

// Create adds a tournament
// @Summary Create tournament
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Client session id"
// @Param request body usecase.TournamentInput true "Tournament"
// @Success 201 {object} Response{data=domain.Tournament}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /admin/tournaments [post]
func (h *TournamentHandler) Create(c *gin.Context) {
	var input usecase.TournamentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	t, err := h.tournamentUseCase.Create(c.Request.Context(), middleware.Session(c), input)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, t)
}

// Update edits a tournament
// @Summary Update tournament
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Client session id"
// @Param id path string true "Tournament ID"
// @Param request body usecase.TournamentInput true "Tournament"
// @Success 200 {object} Response{data=domain.Tournament}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/tournaments/{id} [put]
func (h *TournamentHandler) Update(c *gin.Context) {
	var input usecase.TournamentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	t, err := h.tournamentUseCase.Update(c.Request.Context(), middleware.Session(c), c.Param("id"), input)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, t)
}

// Delete removes a tournament
// @Summary Delete tournament
// @Tags admin
// @Produce json
// @Param X-Session-ID header string true "Client session id"
// @Param id path string true "Tournament ID"
// @Success 200 {object} Response
// @Failure 403 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /admin/tournaments/{id} [delete]
func (h *TournamentHandler) Delete(c *gin.Context) {
	if err := h.tournamentUseCase.Delete(c.Request.Context(), middleware.Session(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil)
}

func tournamentNotFound() *domain.AppError {
	return domain.NewBusinessRuleError(domain.ErrCodeTournamentNotFound, "Tournament not found.", http.StatusNotFound)
}
