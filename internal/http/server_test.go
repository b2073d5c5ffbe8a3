package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/saradorri/tournamenthub/internal/config"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/http/handlers"
	"github.com/saradorri/tournamenthub/internal/http/middleware"
	"github.com/saradorri/tournamenthub/internal/i18n"
	"github.com/saradorri/tournamenthub/internal/infrastructure/auth"
	"github.com/saradorri/tournamenthub/internal/infrastructure/backend/memory"
	"github.com/saradorri/tournamenthub/internal/infrastructure/lock"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"github.com/saradorri/tournamenthub/internal/infrastructure/storage"
	"github.com/saradorri/tournamenthub/internal/state"
	"github.com/saradorri/tournamenthub/internal/usecase"
	"github.com/saradorri/tournamenthub/internal/usecase/admin"
	"github.com/saradorri/tournamenthub/internal/usecase/notification"
	"github.com/saradorri/tournamenthub/internal/usecase/ranking"
	"github.com/saradorri/tournamenthub/internal/usecase/settings"
	"github.com/saradorri/tournamenthub/internal/usecase/tournament"
	"github.com/saradorri/tournamenthub/internal/usecase/transaction"
	"github.com/saradorri/tournamenthub/internal/usecase/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type immediate struct{}

func (immediate) After(_ string, _ time.Duration, fn func()) error {
	fn()
	return nil
}

// streamRecorder adds the close notification gin's Stream waits on
type streamRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r *streamRecorder) CloseNotify() <-chan bool { return r.closed }

type testStack struct {
	router   *gin.Engine
	backend  *memory.Backend
	store    *state.Store
	provider *auth.LocalProvider
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	log := logger.NewNop()
	clock := clockwork.NewRealClock()
	b := memory.New()
	store := state.NewStore()
	sessions := state.NewSessions(clock, time.Minute, "en")
	t.Cleanup(func() { sessions.Sweep(-time.Hour) })

	catalog := i18n.New(log)
	_, err := catalog.Load(i18n.Fallback)
	require.NoError(t, err)
	feedback := usecase.NewFeedback(log, catalog)

	jwt := auth.NewJWTService(&config.JWTConfig{Secret: "test-secret", Expiry: time.Hour}, clock)
	provider := auth.NewLocalProvider(b.Credentials, b.Users, jwt, lock.NewManager(time.Second, log), clock, false, log)

	users := user.NewUserUseCase(provider, b.Users, store, sessions, feedback, immediate{}, 0, log)
	tournaments := tournament.NewTournamentUseCase(b.Tournaments, b.Users, store, feedback, log)
	h := Handlers{
		Auth:         handlers.NewAuthHandler(users),
		Session:      handlers.NewSessionHandler(users, catalog),
		User:         handlers.NewUserHandler(users),
		Tournament:   handlers.NewTournamentHandler(tournaments, store, clock),
		Wallet:       handlers.NewWalletHandler(transaction.NewTransactionUseCase(b.Transactions, b.Users, store, feedback, clock, log)),
		Notification: handlers.NewNotificationHandler(notification.NewNotificationUseCase(b.Notifications, b.Users, store, feedback, clock, log)),
		Admin:        handlers.NewAdminHandler(admin.NewAdminUseCase(store, feedback, clock), storage.Disabled{}),
		Settings:     handlers.NewSettingsHandler(settings.NewSettingsUseCase(b.Settings, store, feedback, log)),
		Leaderboard:  handlers.NewLeaderboardHandler(ranking.NewRankingUseCase(store)),
	}
	srv := NewServer(h, sessions, store, users, middleware.NewErrorHandler(log), log, ":0", 5*time.Second)

	return &testStack{router: srv.Router(), backend: b, store: store, provider: provider}
}

// load refreshes the store snapshot from the backend
func (s *testStack) load(t *testing.T) {
	t.Helper()
	require.NoError(t, s.store.Load(context.Background(), state.Sources{
		Users:         s.backend.Users,
		Tournaments:   s.backend.Tournaments,
		Transactions:  s.backend.Transactions,
		Notifications: s.backend.Notifications,
		Settings:      s.backend.Settings,
	}))
}

func (s *testStack) seedAdmin(t *testing.T, email, password string) {
	t.Helper()
	ctx := context.Background()
	res, err := s.provider.SignUp(ctx, email, password, domain.ProfileAttributes{Name: "Admin", InGameName: "HubAdmin"})
	require.NoError(t, err)
	_, err = s.backend.Users.Update(ctx, res.UserID, domain.Fields{"is_admin": true})
	require.NoError(t, err)
}

type envelope struct {
	Data    json.RawMessage  `json:"data"`
	View    state.View       `json:"view"`
	Error   *domain.AppError `json:"error"`
	Success bool             `json:"success"`
}

// client remembers the server issued session id and the access token
// returned by register or login
type client struct {
	id    string
	token string
}

func (s *testStack) do(t *testing.T, method, path string, c *client, body interface{}) (int, envelope) {
	t.Helper()
	code, env, _ := s.doRaw(t, method, path, c, body)
	return code, env
}

func (s *testStack) doRaw(t *testing.T, method, path string, c *client, body interface{}) (int, envelope, string) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c != nil && c.id != "" {
		req.Header.Set(middleware.SessionHeader, c.id)
	}
	if c != nil && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	if c != nil {
		if id := w.Header().Get(middleware.SessionHeader); id != "" {
			c.id = id
		}
		var auth struct {
			AccessToken string `json:"access_token"`
		}
		if json.Unmarshal(env.Data, &auth) == nil && auth.AccessToken != "" {
			c.token = auth.AccessToken
		}
	}
	return w.Code, env, w.Body.String()
}

func TestHealth(t *testing.T) {
	s := newTestStack(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionHeaderIssued(t *testing.T) {
	s := newTestStack(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get(middleware.SessionHeader)
	assert.NotEmpty(t, id)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, id, env.View.SessionID)
	assert.Equal(t, domain.PageHome, env.View.Page)
}

func TestNavigateGuards(t *testing.T) {
	s := newTestStack(t)
	anon := &client{}

	code, env := s.do(t, http.MethodPost, "/api/v1/session/navigate", anon, gin.H{"page": "wallet"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, domain.PageLogin, env.View.Page)

	code, env = s.do(t, http.MethodPost, "/api/v1/session/navigate", anon, gin.H{"page": "admin"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, domain.PageHome, env.View.Page)

	code, env = s.do(t, http.MethodPost, "/api/v1/session/navigate", anon, gin.H{"page": "nowhere"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, domain.ErrCodeInvalidFormat, env.Error.Code)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	s := newTestStack(t)

	code, env := s.do(t, http.MethodGet, "/api/v1/admin/stats", &client{}, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)

	player := &client{}
	code, _ = s.do(t, http.MethodPost, "/api/v1/auth/register", player, gin.H{
		"email": "p@example.com", "password": "secret123", "name": "Player", "in_game_name": "P1",
	})
	require.Equal(t, http.StatusCreated, code)

	code, env = s.do(t, http.MethodGet, "/api/v1/admin/stats", player, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, domain.PageHome, env.Error.Redirect)
}

func TestThemeCSS(t *testing.T) {
	s := newTestStack(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings/theme.css", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/css")
	assert.Contains(t, w.Body.String(), "--color-primary: 239 68 68;")
}

func TestUploadDisabled(t *testing.T) {
	s := newTestStack(t)
	s.seedAdmin(t, "admin@example.com", "admin123")
	s.load(t)

	admin := &client{}
	code, _ := s.do(t, http.MethodPost, "/api/v1/auth/login", admin, gin.H{"email": "admin@example.com", "password": "admin123"})
	require.Equal(t, http.StatusOK, code)

	code, env := s.do(t, http.MethodPost, "/api/v1/admin/uploads", admin, nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, domain.ErrCodeStorageDisabled, env.Error.Code)
}

func TestRegisterDepositApproveJoin(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	cup, err := s.backend.Tournaments.Create(ctx, &domain.Tournament{
		Name:       "Squad Cup",
		Type:       domain.TournamentTypeSquad,
		EntryFee:   100,
		PrizePool:  1000,
		MapName:    "Bermuda",
		StartTime:  time.Now().Add(24 * time.Hour),
		MaxPlayers: 48,
	})
	require.NoError(t, err)
	s.seedAdmin(t, "admin@example.com", "admin123")
	s.load(t)
	player, admin := &client{}, &client{}

	code, env := s.do(t, http.MethodPost, "/api/v1/auth/register", player, gin.H{
		"email": "player@example.com", "password": "secret123", "name": "Rahim", "in_game_name": "RahimFF",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	require.NotNil(t, env.View.User)
	assert.Equal(t, domain.PageHome, env.View.Page)
	playerID := env.View.User.ID

	code, env = s.do(t, http.MethodPost, "/api/v1/tournaments/"+cup.ID+"/join", player, nil)
	require.Equal(t, http.StatusPaymentRequired, code)
	assert.Equal(t, domain.ErrCodeInsufficientBalance, env.Error.Code)
	assert.Equal(t, domain.PageWallet, env.View.Page)
	require.NotNil(t, env.View.Toast)

	code, env = s.do(t, http.MethodPost, "/api/v1/wallet/deposits", player, gin.H{
		"gateway": "bKash", "amount": 200, "trx_id": "TRX1", "sender_number": "01711111111",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	var tx domain.Transaction
	require.NoError(t, json.Unmarshal(env.Data, &tx))
	assert.Equal(t, domain.TransactionStatusPending, tx.Status)
	assert.Equal(t, 0.0, env.View.User.WalletBalance)

	code, env = s.do(t, http.MethodPost, "/api/v1/auth/login", admin, gin.H{"email": "admin@example.com", "password": "admin123"})
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Equal(t, domain.PageAdmin, env.View.Page)

	code, env = s.do(t, http.MethodPost, "/api/v1/admin/transactions/"+tx.ID+"/review", admin, gin.H{"status": "Approved"})
	require.Equal(t, http.StatusOK, code, env.Error)

	code, env = s.do(t, http.MethodPost, "/api/v1/tournaments/"+cup.ID+"/join", player, nil)
	require.Equal(t, http.StatusOK, code, env.Error)
	var result usecase.JoinResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, usecase.JoinOutcomeJoined, result.Outcome)
	assert.Equal(t, 100.0, env.View.User.WalletBalance)

	stored, err := s.backend.Users.GetByID(ctx, playerID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, stored.WalletBalance)
	assert.Contains(t, stored.JoinedTournaments, cup.ID)

	code, env = s.do(t, http.MethodPost, "/api/v1/tournaments/"+cup.ID+"/join", player, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, domain.ErrCodeAlreadyJoined, env.Error.Code)
}

func TestCountdown(t *testing.T) {
	s := newTestStack(t)
	past, err := s.backend.Tournaments.Create(context.Background(), &domain.Tournament{
		Name:       "Finished",
		Type:       domain.TournamentTypeSolo,
		StartTime:  time.Now().Add(-time.Hour),
		MaxPlayers: 10,
	})
	require.NoError(t, err)
	s.load(t)

	code, env := s.do(t, http.MethodGet, "/api/v1/tournaments/"+past.ID+"/countdown", nil, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"days":0,"hours":0,"minutes":0,"seconds":0,"is_running":false}`, string(env.Data))

	code, env = s.do(t, http.MethodGet, "/api/v1/tournaments/missing/countdown", nil, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, domain.ErrCodeTournamentNotFound, env.Error.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tournaments/"+past.ID+"/countdown/stream", nil)
	req.Header.Set("Accept", "text/event-stream")
	w := &streamRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool, 1)}
	s.router.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), "event:countdown")
	assert.Contains(t, w.Body.String(), `"is_running":false`)
}

func TestRoomDetailsHiddenFromOutsiders(t *testing.T) {
	s := newTestStack(t)
	cup, err := s.backend.Tournaments.Create(context.Background(), &domain.Tournament{
		Name:        "Night Cup",
		Type:        domain.TournamentTypeSolo,
		StartTime:   time.Now().Add(time.Hour),
		MaxPlayers:  10,
		RoomDetails: &domain.RoomDetails{ID: "ROOM-42", Pass: "SECRET-PW"},
	})
	require.NoError(t, err)
	s.seedAdmin(t, "admin@example.com", "admin123")
	s.load(t)

	player := &client{}
	code, env := s.do(t, http.MethodPost, "/api/v1/auth/register", player, gin.H{
		"email": "p@example.com", "password": "secret123", "name": "Player", "in_game_name": "P1",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)

	for name, c := range map[string]*client{"anonymous": nil, "player": player} {
		code, _, body := s.doRaw(t, http.MethodGet, "/api/v1/tournaments", c, nil)
		require.Equal(t, http.StatusOK, code, name)
		assert.NotContains(t, body, "SECRET-PW", name)
		assert.NotContains(t, body, "room_details", name)

		code, env, body = s.doRaw(t, http.MethodGet, "/api/v1/tournaments/"+cup.ID, c, nil)
		require.Equal(t, http.StatusOK, code, name)
		assert.NotContains(t, body, "SECRET-PW", name)
		assert.NotContains(t, body, "room_details", name)
		var detail usecase.TournamentDetail
		require.NoError(t, json.Unmarshal(env.Data, &detail))
		assert.Equal(t, domain.RoomAccessHidden, detail.Room.State, name)
	}

	admin := &client{}
	code, _ = s.do(t, http.MethodPost, "/api/v1/auth/login", admin, gin.H{"email": "admin@example.com", "password": "admin123"})
	require.Equal(t, http.StatusOK, code)
	code, _, body := s.doRaw(t, http.MethodGet, "/api/v1/tournaments/"+cup.ID, admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "SECRET-PW")
}

func TestSessionNeedsBearerToken(t *testing.T) {
	s := newTestStack(t)

	player := &client{id: "chosen-by-client"}
	code, env := s.do(t, http.MethodPost, "/api/v1/auth/register", player, gin.H{
		"email": "p@example.com", "password": "secret123", "name": "Player", "in_game_name": "P1",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	require.NotNil(t, env.View.User)
	assert.NotEqual(t, "chosen-by-client", player.id, "the server issues the id")
	require.NotEmpty(t, player.token)

	for _, c := range []*client{{id: "chosen-by-client"}, {id: player.id}} {
		requested := c.id
		code, env = s.do(t, http.MethodGet, "/api/v1/session", c, nil)
		require.Equal(t, http.StatusOK, code)
		assert.Nil(t, env.View.User, requested)
		assert.NotEqual(t, player.id, env.View.SessionID, requested)
	}

	code, env = s.do(t, http.MethodGet, "/api/v1/session", player, nil)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.View.User)
	assert.Equal(t, player.id, env.View.SessionID)

	stolen := &client{id: player.id, token: "not-a-token"}
	code, _ = s.do(t, http.MethodGet, "/api/v1/session", stolen, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}
