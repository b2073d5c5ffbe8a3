package state

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/saradorri/tournamenthub/internal/domain"
)

// Session is the view state of one client: who is signed in, which page is
// shown, the selected tournament and the visible toast.
type Session struct {
	id    string
	clock clockwork.Clock
	toast *Toaster

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
	user        *domain.User
	page        domain.Page
	adminView   domain.AdminSubPage
	selected    *domain.Tournament
	language    string
	lastSeen    time.Time
}

// View is a snapshot of a session for rendering
type View struct {
	SessionID          string              `json:"session_id"`
	Page               domain.Page         `json:"page"`
	AdminView          domain.AdminSubPage `json:"admin_view"`
	User               *domain.User        `json:"user,omitempty"`
	SelectedTournament *domain.Tournament  `json:"selected_tournament,omitempty"`
	Language           string              `json:"language"`
	Toast              *Toast              `json:"toast,omitempty"`
}

// NewSession creates a signed-out session on the home page
func NewSession(id string, clock clockwork.Clock, toastDuration time.Duration, language string) *Session {
	return &Session{
		id:        id,
		clock:     clock,
		toast:     NewToaster(clock, toastDuration),
		page:      domain.PageHome,
		adminView: domain.AdminDashboard,
		language:  language,
		lastSeen:  clock.Now(),
	}
}

// ID returns the client session id
func (s *Session) ID() string { return s.id }

// Touch records client activity
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = s.clock.Now()
	s.mu.Unlock()
}

// IdleSince returns the time of the last client activity
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// CurrentUser returns a copy of the signed-in user, or nil
func (s *Session) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.Clone()
}

// AccessToken returns the auth provider token bound to the session
func (s *Session) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

// Bind attaches an auth token and its profile. A nil profile keeps the token
// while the profile is not available yet.
func (s *Session) Bind(accessToken string, user *domain.User) {
	s.BindUntil(accessToken, time.Time{}, user)
}

// BindUntil is Bind for a token that stops being honoured at expiresAt. A
// zero expiresAt never expires locally.
func (s *Session) BindUntil(accessToken string, expiresAt time.Time, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
	s.expiresAt = expiresAt
	s.user = user.Clone()
}

// HoldsToken reports whether the session is bound to accessToken and the
// binding has not expired
func (s *Session) HoldsToken(accessToken string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if accessToken == "" || s.accessToken != accessToken {
		return false
	}
	return s.expiresAt.IsZero() || s.clock.Now().Before(s.expiresAt)
}

// SetUser replaces the signed-in user copy
func (s *Session) SetUser(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user.Clone()
}

// RefreshUser replaces the user copy only when it belongs to the same id
func (s *Session) RefreshUser(user *domain.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil || user == nil || s.user.ID != user.ID {
		return false
	}
	s.user = user.Clone()
	return true
}

// SignOut clears the token and the user
func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.expiresAt = time.Time{}
	s.user = nil
}

// Navigate switches the page and clears the selected tournament. The admin
// page defaults to the dashboard.
func (s *Session) Navigate(page domain.Page, sub ...domain.AdminSubPage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigateLocked(page, sub...)
}

func (s *Session) navigateLocked(page domain.Page, sub ...domain.AdminSubPage) {
	s.selected = nil
	if page == domain.PageAdmin {
		s.adminView = domain.AdminDashboard
		if len(sub) > 0 && sub[0] != "" {
			s.adminView = sub[0]
		}
	}
	s.page = page
}

// SelectTournament shows the detail page of the given tournament
func (s *Session) SelectTournament(t *domain.Tournament) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = t.Clone()
	s.page = domain.PageTournamentDetail
}

// UpdateSelected replaces the selected tournament copy without navigating
func (s *Session) UpdateSelected(t *domain.Tournament) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = t.Clone()
}

// SelectedTournament returns a copy of the selected tournament, or nil
func (s *Session) SelectedTournament() *domain.Tournament {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected.Clone()
}

// Page returns the current page
func (s *Session) Page() domain.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// AdminView returns the current admin section
func (s *Session) AdminView() domain.AdminSubPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adminView
}

// Language returns the session language
func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// SetLanguage switches the session language
func (s *Session) SetLanguage(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = lang
}

// Toast shows a toast on this session
func (s *Session) Toast(message string, kind ToastKind) {
	s.toast.Show(message, kind)
}

// Toaster exposes the session toaster
func (s *Session) Toaster() *Toaster {
	return s.toast
}

// Resolve applies the page guards and returns the resulting view. Wallet and
// profile need a signed-in user, admin needs an admin, and the detail page
// needs a selected tournament.
func (s *Session) Resolve() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.page {
	case domain.PageWallet, domain.PageProfile:
		if s.user == nil {
			s.navigateLocked(domain.PageLogin)
		}
	case domain.PageAdmin:
		if s.user == nil || !s.user.IsAdmin {
			s.navigateLocked(domain.PageHome)
		}
	case domain.PageTournamentDetail:
		if s.selected == nil {
			s.page = domain.PageHome
		}
	}

	var selected *domain.Tournament
	if s.selected != nil {
		selected = s.selected.ForViewer(s.user)
	}

	return View{
		SessionID:          s.id,
		Page:               s.page,
		AdminView:          s.adminView,
		User:               s.user.Clone(),
		SelectedTournament: selected,
		Language:           s.language,
		Toast:              s.toast.Current(),
	}
}

// Close releases timers owned by the session
func (s *Session) Close() {
	s.toast.Close()
}
