package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/infrastructure/backend/rest"
	"github.com/saradorri/tournamenthub/internal/state"
	"github.com/saradorri/tournamenthub/internal/usecase"
)

// SessionHeader carries the client session id in both directions
const SessionHeader = "X-Session-ID"

// SessionMiddleware attaches the client session named by X-Session-ID. Ids
// are issued by the server: an absent or unknown id gets a fresh session and
// the id to use is returned in the same header. A session bound to an auth
// token only answers to requests carrying that bearer token; any other
// request is given a fresh signed-out session. The session user copy is
// refreshed from the store snapshot so balance changes made by other
// sessions are visible.
func SessionMiddleware(sessions *state.Sessions, store *state.Store, users usecase.UserUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if header := c.GetHeader("Authorization"); header != "" {
			if !strings.HasPrefix(header, "Bearer ") {
				Abort(c, domain.NewAppError(domain.ErrCodeTokenInvalid, "Invalid authorization header format", http.StatusUnauthorized, nil))
				return
			}
			token = strings.TrimPrefix(header, "Bearer ")
		}

		sess := sessions.Attach(strings.TrimSpace(c.GetHeader(SessionHeader)))
		if bound := sess.AccessToken(); bound != "" && bound != token {
			sess = sessions.Attach("")
		}
		c.Header(SessionHeader, sess.ID())
		c.Set(SessionKey, sess)

		if token != "" {
			if err := users.Authenticate(c.Request.Context(), sess, token); err != nil {
				Abort(c, err)
				return
			}
			c.Request = c.Request.WithContext(rest.WithAccessToken(c.Request.Context(), token))
		}

		if user := sess.CurrentUser(); user != nil {
			if fresh, ok := store.User(user.ID); ok {
				sess.RefreshUser(fresh)
			}
			c.Set(UserIDKey, user.ID)
		}
		c.Next()
	}
}

// Session returns the client session attached by SessionMiddleware
func Session(c *gin.Context) *state.Session {
	if v, ok := c.Get(SessionKey); ok {
		if sess, ok := v.(*state.Session); ok {
			return sess
		}
	}
	return nil
}

// RequireUser rejects requests from sessions without a signed-in user and
// sends the session to the login page.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := Session(c)
		if sess == nil || sess.CurrentUser() == nil {
			if sess != nil {
				sess.Navigate(domain.PageLogin)
			}
			Abort(c, domain.NewBusinessRuleError(
				domain.ErrCodeNotAuthenticated, "You must be logged in.", http.StatusUnauthorized,
			).WithRedirect(domain.PageLogin))
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests from sessions whose user is not an admin
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := Session(c)
		if sess == nil || sess.CurrentUser() == nil {
			Abort(c, domain.NewBusinessRuleError(
				domain.ErrCodeNotAuthenticated, "You must be logged in.", http.StatusUnauthorized,
			).WithRedirect(domain.PageLogin))
			return
		}
		if !sess.CurrentUser().IsAdmin {
			sess.Navigate(domain.PageHome)
			Abort(c, domain.NewForbiddenError("Admin access required").WithRedirect(domain.PageHome))
			return
		}
		c.Next()
	}
}
