package user

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"github.com/saradorri/tournamenthub/internal/state"
	"github.com/saradorri/tournamenthub/internal/usecase"
	"go.uber.org/zap"
)

// UserUseCase implements usecase.UserUseCase
type UserUseCase struct {
	auth      domain.AuthProvider
	userRepo  domain.UserRepository
	store     *state.Store
	sessions  *state.Sessions
	feedback  *usecase.Feedback
	deferrer  usecase.Deferrer
	syncDelay time.Duration
	logger    *logger.Logger
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(
	auth domain.AuthProvider,
	userRepo domain.UserRepository,
	store *state.Store,
	sessions *state.Sessions,
	feedback *usecase.Feedback,
	deferrer usecase.Deferrer,
	syncDelay time.Duration,
	logger *logger.Logger,
) usecase.UserUseCase {
	return &UserUseCase{
		auth:      auth,
		userRepo:  userRepo,
		store:     store,
		sessions:  sessions,
		feedback:  feedback,
		deferrer:  deferrer,
		syncDelay: syncDelay,
		logger:    logger,
	}
}

// Register signs up a new account. With email confirmation the session is
// sent to login; otherwise the profile row is read after syncDelay, once the
// backend has had time to create it.
func (uc *UserUseCase) Register(ctx context.Context, sess *state.Session, input usecase.RegisterInput) (*usecase.RegisterResult, error) {
	uc.logger.Info("Starting user registration", zap.String("email", input.Email))

	if err := validateRegistration(input); err != nil {
		return nil, uc.feedback.Reject(sess, err)
	}

	res, err := uc.auth.SignUp(usecase.Detached(ctx), strings.TrimSpace(input.Email), input.Password, domain.ProfileAttributes{
		Name:       strings.TrimSpace(input.Name),
		Phone:      strings.TrimSpace(input.Phone),
		InGameName: strings.TrimSpace(input.InGameName),
		PlayerUID:  strings.TrimSpace(input.PlayerUID),
	})
	if err == nil && (res == nil || res.UserID == "") {
		err = errors.New("User registration failed: No user object returned.")
	}
	if err != nil {
		return nil, uc.feedback.Fail(sess, "registration", err)
	}

	if res.Session == nil {
		uc.logger.Info("Registration awaiting email confirmation", zap.String("user_id", res.UserID))
		uc.feedback.Success(sess, uc.feedback.T(sess, "registrationSuccessConfirmEmail", nil))
		sess.Navigate(domain.PageLogin)
		return &usecase.RegisterResult{UserID: res.UserID, ConfirmationRequired: true}, nil
	}

	sess.BindUntil(res.Session.AccessToken, res.Session.ExpiresAt, nil)
	userID := res.UserID
	if err := uc.deferrer.After("profile-sync:"+sess.ID(), uc.syncDelay, func() {
		uc.syncProfile(sess, userID)
	}); err != nil {
		uc.logger.Error("Failed to schedule profile sync", zap.String("user_id", userID), zap.Error(err))
		uc.syncProfile(sess, userID)
	}

	return &usecase.RegisterResult{
		UserID:             userID,
		ProfileSyncPending: true,
		AccessToken:        res.Session.AccessToken,
	}, nil
}

func (uc *UserUseCase) syncProfile(sess *state.Session, userID string) {
	profile, err := uc.userRepo.GetByID(context.Background(), userID)
	if err != nil || profile == nil {
		uc.logger.Warn("Profile not synced after registration",
			zap.String("user_id", userID),
			zap.Error(err))
		uc.feedback.Success(sess, "Account created, but profile is syncing. Please try logging in.")
		sess.Navigate(domain.PageLogin)
		return
	}

	uc.store.PutUser(profile)
	sess.SetUser(profile)
	uc.feedback.Success(sess, uc.feedback.T(sess, "registrationSuccessLogin", nil))
	sess.Navigate(domain.PageHome)
	uc.logger.Info("Profile synced after registration", zap.String("user_id", userID))
}

// Login signs in and loads the profile row. A missing profile signs the
// account out again.
func (uc *UserUseCase) Login(ctx context.Context, sess *state.Session, email, password string) (*usecase.LoginResult, error) {
	uc.logger.Info("Starting user login", zap.String("email", email))
	ctx = usecase.Detached(ctx)

	authSession, err := uc.auth.SignIn(ctx, strings.TrimSpace(email), password)
	if err == nil && authSession == nil {
		err = errors.New("Login failed")
	}
	if err != nil {
		return nil, uc.feedback.Fail(sess, "login", err)
	}

	profile, err := uc.userRepo.GetByID(ctx, authSession.UserID)
	if err == nil && profile == nil {
		err = domain.NewAppError(domain.ErrCodeProfileNotFound, "Profile not found.", http.StatusUnauthorized, nil)
	}
	if err != nil {
		if signOutErr := uc.auth.SignOut(ctx, authSession.AccessToken); signOutErr != nil {
			uc.logger.Warn("Sign out after missing profile failed", zap.Error(signOutErr))
		}
		return nil, uc.feedback.Fail(sess, "login", err)
	}

	uc.store.PutUser(profile)
	sess.BindUntil(authSession.AccessToken, authSession.ExpiresAt, profile)

	if profile.IsAdmin {
		sess.Navigate(domain.PageAdmin, domain.AdminDashboard)
		uc.feedback.Success(sess, uc.feedback.T(sess, "welcomeAdmin", map[string]interface{}{"inGameName": profile.InGameName}))
	} else {
		sess.Navigate(domain.PageHome)
		uc.feedback.Success(sess, "Login successful!")
	}

	uc.logger.Info("User logged in",
		zap.String("user_id", profile.ID),
		zap.Bool("is_admin", profile.IsAdmin))
	return &usecase.LoginResult{AccessToken: authSession.AccessToken, User: profile}, nil
}

// Logout ends the auth session and clears the client session
func (uc *UserUseCase) Logout(ctx context.Context, sess *state.Session) error {
	token := sess.AccessToken()
	if token != "" {
		if err := uc.auth.SignOut(usecase.Detached(ctx), token); err != nil {
			return uc.feedback.Fail(sess, "logout", err)
		}
	}
	sess.SignOut()
	sess.Navigate(domain.PageHome)
	return nil
}

// Authenticate binds the session to an access token presented by the client
func (uc *UserUseCase) Authenticate(ctx context.Context, sess *state.Session, accessToken string) error {
	if accessToken == "" {
		return domain.NewAppError(domain.ErrCodeTokenMissing, "Authorization token is required", http.StatusUnauthorized, nil)
	}
	if sess.HoldsToken(accessToken) && sess.CurrentUser() != nil {
		return nil
	}

	authSession, err := uc.auth.GetSession(ctx, accessToken)
	if err != nil || authSession == nil {
		uc.logger.Debug("Access token rejected", zap.String("session_id", sess.ID()), zap.Error(err))
		if sess.AccessToken() == accessToken {
			sess.SignOut()
		}
		return domain.NewAppError(domain.ErrCodeTokenInvalid, "Invalid or expired token", http.StatusUnauthorized, err)
	}

	profile, err := uc.loadProfile(ctx, authSession.UserID)
	if err != nil {
		return err
	}
	sess.BindUntil(accessToken, authSession.ExpiresAt, profile)
	return nil
}

// Refresh re-reads the session user's profile row
func (uc *UserUseCase) Refresh(ctx context.Context, sess *state.Session) (*domain.User, error) {
	token := sess.AccessToken()
	if token == "" {
		return nil, nil
	}
	authSession, err := uc.auth.GetSession(ctx, token)
	if err != nil || authSession == nil {
		sess.SignOut()
		return nil, nil
	}
	profile, err := uc.userRepo.GetByID(ctx, authSession.UserID)
	if err != nil {
		return nil, domain.NewDatabaseError("fetching profile", err)
	}
	if profile != nil {
		uc.store.PutUser(profile)
		sess.SetUser(profile)
	}
	return profile, nil
}

// UpdateProfile writes the editable profile fields of the session user
func (uc *UserUseCase) UpdateProfile(ctx context.Context, sess *state.Session, update usecase.ProfileUpdate) (*domain.User, error) {
	user := sess.CurrentUser()
	if user == nil {
		sess.Navigate(domain.PageLogin)
		return nil, domain.NewBusinessRuleError(
			domain.ErrCodeNotAuthenticated, "You must be logged in.", http.StatusUnauthorized,
		).WithRedirect(domain.PageLogin)
	}
	if strings.TrimSpace(update.Name) == "" || strings.TrimSpace(update.InGameName) == "" {
		return nil, uc.feedback.Reject(sess, domain.NewBusinessRuleError(
			domain.ErrCodeRequiredField, "Name and in-game name are required.", http.StatusBadRequest,
		))
	}

	fields := domain.Fields{
		domain.FieldName:       strings.TrimSpace(update.Name),
		domain.FieldPhone:      strings.TrimSpace(update.Phone),
		domain.FieldInGameName: strings.TrimSpace(update.InGameName),
		domain.FieldPlayerUID:  strings.TrimSpace(update.PlayerUID),
		domain.FieldAvatarURL:  strings.TrimSpace(update.AvatarURL),
	}
	if update.Socials != nil {
		fields[domain.FieldSocials] = update.Socials
	}

	updated, err := uc.userRepo.Update(usecase.Detached(ctx), user.ID, fields)
	if err == nil && updated == nil {
		err = domain.ErrRowNotFound
	}
	if err != nil {
		return nil, uc.feedback.Fail(sess, "updating profile", err)
	}

	uc.store.PutUser(updated)
	sess.RefreshUser(updated)
	uc.feedback.Success(sess, "Profile updated successfully!")
	return updated, nil
}

// HandleAuthEvent keeps sessions bound to an auth session in sync with it.
// A sign-in reloads the profile; a profile that is not there yet clears the
// user until the next sync.
func (uc *UserUseCase) HandleAuthEvent(ctx context.Context, event domain.AuthEvent) {
	if event.Session == nil {
		return
	}
	bound := uc.sessions.ByAccessToken(event.Session.AccessToken)
	if len(bound) == 0 {
		return
	}

	switch event.Type {
	case domain.AuthEventSignedIn:
		profile, err := uc.userRepo.GetByID(ctx, event.Session.UserID)
		if err != nil || profile == nil {
			uc.logger.Info("Waiting for profile sync...", zap.String("user_id", event.Session.UserID))
			profile = nil
		} else {
			uc.store.PutUser(profile)
		}
		for _, s := range bound {
			s.SetUser(profile)
		}
	case domain.AuthEventSignedOut:
		for _, s := range bound {
			s.SignOut()
		}
	}
}

func (uc *UserUseCase) loadProfile(ctx context.Context, userID string) (*domain.User, error) {
	if profile, ok := uc.store.User(userID); ok {
		return profile, nil
	}
	profile, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.NewDatabaseError("fetching profile", err)
	}
	if profile != nil {
		uc.store.PutUser(profile)
	}
	return profile, nil
}

func validateRegistration(input usecase.RegisterInput) *domain.AppError {
	switch {
	case strings.TrimSpace(input.Email) == "" || !strings.Contains(input.Email, "@"):
		return domain.NewBusinessRuleError(domain.ErrCodeInvalidFormat, "A valid email is required.", http.StatusBadRequest)
	case len(input.Password) < 6:
		return domain.NewBusinessRuleError(domain.ErrCodeInvalidFormat, "Password should be at least 6 characters.", http.StatusBadRequest)
	case strings.TrimSpace(input.Name) == "":
		return domain.NewBusinessRuleError(domain.ErrCodeRequiredField, "Full name is required.", http.StatusBadRequest)
	case strings.TrimSpace(input.InGameName) == "":
		return domain.NewBusinessRuleError(domain.ErrCodeRequiredField, "In-game name is required.", http.StatusBadRequest)
	}
	return nil
}
