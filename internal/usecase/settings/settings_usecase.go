package settings

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"github.com/saradorri/tournamenthub/internal/state"
	"github.com/saradorri/tournamenthub/internal/usecase"
	"go.uber.org/zap"
)

// SettingsUseCase implements usecase.SettingsUseCase
type SettingsUseCase struct {
	settingsRepo domain.SettingsRepository
	store        *state.Store
	feedback     *usecase.Feedback
	logger       *logger.Logger
}

// NewSettingsUseCase creates a new settings use case
func NewSettingsUseCase(
	settingsRepo domain.SettingsRepository,
	store *state.Store,
	feedback *usecase.Feedback,
	logger *logger.Logger,
) usecase.SettingsUseCase {
	return &SettingsUseCase{
		settingsRepo: settingsRepo,
		store:        store,
		feedback:     feedback,
		logger:       logger,
	}
}

// Get returns the current settings
func (uc *SettingsUseCase) Get() *domain.AppSettings {
	return uc.store.Settings()
}

// Update writes the settings row. Settings that carry an id, or a snapshot
// that already holds a stored row, update it; otherwise a new row is inserted.
func (uc *SettingsUseCase) Update(ctx context.Context, sess *state.Session, settings *domain.AppSettings) (*domain.AppSettings, error) {
	if settings == nil || strings.TrimSpace(settings.AppName) == "" {
		return nil, uc.feedback.Reject(sess, domain.NewBusinessRuleError(
			domain.ErrCodeRequiredField, "App name is required.", http.StatusBadRequest,
		))
	}
	ctx = usecase.Detached(ctx)

	id := settings.ID
	if id == "" {
		id = uc.store.Settings().ID
	}

	var (
		saved   *domain.AppSettings
		err     error
		op      string
		message string
	)
	if id != "" {
		op, message = "updating settings", "Settings updated successfully!"
		saved, err = uc.settingsRepo.Update(ctx, id, settings.Fields())
	} else {
		op, message = "saving new settings", "Settings saved successfully!"
		row := settings.Clone()
		row.ID = ""
		saved, err = uc.settingsRepo.Create(ctx, row)
	}
	if err == nil && saved == nil {
		err = domain.ErrRowNotFound
	}
	if err != nil {
		return nil, uc.feedback.Fail(sess, op, err)
	}

	uc.store.SetSettings(saved)
	uc.feedback.Success(sess, message)
	uc.logger.Info("Settings saved", zap.String("settings_id", saved.ID))
	return saved.Clone(), nil
}

// ThemeCSS renders the theme as CSS custom properties. Colors that are not
// six-digit hex values are left out.
func (uc *SettingsUseCase) ThemeCSS() string {
	return RenderTheme(uc.store.Settings().Theme)
}

// RenderTheme renders a :root block with --color-* and --font-* variables
func RenderTheme(theme domain.Theme) string {
	colors := []struct{ name, hex string }{
		{"primary", theme.Colors.Primary},
		{"text-primary", theme.Colors.TextPrimary},
		{"text-secondary", theme.Colors.TextSecondary},
		{"background", theme.Colors.Background},
	}
	fonts := []struct{ name, family string }{
		{"heading", theme.Fonts.Heading},
		{"body", theme.Fonts.Body},
	}

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, c := range colors {
		if rgb, ok := HexToRGB(c.hex); ok {
			fmt.Fprintf(&b, "  --color-%s: %s;\n", c.name, rgb)
		}
	}
	for _, f := range fonts {
		if f.family != "" {
			fmt.Fprintf(&b, "  --font-%s: %s;\n", f.name, f.family)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// HexToRGB converts "#RRGGBB" (leading # optional) to "R G B"
func HexToRGB(hex string) (string, bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return "", false
	}
	parts := make([]string, 3)
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return "", false
		}
		parts[i] = strconv.FormatUint(v, 10)
	}
	return strings.Join(parts, " "), true
}
