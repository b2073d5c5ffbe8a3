package domain

import (
	"context"
	"database/sql/driver"
)

// PaymentGateway is a mobile-money provider users can deposit through
type PaymentGateway struct {
	Name                string `json:"name"`
	LogoURL             string `json:"logo_url,omitempty"`
	PaymentNumber       string `json:"payment_number,omitempty"`
	PaymentInstructions string `json:"payment_instructions,omitempty"`
	APIKey              string `json:"api_key,omitempty"`
	SecretKey           string `json:"secret_key,omitempty"`
	Username            string `json:"username,omitempty"`
	Password            string `json:"password,omitempty"`
	Enabled             bool   `json:"enabled"`
}

// PaymentGateways is stored as a single jsonb column
type PaymentGateways []PaymentGateway

// Scan implements the sql.Scanner interface
func (p *PaymentGateways) Scan(value interface{}) error {
	return scanJSON(value, p)
}

// Value implements the driver.Valuer interface
func (p PaymentGateways) Value() (driver.Value, error) {
	return valueJSON(p)
}

// ThemeColors are hex color strings keyed by role
type ThemeColors struct {
	Primary       string `json:"primary"`
	TextPrimary   string `json:"text_primary"`
	TextSecondary string `json:"text_secondary"`
	Background    string `json:"background"`
}

// ThemeFonts are CSS font-family values
type ThemeFonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Theme groups the branding colors and fonts
type Theme struct {
	Colors ThemeColors `json:"colors"`
	Fonts  ThemeFonts  `json:"fonts"`
}

// Scan implements the sql.Scanner interface
func (t *Theme) Scan(value interface{}) error {
	return scanJSON(value, t)
}

// Value implements the driver.Valuer interface
func (t Theme) Value() (driver.Value, error) {
	return valueJSON(t)
}

// AppSettings is the single branding and payment configuration row
type AppSettings struct {
	ID              string          `json:"id,omitempty" gorm:"primaryKey;column:id;type:uuid"`
	AppName         string          `json:"app_name" gorm:"type:varchar(128);not null"`
	AppLogoURL      string          `json:"app_logo_url,omitempty" gorm:"type:text"`
	MarqueeText     string          `json:"marquee_text,omitempty" gorm:"type:text"`
	PaymentGateways PaymentGateways `json:"payment_gateways" gorm:"type:jsonb"`
	Theme           Theme           `json:"theme" gorm:"type:jsonb"`
}

// TableName specifies the table name for AppSettings
func (s AppSettings) TableName() string {
	return "app_settings"
}

// RowID returns the row identifier
func (s *AppSettings) RowID() string { return s.ID }

// AssignID sets the row identifier
func (s *AppSettings) AssignID(id string) { s.ID = id }

// Clone returns a deep copy of the settings
func (s *AppSettings) Clone() *AppSettings {
	if s == nil {
		return nil
	}
	c := *s
	if s.PaymentGateways != nil {
		c.PaymentGateways = make(PaymentGateways, len(s.PaymentGateways))
		copy(c.PaymentGateways, s.PaymentGateways)
	}
	return &c
}

// Gateway returns the gateway with the given name
func (s *AppSettings) Gateway(name string) (PaymentGateway, bool) {
	for _, g := range s.PaymentGateways {
		if g.Name == name {
			return g, true
		}
	}
	return PaymentGateway{}, false
}

// Public returns a copy without gateway credentials, safe for non-admin viewers
func (s *AppSettings) Public() *AppSettings {
	c := s.Clone()
	for i := range c.PaymentGateways {
		g := &c.PaymentGateways[i]
		g.APIKey, g.SecretKey, g.Username, g.Password = "", "", "", ""
	}
	return c
}

// Fields returns the settings as a full-row partial update
func (s *AppSettings) Fields() Fields {
	return Fields{
		FieldAppName:         s.AppName,
		FieldAppLogoURL:      s.AppLogoURL,
		FieldMarqueeText:     s.MarqueeText,
		FieldPaymentGateways: s.PaymentGateways,
		FieldTheme:           s.Theme,
	}
}

// DefaultAppSettings returns the settings used until a row exists in the backend
func DefaultAppSettings() *AppSettings {
	return &AppSettings{
		AppName: "FF HUB",
		Theme: Theme{
			Colors: ThemeColors{
				Primary:       "#EF4444",
				TextPrimary:   "#111827",
				TextSecondary: "#6B7280",
				Background:    "#F9FAFB",
			},
			Fonts: ThemeFonts{
				Heading: "Orbitron, sans-serif",
				Body:    "Rajdhani, sans-serif",
			},
		},
		PaymentGateways: PaymentGateways{
			{
				Name:                "bKash",
				LogoURL:             "https://seeklogo.com/images/B/bkash-logo-FBB25873C6-seeklogo.com.png",
				PaymentNumber:       "01700000000",
				PaymentInstructions: "Please use the reference number provided below when sending money. Your balance will be updated automatically.",
				Enabled:             true,
			},
			{
				Name:                "Nagad",
				LogoURL:             "https://download.logo.wine/logo/Nagad/Nagad-Logo.wine.png",
				PaymentNumber:       "01800000000",
				PaymentInstructions: "Please use the reference number provided below as the payment reference to ensure your transaction is processed instantly.",
				Enabled:             true,
			},
			{
				Name:    "Rocket",
				LogoURL: "https://seeklogo.com/images/R/rocket-logo-622E42682C-seeklogo.com.png",
			},
			{
				Name:    "Upay",
				LogoURL: "https://seeklogo.com/images/U/upay-logo-A95A475591-seeklogo.com.png",
			},
		},
	}
}

// SettingsRepository defines the backend boundary for the app_settings collection.
// Get returns nil without error when no row exists.
type SettingsRepository interface {
	Get(ctx context.Context) (*AppSettings, error)
	Create(ctx context.Context, settings *AppSettings) (*AppSettings, error)
	Update(ctx context.Context, id string, fields Fields) (*AppSettings, error)
}
