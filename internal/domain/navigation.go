package domain

// Page is a top-level view a client session can be on
type Page string

const (
	PageHome             Page = "home"
	PageLogin            Page = "login"
	PageRegister         Page = "register"
	PageWallet           Page = "wallet"
	PageAdmin            Page = "admin"
	PageTournamentDetail Page = "tournamentDetail"
	PageProfile          Page = "profile"
)

// Valid reports whether the page is known
func (p Page) Valid() bool {
	switch p {
	case PageHome, PageLogin, PageRegister, PageWallet, PageAdmin, PageTournamentDetail, PageProfile:
		return true
	}
	return false
}

// AdminSubPage is a section of the admin back-office
type AdminSubPage string

const (
	AdminDashboard     AdminSubPage = "dashboard"
	AdminTransactions  AdminSubPage = "transactions"
	AdminTournaments   AdminSubPage = "tournaments"
	AdminNotifications AdminSubPage = "notifications"
	AdminSettings      AdminSubPage = "settings"
)

// Valid reports whether the sub-page is known
func (a AdminSubPage) Valid() bool {
	switch a {
	case AdminDashboard, AdminTransactions, AdminTournaments, AdminNotifications, AdminSettings:
		return true
	}
	return false
}
