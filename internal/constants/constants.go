package constants

// Setting keys used by the settings store.
const (
	SettingInitialized = "initialized"
	SettingRentAmount  = "rentAmount"
	SettingRentDay     = "rentDay"
	SettingTheme       = "theme"
	SettingInstallID   = "installId"
	SettingActiveTimer = "activeTimer"
)

// First-run defaults, seeded once by EnsureInitialized.
const (
	DefaultRentAmount = 10000
	DefaultRentDay    = 1
	DefaultTheme      = "light"
)

// DefaultTaskCategories are seeded on first run. Seeding upserts by name, so
// re-running the seed never duplicates them.
var DefaultTaskCategories = []string{
	"Development",
	"Design",
	"Meeting",
	"Admin",
	"Research",
}

// Currency is the display suffix for amounts. All amounts are whole currency
// units (no sub-unit precision).
const Currency = "Kč"

// DateFormat is the input format accepted for date flags.
const DateFormat = "2006-01-02"

// DateTimeFormat is the input format accepted for timestamp flags.
const DateTimeFormat = "2006-01-02 15:04"
