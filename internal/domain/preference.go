package domain

const (
	PreferenceCookie = "webring-enabled"
	// one year
	PreferenceMaxAge = 60 * 60 * 24 * 365
)

type Preference struct {
	Enabled bool `json:"enabled"`
}
