package domain

// Config holds the settings request handlers need at runtime.
type Config struct {
	SiteName string          `yaml:"siteName" env:"LPX_SITE_NAME"`
	MockData bool            `yaml:"mockData" env:"LPX_MOCK_DATA"`
	Features map[string]bool `yaml:"features" env:"LPX_FEATURES"`
}

// FeatureAgreements exposes agreement draft validation over HTTP.
const FeatureAgreements = "agreements"

func (c Config) FeatureEnabled(name string) bool {
	return c.Features[name]
}
