package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, `
site:
  siteName: Consulti
  mockData: true
  features:
    agreements: true
server:
  redisAddr: redis:6379
auth:
  jwtSecret: from-file
`)

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Consulti", conf.Site.SiteName)
	assert.True(t, conf.Site.MockData)
	assert.True(t, conf.Site.FeatureEnabled("agreements"))
	assert.False(t, conf.Site.FeatureEnabled("chat"))
	assert.Equal(t, "redis:6379", conf.Server.RedisAddr)
	assert.Equal(t, ":8000", conf.Server.ListenAddr)
	assert.Equal(t, "authenticated", conf.Auth.Audience)
	assert.Equal(t, 5*time.Minute, conf.Auth.CacheTTL)
	assert.Equal(t, "info", conf.Logging.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, `
auth:
  jwtSecret: from-file
server:
  listenAddr: ":9000"
`)
	t.Setenv("LPX_JWT_SECRET", "from-env")
	t.Setenv("LPX_LISTEN_ADDR", ":7000")
	t.Setenv("LPX_ALLOW_ORIGINS", "https://a.example,https://b.example")

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", conf.Auth.JWTSecret)
	assert.Equal(t, ":7000", conf.Server.ListenAddr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, conf.Server.AllowOrigins)
}

func TestLoad_FeatureDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LPX_JWT_SECRET", "secret")

	conf, err := Load("")
	require.NoError(t, err)
	assert.True(t, conf.Site.FeatureEnabled(domain.FeatureAgreements))

	t.Setenv("LPX_FEATURES", "agreements:false")
	conf, err = Load("")
	require.NoError(t, err)
	assert.False(t, conf.Site.FeatureEnabled(domain.FeatureAgreements))
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LPX_JWT_SECRET")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
