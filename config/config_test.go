package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[mail]
admin_address = "admin@medflow.test"

[jwt]
secret = "not-so-secret"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "info", c.App.LogLevel)
	assert.False(t, c.Production())
	assert.Equal(t, 8080, c.Host.Port)
	assert.Equal(t, "sqlite", c.Database.Driver)
	assert.Equal(t, 24*time.Hour, c.Verification.TokenTTL)
	assert.Equal(t, 5*time.Minute, c.Verification.ResendCooldown)
	assert.Equal(t, int64(10<<20), c.Upload.MaxSize)
	assert.Equal(t, "General", c.Catalog.DefaultCategory)
	assert.Equal(t, "http://localhost:8080/uploads", c.Storage.PublicURL)
	assert.Equal(t, "admin@medflow.test", c.Mail.AdminAddress)
	assert.Zero(t, c.HTTP.CacheSeconds, "list responses are not cached unless asked for")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MAIL_ADMIN_ADDRESS", "approvals@medflow.test")
	t.Setenv("VERIFICATION_TOKEN_TTL", "2h")
	t.Setenv("HOST_DOMAIN", "api.medflow.test")
	t.Setenv("HOST_SSL_ENABLED", "true")

	c, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "approvals@medflow.test", c.Mail.AdminAddress)
	assert.Equal(t, 2*time.Hour, c.Verification.TokenTTL)
	assert.Equal(t, "https://api.medflow.test", c.BaseURL())
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"missing admin address": `
[jwt]
secret = "x"
`,
		"missing jwt secret": `
[mail]
admin_address = "a@b.c"
`,
		"bad log level": minimalConfig + `
[app]
log_level = "loud"
`,
		"bad cron schedule": minimalConfig + `
[verification]
cleanup_schedule = "whenever"
`,
		"s3 without bucket": minimalConfig + `
[storage]
type = "s3"
`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
