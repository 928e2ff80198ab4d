package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	t.Run("process environment", func(t *testing.T) {
		t.Setenv(EnvAPIURL, "http://192.168.1.98:3000")
		t.Setenv(EnvAppToken, "app-secret")
		t.Setenv(EnvRequestTimeout, "4s")
		t.Setenv(EnvSerializeWrites, "true")
		t.Setenv(EnvTimezone, "Europe/Kyiv")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg, nil)

		assert.Equal(t, "http://192.168.1.98:3000", cfg.APIURL)
		assert.Equal(t, "app-secret", cfg.AppToken)
		assert.Equal(t, 4*time.Second, cfg.RequestTimeout)
		assert.True(t, cfg.SerializeWrites)
		assert.Equal(t, "Europe/Kyiv", cfg.Timezone)
	})

	t.Run("dotenv file named by flag", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("ZATYSHOK_LOG_FORMAT=zap\nZATYSHOK_SESSION_DB=/tmp/z.db\n"), 0o600))
		t.Cleanup(func() {
			os.Unsetenv(EnvLogFormat)
			os.Unsetenv(EnvSessionDBPath)
		})

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg, []string{"-e", path})

		assert.Equal(t, "zap", cfg.LogFormat)
		assert.Equal(t, "/tmp/z.db", cfg.SessionDBPath)
	})

	t.Run("missing explicit dotenv → panics", func(t *testing.T) {
		require.Panics(t, func() { parseEnv(&Config{}, []string{"-env", "/does/not/exist.env"}) })
	})

	t.Run("bad boolean → panics", func(t *testing.T) {
		t.Setenv(EnvSerializeWrites, "sometimes")
		require.Panics(t, func() { parseEnv(&Config{}, nil) })
	})
}
