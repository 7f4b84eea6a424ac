package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "bcrypt", viper.GetString("password.algorithm"))
	assert.Equal(t, 10, viper.GetInt("password.bcrypt_cost"))
	assert.Equal(t, "atm.log", viper.GetString("log.file"))
}

func TestLoad_File(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "atm.yaml")
	content := "db:\n  driver: sqlite\n  path: /tmp/ray.db\npassword:\n  bcrypt_cost: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	require.NoError(t, Load(path))
	assert.Equal(t, "sqlite", viper.GetString("db.driver"))
	assert.Equal(t, "/tmp/ray.db", viper.GetString("db.path"))
	assert.Equal(t, 4, viper.GetInt("password.bcrypt_cost"))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "atm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db:\n  url: postgres://file/bank\n"), 0o600))
	t.Setenv("DATABASE_URL", "postgres://env/bank")

	require.NoError(t, Load(path))
	assert.Equal(t, "postgres://env/bank", viper.GetString("db.url"))
}

func TestLoad_MalformedFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "atm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db: [unterminated\n"), 0o600))

	assert.Error(t, Load(path))
}

func TestLoadSessionConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		cfg := LoadSessionConfig()
		assert.Equal(t, 5, cfg.LoginMaxAttempts)
		assert.Equal(t, 15*time.Minute, cfg.LoginLockoutWindow)
		assert.Equal(t, "atm:login_failures", cfg.LoginKeyPrefix)
		assert.True(t, cfg.Color)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("ATM_LOGIN_MAX_ATTEMPTS", "3")
		t.Setenv("ATM_LOGIN_LOCKOUT_WINDOW", "90s")
		t.Setenv("NO_COLOR", "1")
		cfg := LoadSessionConfig()
		assert.Equal(t, 3, cfg.LoginMaxAttempts)
		assert.Equal(t, 90*time.Second, cfg.LoginLockoutWindow)
		assert.False(t, cfg.Color)
	})

	t.Run("unparseable values fall back", func(t *testing.T) {
		t.Setenv("ATM_LOGIN_MAX_ATTEMPTS", "many")
		t.Setenv("ATM_COLOR", "perhaps")
		t.Setenv("NO_COLOR", "")
		cfg := LoadSessionConfig()
		assert.Equal(t, 5, cfg.LoginMaxAttempts)
		assert.True(t, cfg.Color)
	})
}
