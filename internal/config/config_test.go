package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LIFTLOG_DATABASE_URL", "LIFTLOG_USER_ID", "LIFTLOG_LOG_LEVEL",
		"LIFTLOG_LOG_FILE", "LIFTLOG_TIMEZONE", "DEV_MODE",
	} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "liftlog.db"), cfg.DB.ConnectionString)
	assert.Equal(t, DefaultUserID, cfg.User.ID)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_FileAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[database]
connection_string = "libsql://gym.turso.io?authToken=abc"

[user]
id = "ana"

[display]
timezone = "America/Sao_Paulo"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "libsql://gym.turso.io?authToken=abc", cfg.DB.ConnectionString)
	assert.Equal(t, "ana", cfg.User.ID)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)

	t.Setenv("LIFTLOG_USER_ID", "bruno")
	t.Setenv("LIFTLOG_LOG_LEVEL", "debug")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bruno", cfg.User.ID)
	assert.Equal(t, "debug", cfg.Log.Level)

	t.Setenv("DEV_MODE", "true")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, devDatabaseURL, cfg.DB.ConnectionString)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("LIFTLOG_USER_ID")
	require.NoError(t, os.WriteFile(".env", []byte("LIFTLOG_USER_ID=from-dotenv\n"), 0o644))

	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.User.ID)
}

func TestValidate(t *testing.T) {
	cfg := Default(t.TempDir())
	require.NoError(t, cfg.Validate())

	cfg.Display.Timezone = "Mars/Olympus"
	assert.ErrorContains(t, cfg.Validate(), "display.timezone")

	cfg = Default(t.TempDir())
	cfg.User.ID = " "
	cfg.DB.ConnectionString = ""
	err := cfg.Validate()
	assert.ErrorContains(t, err, "user.id")
	assert.ErrorContains(t, err, "connection_string")
}

func TestWriteRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default(filepath.Dir(path))
	cfg.Log.JSON = true
	require.NoError(t, cfg.Write(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
