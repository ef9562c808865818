package config

import (
	"os"
	"path"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"
)

func writeConfigFile(t *testing.T, dataDir string, content string) {
	require.NoError(t, os.WriteFile(path.Join(dataDir, "lnaddress.toml"), []byte(content), 0600))
}

func TestLoadConfigDefaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := LoadConfig(dataDir, nil)
	require.NoError(t, err)

	require.Equal(t, dataDir, cfg.DataDir)
	require.Equal(t, path.Join(dataDir, "lnaddress.toml"), cfg.ConfigFile)
	require.Equal(t, path.Join(dataDir, "lnaddress.log"), cfg.LogFile)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "127.0.0.1:9010", cfg.HttpAddress())
	require.Equal(t, 15*time.Second, cfg.Lnurl.Timeout)
	require.Empty(t, cfg.Http.Cors)

	require.Equal(t, "info", cfg.Log.Level)
	logFile, ok := cfg.Log.Logger.(*lumberjack.Logger)
	require.True(t, ok)
	require.Equal(t, cfg.LogFile, logFile.Filename)
	require.Equal(t, 30, logFile.MaxAge)
	require.Equal(t, 5, logFile.MaxSize)
}

func TestLoadConfigFile(t *testing.T) {
	dataDir := t.TempDir()
	writeConfigFile(t, dataDir, `
loglevel = "debug"

[http]
port = 9100
cors = ["https://example.com"]

[lnurl]
timeout = "20s"
proxy = "socks5://127.0.0.1:9050"
`)

	cfg, err := LoadConfig(dataDir, nil)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 9100, cfg.Http.Port)
	require.Equal(t, []string{"https://example.com"}, cfg.Http.Cors)
	require.Equal(t, 20*time.Second, cfg.Lnurl.Timeout)

	options := cfg.LnurlOptions()
	require.Equal(t, 20*time.Second, options.Timeout)
	require.Equal(t, "socks5://127.0.0.1:9050", options.Proxy)
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	dataDir := t.TempDir()
	writeConfigFile(t, dataDir, `
loglevel = "debug"

[http]
port = 9100
`)

	cfg, err := LoadConfig(dataDir, []string{"--loglevel", "warn", "--http.port", "9200", "--lnurl.timeout", "5s"})
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, 9200, cfg.Http.Port)
	require.Equal(t, 5*time.Second, cfg.Lnurl.Timeout)
}

func TestLoadConfigCustomPaths(t *testing.T) {
	dataDir := t.TempDir()
	configFile := path.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(configFile, []byte(`loglevel = "error"`), 0600))

	nested := path.Join(dataDir, "nested")
	cfg, err := LoadConfig(dataDir, []string{"--datadir", nested, "--configfile", configFile})
	require.NoError(t, err)
	require.Equal(t, "error", cfg.LogLevel)
	require.Equal(t, path.Join(nested, "lnaddress.log"), cfg.LogFile)
	require.DirExists(t, nested)
}

func TestLoadConfigInvalidFile(t *testing.T) {
	dataDir := t.TempDir()
	writeConfigFile(t, dataDir, `loglevel = `)

	_, err := LoadConfig(dataDir, nil)
	require.ErrorContains(t, err, "could not read config file")
}

func TestLoadConfigHelpAndVersion(t *testing.T) {
	_, err := LoadConfig(t.TempDir(), []string{"--version"})
	require.ErrorIs(t, err, ErrShowVersion)

	_, err = LoadConfig(t.TempDir(), []string{"--help"})
	require.ErrorIs(t, err, flags.ErrHelp)
}

func TestValidate(t *testing.T) {
	valid := defaultConfig(t.TempDir())
	require.NoError(t, valid.Validate())

	invalid := defaultConfig(t.TempDir())
	invalid.LogLevel = "loud"
	invalid.Http.Port = 70000
	invalid.Lnurl.Timeout = 2 * time.Minute
	invalid.Lnurl.Proxy = "127.0.0.1"

	err := invalid.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 4)
}

func TestValidateTimeoutBounds(t *testing.T) {
	tests := []struct {
		timeout time.Duration
		valid   bool
	}{
		{time.Second, true},
		{time.Minute, true},
		{999 * time.Millisecond, false},
		{time.Minute + time.Millisecond, false},
		{0, false},
	}

	for _, tc := range tests {
		t.Run(tc.timeout.String(), func(t *testing.T) {
			cfg := defaultConfig(t.TempDir())
			cfg.Lnurl.Timeout = tc.timeout
			if tc.valid {
				require.NoError(t, cfg.Validate())
			} else {
				require.Error(t, cfg.Validate())
			}
		})
	}
}
