package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/BoltzExchange/lnaddress/internal/logger"
	"github.com/BoltzExchange/lnaddress/internal/utils"
	"github.com/BoltzExchange/lnaddress/pkg/lnurlpay"
	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"github.com/jessevdk/go-flags"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	MinTimeout = time.Second
	MaxTimeout = time.Minute
)

var ErrShowVersion = errors.New("version requested")

type helpOptions struct {
	ShowHelp    bool `short:"h" long:"help" description:"Display this help message"`
	ShowVersion bool `short:"v" long:"version" description:"Display version and exit"`
}

type HttpOptions struct {
	Host string   `long:"http.host" description:"Host the tool API should listen on"`
	Port int      `long:"http.port" short:"p" description:"Port the tool API should listen on"`
	Cors []string `long:"http.cors" description:"Origins allowed to call the tool API; can be specified multiple times"`
}

type LnurlOptions struct {
	Timeout time.Duration `long:"lnurl.timeout" description:"Timeout of requests to LNURL-pay services"`
	Proxy   string        `long:"lnurl.proxy" description:"Proxy URL to use for all requests to LNURL-pay services"`
}

type Config struct {
	DataDir string `short:"d" long:"datadir" description:"Data directory of lnaddress"`

	ConfigFile string `short:"c" long:"configfile" description:"Path to configuration file"`

	LogFile    string `short:"l" long:"logfile" description:"Path to the log file"`
	LogLevel   string `long:"loglevel" description:"Log level (fatal, error, warn, info, debug, silly)"`
	LogMaxSize int    `long:"logmaxsize" description:"Maximum size of the log file in megabytes before it gets rotated"`
	LogMaxAge  int    `long:"logmaxage" description:"Maximum age of old log files in days before they get deleted"`

	Log logger.Options `toml:"-"`

	Http  *HttpOptions  `group:"HTTP Options"`
	Lnurl *LnurlOptions `group:"LNURL Options"`

	Help *helpOptions `group:"Help Options" toml:"-"`
}

func defaultConfig(dataDir string) Config {
	return Config{
		DataDir: dataDir,

		LogLevel:   "info",
		LogMaxSize: 5,
		LogMaxAge:  30,

		Http: &HttpOptions{
			Host: "127.0.0.1",
			Port: 9010,
		},

		Lnurl: &LnurlOptions{
			Timeout: lnurlpay.DefaultTimeout,
		},

		Help: &helpOptions{},
	}
}

// LoadConfig reads the config from the command line and the config file.
// Values on the command line take precedence.
func LoadConfig(dataDir string, args []string) (*Config, error) {
	cfg := defaultConfig(dataDir)

	parser := flags.NewParser(&cfg, flags.IgnoreUnknown)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, fmt.Errorf("could not parse arguments: %w", err)
	}

	if cfg.Help.ShowVersion {
		return &cfg, ErrShowVersion
	}

	if cfg.Help.ShowHelp {
		parser.WriteHelp(os.Stdout)
		return &cfg, flags.ErrHelp
	}

	cfg.DataDir = utils.ExpandHomeDir(cfg.DataDir)
	cfg.ConfigFile = utils.ExpandDefaultPath(cfg.DataDir, utils.ExpandHomeDir(cfg.ConfigFile), "lnaddress.toml")

	if utils.FileExists(cfg.ConfigFile) {
		if _, err := toml.DecodeFile(cfg.ConfigFile, &cfg); err != nil {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	// parse a second time to ensure cli flags go over config values
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, fmt.Errorf("could not parse arguments: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.LogFile = utils.ExpandDefaultPath(cfg.DataDir, utils.ExpandHomeDir(cfg.LogFile), "lnaddress.log")
	cfg.Log = logger.Options{
		Level: cfg.LogLevel,
		Logger: &lumberjack.Logger{
			Filename: cfg.LogFile,
			MaxAge:   cfg.LogMaxAge,
			MaxSize:  cfg.LogMaxSize,
		},
	}

	if err := createDirIfNotExists(cfg.DataDir); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate reports every invalid option at once
func (cfg *Config) Validate() error {
	var result *multierror.Error

	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		result = multierror.Append(result, err)
	}
	if cfg.LogMaxSize < 0 {
		result = multierror.Append(result, fmt.Errorf("logmaxsize must not be negative: %d", cfg.LogMaxSize))
	}
	if cfg.LogMaxAge < 0 {
		result = multierror.Append(result, fmt.Errorf("logmaxage must not be negative: %d", cfg.LogMaxAge))
	}

	if cfg.Http.Port < 0 || cfg.Http.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("invalid http.port: %d", cfg.Http.Port))
	}

	if cfg.Lnurl.Timeout < MinTimeout || cfg.Lnurl.Timeout > MaxTimeout {
		result = multierror.Append(result, fmt.Errorf(
			"lnurl.timeout has to be between %s and %s: %s", MinTimeout, MaxTimeout, cfg.Lnurl.Timeout,
		))
	}

	if cfg.Lnurl.Proxy != "" {
		proxy, err := url.Parse(cfg.Lnurl.Proxy)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("invalid lnurl.proxy: %w", err))
		} else if proxy.Scheme == "" || proxy.Host == "" {
			result = multierror.Append(result, fmt.Errorf("lnurl.proxy needs a scheme and host: %s", cfg.Lnurl.Proxy))
		}
	}

	return result.ErrorOrNil()
}

func (cfg *Config) HttpAddress() string {
	return fmt.Sprintf("%s:%d", cfg.Http.Host, cfg.Http.Port)
}

func (cfg *Config) LnurlOptions() lnurlpay.Options {
	return lnurlpay.Options{
		Timeout: cfg.Lnurl.Timeout,
		Proxy:   cfg.Lnurl.Proxy,
	}
}

func createDirIfNotExists(dir string) error {
	if !utils.FileExists(dir) {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("could not create directory: %w", err)
		}
	}
	return nil
}
