// Package config loads fanthom settings from ~/.fanthom/config.toml, a .env
// file and FANTHOM_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bnema/fanthom/internal/logging"
)

const (
	EnvPrefix      = "FANTHOM"
	configDirName  = ".fanthom"
	configFileName = "config.toml"
)

const (
	KeyLedgerBackend         = "ledger.backend"
	KeyLedgerPath            = "ledger.path"
	KeyLedgerFirestoreProj   = "ledger.firestore_project"
	KeyLedgerCredentialsFile = "ledger.credentials_file"
	KeyLedgerPostgresDSN     = "ledger.postgres_dsn"
	KeyLedgerRedisURL        = "ledger.redis_url"
	KeyCompletionProvider    = "completion.provider"
	KeyCompletionModel       = "completion.model"
	KeyCompletionTemperature = "completion.temperature"
	KeyCompletionMaxTokens   = "completion.max_tokens"
	KeyCompletionMockMode    = "completion.mock_mode"
	KeyCompletionBaseURL     = "completion.base_url"
	KeyCompletionRelayURL    = "completion.relay_url"
	KeyCompletionAPIKeyRef   = "completion.api_key_ref"
	KeyCompletionAPIKey      = "completion.api_key"
	KeyCompletionMockDelay   = "completion.mock_delay"
	KeySecretsBackend        = "secrets.backend"
	KeySecretsPath           = "secrets.path"
	KeyLogLevel              = "log.level"
	KeyLogFormat             = "log.format"
	KeyServerAddr            = "server.addr"
)

const (
	BackendTOML      = "toml"
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
	BackendRedis     = "redis"

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderRelay  = "relay"
	ProviderMock   = "mock"

	SecretsChain = "chain"
	SecretsFile  = "file"
)

var (
	backends  = []string{BackendTOML, BackendFirestore, BackendPostgres, BackendRedis}
	providers = []string{ProviderOpenAI, ProviderGemini, ProviderRelay, ProviderMock}
	secrets   = []string{SecretsChain, SecretsFile}

	ErrInvalidConfig = errors.New("invalid configuration")
)

type Config struct {
	Ledger     LedgerConfig     `mapstructure:"ledger"`
	Completion CompletionConfig `mapstructure:"completion"`
	Log        LogConfig        `mapstructure:"log"`
	Secrets    SecretsConfig    `mapstructure:"secrets"`
	Server     ServerConfig     `mapstructure:"server"`
}

type LedgerConfig struct {
	Backend          string `mapstructure:"backend"`
	Path             string `mapstructure:"path"`
	FirestoreProject string `mapstructure:"firestore_project"`
	CredentialsFile  string `mapstructure:"credentials_file"`
	PostgresDSN      string `mapstructure:"postgres_dsn"`
	RedisURL         string `mapstructure:"redis_url"`
}

type CompletionConfig struct {
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	MockMode    bool          `mapstructure:"mock_mode"`
	BaseURL     string        `mapstructure:"base_url"`
	RelayURL    string        `mapstructure:"relay_url"`
	APIKeyRef   string        `mapstructure:"api_key_ref"`
	APIKey      string        `mapstructure:"api_key"`
	MockDelay   time.Duration `mapstructure:"mock_delay"`
}

// SecretsConfig selects where provider API keys live. The chain backend tries
// pass first and falls back to files under Path.
type SecretsConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type options struct {
	configFile string
	envFile    string
	home       string
}

type Option func(*options)

// WithConfigFile reads path instead of ~/.fanthom/config.toml. The file must exist.
func WithConfigFile(path string) Option {
	return func(o *options) { o.configFile = path }
}

// WithEnvFile loads path instead of ./.env. A missing file is ignored.
func WithEnvFile(path string) Option {
	return func(o *options) { o.envFile = path }
}

func WithHome(dir string) Option {
	return func(o *options) { o.home = dir }
}

// Load returns the merged viper instance, which storage adapters read
// directly, and its decoded form.
func Load(opts ...Option) (*viper.Viper, Config, error) {
	o := options{envFile: ".env"}
	for _, opt := range opts {
		opt(&o)
	}

	if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, Config{}, fmt.Errorf("load env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(KeyCompletionAPIKey, EnvPrefix+"_COMPLETION_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, Config{}, fmt.Errorf("bind api key env: %w", err)
	}

	path, explicit, err := configPath(o)
	if err != nil {
		return nil, Config{}, err
	}
	if err := readConfigFile(v, path, explicit); err != nil {
		return nil, Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, Config{}, fmt.Errorf("decode configuration: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, Config{}, err
	}

	return v, cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyLedgerBackend, BackendTOML)
	v.SetDefault(KeyLedgerPath, "")
	v.SetDefault(KeyLedgerFirestoreProj, "")
	v.SetDefault(KeyLedgerCredentialsFile, "")
	v.SetDefault(KeyLedgerPostgresDSN, "")
	v.SetDefault(KeyLedgerRedisURL, "")
	v.SetDefault(KeyCompletionProvider, ProviderOpenAI)
	v.SetDefault(KeyCompletionModel, "gpt-4o")
	v.SetDefault(KeyCompletionTemperature, 0.7)
	v.SetDefault(KeyCompletionMaxTokens, 6000)
	v.SetDefault(KeyCompletionMockMode, false)
	v.SetDefault(KeyCompletionBaseURL, "")
	v.SetDefault(KeyCompletionRelayURL, "")
	v.SetDefault(KeyCompletionAPIKeyRef, "")
	v.SetDefault(KeyCompletionAPIKey, "")
	v.SetDefault(KeyCompletionMockDelay, 1500*time.Millisecond)
	v.SetDefault(KeySecretsBackend, SecretsChain)
	v.SetDefault(KeySecretsPath, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, string(logging.FormatText))
	v.SetDefault(KeyServerAddr, "127.0.0.1:8080")
}

func configPath(o options) (string, bool, error) {
	if o.configFile != "" {
		return o.configFile, true, nil
	}

	home := o.home
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return "", false, fmt.Errorf("resolve home directory: %w", err)
		}
	}

	return filepath.Join(home, configDirName, configFileName), false, nil
}

func readConfigFile(v *viper.Viper, path string, explicit bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("stat config file: %w", err)
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (c *Config) normalize() {
	c.Ledger.Backend = strings.ToLower(strings.TrimSpace(c.Ledger.Backend))
	c.Completion.Provider = strings.ToLower(strings.TrimSpace(c.Completion.Provider))
	c.Secrets.Backend = strings.ToLower(strings.TrimSpace(c.Secrets.Backend))
	if c.Completion.MockMode {
		c.Completion.Provider = ProviderMock
	}
}

func (c Config) Validate() error {
	var problems []string

	if !slices.Contains(backends, c.Ledger.Backend) {
		problems = append(problems, fmt.Sprintf("%s must be one of %s", KeyLedgerBackend, strings.Join(backends, ", ")))
	}
	switch c.Ledger.Backend {
	case BackendPostgres:
		if c.Ledger.PostgresDSN == "" {
			problems = append(problems, KeyLedgerPostgresDSN+" is required for the postgres backend")
		}
	case BackendRedis:
		if c.Ledger.RedisURL == "" {
			problems = append(problems, KeyLedgerRedisURL+" is required for the redis backend")
		}
	}

	if !slices.Contains(providers, c.Completion.Provider) {
		problems = append(problems, fmt.Sprintf("%s must be one of %s", KeyCompletionProvider, strings.Join(providers, ", ")))
	}
	if c.Completion.Provider == ProviderRelay && c.Completion.RelayURL == "" {
		problems = append(problems, KeyCompletionRelayURL+" is required for the relay provider")
	}
	if c.Completion.Temperature < 0 || c.Completion.Temperature > 2 {
		problems = append(problems, KeyCompletionTemperature+" must be between 0 and 2")
	}
	if c.Completion.MockDelay < 0 {
		problems = append(problems, KeyCompletionMockDelay+" must not be negative")
	}
	if !slices.Contains(secrets, c.Secrets.Backend) {
		problems = append(problems, fmt.Sprintf("%s must be one of %s", KeySecretsBackend, strings.Join(secrets, ", ")))
	}
	if c.Completion.MaxTokens < 0 {
		problems = append(problems, KeyCompletionMaxTokens+" must not be negative")
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Logger builds the process logger from the log section. Call it on a
// validated Config; unknown values fall back to info and text.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, _ := logging.ParseLevel(c.Log.Level)
	format, err := logging.ParseFormat(c.Log.Format)
	if err != nil {
		format = logging.FormatText
	}
	return logging.New(logging.WithLevel(level), logging.WithFormat(format), logging.WithOutput(w))
}
