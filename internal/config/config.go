package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/flickr-mirror/internal/constants"
	"github.com/oshokin/flickr-mirror/internal/logger"
	"github.com/oshokin/flickr-mirror/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// APIKey is the Flickr application key.
	APIKey string `mapstructure:"api_key"`
	// APISecret is the Flickr application secret, used to sign requests.
	APISecret string `mapstructure:"api_secret"`
	// OAuthToken is a previously issued access token. Empty means public-only access.
	OAuthToken string `mapstructure:"oauth_token"`
	// OAuthTokenSecret is the secret paired with OAuthToken.
	OAuthTokenSecret string `mapstructure:"oauth_token_secret"`
	// UserID is the NSID of the account whose albums are mirrored.
	UserID string `mapstructure:"user_id"`
	// OutputPath is the directory where album folders are created.
	OutputPath string `mapstructure:"output_path"`
	// LogFile is the path of the warnings log. Defaults to a file inside OutputPath.
	LogFile string `mapstructure:"log_file"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// PageSize is the number of entries requested per catalog page.
	PageSize int64 `mapstructure:"page_size"`
	// DownloadPause is the fixed wait before every download attempt.
	DownloadPause string `mapstructure:"download_pause"`
	// MaxDownloadAttempts caps attempts per media item. Zero retries forever.
	MaxDownloadAttempts int64 `mapstructure:"max_download_attempts"`
	// RetryAttemptsCount is the number of transient-error retries inside a single request.
	RetryAttemptsCount int64 `mapstructure:"retry_attempts_count"`
	// MinRetryPause is the minimum pause before retrying a request.
	MinRetryPause string `mapstructure:"min_retry_pause"`
	// MaxRetryPause is the maximum pause before retrying a request.
	MaxRetryPause string `mapstructure:"max_retry_pause"`
	// MaxRequestPause is the upper bound of the random delay before each transfer.
	MaxRequestPause string `mapstructure:"max_request_pause"`
	// DownloadSpeedLimit sets the maximum download speed (e.g., "1MB", "500KB").
	DownloadSpeedLimit string `mapstructure:"download_speed_limit"`
	// APIRequestsPerSecond limits the rate of catalog API calls. Zero disables limiting.
	APIRequestsPerSecond float64 `mapstructure:"api_requests_per_second"`
	// FlickrBaseURL is the base URL of the catalog API (set automatically).
	FlickrBaseURL string
	// DryRun indicates whether to harvest and report without writing media files.
	DryRun bool
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedDownloadPause is the parsed fixed pause before each download attempt.
	ParsedDownloadPause time.Duration
	// ParsedMinRetryPause is the parsed minimum retry pause duration.
	ParsedMinRetryPause time.Duration
	// ParsedMaxRetryPause is the parsed maximum retry pause duration.
	ParsedMaxRetryPause time.Duration
	// ParsedMaxRequestPause is the parsed upper bound of the pre-transfer delay.
	ParsedMaxRequestPause time.Duration
	// ParsedDownloadSpeedLimit is the parsed download speed limit in bytes per second.
	ParsedDownloadSpeedLimit int64
}

const (
	// FlickrBaseURL is the base URL for the Flickr REST API.
	FlickrBaseURL = "https://api.flickr.com"

	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".flickr-mirror.yaml"

	// DefaultMaxLogLength is the default maximum size (in bytes) of a logged HTTP dump.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB

	// MaxPageSize is the largest page the catalog API serves.
	MaxPageSize = 500
)

// Static error definitions for better error handling.
var (
	// ErrEmptyAPIKey indicates that the API key is missing.
	ErrEmptyAPIKey = errors.New("api_key cannot be empty")
	// ErrEmptyUserID indicates that the user ID is missing.
	ErrEmptyUserID = errors.New("user_id cannot be empty")
	// ErrEmptyOutputPath indicates that the output path is missing.
	ErrEmptyOutputPath = errors.New("output_path cannot be empty")
	// ErrIncompleteOAuthCredentials indicates that only some of the OAuth fields are set.
	ErrIncompleteOAuthCredentials = errors.New("oauth_token, oauth_token_secret and api_secret must be set together")
	// ErrInvalidPageSize indicates that the page size is out of range.
	ErrInvalidPageSize = errors.New("invalid page_size")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidDownloadPause indicates that the download pause is negative.
	ErrInvalidDownloadPause = errors.New("download_pause cannot be negative")
	// ErrInvalidMaxDownloadAttempts indicates that the attempt cap is negative.
	ErrInvalidMaxDownloadAttempts = errors.New("max_download_attempts cannot be negative")
	// ErrInvalidRetryAttempts indicates that the retry attempts count is invalid.
	ErrInvalidRetryAttempts = errors.New("retry_attempts_count must be a positive integer")
	// ErrInvalidMinRetryPause indicates that the min retry pause duration is invalid.
	ErrInvalidMinRetryPause = errors.New("min_retry_pause must be positive")
	// ErrInvalidMaxRetryPause indicates that the max retry pause duration is invalid.
	ErrInvalidMaxRetryPause = errors.New("max_retry_pause must be positive")
	// ErrMaxRetryPauseTooLow indicates that max_retry_pause is lower than min_retry_pause.
	ErrMaxRetryPauseTooLow = errors.New("max_retry_pause cannot be lower than min_retry_pause")
	// ErrInvalidMaxRequestPause indicates that the pre-transfer delay is negative.
	ErrInvalidMaxRequestPause = errors.New("max_request_pause cannot be negative")
	// ErrInvalidRequestsPerSecond indicates that the API rate is negative.
	ErrInvalidRequestsPerSecond = errors.New("api_requests_per_second cannot be negative")
	// ErrConfigFileExists indicates that a default config would overwrite an existing file.
	ErrConfigFileExists = errors.New("config file already exists")
)

// LoadConfig loads configuration settings from a YAML file.
// Values missing from the file fall back to the defaults of the generated config.
func LoadConfig(configFilename string) (*Config, error) {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configFilename)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config from file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:funlen,gocognit,cyclop // Validation functions naturally have high complexity and length due to sequential checks.
func ValidateConfig(cfg *Config) error {
	var err error

	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return ErrEmptyAPIKey
	}

	cfg.UserID = strings.TrimSpace(cfg.UserID)
	if cfg.UserID == "" {
		return ErrEmptyUserID
	}

	cfg.OutputPath = strings.TrimSpace(cfg.OutputPath)
	if cfg.OutputPath == "" {
		return ErrEmptyOutputPath
	}

	// Signed requests need the whole credential set; a token alone is useless.
	hasToken := cfg.OAuthToken != "" || cfg.OAuthTokenSecret != ""
	if hasToken && (cfg.OAuthToken == "" || cfg.OAuthTokenSecret == "" || cfg.APISecret == "") {
		return ErrIncompleteOAuthCredentials
	}

	if cfg.FlickrBaseURL == "" {
		cfg.FlickrBaseURL = FlickrBaseURL
	}

	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.OutputPath, constants.DefaultLogFilename)
	}

	if cfg.PageSize < 1 || cfg.PageSize > MaxPageSize {
		return fmt.Errorf("%w: must be between 1 and %d", ErrInvalidPageSize, MaxPageSize)
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	cfg.ParsedDownloadPause, err = parseOptionalDuration(cfg.DownloadPause)
	if err != nil {
		return fmt.Errorf("failed to parse download pause: %w", err)
	}

	if cfg.ParsedDownloadPause < 0 {
		return ErrInvalidDownloadPause
	}

	if cfg.MaxDownloadAttempts < 0 {
		return ErrInvalidMaxDownloadAttempts
	}

	if cfg.RetryAttemptsCount <= 0 {
		return ErrInvalidRetryAttempts
	}

	cfg.ParsedMinRetryPause, err = time.ParseDuration(cfg.MinRetryPause)
	if err != nil {
		return fmt.Errorf("failed to parse min retry pause: %w", err)
	}

	if cfg.ParsedMinRetryPause <= 0 {
		return ErrInvalidMinRetryPause
	}

	cfg.ParsedMaxRetryPause, err = time.ParseDuration(cfg.MaxRetryPause)
	if err != nil {
		return fmt.Errorf("failed to parse max retry pause: %w", err)
	}

	if cfg.ParsedMaxRetryPause <= 0 {
		return ErrInvalidMaxRetryPause
	}

	if cfg.ParsedMaxRetryPause < cfg.ParsedMinRetryPause {
		return ErrMaxRetryPauseTooLow
	}

	cfg.ParsedMaxRequestPause, err = parseOptionalDuration(cfg.MaxRequestPause)
	if err != nil {
		return fmt.Errorf("failed to parse max request pause: %w", err)
	}

	if cfg.ParsedMaxRequestPause < 0 {
		return ErrInvalidMaxRequestPause
	}

	downloadSpeedLimit := strings.TrimSpace(cfg.DownloadSpeedLimit)
	if downloadSpeedLimit != "" && downloadSpeedLimit != "0" {
		parsedDownloadSpeedLimit, parseErr := humanize.ParseBytes(downloadSpeedLimit)
		if parseErr != nil {
			return fmt.Errorf("failed to parse download speed limit: %w", parseErr)
		}

		// io.CopyN accepts only int64 so we transform it safely in order to use it later.
		cfg.ParsedDownloadSpeedLimit = utils.SafeUint64ToInt64(parsedDownloadSpeedLimit)
	} else {
		cfg.ParsedDownloadSpeedLimit = 0
	}

	if cfg.APIRequestsPerSecond < 0 {
		return ErrInvalidRequestsPerSecond
	}

	return nil
}

// WriteDefaultConfig writes a commented default configuration file.
// It refuses to overwrite an existing file.
func WriteDefaultConfig(configFilename string) error {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	if _, err := os.Stat(configFilename); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigFileExists, configFilename)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	content, err := yaml.Marshal(defaultConfigNode())
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err = os.WriteFile(configFilename, content, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// defaultSetting is one key of the generated configuration file.
type defaultSetting struct {
	key     string
	value   any
	comment string
}

//nolint:mnd // Default values are documented in place.
func defaultSettings() []defaultSetting {
	return []defaultSetting{
		{"api_key", "", "Flickr application key."},
		{"api_secret", "", "Flickr application secret. Required together with the OAuth token."},
		{"oauth_token", "", "Access token issued for your account. Leave empty to mirror public albums only."},
		{"oauth_token_secret", "", "Secret paired with oauth_token."},
		{"user_id", "", "NSID of the account to mirror, e.g. 12345678@N01."},
		{"output_path", "flickr-mirror", "Directory that receives one folder per album."},
		{"log_file", "", "Warnings log. Empty means <output_path>/" + constants.DefaultLogFilename + "."},
		{"log_level", "info", "debug, info, warn or error."},
		{"page_size", MaxPageSize, "Entries requested per catalog page (1-500)."},
		{"download_pause", "1s", "Fixed wait before every download attempt."},
		{"max_download_attempts", 0, "Attempts per media item before giving up. 0 retries forever."},
		{"retry_attempts_count", 5, "Retries of a single request on connection errors."},
		{"min_retry_pause", "1s", "Minimum pause before retrying a request."},
		{"max_retry_pause", "5s", "Maximum pause before retrying a request."},
		{"max_request_pause", "2s", "Upper bound of the random delay before each transfer."},
		{"download_speed_limit", "", "Maximum download speed, e.g. 500KB or 1.5MB. Empty disables the limit."},
		{"api_requests_per_second", 1.0, "Catalog API calls per second. 0 disables the limit."},
	}
}

func setDefaults(v *viper.Viper) {
	for _, setting := range defaultSettings() {
		v.SetDefault(setting.key, setting.value)
	}
}

func defaultConfigNode() *yaml.Node {
	mapping := &yaml.Node{Kind: yaml.MappingNode}

	for _, setting := range defaultSettings() {
		keyNode := &yaml.Node{
			Kind:        yaml.ScalarNode,
			Value:       setting.key,
			HeadComment: setting.comment,
		}

		valueNode := new(yaml.Node)
		if err := valueNode.Encode(setting.value); err != nil {
			valueNode = &yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprint(setting.value)}
		}

		if setting.value == "" {
			valueNode.Style = yaml.DoubleQuotedStyle
		}

		mapping.Content = append(mapping.Content, keyNode, valueNode)
	}

	return &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{mapping},
	}
}

// parseOptionalDuration parses a duration, treating an empty string as zero.
func parseOptionalDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	return time.ParseDuration(value)
}
