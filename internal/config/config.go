// Package config loads and validates demosites configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Paths      PathsConfig      `mapstructure:"paths"`
	Fetch      FetchConfig      `mapstructure:"fetch"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Screenshot ScreenshotConfig `mapstructure:"screenshot"`
	Assets     AssetsConfig     `mapstructure:"assets"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// PathsConfig locates the site directory tree the tool maintains.
type PathsConfig struct {
	Root         string   `mapstructure:"root"`
	TemplateDir  string   `mapstructure:"template_dir"`
	AssetsDir    string   `mapstructure:"assets_dir"`
	ManifestFile string   `mapstructure:"manifest_file"`
	ExcludeDirs  []string `mapstructure:"exclude_dirs"`
}

// FetchConfig controls the site content fetcher.
type FetchConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
	MaxChars       int    `mapstructure:"max_chars"`
}

// OpenAIConfig controls the summary generator and its retry policy.
type OpenAIConfig struct {
	APIKey         string  `mapstructure:"api_key"`
	Model          string  `mapstructure:"model"`
	BaseURL        string  `mapstructure:"base_url"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
	MaxAttempts    int     `mapstructure:"max_attempts"`
	BaseBackoffMs  int     `mapstructure:"base_backoff_ms"`
	PromptMaxChars int     `mapstructure:"prompt_max_chars"`
	Temperature    float64 `mapstructure:"temperature"`
}

// ScreenshotConfig controls the headless browser capture step.
type ScreenshotConfig struct {
	Enabled           bool     `mapstructure:"enabled"`
	NavTimeoutSeconds int      `mapstructure:"nav_timeout_seconds"`
	SettleMs          int      `mapstructure:"settle_ms"`
	ViewportWidth     int      `mapstructure:"viewport_width"`
	ViewportHeight    int      `mapstructure:"viewport_height"`
	DenyMarkers       []string `mapstructure:"deny_markers"`
}

// AssetsConfig holds the external asset bucket convention.
type AssetsConfig struct {
	S3Base   string `mapstructure:"s3_base"`
	S3Bucket string `mapstructure:"s3_bucket"`
	Tag      string `mapstructure:"tag"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from defaults, an optional YAML file, and environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DEMOSITES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The CI workflow exports the bare OpenAI variables.
	_ = v.BindEnv("openai.api_key", "DEMOSITES_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("openai.model", "DEMOSITES_OPENAI_MODEL", "OPENAI_MODEL")

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("paths.root", ".")
	v.SetDefault("paths.template_dir", "company-template")
	v.SetDefault("paths.assets_dir", "assets")
	v.SetDefault("paths.manifest_file", "sites.json")
	v.SetDefault("paths.exclude_dirs", []string{".github", "assets", "scripts"})

	v.SetDefault("fetch.timeout_seconds", 20)
	v.SetDefault("fetch.user_agent", "Mozilla/5.0 (compatible; GitHubActionsBot/1.0; +https://github.com/)")
	v.SetDefault("fetch.max_chars", 12000)

	v.SetDefault("openai.model", "gpt-4.1-mini")
	v.SetDefault("openai.base_url", "https://api.openai.com")
	v.SetDefault("openai.timeout_seconds", 60)
	v.SetDefault("openai.max_attempts", 5)
	v.SetDefault("openai.base_backoff_ms", 1500)
	v.SetDefault("openai.prompt_max_chars", 8000)
	v.SetDefault("openai.temperature", 0.4)

	v.SetDefault("screenshot.enabled", true)
	v.SetDefault("screenshot.nav_timeout_seconds", 45)
	v.SetDefault("screenshot.settle_ms", 1500)
	v.SetDefault("screenshot.viewport_width", 1280)
	v.SetDefault("screenshot.viewport_height", 720)
	v.SetDefault("screenshot.deny_markers", []string{
		"access denied",
		"you don't have permission",
		"request blocked",
		"service unavailable",
		"verify you are human",
		"captcha",
		"cloudflare",
		"akamai",
		"reference #",
	})

	v.SetDefault("assets.s3_base", "https://sfdcdemoimages.s3.eu-west-1.amazonaws.com")
	v.SetDefault("assets.s3_bucket", "sfdcdemoimages")
	v.SetDefault("assets.tag", "Demo")

	v.SetDefault("logging.development", false)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Paths.Root == "" {
		return fmt.Errorf("paths.root must be set")
	}
	if c.Paths.TemplateDir == "" {
		return fmt.Errorf("paths.template_dir must be set")
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch.timeout_seconds must be > 0")
	}
	if c.Fetch.MaxChars <= 0 {
		return fmt.Errorf("fetch.max_chars must be > 0")
	}
	if c.OpenAI.MaxAttempts <= 0 {
		return fmt.Errorf("openai.max_attempts must be > 0")
	}
	if c.Screenshot.Enabled && c.Screenshot.NavTimeoutSeconds <= 0 {
		return fmt.Errorf("screenshot.nav_timeout_seconds must be > 0 when screenshots are enabled")
	}
	return nil
}

// FetchTimeout converts the fetch timeout into a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// OpenAITimeout converts the API timeout into a duration.
func (c Config) OpenAITimeout() time.Duration {
	return time.Duration(c.OpenAI.TimeoutSeconds) * time.Second
}

// BaseBackoff converts the first retry delay into a duration.
func (c Config) BaseBackoff() time.Duration {
	return time.Duration(c.OpenAI.BaseBackoffMs) * time.Millisecond
}

// NavTimeout converts the screenshot navigation timeout into a duration.
func (c Config) NavTimeout() time.Duration {
	return time.Duration(c.Screenshot.NavTimeoutSeconds) * time.Second
}

// SettleDelay converts the post-navigation settle delay into a duration.
func (c Config) SettleDelay() time.Duration {
	return time.Duration(c.Screenshot.SettleMs) * time.Millisecond
}
