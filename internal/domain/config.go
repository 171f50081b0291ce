package domain

import "time"

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Download     DownloadConfig     `mapstructure:"download"`
	Resolver     ResolverConfig     `mapstructure:"resolver"`
	History      HistoryConfig      `mapstructure:"history"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DownloadConfig contains download-related configuration
type DownloadConfig struct {
	Dir            string        `mapstructure:"dir"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
}

// ResolverConfig contains resolution-related configuration
type ResolverConfig struct {
	ExpandTimeout   time.Duration `mapstructure:"expand_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	SampleMode      bool          `mapstructure:"sample_mode"`
	YouTubePrimary  string        `mapstructure:"youtube_primary"`
	YouTubeFallback string        `mapstructure:"youtube_fallback"`
	TikTokEndpoint  string        `mapstructure:"tiktok_endpoint"`
}

// HistoryConfig contains download history persistence configuration
type HistoryConfig struct {
	DatabasePath string `mapstructure:"database_path"`
}

// NotificationConfig contains desktop notification configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Method  string `mapstructure:"method"` // osascript, notify-send
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Download: DownloadConfig{
			Dir:            "$HOME/Downloads/vidfetch",
			ConnectTimeout: 30 * time.Second,
			ReadTimeout:    30 * time.Second,
			UserAgent:      "Mozilla/5.0 (Linux; Android 10; SM-G973F) AppleWebKit/537.36",
		},
		Resolver: ResolverConfig{
			ExpandTimeout:   5 * time.Second,
			RequestTimeout:  10 * time.Second,
			SampleMode:      false,
			YouTubePrimary:  "https://api.vevioz.com/api/button/videos/",
			YouTubeFallback: "https://loader.to/api/button/",
			TikTokEndpoint:  "https://api.tikwm.com/api/",
		},
		History: HistoryConfig{
			DatabasePath: "$HOME/Downloads/vidfetch/history.db",
		},
		Notification: NotificationConfig{
			Enabled: false,
			Method:  "notify-send",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
	}
}
