package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. QUERYBENCH_SERVER_PORT.
const EnvPrefix = "QUERYBENCH"

// Config is the typed view of the loaded settings.
type Config struct {
	Verbose bool         `mapstructure:"verbose"`
	NoColor bool         `mapstructure:"no_color"`
	Log     LogConfig    `mapstructure:"log"`
	Output  OutputConfig `mapstructure:"output"`
	Report  ReportConfig `mapstructure:"report"`
	Server  ServerConfig `mapstructure:"server"`
	Store   StoreConfig  `mapstructure:"store"`
}

type LogConfig struct {
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format"`
}

type OutputConfig struct {
	JSON     string `mapstructure:"json"`
	Markdown string `mapstructure:"markdown"`
}

type ReportConfig struct {
	Delay  time.Duration `mapstructure:"delay"`
	Trials int           `mapstructure:"trials"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr joins host and port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type StoreConfig struct {
	Type string `mapstructure:"type"` // "", "sqlite", "postgres" or "file"
	DSN  string `mapstructure:"dsn"`
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("verbose", false)
	viper.SetDefault("no_color", false)
	viper.SetDefault("log.file", "")
	viper.SetDefault("log.format", "json")
	viper.SetDefault("output.json", "report.json")
	viper.SetDefault("output.markdown", "RESULTS.md")
	viper.SetDefault("report.delay", 500*time.Millisecond)
	viper.SetDefault("report.trials", 5)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("store.type", "")
	viper.SetDefault("store.dsn", "")
}

// Load initializes the configuration from file and environment variables.
// A missing config file is not an error; a malformed one is.
func Load(cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		if cfgFile == "" && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Current decodes the loaded settings.
func Current() (Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
