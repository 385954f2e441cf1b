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

type Server struct {
	Host        string   `mapstructure:"host"`
	Port        int      `mapstructure:"port"`
	MaxUploadMB int64    `mapstructure:"max_upload_mb"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	TempDir     string   `mapstructure:"temp_dir"`
}

type Log struct {
	Level string `mapstructure:"level"`
	Style string `mapstructure:"style"`
}

type OCR struct {
	Engine    string   `mapstructure:"engine"`
	Languages []string `mapstructure:"languages"`
	PSM       int      `mapstructure:"psm"`
	Binary    string   `mapstructure:"binary"`
	Cleanup   bool     `mapstructure:"cleanup"`
	MaxChars  int      `mapstructure:"max_chars"`
}

type PDF struct {
	DPI float64 `mapstructure:"dpi"`
}

type LLM struct {
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type Config struct {
	Server Server `mapstructure:"server"`
	Log    Log    `mapstructure:"log"`
	OCR    OCR    `mapstructure:"ocr"`
	PDF    PDF    `mapstructure:"pdf"`
	LLM    LLM    `mapstructure:"llm"`
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// SetDefaults registers every key so env overrides (LLM_PROVIDER, SERVER_PORT,
// ...) are visible to Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.max_upload_mb", 32)
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("server.temp_dir", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.style", "json")

	v.SetDefault("ocr.engine", "gosseract")
	v.SetDefault("ocr.languages", []string{"eng"})
	v.SetDefault("ocr.psm", 0)
	v.SetDefault("ocr.binary", "tesseract")
	v.SetDefault("ocr.cleanup", false)
	v.SetDefault("ocr.max_chars", 0)

	v.SetDefault("pdf.dpi", 0)

	v.SetDefault("llm.provider", "ollama")
	v.SetDefault("llm.model", "gemma2:2b")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.temperature", 0.0)
	v.SetDefault("llm.timeout", time.Duration(0))
}

// New returns a viper instance with defaults and env binding applied.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads .env (outside production), the optional config file and the
// environment, in increasing precedence.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Server.MaxUploadMB <= 0 {
		errs = append(errs, fmt.Errorf("server.max_upload_mb must be positive"))
	}

	switch c.OCR.Engine {
	case "gosseract", "cli":
	default:
		errs = append(errs, fmt.Errorf("ocr.engine must be gosseract or cli, got %q", c.OCR.Engine))
	}
	if c.OCR.MaxChars < 0 {
		errs = append(errs, fmt.Errorf("ocr.max_chars must not be negative"))
	}
	if c.PDF.DPI < 0 {
		errs = append(errs, fmt.Errorf("pdf.dpi must not be negative"))
	}

	switch strings.ToLower(c.LLM.Provider) {
	case "ollama":
	case "openai", "gemini":
		if c.LLM.APIKey == "" {
			errs = append(errs, fmt.Errorf("llm.api_key is required for provider %s", c.LLM.Provider))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported llm.provider %q", c.LLM.Provider))
	}
	if c.LLM.Temperature < 0 {
		errs = append(errs, fmt.Errorf("llm.temperature must not be negative"))
	}

	return errors.Join(errs...)
}
