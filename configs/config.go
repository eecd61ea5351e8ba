package configs

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port        string   `mapstructure:"port"`
		CORSOrigins []string `mapstructure:"cors_origins"`
	} `mapstructure:"server"`

	Database Database `mapstructure:"database"`

	Supabase struct {
		URL string `mapstructure:"url"`
		Key string `mapstructure:"key"`
	} `mapstructure:"supabase"`

	JWT struct {
		Secret    string `mapstructure:"secret"`
		ExpiresIn int    `mapstructure:"expires_in"` // hours
	} `mapstructure:"jwt"`

	AI AI `mapstructure:"ai"`

	Speech struct {
		URL     string        `mapstructure:"url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"speech"`

	Swipe struct {
		// Store selects the swipe history backend: "database" or "supabase"
		Store     string        `mapstructure:"store"`
		Threshold float64       `mapstructure:"threshold"`
		Animation time.Duration `mapstructure:"animation"`
	} `mapstructure:"swipe"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

type Database struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Path     string `mapstructure:"path"` // sqlite only
}

type AI struct {
	Provider string `mapstructure:"provider"`
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
	URL      string `mapstructure:"url"`
}

const envPrefix = "SILVERGEN"

// legacyEnv environment names the web client and its deployments already use
var legacyEnv = map[string]string{
	"speech.url":   "FASTAPI_URL",
	"supabase.url": "SUPABASE_URL",
	"supabase.key": "SUPABASE_SERVICE_ROLE_KEY",
	"jwt.secret":   "JWT_SECRET",
}

// geminiEnv legacy names that only apply while ai.provider is gemini
var geminiEnv = map[string]string{
	"ai.api_key": "GEMINI_API_KEY",
	"ai.url":     "GEMINI_API_URL",
}

func bindEnv(v *viper.Viper, names map[string]string) error {
	for key, env := range names {
		if err := v.BindEnv(key, envPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8081")
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "silvergen.db")
	for _, key := range []string{"database.host", "database.port", "database.user", "database.password", "database.dbname"} {
		v.SetDefault(key, "")
	}
	v.SetDefault("jwt.secret", "dev-secret-change-me")
	v.SetDefault("jwt.expires_in", 72)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.api_key", "")
	// empty model and url select the provider's own defaults
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.url", "")
	v.SetDefault("speech.url", "http://localhost:8080")
	v.SetDefault("speech.timeout", 0)
	v.SetDefault("swipe.store", "database")
	v.SetDefault("swipe.threshold", 100)
	v.SetDefault("swipe.animation", 300*time.Millisecond)
	v.SetDefault("log.level", "info")
}

// Load reads configs/config.yaml (optional), .env (optional) and the environment
func Load(paths ...string) (*Config, error) {
	// a missing .env is the normal case outside local development
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./configs", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindEnv(v, legacyEnv); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if v.GetString("ai.provider") == "gemini" {
		if err := bindEnv(v, geminiEnv); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects combinations the server cannot start with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	switch c.Swipe.Store {
	case "database":
	case "supabase":
		if c.Supabase.URL == "" || c.Supabase.Key == "" {
			return errors.New("swipe.store=supabase requires supabase.url and supabase.key")
		}
	default:
		return fmt.Errorf("unsupported swipe store: %s", c.Swipe.Store)
	}
	if c.Speech.URL == "" {
		return errors.New("speech.url must not be empty")
	}
	return nil
}
