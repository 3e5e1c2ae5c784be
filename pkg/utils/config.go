package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	TMDB     TMDBConfig
	JWT      JWTConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	RequestTimeout time.Duration
	CORSOrigins    []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// RedisConfig. An empty Addr selects the in-process cache store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
}

type CacheConfig struct {
	Prefix      string
	DefaultTTL  time.Duration
	DetailTTL   time.Duration
	ListTTL     time.Duration
	ProviderTTL time.Duration
	SearchTTL   time.Duration
}

type TMDBConfig struct {
	BaseURL           string
	ImageBaseURL      string
	APIKey            string
	BearerToken       string
	Language          string
	Timeout           time.Duration
	DetailConcurrency int
}

type JWTConfig struct {
	Secret         string
	Issuer         string
	Audience       string
	SupabaseSecret string
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "watchhub")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 30)
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_TLS", false)
	v.SetDefault("CACHE_PREFIX", "watchhub:")
	v.SetDefault("CACHE_DEFAULT_TTL_MINUTES", 60)
	v.SetDefault("CACHE_DETAIL_TTL_MINUTES", 24*60)
	v.SetDefault("CACHE_LIST_TTL_MINUTES", 6*60)
	v.SetDefault("CACHE_PROVIDER_TTL_MINUTES", 6*60)
	v.SetDefault("CACHE_SEARCH_TTL_MINUTES", 60)
	v.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	v.SetDefault("TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p")
	v.SetDefault("TMDB_LANGUAGE", "en-US")
	v.SetDefault("TMDB_TIMEOUT_SECONDS", 15)
	v.SetDefault("TMDB_DETAIL_CONCURRENCY", 1)

	// .env is optional, plain environment variables work too
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:           v.GetString("APP_NAME"),
			Port:           v.GetString("PORT"),
			Debug:          v.GetBool("DEBUG"),
			LogPath:        v.GetString("LOG_PATH"),
			RequestTimeout: seconds(v.GetInt("REQUEST_TIMEOUT_SECONDS")),
			CORSOrigins:    splitList(v.GetString("CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TLS:      v.GetBool("REDIS_TLS"),
		},
		Cache: CacheConfig{
			Prefix:      v.GetString("CACHE_PREFIX"),
			DefaultTTL:  minutes(v.GetInt("CACHE_DEFAULT_TTL_MINUTES")),
			DetailTTL:   minutes(v.GetInt("CACHE_DETAIL_TTL_MINUTES")),
			ListTTL:     minutes(v.GetInt("CACHE_LIST_TTL_MINUTES")),
			ProviderTTL: minutes(v.GetInt("CACHE_PROVIDER_TTL_MINUTES")),
			SearchTTL:   minutes(v.GetInt("CACHE_SEARCH_TTL_MINUTES")),
		},
		TMDB: TMDBConfig{
			BaseURL:           v.GetString("TMDB_BASE_URL"),
			ImageBaseURL:      v.GetString("TMDB_IMAGE_BASE_URL"),
			APIKey:            v.GetString("TMDB_API_KEY"),
			BearerToken:       v.GetString("TMDB_BEARER_TOKEN"),
			Language:          v.GetString("TMDB_LANGUAGE"),
			Timeout:           seconds(v.GetInt("TMDB_TIMEOUT_SECONDS")),
			DetailConcurrency: v.GetInt("TMDB_DETAIL_CONCURRENCY"),
		},
		JWT: JWTConfig{
			Secret:         v.GetString("JWT_SECRET"),
			Issuer:         v.GetString("JWT_ISSUER"),
			Audience:       v.GetString("JWT_AUDIENCE"),
			SupabaseSecret: v.GetString("SUPABASE_JWT_SECRET"),
		},
	}

	return config, nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

// splitList reads a comma separated env value.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
