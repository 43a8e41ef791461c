package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is the hosted TrackJob backend.
const DefaultAPIURL = "https://trackjob-backend.onrender.com/api"

// defaultDSN matches the local Postgres used during development.
const defaultDSN = "host=localhost user=postgres password=password dbname=jobtracker port=5432 sslmode=disable"

// Client holds everything the trackjob CLI needs.
type Client struct {
	APIURL   string
	LogLevel string

	// DurableSessionPath backs "remember me" logins.
	DurableSessionPath string
	// SessionPath backs logins that last for one terminal session.
	SessionPath string
}

// Server holds everything trackjob-server needs.
type Server struct {
	Port        string
	DBDriver    string
	DSN         string
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins []string

	GeminiAPIKey string
	GeminiModel  string

	GmailCredentialsPath string
	GmailTokenPath       string
	GmailSender          string
	DispatchInterval     time.Duration

	LogLevel    string
	Development bool
}

// Load reads a .env file when one exists. A missing file is not an error;
// the process environment is used as is.
func Load(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

func LoadClient() (*Client, error) {
	home := os.Getenv("TRACKJOB_HOME")
	if home == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		home = filepath.Join(dir, "trackjob")
	}

	// The session tier lives as long as the parent shell does.
	sessionDir := filepath.Join(os.TempDir(), fmt.Sprintf("trackjob-%d", os.Getuid()))

	return &Client{
		APIURL:             getEnv("TRACKJOB_API_URL", DefaultAPIURL),
		LogLevel:           getEnv("TRACKJOB_LOG_LEVEL", "warn"),
		DurableSessionPath: filepath.Join(home, "session.json"),
		SessionPath:        filepath.Join(sessionDir, fmt.Sprintf("session-%d.json", os.Getppid())),
	}, nil
}

func LoadServer() (*Server, error) {
	ttl, err := getDuration("TOKEN_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	interval, err := getDuration("FOLLOWUP_DISPATCH_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}
	dev, err := getBool("DEVELOPMENT", false)
	if err != nil {
		return nil, err
	}

	cfg := &Server{
		Port:                 getEnv("PORT", "8080"),
		DBDriver:             getEnv("DB_DRIVER", "postgres"),
		DSN:                  getEnv("DATABASE_URL", defaultDSN),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		TokenTTL:             ttl,
		CORSOrigins:          splitList(os.Getenv("CORS_ORIGINS")),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiModel:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GmailCredentialsPath: getEnv("GMAIL_CREDENTIALS", "credential.json"),
		GmailTokenPath:       getEnv("GMAIL_TOKEN", "token.json"),
		GmailSender:          getEnv("GMAIL_SENDER", "me"),
		DispatchInterval:     interval,
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		Development:          dev,
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty. Did you load the .env file?")
	}
	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", cfg.DBDriver)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
