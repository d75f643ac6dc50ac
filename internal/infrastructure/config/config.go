package config

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

// Server configures cmd/server.
type Server struct {
	Port      string `env:"PORT,      default=5000"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	TokenTTL           time.Duration `env:"TOKEN_TTL,           default=24h"`
	ScreenshotDir      string        `env:"SCREENSHOT_DIR,      default=storage/screenshots"`
	LoginRateLimit     int           `env:"LOGIN_RATE_LIMIT,    default=10"`
	LoginRateWindow    time.Duration `env:"LOGIN_RATE_WINDOW,   default=1m"`
	ActivityWorkers    int           `env:"ACTIVITY_WORKERS,    default=4"`
	SuperAdminPassword string        `env:"SUPERADMIN_PASSWORD, default=123"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=isms"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Console configures cmd/console.
type Console struct {
	APIURL      string        `env:"ISMS_API_URL,      default=http://localhost:5000"`
	SessionFile string        `env:"ISMS_SESSION_FILE, default=.isms-session.json"`
	LogFile     string        `env:"ISMS_LOG_FILE,     default=isms-console.log"`
	LogLevel    string        `env:"LOG_LEVEL,         default=info"`
	HTTPTimeout time.Duration `env:"ISMS_HTTP_TIMEOUT, default=0s"`
}

// LoadServer reads the server configuration from the environment, after
// loading an optional .env file.
func LoadServer(logger zerolog.Logger) *Server {
	var cfg Server
	load(logger, &cfg)
	return &cfg
}

// LoadConsole reads the console configuration the same way.
func LoadConsole(logger zerolog.Logger) *Console {
	var cfg Console
	load(logger, &cfg)
	return &cfg
}

func load(logger zerolog.Logger, cfg any) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Err(err).Msg("Failed to read .env file")
	}
	if err := envconfig.Process(context.Background(), cfg); err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		panic(err)
	}
}
