package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Server struct {
		Port string `env:"PORT" envDefault:"5250"`

		// Origins allowed to call the API from a browser
		AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	}

	Database struct {
		Path string `env:"DATABASE_PATH" envDefault:"database/oakvale.db"`

		// Load the demo catalog on startup
		SeedCatalog bool `env:"SEED_CATALOG" envDefault:"true"`
	}

	Auth struct {
		JWTSecret     string        `env:"JWT_SECRET" envDefault:"oakvale-demo-secret"`
		SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
		AdminEmail    string        `env:"ADMIN_EMAIL" envDefault:"admin@oakandvale.com"`
		AdminPassword string        `env:"ADMIN_PASSWORD" envDefault:"12345678"`
		AdminName     string        `env:"ADMIN_NAME" envDefault:"Admin User"`
		AdminPhone    string        `env:"ADMIN_PHONE" envDefault:"+254700000000"`

		// Token bucket applied per client to the sign-in and sign-up endpoints
		RateLimit float64 `env:"AUTH_RATE_LIMIT" envDefault:"1"`
		RateBurst int     `env:"AUTH_RATE_BURST" envDefault:"5"`
	}

	Booking struct {
		// Tour booking fee in whole shillings
		Fee int64 `env:"BOOKING_FEE" envDefault:"1000"`

		// Buffered booking events awaiting notification
		QueueSize int `env:"BOOKING_QUEUE_SIZE" envDefault:"100"`

		// Delivery attempts per notification after the first failure
		NotifyRetries    int           `env:"BOOKING_NOTIFY_RETRIES" envDefault:"3"`
		NotifyRetryDelay time.Duration `env:"BOOKING_NOTIFY_RETRY_DELAY" envDefault:"2s"`

		// How often elapsed bookings are completed or expired
		MaintenanceInterval time.Duration `env:"BOOKING_MAINTENANCE_INTERVAL" envDefault:"1h"`
	}

	Telegram struct {
		BotToken   string `env:"TELEGRAM_BOT_TOKEN"`
		ChatID     string `env:"TELEGRAM_CHAT_ID"`
		APIBaseURL string `env:"TELEGRAM_API_URL" envDefault:"https://api.telegram.org"`
	}
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
