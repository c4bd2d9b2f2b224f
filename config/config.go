package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Config is everything the service reads from the environment.
type Config struct {
	Port               string
	StoreDriver        string
	MongoURI           string
	MongoDB            string
	DatabaseURL        string
	RedisURL           string
	RedisPassword      string
	JWTSecret          []byte
	SessionTTL         time.Duration
	GoogleClientID     string
	ConfirmationSecret []byte
	CORSOrigins        []string
}

// Load reads .env if present and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so tests can feed their own values.
func FromEnv(getenv func(string) string) Config {
	cfg := Config{
		Port:               getenv("PORT"),
		StoreDriver:        strings.ToLower(getenv("STORE_DRIVER")),
		MongoURI:           getenv("MONGO_URI"),
		MongoDB:            getenv("MONGO_DB"),
		DatabaseURL:        getenv("DATABASE_URL"),
		RedisURL:           getenv("REDIS_URL"),
		RedisPassword:      getenv("REDIS_PASSWORD"),
		JWTSecret:          []byte(getenv("JWT_SECRET")),
		GoogleClientID:     getenv("GOOGLE_CLIENT_ID"),
		ConfirmationSecret: []byte(getenv("CONFIRMATION_SECRET")),
	}

	if cfg.Port == "" {
		cfg.Port = ":8080"
	} else if cfg.Port[0] != ':' {
		cfg.Port = ":" + cfg.Port
	}
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = DriverMongo
	}
	if cfg.MongoURI == "" {
		cfg.MongoURI = "mongodb://localhost:27017"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "oasis"
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "localhost:6379"
	}
	if len(cfg.ConfirmationSecret) == 0 {
		cfg.ConfirmationSecret = cfg.JWTSecret
	}

	cfg.SessionTTL = 30 * 24 * time.Hour
	if v := getenv("SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SessionTTL = d
		} else {
			log.Printf("[config] ignoring invalid SESSION_TTL %q", v)
		}
	}

	cfg.CORSOrigins = []string{"*"}
	if v := getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.CORSOrigins = origins
		}
	}

	return cfg
}

// Validate reports settings the service cannot start without.
func (c Config) Validate() []string {
	var missing []string
	if len(c.JWTSecret) == 0 {
		missing = append(missing, "JWT_SECRET")
	}
	if c.GoogleClientID == "" {
		missing = append(missing, "GOOGLE_CLIENT_ID")
	}
	if c.StoreDriver == DriverPostgres && c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.StoreDriver != DriverMongo && c.StoreDriver != DriverPostgres {
		missing = append(missing, "STORE_DRIVER (mongo|postgres)")
	}
	return missing
}
