package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv(envOf(nil))

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "oasis", cfg.MongoDB)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Contains(t, cfg.Validate(), "JWT_SECRET")
	assert.Contains(t, cfg.Validate(), "GOOGLE_CLIENT_ID")
}

func TestValidateRequiresGoogleClientID(t *testing.T) {
	cfg := FromEnv(envOf(map[string]string{"JWT_SECRET": "s3cret"}))
	assert.Equal(t, []string{"GOOGLE_CLIENT_ID"}, cfg.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	cfg := FromEnv(envOf(map[string]string{
		"PORT":             "9000",
		"STORE_DRIVER":     "Postgres",
		"DATABASE_URL":     "postgres://oasis@localhost/oasis",
		"JWT_SECRET":       "s3cret",
		"GOOGLE_CLIENT_ID": "client-1",
		"SESSION_TTL":      "2h",
		"CORS_ORIGINS":     "https://a.example, https://b.example,",
	}))

	assert.Equal(t, ":9000", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, []byte("s3cret"), cfg.ConfirmationSecret)
	assert.Empty(t, cfg.Validate())
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := FromEnv(envOf(map[string]string{"STORE_DRIVER": "sqlite", "JWT_SECRET": "x", "GOOGLE_CLIENT_ID": "c"}))
	assert.Len(t, cfg.Validate(), 1)
}
