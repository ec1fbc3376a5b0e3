package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr         string
	DatabaseURL      string
	MigrateOnStart   bool
	JWTSecret        string
	SubjectJWTSecret string
	JWTIssuer        string
	TeacherTokenTTL  time.Duration
	UserTokenTTL     time.Duration
	RedisAddr        string
	RedisPassword    string
	CORSOrigins      []string
}

func Load() Config {
	secret := getenv("JWT_SECRET", "dev-secret")
	return Config{
		HTTPAddr:         getenv("HTTP_ADDR", ":"+getenv("PORT", "25591")),
		DatabaseURL:      databaseURL(),
		MigrateOnStart:   getenvBool("MIGRATE_ON_START", true),
		JWTSecret:        secret,
		SubjectJWTSecret: getenv("SUBJECT_JWT_SECRET", secret),
		JWTIssuer:        getenv("JWT_ISSUER", "schoolbook"),
		TeacherTokenTTL:  getenvDuration("TEACHER_TOKEN_TTL", time.Hour),
		UserTokenTTL:     getenvDuration("USER_TOKEN_TTL", time.Hour),
		RedisAddr:        getenv("REDIS_ADDR", ""),
		RedisPassword:    getenv("REDIS_PASSWORD", ""),
		CORSOrigins:      getenvList("CORS_ORIGINS", []string{"*"}),
	}
}

// databaseURL prefers DATABASE_URL and otherwise assembles a DSN from the
// discrete DB_* variables.
func databaseURL() string {
	if val := os.Getenv("DATABASE_URL"); val != "" {
		return val
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(getenv("DB_USER", "postgres"), getenv("DB_PASSWORD", "postgres")),
		Host:   fmt.Sprintf("%s:%s", getenv("DB_HOST", "127.0.0.1"), getenv("DB_PORT", "5432")),
		Path:   "/" + getenv("DB_NAME", "schoolbook"),
	}
	q := u.Query()
	q.Set("sslmode", getenv("DB_SSLMODE", "disable"))
	u.RawQuery = q.Encode()
	return u.String()
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	if val := os.Getenv(key + "_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if item := strings.TrimRight(strings.TrimSpace(part), "/"); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
