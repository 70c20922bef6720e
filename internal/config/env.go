package config

import (
	"os"
	"strconv"
	"strings"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	RedisAddr string
	RedisPass string

	MapsAPIKey string
	JWTSecret  string

	// Per-day km allowance billed at the base mileage rate. 0 keeps the
	// engine default.
	FreeKmPerDay int64
}

func LoadEnv() Env {
	env := Env{
		AppAddr:    getenv("APP_ADDR", ":8080"),
		GinMode:    getenv("GIN_MODE", ""),
		DBUser:     getenv("DB_USER", "root"),
		DBPass:     getenv("DB_PASS", ""),
		DBHost:     getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:     getenv("DB_NAME", "rentdesk"),
		RedisAddr:  getenv("REDIS_ADDR", ""),
		RedisPass:  getenv("REDIS_PASS", ""),
		MapsAPIKey: getenv("MAPS_API_KEY", ""),
		JWTSecret:  getenv("JWT_SECRET", "super-secret-key-change-me"),
	}

	if v := getenv("FREE_KM_PER_DAY", ""); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			env.FreeKmPerDay = n
		}
	}

	return env
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
