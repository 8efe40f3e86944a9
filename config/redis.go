package config

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Options builds go-redis options, preferring URL over the discrete fields.
func (r RedisConfig) Options() (*redis.Options, error) {
	if r.URL != "" {
		opts, err := redis.ParseURL(r.URL)
		if err != nil {
			return nil, fmt.Errorf("REDIS_URL: %w", err)
		}
		return opts, nil
	}
	if r.Addr == "" {
		return nil, fmt.Errorf("REDIS_ADDR or REDIS_URL is required")
	}
	return &redis.Options{Addr: r.Addr, Password: r.Password, DB: r.DB}, nil
}
