package redis

import (
	"context"
	"net"
	"roombook/config"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 5 * time.Second

// Options maps the CACHE_REDIS_PRIMARY_* variables onto client options.
func Options(config *config.Config) *goRedis.Options {
	primary := config.Cache.Redis.Primary

	return &goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
		PoolSize: primary.PoolSize,
	}
}

// New returns a client that has answered a PING, or exits the process.
func New(config *config.Config) *goRedis.Client {
	client := goRedis.NewClient(Options(config))

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", client.Options().Addr).Msg("Failed to connect to Redis")
	}

	log.Info().
		Int("db", config.Cache.Redis.Primary.DB).
		Str("addr", client.Options().Addr).
		Msg("Connected to Redis")

	return client
}
