package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ConnectRedis поднимает клиент для кеша каталога. Redis опционален:
// при пустом адресе или недоступном сервере возвращается nil, и каталог
// работает напрямую из БД.
func ConnectRedis(addr string) *redis.Client {
	if addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("redis unavailable, catalog cache disabled")
		return nil
	}

	log.Info().Str("addr", addr).Msg("redis connected")
	return rdb
}
