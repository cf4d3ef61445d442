// Caminho: internal/kv/redis.go
// Resumo: Cliente Redis (go-redis/v9) com helpers para rate limit e lockout de login.
// Opcional: um Client nil é seguro e transforma todas as operações em no-op permissivo.

package kv

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client encapsula o cliente redis. Nil desativa o throttling sem ramificar chamadores.
type Client struct {
	rdb *redis.Client
}

// Open inicializa o cliente usando REDIS_URL (URI) ou host/port/pass separados.
// Retorna nil (sem erro) quando nada está configurado.
func Open(redisURL, host string, port int, pass string) (*Client, error) {
	if redisURL != "" {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, err
		}
		return &Client{rdb: redis.NewClient(opt)}, nil
	}
	if host == "" {
		return nil, nil
	}
	addr := host
	if port > 0 {
		addr = host + ":" + strconv.Itoa(port)
	}
	return &Client{rdb: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: 0})}, nil
}

// AllowRate executa um rate limit simples (contagem por janela). Retorna true se permitido.
func (c *Client) AllowRate(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error) {
	if c == nil || c.rdb == nil {
		return true, 0, nil
	}
	pipe := c.rdb.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, 0, err
	}
	n := incr.Val()
	return n <= limit, n, nil
}

// SetLock define um lock com TTL.
func (c *Client) SetLock(ctx context.Context, key string, ttl time.Duration) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Set(ctx, key, "1", ttl).Err()
}

// IsLocked retorna true se existe um lock ativo.
func (c *Client) IsLocked(ctx context.Context, key string) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, nil
	}
	_, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Del remove chaves (melhor-esforço).
func (c *Client) Del(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}
