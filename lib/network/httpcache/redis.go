package httpcache

import (
	"time"

	redisCache "github.com/go-redis/cache"
	"github.com/go-redis/redis"
	"github.com/vmihailenco/msgpack"
)

// redisKeyPrefix namespaces cached responses so a shared ring can serve
// more than one service.
const redisKeyPrefix = "agora:httpcache:"

type RedisRingOptions redis.RingOptions

type RedisCacheAdapter struct {
	codec *redisCache.Codec
}

func NewRedisCacheAdapter(opt *RedisRingOptions) *RedisCacheAdapter {
	ropt := redis.RingOptions(*opt)
	return &RedisCacheAdapter{
		codec: &redisCache.Codec{
			Redis: redis.NewRing(&ropt),
			Marshal: func(v interface{}) ([]byte, error) {
				return msgpack.Marshal(v)
			},
			Unmarshal: func(b []byte, v interface{}) error {
				return msgpack.Unmarshal(b, v)
			},
		},
	}
}

func (a *RedisCacheAdapter) Get(key string) (*Response, bool) {
	var resp Response
	if err := a.codec.Get(redisKeyPrefix+key, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func (a *RedisCacheAdapter) Set(key string, resp *Response, expiration time.Time) {
	var ttl time.Duration
	if !expiration.IsZero() {
		ttl = time.Until(expiration)
	}
	a.codec.Set(&redisCache.Item{
		Key:        redisKeyPrefix + key,
		Object:     resp,
		Expiration: ttl,
	})
}

func (a *RedisCacheAdapter) Remove(key string) {
	a.codec.Delete(redisKeyPrefix + key)
}
