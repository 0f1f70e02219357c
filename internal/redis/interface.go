package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the command surface the repositories use. Single-node and
// Sentinel clients both satisfy it; cluster mode does not, since session
// writes touch two keys in one MULTI.
type Client interface {
	redis.UniversalClient
}
