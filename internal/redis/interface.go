package redis

import (
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -destination=mocks/redis.go -package=redismocks -source=interface.go

// Client wraps redis.UniversalClient so repositories depend on one
// interface whether they run against a single node or a cluster.
type Client interface {
	redis.UniversalClient
}

// Tx is the transaction handle passed to Client.Watch callbacks
type Tx = redis.Tx
