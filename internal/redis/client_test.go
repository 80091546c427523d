package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mech-api/internal/redis"
)

type ClientTestSuite struct {
	suite.Suite
	mr *miniredis.Miniredis
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
}

func (s *ClientTestSuite) TearDownTest() {
	s.mr.Close()
}

func (s *ClientTestSuite) TestNewClientRequiresEndpoint() {
	client, err := redis.NewClient("", nil)
	s.Error(err)
	s.Nil(client)
}

func (s *ClientTestSuite) TestNewClusterClientRequiresEndpoints() {
	client, err := redis.NewClusterClient(nil, nil)
	s.Error(err)
	s.Nil(client)
}

func (s *ClientTestSuite) TestPingAndNil() {
	ctx := context.Background()
	client, err := redis.NewClient(s.mr.Addr(), nil)
	s.Require().NoError(err)

	s.NoError(redis.Ping(ctx, client))

	_, err = client.Get(ctx, "pilot:missing").Result()
	s.True(redis.IsNil(err))
}

func (s *ClientTestSuite) TestPingFailsWhenServerDown() {
	down, err := miniredis.Run()
	s.Require().NoError(err)
	addr := down.Addr()
	down.Close()

	client, err := redis.NewClient(addr, &redis.Options{MaxRetries: -1})
	s.Require().NoError(err)

	s.Error(redis.Ping(context.Background(), client))
}
