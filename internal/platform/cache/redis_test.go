package cache

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/srgjo27/sitterbook/internal/platform/config"
)

func TestNewRedisClient_Disabled(t *testing.T) {
	log, hook := test.NewNullLogger()

	client, err := NewRedisClient(context.Background(), config.RedisConfig{Enabled: false}, log)

	require.NoError(t, err)
	assert.Nil(t, client)
	assert.Equal(t, "redis disabled, quote cache off", hook.LastEntry().Message)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	log, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client, err := NewRedisClient(ctx, config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}, log)

	assert.Error(t, err)
	assert.Nil(t, client)
}
