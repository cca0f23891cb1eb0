package config

import (
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestConnectRedis_DisabledByDefault(t *testing.T) {
	t.Setenv("APPENV", "development")
	t.Setenv("REDIS_ENABLED", "")
	ResetConfigForTest()
	ResetRedisClientForTest()
	t.Cleanup(func() {
		ResetConfigForTest()
		ResetRedisClientForTest()
	})

	rdb, err := ConnectRedis()
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestConnectRedis_SkippedInTestEnv(t *testing.T) {
	t.Setenv("APPENV", "test")
	t.Setenv("REDIS_ENABLED", "true")
	ResetConfigForTest()
	ResetRedisClientForTest()
	t.Cleanup(func() {
		ResetConfigForTest()
		ResetRedisClientForTest()
	})

	rdb, err := ConnectRedis()
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestSetRedisClientForTesting(t *testing.T) {
	db, _ := redismock.NewClientMock()
	defer db.Close()

	SetRedisClientForTesting(db)
	defer SetRedisClientForTesting(nil)

	assert.Same(t, db, GetRedisClient())
}
