package redis_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mongotesting/contacts-service/internal/core/cache"
	rediscache "github.com/mongotesting/contacts-service/internal/infrastructure/cache/redis"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, cache.Client) {
	t.Helper()

	mr := miniredis.RunT(t)

	client, err := rediscache.NewClient(rediscache.Config{
		Host:       mr.Host(),
		Port:       mr.Port(),
		DefaultTTL: time.Minute,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
	})

	return mr, client
}

func TestNewClient_ConnectionRefused(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	client, err := rediscache.NewClient(rediscache.Config{Host: host, Port: port})

	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestClient_SetAndGet(t *testing.T) {
	_, client := setupMiniredis(t)
	ctx := context.Background()

	value := []byte(`[{"lastName":"Bobberson"}]`)
	require.NoError(t, client.Set(ctx, "contacts:lastName:Bobberson", value, time.Minute))

	result, err := client.Get(ctx, "contacts:lastName:Bobberson")
	assert.NoError(t, err)
	assert.Equal(t, value, result)
}

func TestClient_GetMissing(t *testing.T) {
	_, client := setupMiniredis(t)

	result, err := client.Get(context.Background(), "contacts:lastName:Nobody")

	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestClient_SetUsesDefaultTTL(t *testing.T) {
	mr, client := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "contacts:lastName:Bobberson", []byte("[]"), 0))
	assert.Equal(t, time.Minute, mr.TTL("contacts:lastName:Bobberson"))

	mr.FastForward(2 * time.Minute)

	result, err := client.Get(ctx, "contacts:lastName:Bobberson")
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestClient_DeletePattern(t *testing.T) {
	mr, client := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "contacts:lastName:Bobberson", []byte("1"), time.Minute))
	require.NoError(t, client.Set(ctx, "contacts:lastName:Smith", []byte("2"), time.Minute))
	require.NoError(t, client.Set(ctx, "other:key", []byte("3"), time.Minute))

	deleted, err := client.DeletePattern(ctx, "contacts:*")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	keys := mr.Keys()
	assert.Equal(t, []string{"other:key"}, keys)
}

func TestClient_DeletePattern_ManyKeys(t *testing.T) {
	mr, client := setupMiniredis(t)
	ctx := context.Background()

	for i := 0; i < 250; i++ {
		require.NoError(t, mr.Set(fmt.Sprintf("contacts:lastName:%03d", i), "[]"))
	}
	require.NoError(t, mr.Set("other:key", "3"))

	deleted, err := client.DeletePattern(ctx, "contacts:*")
	require.NoError(t, err)
	assert.Equal(t, int64(250), deleted)
	assert.Equal(t, []string{"other:key"}, mr.Keys())

	deleted, err = client.DeletePattern(ctx, "contacts:*")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestClient_Ping(t *testing.T) {
	mr, client := setupMiniredis(t)
	ctx := context.Background()

	assert.NoError(t, client.Ping(ctx))

	mr.Close()
	assert.Error(t, client.Ping(ctx))
}
