package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestConnectRedis(t *testing.T) {
	ctx := context.Background()

	client, err := ConnectRedis(ctx, "", nil)
	require.NoError(t, err)
	require.Nil(t, client)

	_, err = ConnectRedis(ctx, "not a url", nil)
	require.Error(t, err)

	mr := miniredis.RunT(t)
	client, err = ConnectRedis(ctx, "redis://"+mr.Addr(), nil)
	require.NoError(t, err)
	require.NotNil(t, client)
	require.NoError(t, client.Close())
}

func TestConnectRedis_UnreachableKeepsClient(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client, err := ConnectRedis(context.Background(), "redis://"+addr, nil)
	require.Error(t, err)
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })

	require.Error(t, client.Ping(context.Background()).Err())
}
