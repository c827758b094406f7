package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/AnshRaj112/natpac-travel-backend/internal/config"
	"github.com/AnshRaj112/natpac-travel-backend/internal/errs"
)

func unreachableConfig() *config.Config {
	return &config.Config{
		MongoURI:      "mongodb://127.0.0.1:1/?directConnection=true",
		MongoDB:       "natpac_test",
		MongoMaxPool:  10,
		MongoSelectTO: 200 * time.Millisecond,
		MongoSocketTO: time.Second,
	}
}

func TestMongo_ConnectFailureIsNotRemembered(t *testing.T) {
	m := NewMongo(unreachableConfig(), nil)

	_, err := m.Database(context.Background())
	require.ErrorIs(t, err, errs.ErrUnavailable)
	require.Nil(t, m.client.Load())

	// A second call retries instead of replaying a cached failure.
	_, err = m.Database(context.Background())
	require.ErrorIs(t, err, errs.ErrUnavailable)
}

func TestMongo_ConcurrentCallersShareOneAttempt(t *testing.T) {
	m := NewMongo(unreachableConfig(), nil)

	var wg sync.WaitGroup
	results := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = m.Database(context.Background())
		}(i)
	}
	wg.Wait()
	for _, err := range results {
		require.ErrorIs(t, err, errs.ErrUnavailable)
	}
}

func TestMongo_CallerCancellation(t *testing.T) {
	m := NewMongo(unreachableConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Database(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestMongo_DisconnectWithoutClient(t *testing.T) {
	m := NewMongo(unreachableConfig(), nil)
	require.NoError(t, m.Disconnect(context.Background()))
}

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates indexes on every collection", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)
		require.NoError(mt, EnsureIndexes(context.Background(), mt.DB))
	})

	mt.Run("reports the failing collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    85,
			Name:    "IndexOptionsConflict",
			Message: "index options conflict",
		}))
		err := EnsureIndexes(context.Background(), mt.DB)
		require.ErrorContains(mt, err, "create users indexes")
	})
}
