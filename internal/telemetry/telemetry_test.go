package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

func TestSetup_NoEndpointIsNoop(t *testing.T) {
	before := otel.GetTracerProvider()
	shutdown := Setup(context.Background(), "natpac-travel", "", false, zap.NewNop())
	require.NoError(t, shutdown(context.Background()))
	require.Equal(t, before, otel.GetTracerProvider())
}

func TestSetup_InstallsProvider(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown := Setup(context.Background(), "natpac-travel", "127.0.0.1:4317", true, zap.NewNop())
	require.NotEqual(t, before, otel.GetTracerProvider())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = shutdown(ctx)
}
