package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shady2k/spruthub-mcp-server/internal/spruthub/testdata"
	"github.com/shady2k/spruthub-mcp-server/internal/tools/output"
)

func TestNewServerContext_RequiresHubClient(t *testing.T) {
	_, err := NewServerContext(context.Background())
	assert.ErrorIs(t, err, ErrMissingHubClient)

	_, err = NewServerContext(context.Background(), WithHubClient(nil))
	assert.ErrorIs(t, err, ErrMissingHubClient)
}

func TestNewServerContext_RejectsNilDependencies(t *testing.T) {
	client := &testdata.MockClient{}

	_, err := NewServerContext(context.Background(), WithHubClient(client), WithLogger(nil))
	assert.ErrorIs(t, err, ErrMissingLogger)

	_, err = NewServerContext(context.Background(), WithHubClient(client), WithConfig(nil))
	assert.ErrorIs(t, err, ErrMissingConfig)
}

func TestNewServerContext_Defaults(t *testing.T) {
	sc, err := NewServerContext(context.Background(), WithHubClient(&testdata.MockClient{}))
	require.NoError(t, err)

	assert.Equal(t, "spruthub-mcp-server", sc.Config().ServerName)
	assert.False(t, sc.Config().ReadOnly)
	assert.NotNil(t, sc.Logger())
	assert.Nil(t, sc.InstrumentationProvider())

	processor := sc.OutputProcessor()
	require.NotNil(t, processor)
	assert.Equal(t, output.DefaultMaxResponseSize, processor.Config().MaxResponseSize)
	assert.Equal(t, output.DefaultMaxDevicesPerPage, processor.Config().MaxDevicesPerPage)
}

func TestNewServerContext_OutputConfigIsValidated(t *testing.T) {
	sc, err := NewServerContext(context.Background(),
		WithHubClient(&testdata.MockClient{}),
		WithOutputConfig(&output.Config{
			MaxResponseSize:   5_000_000,
			MaxDevicesPerPage: 0,
			EnableTruncation:  true,
		}),
		WithReadOnly(true),
	)
	require.NoError(t, err)

	cfg := sc.OutputProcessor().Config()
	assert.Equal(t, output.AbsoluteMaxResponseSize, cfg.MaxResponseSize)
	assert.Equal(t, output.DefaultMaxDevicesPerPage, cfg.MaxDevicesPerPage)
	assert.True(t, sc.Config().ReadOnly)
}

func TestWithConfig_Clones(t *testing.T) {
	config := NewDefaultConfig()
	config.Output.MaxDevicesPerPage = 7

	sc, err := NewServerContext(context.Background(),
		WithHubClient(&testdata.MockClient{}),
		WithConfig(config),
	)
	require.NoError(t, err)

	config.Output.MaxDevicesPerPage = 99
	config.ReadOnly = true

	assert.Equal(t, 7, sc.Config().Output.MaxDevicesPerPage)
	assert.False(t, sc.Config().ReadOnly)
}

func TestServerContext_Shutdown(t *testing.T) {
	client := &testdata.MockClient{}
	sc, err := NewServerContext(context.Background(), WithHubClient(client))
	require.NoError(t, err)

	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())
	assert.Error(t, sc.Context().Err())

	// Second call is a no-op.
	require.NoError(t, sc.Shutdown())
	assert.Equal(t, 1, client.Calls("Close"))
}

func TestServerContext_RecordHubOperationWithoutProvider(t *testing.T) {
	sc, err := NewServerContext(context.Background(), WithHubClient(&testdata.MockClient{}))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		sc.RecordHubOperation(context.Background(), "list_accessories", "success", 0)
	})
}

func TestConfig_CloneNil(t *testing.T) {
	var c *Config
	assert.Nil(t, c.Clone())
}
