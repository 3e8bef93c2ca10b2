package prefixes_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Adirelle/cmdbase/pkg/prefixes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	prefixes map[string]string
	failures map[string]error
	queried  []string
	closed   int
	closeErr error
}

func (s *fakeSource) Prefix(_ context.Context, guildID string) (string, bool, error) {
	s.queried = append(s.queried, guildID)
	if err, failing := s.failures[guildID]; failing {
		return "", false, err
	}
	prefix, found := s.prefixes[guildID]
	return prefix, found, nil
}

func (s *fakeSource) Close() error {
	s.closed++
	return s.closeErr
}

func connectorTo(source *fakeSource) prefixes.Connector {
	return prefixes.ConnectorFunc(func(context.Context) (prefixes.Source, error) {
		return source, nil
	})
}

func TestLoadFillsCache(t *testing.T) {
	t.Parallel()
	source := &fakeSource{prefixes: map[string]string{"a": "?", "c": "$"}}
	cache := prefixes.NewCache("!")

	err := prefixes.NewLoader(connectorTo(source), cache).Load(context.Background(), []string{"a", "b", "c"})

	require.NoError(t, err)
	assert.Equal(t, "?", cache.Resolve("a"))
	assert.Equal(t, "!", cache.Resolve("b"))
	assert.Equal(t, "$", cache.Resolve("c"))
	assert.Equal(t, 2, cache.Len())
	assert.Equal(t, 1, source.closed)
}

func TestLoadSkipsFailingGuilds(t *testing.T) {
	t.Parallel()
	broken := errors.New("corrupted document")
	source := &fakeSource{
		prefixes: map[string]string{"a": "?", "c": "$"},
		failures: map[string]error{"b": broken},
	}
	cache := prefixes.NewCache("!")

	err := prefixes.NewLoader(connectorTo(source), cache).Load(context.Background(), []string{"a", "b", "c"})

	assert.ErrorIs(t, err, broken)
	assert.Contains(t, err.Error(), "guild b")
	assert.Equal(t, []string{"a", "b", "c"}, source.queried)
	assert.Equal(t, "$", cache.Resolve("c"))
	assert.Equal(t, 1, source.closed)
}

func TestLoadReportsCloseErrors(t *testing.T) {
	t.Parallel()
	closeErr := errors.New("close failed")
	source := &fakeSource{closeErr: closeErr}

	err := prefixes.NewLoader(connectorTo(source), prefixes.NewCache("!")).Load(context.Background(), []string{"a"})

	assert.ErrorIs(t, err, closeErr)
	assert.Equal(t, 1, source.closed)
}

func TestLoadConnectFailure(t *testing.T) {
	t.Parallel()
	refused := errors.New("refused")
	connector := prefixes.ConnectorFunc(func(context.Context) (prefixes.Source, error) {
		return nil, refused
	})

	err := prefixes.NewLoader(connector, prefixes.NewCache("!")).Load(context.Background(), []string{"a"})

	assert.ErrorIs(t, err, refused)
}

func TestLoadStopsOnCancelledContext(t *testing.T) {
	t.Parallel()
	source := &fakeSource{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := prefixes.NewLoader(connectorTo(source), prefixes.NewCache("!")).Load(ctx, []string{"a", "b"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, source.queried)
	assert.Equal(t, 1, source.closed)
}
