package prefixes

import (
	"context"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/hashicorp/go-multierror"
)

type (
	// Source is an open connection to the prefix store.
	Source interface {
		Prefix(ctx context.Context, guildID string) (prefix string, found bool, err error)
		Close() error
	}

	Connector interface {
		Connect(ctx context.Context) (Source, error)
	}

	ConnectorFunc func(ctx context.Context) (Source, error)

	Loader struct {
		Connector Connector
		Cache     *Cache
	}
)

func (f ConnectorFunc) Connect(ctx context.Context) (Source, error) {
	return f(ctx)
}

func NewLoader(connector Connector, cache *Cache) *Loader {
	return &Loader{Connector: connector, Cache: cache}
}

// Load reads the stored prefix of each guild into the cache.
// A failing guild is logged and skipped; all failures are returned together once every guild has been tried.
// The connection is closed before returning, whatever happened.
func (l *Loader) Load(ctx context.Context, guildIDs []string) (err error) {
	logger := log.WithField("guilds", len(guildIDs))
	start := time.Now()

	source, err := l.Connector.Connect(ctx)
	if err != nil {
		logger.WithError(err).Error("prefixes.connect")
		return fmt.Errorf("could not connect to the prefix store: %w", err)
	}

	var result *multierror.Error
	defer func() {
		if cerr := source.Close(); cerr != nil {
			logger.WithError(cerr).Warn("prefixes.close")
			result = multierror.Append(result, fmt.Errorf("could not close the prefix store: %w", cerr))
		}
		err = result.ErrorOrNil()
	}()

	loaded := 0
	for _, guildID := range guildIDs {
		if ctx.Err() != nil {
			result = multierror.Append(result, ctx.Err())
			break
		}
		prefix, found, qerr := source.Prefix(ctx, guildID)
		if qerr != nil {
			logger.WithField("guildID", guildID).WithError(qerr).Warn("prefixes.load.guild")
			result = multierror.Append(result, fmt.Errorf("guild %s: %w", guildID, qerr))
			continue
		}
		if found {
			l.Cache.Update(guildID, prefix)
			loaded++
		}
	}

	logger.
		WithField("loaded", loaded).
		WithField("duration", time.Since(start)).
		Info("prefixes.load")
	return nil
}
