// Package dialect detects the SQL dialect of a connection and memoizes the
// optional capabilities the search modes degrade on.
package dialect

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/cockroachdb/errors"

	"github.com/ministore/searchable/searchable/storage"
)

// DistanceProbeSQL asks the catalog for a two-argument levenshtein function
// (installed by the fuzzystrmatch extension).
const DistanceProbeSQL = `SELECT EXISTS (SELECT 1 FROM pg_proc WHERE proname = 'levenshtein' AND pronargs = 2)`

// ErrNoDialect is returned when the connection reports an empty driver name.
var ErrNoDialect = errors.New("connection reported no driver name")

const (
	capUnknown int32 = iota
	capAbsent
	capPresent
)

// CapabilityCache memoizes the distance-function capability for the
// lifetime of the cache. It is never invalidated: a function installed after
// the first probe is not seen until a new cache is used.
type CapabilityCache struct {
	distance atomic.Int32
}

func NewCapabilityCache() *CapabilityCache {
	return &CapabilityCache{}
}

// Distance returns the memoized value and whether one has been recorded.
func (c *CapabilityCache) Distance() (available, known bool) {
	switch c.distance.Load() {
	case capPresent:
		return true, true
	case capAbsent:
		return false, true
	default:
		return false, false
	}
}

func (c *CapabilityCache) storeDistance(available bool) {
	if available {
		c.distance.Store(capPresent)
		return
	}
	c.distance.Store(capAbsent)
}

// Probe answers dialect and capability questions for one connection.
type Probe struct {
	conn  storage.Connection
	cache *CapabilityCache
	log   *slog.Logger
}

func NewProbe(conn storage.Connection, cache *CapabilityCache, log *slog.Logger) *Probe {
	if cache == nil {
		cache = NewCapabilityCache()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Probe{conn: conn, cache: cache, log: log}
}

// Dialect reports the connection's dialect. Failure to learn the driver
// identity is returned to the caller.
func (p *Probe) Dialect() (storage.Dialect, error) {
	if p.conn == nil {
		return "", errors.New("no connection")
	}
	name, err := p.conn.DriverName()
	if err != nil {
		return "", errors.Wrap(err, "driver name")
	}
	if name == "" {
		return "", ErrNoDialect
	}
	return storage.DialectFromDriver(name), nil
}

// HasExtendedDistance reports whether a levenshtein(text, text) function is
// available. Only postgres is probed; the answer is memoized. A failed probe
// counts as unavailable. Concurrent first calls may each run the probe.
func (p *Probe) HasExtendedDistance(ctx context.Context, d storage.Dialect) bool {
	if d != storage.DialectPostgres {
		return false
	}
	if available, known := p.cache.Distance(); known {
		return available
	}
	available, err := p.conn.ProbeBool(ctx, DistanceProbeSQL)
	if err != nil {
		p.log.DebugContext(ctx, "distance function probe failed; treating as unavailable", "error", err)
		available = false
	}
	p.cache.storeDistance(available)
	return available
}
