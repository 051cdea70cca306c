// Package reportcache implements the reportbus.Viewer interface with an
// in-process memoization layer. Views are pure functions of the snapshot
// and filter, so entries keyed on (version, filter, sort, page) never go
// stale within a session; the version component invalidates everything when
// a new snapshot loads.
package reportcache

import (
	"context"
	"time"

	"github.com/jcpaschoal/platform-analytics/business/domain/reportbus"
	"github.com/jcpaschoal/platform-analytics/business/sdk/order"
	"github.com/jcpaschoal/platform-analytics/business/sdk/page"
	"github.com/jcpaschoal/platform-analytics/foundation/logger"
	"github.com/viccon/sturdyc"
)

const (
	capacity           = 512
	numShards          = 8
	evictionPercentage = 10
)

// Store implements the reportbus.Viewer interface backed by per-view
// sturdyc clients in front of the real core.
type Store struct {
	log       *logger.Logger
	core      *reportbus.Core
	overview  *sturdyc.Client[reportbus.Overview]
	licences  *sturdyc.Client[reportbus.Licences]
	users     *sturdyc.Client[reportbus.Users]
	tenancies *sturdyc.Client[reportbus.Tenancies]
}

// NewStore constructs the memoizing store. The TTL is a session-scoped
// bound on memory, not a correctness mechanism.
func NewStore(log *logger.Logger, core *reportbus.Core, ttl time.Duration) *Store {
	return &Store{
		log:       log,
		core:      core,
		overview:  sturdyc.New[reportbus.Overview](capacity, numShards, ttl, evictionPercentage),
		licences:  sturdyc.New[reportbus.Licences](capacity, numShards, ttl, evictionPercentage),
		users:     sturdyc.New[reportbus.Users](capacity, numShards, ttl, evictionPercentage),
		tenancies: sturdyc.New[reportbus.Tenancies](capacity, numShards, ttl, evictionPercentage),
	}
}

// Overview returns the memoized landing view for the filter.
func (s *Store) Overview(ctx context.Context, flt reportbus.Filter) (reportbus.Overview, error) {
	key := s.key("overview", flt.Key())

	return s.overview.GetOrFetch(ctx, key, func(ctx context.Context) (reportbus.Overview, error) {
		return s.core.Overview(ctx, flt)
	})
}

// Licences returns the memoized licence view for the filter, sort and page.
func (s *Store) Licences(ctx context.Context, flt reportbus.Filter, orderBy order.By, pg page.Page) (reportbus.Licences, error) {
	key := s.key("licences", flt.Key(), orderBy.String(), pg.String())

	return s.licences.GetOrFetch(ctx, key, func(ctx context.Context) (reportbus.Licences, error) {
		return s.core.Licences(ctx, flt, orderBy, pg)
	})
}

// Users returns the memoized user engagement view for the filter and sort.
func (s *Store) Users(ctx context.Context, flt reportbus.Filter, orderBy order.By) (reportbus.Users, error) {
	key := s.key("users", flt.Key(), orderBy.String())

	return s.users.GetOrFetch(ctx, key, func(ctx context.Context) (reportbus.Users, error) {
		return s.core.Users(ctx, flt, orderBy)
	})
}

// Tenancies returns the memoized tenancy view for the filter, sort and page.
func (s *Store) Tenancies(ctx context.Context, flt reportbus.Filter, orderBy order.By, pg page.Page) (reportbus.Tenancies, error) {
	key := s.key("tenancies", flt.Key(), orderBy.String(), pg.String())

	return s.tenancies.GetOrFetch(ctx, key, func(ctx context.Context) (reportbus.Tenancies, error) {
		return s.core.Tenancies(ctx, flt, orderBy, pg)
	})
}

// key builds a cache key scoped to the snapshot version so a reload
// invalidates every entry at once.
func (s *Store) key(view string, parts ...string) string {
	key := s.core.Version() + "|" + view
	for _, p := range parts {
		key += "|" + p
	}
	return key
}
