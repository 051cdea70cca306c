// Package userbus resolves raw activity records into the single-attribution
// user set and answers filtered queries over it.
package userbus

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jcpaschoal/platform-analytics/business/domain/recordbus"
	"github.com/jcpaschoal/platform-analytics/business/sdk/order"
	"github.com/jcpaschoal/platform-analytics/business/sdk/page"
	"github.com/jcpaschoal/platform-analytics/business/sdk/period"
	"github.com/jcpaschoal/platform-analytics/business/types/frequency"
	"github.com/jcpaschoal/platform-analytics/business/types/status"
	"github.com/jcpaschoal/platform-analytics/foundation/logger"
	"github.com/jcpaschoal/platform-analytics/foundation/otel"
)

// Core manages the set of APIs for resolved user access. The resolved set is
// built once from a snapshot and never mutated afterwards.
type Core struct {
	log      *logger.Logger
	refDate  time.Time
	resolved []User
}

// NewCore constructs a core for user access, resolving identities from the
// raw records up front.
func NewCore(log *logger.Logger, refDate time.Time, raw []recordbus.UserRecord) *Core {
	resolved := Resolve(raw)

	users := make([]User, len(resolved))
	for i, rec := range resolved {
		users[i] = User{
			UserID:      rec.UserID,
			Tenancy:     rec.Tenancy,
			Component:   rec.Component,
			Environment: rec.Environment,
			LastLogin:   rec.LastLogin,
			LoginCount:  rec.LoginCount,
			Status:      status.Classify(rec.LastLogin, refDate),
		}
	}

	return &Core{
		log:      log,
		refDate:  refDate,
		resolved: users,
	}
}

// Resolve deduplicates the raw records so each userID survives exactly once.
// The occurrence with the strictly latest last login wins; on equal last
// logins the first-seen occurrence in input order wins. The result keeps
// first-occurrence positions, the input is never mutated and an empty input
// yields an empty resolved set.
func Resolve(raw []recordbus.UserRecord) []recordbus.UserRecord {
	resolved := make([]recordbus.UserRecord, 0, len(raw))
	index := make(map[string]int, len(raw))

	for _, rec := range raw {
		i, seen := index[rec.UserID]
		if !seen {
			index[rec.UserID] = len(resolved)
			resolved = append(resolved, rec)
			continue
		}

		if rec.LastLogin.After(resolved[i].LastLogin) {
			resolved[i] = rec
		}
	}

	return resolved
}

// Query retrieves the working set of users passing the filter, sorted and
// paged. Filtering an already-filtered result with the same filter returns
// the same result; an empty working set is valid output.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, pg page.Page) ([]User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.query")
	defer span.End()

	users := c.filtered(filter)

	if err := sortUsers(users, orderBy); err != nil {
		return nil, fmt.Errorf("sort: %w", err)
	}

	return page.Slice(pg, users), nil
}

// Count returns the total number of users passing the filter.
func (c *Core) Count(ctx context.Context, filter QueryFilter) int {
	ctx, span := otel.AddSpan(ctx, "business.userbus.count")
	defer span.End()

	var n int
	for _, usr := range c.resolved {
		if filter.matches(usr) {
			n++
		}
	}

	return n
}

// CountNew returns the number of users in the filter window whose only
// recorded login falls inside it. With a single last-login column per
// resolved user, a login count of at most one marks the first-ever login.
func (c *Core) CountNew(ctx context.Context, filter QueryFilter, w period.Window) int {
	ctx, span := otel.AddSpan(ctx, "business.userbus.countnew")
	defer span.End()

	filter.Window = &w

	var n int
	for _, usr := range c.resolved {
		if usr.LoginCount <= 1 && filter.matches(usr) {
			n++
		}
	}

	return n
}

// CountByStatus returns how many users of the resolved set hold each
// activity-recency status. The three counts always sum to the resolved set
// size.
func (c *Core) CountByStatus(ctx context.Context, filter QueryFilter) map[status.Status]int {
	ctx, span := otel.AddSpan(ctx, "business.userbus.countbystatus")
	defer span.End()

	counts := map[status.Status]int{
		status.Active:   0,
		status.Inactive: 0,
		status.Dormant:  0,
	}

	for _, usr := range c.resolved {
		if filter.matches(usr) {
			counts[usr.Status]++
		}
	}

	return counts
}

// CountByFrequency classifies the users passing the filter into login
// frequency tiers for a window of the given length. Users with no logins
// are Dormant without evaluating the average-gap ratio.
func (c *Core) CountByFrequency(ctx context.Context, filter QueryFilter, windowDays int) map[frequency.Frequency]int {
	ctx, span := otel.AddSpan(ctx, "business.userbus.countbyfrequency")
	defer span.End()

	counts := map[frequency.Frequency]int{
		frequency.Daily:      0,
		frequency.Weekly:     0,
		frequency.Occasional: 0,
		frequency.Dormant:    0,
	}

	for _, usr := range c.resolved {
		if filter.matches(usr) {
			counts[frequency.Classify(windowDays, usr.LoginCount)]++
		}
	}

	return counts
}

// List returns the full working set of users passing the filter in
// resolution order, without sorting or paging. Aggregations that need every
// row go through here.
func (c *Core) List(ctx context.Context, filter QueryFilter) []User {
	ctx, span := otel.AddSpan(ctx, "business.userbus.list")
	defer span.End()

	return c.filtered(filter)
}

// ResolvedCount returns the size of the resolved set.
func (c *Core) ResolvedCount() int {
	return len(c.resolved)
}

// filtered returns a fresh slice of the users passing the filter in
// resolution order, so repeated sorts over tied values stay deterministic.
func (c *Core) filtered(filter QueryFilter) []User {
	users := make([]User, 0, len(c.resolved))
	for _, usr := range c.resolved {
		if filter.matches(usr) {
			users = append(users, usr)
		}
	}

	return users
}

// sortUsers orders the slice by the requested column. The sort is stable so
// tied values keep their resolution order.
func sortUsers(users []User, orderBy order.By) error {
	var lessFn func(a, b User) bool

	switch orderBy.Field {
	case OrderByUserID:
		lessFn = func(a, b User) bool { return a.UserID < b.UserID }
	case OrderByTenancy:
		lessFn = func(a, b User) bool { return a.Tenancy < b.Tenancy }
	case OrderByComponent:
		lessFn = func(a, b User) bool { return a.Component.String() < b.Component.String() }
	case OrderByEnvironment:
		lessFn = func(a, b User) bool { return a.Environment.String() < b.Environment.String() }
	case OrderByLastLogin:
		lessFn = func(a, b User) bool { return a.LastLogin.Before(b.LastLogin) }
	case OrderByLoginCount:
		lessFn = func(a, b User) bool { return a.LoginCount < b.LoginCount }
	case OrderByStatus:
		lessFn = func(a, b User) bool { return a.Status.String() < b.Status.String() }
	default:
		return fmt.Errorf("unknown order field: %s", orderBy.Field)
	}

	if orderBy.Direction == order.DESC {
		asc := lessFn
		lessFn = func(a, b User) bool { return asc(b, a) }
	}

	sort.SliceStable(users, func(i, j int) bool {
		return lessFn(users[i], users[j])
	})

	return nil
}
