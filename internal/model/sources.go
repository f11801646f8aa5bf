package model

import "context"

// FindByHandleFunc looks a single account up by handle. Absence is reported
// as ErrNotFound; any other error means the store is unavailable.
type FindByHandleFunc func(ctx context.Context, handle string) (*AccountRecord, error)

// FindAllFunc returns every account in the store.
type FindAllFunc func(ctx context.Context) ([]AccountRecord, error)

// ListProfilesFunc lists profile documents matching the filter, in source
// order.
type ListProfilesFunc func(ctx context.Context, filter ProfileFilter) ([]ProfileRecord, error)

// Sources is the injected capability set the resolver works against. It
// holds no logic; callers supply it once via Resolver.Configure before any
// resolution happens.
type Sources struct {
	FindByHandle  FindByHandleFunc
	FindAll       FindAllFunc
	ListProfiles  ListProfilesFunc
	NoAuthEnabled bool
}
