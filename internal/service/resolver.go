package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/quillpress/identity/internal/logger"
	"github.com/quillpress/identity/internal/model"
)

// Fixed identity served for the "admin" handle when no-auth development
// mode is enabled and no real source answered.
const (
	NoAuthHandle      = "admin"
	noAuthID          = "noauth-admin"
	noAuthDisplayName = "Development Admin"
	noAuthRole        = "super_admin"
	noAuthAvatar      = "/static/avatars/dev-admin.png"
	noAuthBio         = "Local development administrator account."
)

// Resolver resolves user identities by handle across three tiers: the
// account store, the profile cache, and the no-auth development fallback.
// Each tier is failure-isolated; a source outage degrades resolution to the
// remaining tiers instead of surfacing an error.
type Resolver struct {
	mu     sync.RWMutex
	src    *model.Sources
	cache  *ProfileCache
	logger *logger.Logger
}

// NewResolver creates a Resolver with the given profile cache. The resolver
// starts unconfigured; every operation fails with model.ErrNotConfigured
// until Configure is called.
func NewResolver(cache *ProfileCache, logger *logger.Logger) *Resolver {
	return &Resolver{
		cache:  cache,
		logger: logger,
	}
}

// Configure replaces the whole capability set atomically. It does not clear
// the profile cache; callers that need staleness guarantees after swapping
// sources must call ClearCache themselves.
func (r *Resolver) Configure(src model.Sources) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.src = &src
}

// Reset clears the capability set back to unconfigured.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.src = nil
}

func (r *Resolver) sources() (*model.Sources, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.src == nil {
		return nil, model.ErrNotConfigured
	}
	return r.src, nil
}

// Resolve returns the identity for a handle, or (nil, nil) when no tier
// matches. Tier precedence: account store, then cached profile documents,
// then the no-auth fallback. The only error surfaced to the caller is
// model.ErrNotConfigured.
func (r *Resolver) Resolve(ctx context.Context, handle string) (*model.Identity, error) {
	src, err := r.sources()
	if err != nil {
		return nil, err
	}

	account, err := src.FindByHandle(ctx, handle)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			r.logger.Warn("Resolver: account store lookup failed",
				"handle", handle,
				"error", err.Error())
		}
	} else if account != nil {
		return identityFromAccount(account), nil
	}

	if identity := r.cache.Lookup(ctx, handle, src.ListProfiles); identity != nil {
		return identity, nil
	}

	if handle == NoAuthHandle && src.NoAuthEnabled {
		return noAuthIdentity(), nil
	}

	return nil, nil
}

// Exists reports whether a handle resolves to an identity. It performs a
// full resolution, so it pays the same tier cost as Resolve.
func (r *Resolver) Exists(ctx context.Context, handle string) (bool, error) {
	identity, err := r.Resolve(ctx, handle)
	if err != nil {
		return false, err
	}
	return identity != nil, nil
}

// ListAllHandles returns the deduplicated union of handles known to the
// account store and the profile source, sorted. A failure in either source
// is logged and that source contributes nothing.
func (r *Resolver) ListAllHandles(ctx context.Context) ([]string, error) {
	src, err := r.sources()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})

	accounts, err := src.FindAll(ctx)
	if err != nil {
		r.logger.Warn("Resolver: account store listing failed",
			"error", err.Error())
	}
	for _, account := range accounts {
		seen[account.Handle] = struct{}{}
	}

	profiles, err := src.ListProfiles(ctx, model.ProfileFilter{})
	if err != nil {
		r.logger.Warn("Resolver: profile listing failed",
			"error", err.Error())
	}
	for _, profile := range profiles {
		handle := profile.Metadata.Handle
		if handle == "" {
			handle = profile.Slug
		}
		seen[handle] = struct{}{}
	}

	handles := make([]string, 0, len(seen))
	for handle := range seen {
		handles = append(handles, handle)
	}
	sort.Strings(handles)

	return handles, nil
}

// ClearCache discards all cached profile resolutions.
func (r *Resolver) ClearCache() {
	r.cache.Clear()
}

func identityFromAccount(account *model.AccountRecord) *model.Identity {
	role := account.Role
	if role == "" {
		role = model.DefaultRole
	}
	return &model.Identity{
		ID:          account.ID,
		Handle:      account.Handle,
		DisplayName: account.DisplayName,
		Source:      model.IdentitySourceStore,
		Role:        role,
		Avatar:      account.Avatar,
		Bio:         account.Bio,
		Pronouns:    account.Pronouns,
		Location:    account.Location,
		Website:     account.Website,
		Account:     account,
	}
}

func noAuthIdentity() *model.Identity {
	return &model.Identity{
		ID:          noAuthID,
		Handle:      NoAuthHandle,
		DisplayName: noAuthDisplayName,
		Source:      model.IdentitySourceNoAuth,
		Role:        noAuthRole,
		Avatar:      noAuthAvatar,
		Bio:         noAuthBio,
	}
}
