package service

import (
	"context"
	"sync"
	"time"

	"github.com/quillpress/identity/internal/logger"
	"github.com/quillpress/identity/internal/model"
)

// DefaultProfileCacheTTL bounds how long one cache generation is served
// before the whole thing is rebuilt.
const DefaultProfileCacheTTL = 60 * time.Second

// ProfileCache caches profile-backed identity resolutions by handle,
// including negative results. All entries share a single epoch timestamp:
// once the epoch ages past the TTL the entire map is discarded and rebuilt,
// never refreshed per entry.
type ProfileCache struct {
	mu      sync.Mutex
	epoch   time.Time
	entries map[string]*model.Identity
	ttl     time.Duration
	now     func() time.Time
	logger  *logger.Logger
}

// NewProfileCache creates an empty cache. A non-positive ttl falls back to
// DefaultProfileCacheTTL.
func NewProfileCache(ttl time.Duration, logger *logger.Logger) *ProfileCache {
	if ttl <= 0 {
		ttl = DefaultProfileCacheTTL
	}
	return &ProfileCache{
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// Lookup returns the cached identity for a handle, fetching through the
// given listing capability on a miss. A nil return means the handle has no
// profile; that outcome is cached too, so repeated misses within the TTL
// window cost no external calls. Two concurrent misses on the same handle
// may both invoke list; both compute the same value and the last write
// wins.
func (c *ProfileCache) Lookup(ctx context.Context, handle string, list model.ListProfilesFunc) *model.Identity {
	c.mu.Lock()
	if !c.epoch.IsZero() && c.now().Sub(c.epoch) <= c.ttl {
		if identity, ok := c.entries[handle]; ok {
			c.mu.Unlock()
			return identity
		}
	} else {
		// Stale or never populated: the epoch is cache-wide, so every
		// entry goes, even ones cached moments ago.
		c.entries = make(map[string]*model.Identity)
		c.epoch = c.now()
	}
	c.mu.Unlock()

	var identity *model.Identity
	profiles, err := list(ctx, model.ProfileFilter{Handle: handle})
	if err != nil {
		c.logger.Warn("ProfileCache: profile listing failed",
			"handle", handle,
			"error", err.Error())
	} else if len(profiles) > 0 {
		// Source order is authoritative, first match wins.
		identity = identityFromProfile(&profiles[0])
	}

	c.mu.Lock()
	if c.entries == nil {
		// Cleared while we were fetching.
		c.entries = make(map[string]*model.Identity)
		c.epoch = c.now()
	}
	c.entries[handle] = identity
	c.mu.Unlock()

	return identity
}

// Clear discards the epoch and every entry. Safe to call on a cache that
// was never populated.
func (c *ProfileCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch = time.Time{}
	c.entries = nil
}

func identityFromProfile(profile *model.ProfileRecord) *model.Identity {
	md := profile.Metadata

	handle := md.Handle
	if handle == "" {
		handle = profile.Slug
	}

	displayName := md.Name
	if displayName == "" {
		displayName = md.DisplayName
	}
	if displayName == "" {
		displayName = profile.Slug
	}

	role := md.Role
	if role == "" {
		role = model.DefaultRole
	}

	website := md.Website
	if website == "" {
		website = md.Contact.Website
	}

	return &model.Identity{
		Handle:      handle,
		DisplayName: displayName,
		Source:      model.IdentitySourceProfile,
		Role:        role,
		Avatar:      md.Avatar,
		Bio:         md.Bio,
		Pronouns:    md.Pronouns,
		Location:    md.Location,
		Website:     website,
	}
}
