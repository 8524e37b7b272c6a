// Package cache holds the in-memory existence index of known ckeys and the
// background task that keeps it current.
package cache

import (
	"strings"
	"sync"
	"sync/atomic"
)

// snapshot is one immutable published state of the cache. Readers load the
// whole snapshot in a single atomic operation, so a lookup can never observe
// a half-built set or a mix of two refresh cycles.
type snapshot struct {
	players map[string]struct{}
	admins  map[string]struct{}
}

var emptySnapshot = &snapshot{
	players: map[string]struct{}{},
	admins:  map[string]struct{}{},
}

// ExistenceCache answers "has this ckey ever appeared in the ban table" for
// players and admins. Membership is case-insensitive and only ever grows
// within the process lifetime: Load merges into the current state and
// publishes the union.
type ExistenceCache struct {
	mu   sync.Mutex // serializes writers; readers never take it
	snap atomic.Pointer[snapshot]
}

func NewExistenceCache() *ExistenceCache {
	c := &ExistenceCache{}
	c.snap.Store(emptySnapshot)
	return c
}

// Load merges the given identifier sets into the cache and atomically
// publishes the result. Entries are lower-cased on insert.
func (c *ExistenceCache) Load(playerIDs, adminIDs []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.snap.Load()
	next := &snapshot{
		players: make(map[string]struct{}, len(current.players)+len(playerIDs)),
		admins:  make(map[string]struct{}, len(current.admins)+len(adminIDs)),
	}
	for id := range current.players {
		next.players[id] = struct{}{}
	}
	for id := range current.admins {
		next.admins[id] = struct{}{}
	}
	for _, id := range playerIDs {
		next.players[strings.ToLower(id)] = struct{}{}
	}
	for _, id := range adminIDs {
		next.admins[strings.ToLower(id)] = struct{}{}
	}

	c.snap.Store(next)
}

// ContainsPlayer reports whether the player ckey has ever been seen.
func (c *ExistenceCache) ContainsPlayer(id string) bool {
	_, ok := c.snap.Load().players[strings.ToLower(id)]
	return ok
}

// ContainsAdmin reports whether the admin ckey has ever been seen.
func (c *ExistenceCache) ContainsAdmin(id string) bool {
	_, ok := c.snap.Load().admins[strings.ToLower(id)]
	return ok
}

// Sizes returns the current number of known players and admins.
func (c *ExistenceCache) Sizes() (players, admins int) {
	snap := c.snap.Load()
	return len(snap.players), len(snap.admins)
}
