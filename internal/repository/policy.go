package repository

import (
	"fmt"
	"strings"
)

// SyncPolicy decides how writes are split between the remote store and the cache.
type SyncPolicy string

const (
	// PolicyRemoteFirst writes the store, then mirrors to the cache.
	// A store failure aborts the write and leaves the cache untouched.
	PolicyRemoteFirst SyncPolicy = "remote-first"

	// PolicyCacheFirst always writes the cache, then the store.
	// A store failure is still reported, with the cache ahead of the store.
	PolicyCacheFirst SyncPolicy = "cache-first"

	// PolicyRemoteOnly never touches the cache.
	PolicyRemoteOnly SyncPolicy = "remote-only"
)

// ParsePolicy accepts a policy name in any case.
func ParsePolicy(s string) (SyncPolicy, error) {
	switch p := SyncPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyRemoteFirst, PolicyCacheFirst, PolicyRemoteOnly:
		return p, nil
	default:
		return "", fmt.Errorf("unknown sync policy %q", s)
	}
}

// Source tells callers where a read was served from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceCache  Source = "cache"
)
