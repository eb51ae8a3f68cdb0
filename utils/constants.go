// File: utils/constants.go
package utils

import "time"

// SearchCachePrefix is the prefix used for Redis search result cache keys.
const SearchCachePrefix = "search:"

// DefaultSearchCacheTTL is the fallback time-to-live for cached search results.
const DefaultSearchCacheTTL = 5 * time.Minute

// SlotLockTTL bounds how long a slot status transition may hold its lock.
const SlotLockTTL = 10 * time.Second
