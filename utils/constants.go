// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// DraftCachePrefix is the prefix used for persisted booking draft keys.
const DraftCachePrefix = "bookingDraft:"

// DraftCacheTTL is how long a persisted draft survives without activity.
// Long enough to outlive a login detour or a closed tab.
const DraftCacheTTL = 7 * 24 * time.Hour
