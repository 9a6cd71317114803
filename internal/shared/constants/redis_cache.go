package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for the box office server
// Pattern: boxoffice:{module}:{operation}:{params?}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_SEMI_STATIC_SHORT = 1 * time.Hour    // 1 hour - for sponsor listings
	TTL_DYNAMIC_SHORT     = 5 * time.Minute  // 5 minutes - for event listings
	TTL_DYNAMIC_QUICK     = 2 * time.Minute  // 2 minutes - for booking lists
	TTL_REALTIME_SHORT    = 30 * time.Second // 30 seconds - for ledger views
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "boxoffice"
)

// ================== EVENTS MODULE ==================

// Event Cache Keys
const (
	CACHE_KEY_EVENTS_LIST    = CACHE_PREFIX + ":events:list"      // + :skip:X:limit:Y
	CACHE_KEY_EVENT_BOOKINGS = CACHE_PREFIX + ":events:bookings:" // + event-id
)

// Event Cache TTLs
const (
	TTL_EVENT_LIST     = TTL_DYNAMIC_SHORT // 5 minutes
	TTL_EVENT_BOOKINGS = TTL_DYNAMIC_QUICK // 2 minutes
)

// ================== SPONSORS MODULE ==================

const (
	CACHE_KEY_SPONSORS_LIST = CACHE_PREFIX + ":sponsors:list"
)

const (
	TTL_SPONSORS_LIST = TTL_SEMI_STATIC_SHORT // 1 hour
)

// ================== LEDGER MODULE ==================

const (
	CACHE_KEY_LEDGER_EVENT = CACHE_PREFIX + ":ledger:event:" // + event-id
)

const (
	TTL_LEDGER_EVENT = TTL_REALTIME_SHORT // 30 seconds
)

// ================== CACHE INVALIDATION PATTERNS ==================

// Patterns for cache invalidation (used with Redis SCAN)
const (
	// Any booking or event change alters seat counts and collections on every list page.
	PATTERN_INVALIDATE_EVENT_ALL    = CACHE_PREFIX + ":events:*"
	PATTERN_INVALIDATE_SPONSORS_ALL = CACHE_PREFIX + ":sponsors:*"
	PATTERN_INVALIDATE_LEDGER_ALL   = CACHE_PREFIX + ":ledger:*"
)

// ================== HELPER FUNCTIONS ==================

// BuildEventListKey constructs the list cache key
// Example: BuildEventListKey(0, 100) -> "boxoffice:events:list:skip:0:limit:100"
func BuildEventListKey(skip, limit int) string {
	return CACHE_KEY_EVENTS_LIST + ":skip:" + fmt.Sprintf("%d", skip) + ":limit:" + fmt.Sprintf("%d", limit)
}

func BuildEventBookingsKey(eventID uint) string {
	return CACHE_KEY_EVENT_BOOKINGS + fmt.Sprintf("%d", eventID)
}

func BuildLedgerKey(eventID uint) string {
	return CACHE_KEY_LEDGER_EVENT + fmt.Sprintf("%d", eventID)
}
