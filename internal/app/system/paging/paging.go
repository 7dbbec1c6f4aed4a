// internal/app/system/paging/paging.go

// Package paging implements look-ahead pagination: fetch limit+1 rows and
// trim, so "is there another page" never needs a second count query.
package paging

// LimitPlusOne returns the fetch limit for look-ahead pagination.
func LimitPlusOne(limit int64) int64 { return limit + 1 }

// Trim cuts rows down to limit in place and reports whether more rows exist
// beyond this page. Call it after fetching LimitPlusOne(limit) rows.
func Trim[T any](rows *[]T, limit int64) (hasMore bool) {
	if int64(len(*rows)) > limit {
		*rows = (*rows)[:limit]
		return true
	}
	return false
}
