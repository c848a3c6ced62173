package transform

import (
	"sort"
	"time"
)

// DedupeOrder selects which of the two equivalent "most recent wins"
// orderings a dedup pass uses.
type DedupeOrder int

const (
	// SortDescKeepFirst stable-sorts descending by time and keeps the first
	// occurrence per key. Used for duplicate-text collapsing of items.
	SortDescKeepFirst DedupeOrder = iota
	// SortAscKeepLast stable-sorts ascending by time and keeps the last
	// occurrence per key. Used for profile-update collapsing of users.
	SortAscKeepLast
)

// MostRecentByKey collapses records sharing a key down to the most recently
// timestamped one. Both orderings produce the same winner for distinct
// timestamps. Ties are broken deterministically by the stable sort: records
// with equal timestamps keep their input order, so SortDescKeepFirst keeps
// the earliest-input record of a tied group and SortAscKeepLast keeps the
// latest-input one. Output order follows the sort order of the pass.
func MostRecentByKey[T any](records []T, key func(T) string, ts func(T) time.Time, order DedupeOrder) []T {
	sorted := append([]T(nil), records...)

	switch order {
	case SortDescKeepFirst:
		sort.SliceStable(sorted, func(i, j int) bool {
			return ts(sorted[i]).After(ts(sorted[j]))
		})
		seen := make(map[string]struct{}, len(sorted))
		kept := make([]T, 0, len(sorted))
		for _, r := range sorted {
			k := key(r)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			kept = append(kept, r)
		}
		return kept

	case SortAscKeepLast:
		sort.SliceStable(sorted, func(i, j int) bool {
			return ts(sorted[i]).Before(ts(sorted[j]))
		})
		lastIndex := make(map[string]int, len(sorted))
		for i, r := range sorted {
			lastIndex[key(r)] = i
		}
		kept := make([]T, 0, len(lastIndex))
		for i, r := range sorted {
			if lastIndex[key(r)] == i {
				kept = append(kept, r)
			}
		}
		return kept
	}

	return sorted
}
