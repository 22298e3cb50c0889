package inmemorylookup

import (
	"reflect"
	"slices"
	"strings"
)

// BucketInfo describes one indexed key for diagnostics.
type BucketInfo struct {
	Key     reflect.Type
	Form    string // "one" or "many"
	Count   int
	Current any // what Lookup(Key) returns
}

func sortBucketInfo(rows []BucketInfo) {
	slices.SortFunc(rows, func(a, b BucketInfo) int {
		return strings.Compare(a.Key.String(), b.Key.String())
	})
}
