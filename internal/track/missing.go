package track

import (
	"sort"
	"strconv"
	"strings"

	"github.com/AutumnThyme/PumpkinSnatcher/internal/claimed"
	"github.com/AutumnThyme/PumpkinSnatcher/internal/model"
)

// MissingFromAPI returns the IDs in 1..total that the remote dataset has
// not discovered yet, ascending.
func MissingFromAPI(all model.Dataset, total int) []int {
	discovered := DiscoveredIDs(all)
	out := []int{}
	for id := 1; id <= total; id++ {
		if _, ok := discovered[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// AvailableUnclaimed returns the discovered IDs not yet claimed,
// ascending.
func AvailableUnclaimed(all model.Dataset, claimedSet claimed.Set) []int {
	out := []int{}
	for id := range DiscoveredIDs(all) {
		if !claimedSet.Has(id) {
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out
}

// DiscoveredIDs collects the numeric IDs present in the dataset.
// Non-numeric keys are skipped.
func DiscoveredIDs(all model.Dataset) map[int]struct{} {
	out := make(map[int]struct{}, len(all))
	for id := range all {
		if n, err := strconv.Atoi(id); err == nil {
			out[n] = struct{}{}
		}
	}
	return out
}

// FormatIDList renders IDs as a comma-separated list for display.
func FormatIDList(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
