// Package track holds the core filtering and accounting logic: pure
// functions over the in-memory pumpkin dataset and the claimed-ID set.
package track

import (
	"log"
	"strconv"
	"time"

	"github.com/AutumnThyme/PumpkinSnatcher/internal/claimed"
	"github.com/AutumnThyme/PumpkinSnatcher/internal/model"
)

// FilterNew keeps the records whose ID is not in the claimed set.
// Records with non-numeric IDs are dropped.
func FilterNew(all model.Dataset, claimedSet claimed.Set) model.Dataset {
	out := model.Dataset{}
	for id, rec := range all {
		n, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		if claimedSet.Has(n) {
			continue
		}
		out[id] = rec
	}
	return out
}

// HourStart truncates now to the start of its UTC hour.
func HourStart(now time.Time) time.Time {
	u := now.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), 0, 0, 0, time.UTC)
}

// FilterRecent keeps the records found at or after the start of the
// current UTC hour. Records with a missing or unparseable foundAt are
// dropped with a logged warning.
func FilterRecent(in model.Dataset, now time.Time, logger *log.Logger) model.Dataset {
	if logger == nil {
		logger = log.Default()
	}
	cutoff := HourStart(now)

	out := model.Dataset{}
	for id, rec := range in {
		foundAt, err := ParseFoundAt(rec.FoundAt)
		if err != nil {
			logger.Printf("[track] pumpkin %s: bad foundAt %q: %v", id, rec.FoundAt, err)
			continue
		}
		if foundAt.Before(cutoff) {
			continue
		}
		out[id] = rec
	}
	return out
}

// ParseFoundAt parses the ISO-8601 timestamp carried by pumpkin records.
func ParseFoundAt(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
