package track

import (
	"math"

	"github.com/AutumnThyme/PumpkinSnatcher/internal/claimed"
	"github.com/AutumnThyme/PumpkinSnatcher/internal/model"
)

// Progress summarizes how far along the hunt is. Total is the fixed
// number of pumpkins in the event, independent of how many the remote
// dataset has discovered so far.
type Progress struct {
	Total               int     `json:"total"`
	Discovered          int     `json:"discovered"`
	Claimed             int     `json:"claimed"`
	Left                int     `json:"left"`
	PercentOfTotal      float64 `json:"percentOfTotal"`
	PercentOfDiscovered float64 `json:"percentOfDiscovered"`
}

// CalculateProgress computes progress counters from the fetched dataset
// and the claimed set. Percentages are rounded to one decimal place and
// zero when the divisor is zero.
func CalculateProgress(all model.Dataset, claimedSet claimed.Set, total int) Progress {
	p := Progress{
		Total:      total,
		Discovered: len(all),
		Claimed:    len(claimedSet),
	}
	p.Left = p.Total - p.Claimed
	p.PercentOfTotal = percent(p.Claimed, p.Total)
	p.PercentOfDiscovered = percent(p.Claimed, p.Discovered)
	return p
}

func percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}
