package track

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AutumnThyme/PumpkinSnatcher/internal/claimed"
	"github.com/AutumnThyme/PumpkinSnatcher/internal/model"
)

func TestCalculateProgress(t *testing.T) {
	all := model.Dataset{
		"1": {}, "2": {}, "3": {}, "4": {}, "5": {},
	}
	claimedSet := claimed.NewSet(1, 2)

	p := CalculateProgress(all, claimedSet, 100)

	assert.Equal(t, 100, p.Total)
	assert.Equal(t, 5, p.Discovered)
	assert.Equal(t, 2, p.Claimed)
	assert.Equal(t, 98, p.Left)
	assert.Equal(t, 2.0, p.PercentOfTotal)
	assert.Equal(t, 40.0, p.PercentOfDiscovered)
}

func TestCalculateProgress_RoundsToOneDecimal(t *testing.T) {
	all := model.Dataset{"1": {}, "2": {}, "3": {}}
	claimedSet := claimed.NewSet(1)

	p := CalculateProgress(all, claimedSet, 100)

	assert.Equal(t, 1.0, p.PercentOfTotal)
	assert.Equal(t, 33.3, p.PercentOfDiscovered)
}

func TestCalculateProgress_EmptyDatasetHasZeroPercent(t *testing.T) {
	p := CalculateProgress(model.Dataset{}, claimed.Set{}, 100)

	assert.Equal(t, 0, p.Discovered)
	assert.Equal(t, 0.0, p.PercentOfDiscovered)
	assert.Equal(t, 0.0, p.PercentOfTotal)
	assert.Equal(t, 100, p.Left)
}

func TestCalculateProgress_ZeroTotalGuard(t *testing.T) {
	p := CalculateProgress(model.Dataset{"1": {}}, claimed.NewSet(1), 0)

	assert.Equal(t, 0.0, p.PercentOfTotal)
}
