package oddsmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAmericanToImpliedProb tests conversion for favorites, underdogs and zero
func TestAmericanToImpliedProb(t *testing.T) {
	tests := []struct {
		name string
		odds int
		want float64
	}{
		{"favorite -110", -110, 110.0 / 210.0},
		{"favorite -200", -200, 2.0 / 3.0},
		{"underdog +150", 150, 0.40},
		{"even +100", 100, 0.50},
		{"even -100", -100, 0.50},
		{"zero is no signal", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AmericanToImpliedProb(tt.odds), 1e-12)
		})
	}
}

// TestImpliedProbToAmerican_Degenerate tests sentinel output for out-of-range input
func TestImpliedProbToAmerican_Degenerate(t *testing.T) {
	for _, p := range []float64{0, -0.2, 1, 1.5, math.NaN()} {
		assert.Equal(t, 0, ImpliedProbToAmerican(p), "prob %v", p)
	}
}

// TestImpliedProbToAmerican_Values tests known conversions
func TestImpliedProbToAmerican_Values(t *testing.T) {
	assert.Equal(t, -200, ImpliedProbToAmerican(2.0/3.0))
	assert.Equal(t, 150, ImpliedProbToAmerican(0.40))
	assert.Equal(t, -100, ImpliedProbToAmerican(0.50))
}

// TestImpliedProbRoundTrip tests that realistic American odds survive a round trip
func TestImpliedProbRoundTrip(t *testing.T) {
	for x := -10000; x <= 10000; x++ {
		if x > -100 && x <= 100 {
			// no valid American odds in (-100, 100); +100 and -100 are the same price
			continue
		}
		got := ImpliedProbToAmerican(AmericanToImpliedProb(x))
		assert.InDelta(t, x, got, 1, "odds %d", x)
	}
}

// TestAmericanToDecimal tests decimal conversion
func TestAmericanToDecimal(t *testing.T) {
	assert.InDelta(t, 2.50, AmericanToDecimal(150), 1e-12)
	assert.InDelta(t, 1+100.0/150.0, AmericanToDecimal(-150), 1e-12)
	assert.InDelta(t, 2.0, AmericanToDecimal(100), 1e-12)
	assert.Equal(t, 0.0, AmericanToDecimal(0))
}

// TestRemoveVig_Standard tests the -110/-110 scenario
func TestRemoveVig_Standard(t *testing.T) {
	result := RemoveVig(-110, -110)

	assert.InDelta(t, 0.5, result.HomeProb, 1e-9)
	assert.InDelta(t, 0.5, result.AwayProb, 1e-9)
	assert.InDelta(t, 0.0476, result.Vig, 1e-4)
	assert.False(t, result.Anomalous)
}

// TestRemoveVig_RealisticMarkets tests the normalization invariants across generated books
func TestRemoveVig_RealisticMarkets(t *testing.T) {
	for fair := 0.10; fair <= 0.90; fair += 0.01 {
		for _, margin := range []float64{0.02, 0.03, 0.045, 0.06, 0.08} {
			a := ImpliedProbToAmerican(fair * (1 + margin))
			b := ImpliedProbToAmerican((1 - fair) * (1 + margin))

			result := RemoveVig(a, b)

			assert.InDelta(t, 1.0, result.HomeProb+result.AwayProb, 1e-9, "odds %d/%d", a, b)
			assert.GreaterOrEqual(t, result.Vig, 0.0, "odds %d/%d", a, b)
			assert.False(t, result.Anomalous, "odds %d/%d", a, b)
		}
	}
}

// TestRemoveVig_Anomalies tests that impossible books are flagged
func TestRemoveVig_Anomalies(t *testing.T) {
	t.Run("negative vig", func(t *testing.T) {
		result := RemoveVig(300, 300)
		assert.Less(t, result.Vig, 0.0)
		assert.True(t, result.Anomalous)
		assert.InDelta(t, 1.0, result.HomeProb+result.AwayProb, 1e-9)
	})

	t.Run("missing side", func(t *testing.T) {
		result := RemoveVig(-110, 0)
		assert.True(t, result.Anomalous)
	})

	t.Run("no prices", func(t *testing.T) {
		result := RemoveVig(0, 0)
		assert.True(t, result.Anomalous)
		assert.Equal(t, 0.0, result.HomeProb)
		assert.Equal(t, 0.0, result.AwayProb)
		assert.False(t, math.IsNaN(result.Vig))
	})
}

// TestCalculateEdge tests the 0.55 vs -110 scenario
func TestCalculateEdge(t *testing.T) {
	assert.InDelta(t, 2.62, CalculateEdge(0.55, -110), 0.01)
	assert.Less(t, CalculateEdge(0.40, -110), 0.0)
	assert.InDelta(t, 55.0, CalculateEdge(0.55, 0), 1e-9)
}

// TestCalculateEV tests expected value and its linearity in stake
func TestCalculateEV(t *testing.T) {
	// fair coin at even money is zero EV
	assert.InDelta(t, 0.0, CalculateEV(0.5, 100, 1), 1e-12)
	// 0.5 at +150 → 0.5*1.5 - 0.5 = 0.25
	assert.InDelta(t, 0.25, CalculateEV(0.5, 150, 1), 1e-12)

	for _, odds := range []int{-250, -110, 100, 135, 400} {
		for _, p := range []float64{0.1, 0.45, 0.5238, 0.8} {
			base := CalculateEV(p, odds, 10)
			for _, k := range []float64{0.5, 2, 3.7, 100} {
				assert.InDelta(t, k*base, CalculateEV(p, odds, k*10), 1e-9,
					"odds=%d p=%v k=%v", odds, p, k)
			}
		}
	}

	assert.Equal(t, 0.0, CalculateEV(0.5, 0, 10))
}

// TestGetConfidenceTier tests bucket thresholds
func TestGetConfidenceTier(t *testing.T) {
	tests := []struct {
		name      string
		edge      float64
		freshness float64
		want      ConfidenceTier
	}{
		{"high", 5, 0, ConfidenceHigh},
		{"high negative edge", -6, 10, ConfidenceHigh},
		{"medium", 2.5, 0, ConfidenceMedium},
		{"low", 1, 0, ConfidenceLow},
		{"none", 0.99, 0, ConfidenceNone},
		{"exactly one hour is fresh", 5, 60, ConfidenceHigh},
		{"stale high becomes medium", 5, 61, ConfidenceMedium},
		{"stale large edge", 9.9, 120, ConfidenceMedium},
		{"stale low becomes none", 1.5, 90, ConfidenceNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetConfidenceTier(tt.edge, tt.freshness))
		})
	}
}

// TestGetConfidenceTier_MonotonicInFreshness tests that older data never grades higher
func TestGetConfidenceTier_MonotonicInFreshness(t *testing.T) {
	for edge := -12.0; edge <= 12.0; edge += 0.25 {
		prev := GetConfidenceTier(edge, 0).Rank()
		for minutes := 0.0; minutes <= 240; minutes += 5 {
			rank := GetConfidenceTier(edge, minutes).Rank()
			assert.LessOrEqual(t, rank, prev, "edge=%v minutes=%v", edge, minutes)
			prev = rank
		}
	}
}

// TestFormatting tests display helpers
func TestFormatting(t *testing.T) {
	assert.Equal(t, "+150", FormatOdds(150))
	assert.Equal(t, "-110", FormatOdds(-110))
	assert.Equal(t, "N/A", FormatOdds(0))

	assert.Equal(t, "52.4%", FormatProbability(110.0/210.0, 1))
	assert.Equal(t, "50%", FormatProbability(0.5, 0))
	assert.Equal(t, "N/A", FormatProbability(math.NaN(), 1))
}
