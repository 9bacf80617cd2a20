// Package oddsmath converts between odds representations and derives
// probabilities, edge, expected value and confidence from American odds.
//
// Every function is pure and total: out-of-range market noise yields a
// sentinel value (usually 0) instead of an error. Results are analytical
// figures, not wagering advice.
package oddsmath

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// AmericanToImpliedProb converts American odds to implied probability.
// Zero odds carry no signal and return 0.
// Example: -110 → 0.5238, +150 → 0.40
func AmericanToImpliedProb(odds int) float64 {
	switch {
	case odds > 0:
		return 100.0 / (float64(odds) + 100.0)
	case odds < 0:
		abs := math.Abs(float64(odds))
		return abs / (abs + 100.0)
	default:
		return 0
	}
}

// ImpliedProbToAmerican converts a probability to American odds.
// Degenerate probabilities (<= 0 or >= 1) return 0.
func ImpliedProbToAmerican(prob float64) int {
	if prob <= 0 || prob >= 1 || math.IsNaN(prob) {
		return 0
	}

	if prob >= 0.5 {
		// Favorite (negative odds)
		return int(math.Round(-(prob / (1 - prob)) * 100))
	}
	// Underdog (positive odds)
	return int(math.Round(((1 - prob) / prob) * 100))
}

// AmericanToDecimal converts American odds to decimal odds.
// Example: +150 → 2.50, -150 → 1.667. Zero returns 0.
func AmericanToDecimal(odds int) float64 {
	switch {
	case odds > 0:
		return 1 + float64(odds)/100.0
	case odds < 0:
		return 1 + 100.0/math.Abs(float64(odds))
	default:
		return 0
	}
}

// VigResult is a two-way market with the bookmaker margin removed
type VigResult struct {
	HomeProb float64 `json:"home_prob"`
	AwayProb float64 `json:"away_prob"`
	Vig      float64 `json:"vig"` // Sum of implied probabilities minus 1
	// Anomalous flags markets that cannot be a sane two-way book: a side
	// without a price, or implied probabilities summing below 1.0.
	Anomalous bool `json:"anomalous"`
}

// RemoveVig normalizes the implied probabilities of both sides so they sum to 1.0.
//
// Example: -110 / -110 → 0.5238 each, sum 1.0476, vig 0.0476, fair 0.50 / 0.50
func RemoveVig(sideAOdds, sideBOdds int) VigResult {
	a := AmericanToImpliedProb(sideAOdds)
	b := AmericanToImpliedProb(sideBOdds)

	total := a + b
	if total <= 0 {
		return VigResult{Anomalous: true}
	}

	vig := total - 1.0
	return VigResult{
		HomeProb:  a / total,
		AwayProb:  b / total,
		Vig:       vig,
		Anomalous: vig < 0 || a == 0 || b == 0,
	}
}

// CalculateEdge returns the percentage point difference between a model
// probability and the raw market-implied probability of the odds.
// Example: CalculateEdge(0.55, -110) ≈ 2.62
func CalculateEdge(modelProb float64, marketOdds int) float64 {
	return (modelProb - AmericanToImpliedProb(marketOdds)) * 100
}

// CalculateEV returns the expected value of a stake at the given odds.
// EV = p × profit - (1-p) × stake, with profit = (decimal-1) × stake.
func CalculateEV(modelProb float64, odds int, stake float64) float64 {
	decimalOdds := AmericanToDecimal(odds)
	if decimalOdds == 0 {
		return 0
	}
	profit := (decimalOdds - 1) * stake
	return modelProb*profit - (1-modelProb)*stake
}

// ConfidenceTier buckets an edge by magnitude and data freshness
type ConfidenceTier string

const (
	ConfidenceNone   ConfidenceTier = "none"
	ConfidenceLow    ConfidenceTier = "low"
	ConfidenceMedium ConfidenceTier = "medium"
	ConfidenceHigh   ConfidenceTier = "high"
)

// Rank orders tiers from none (0) to high (3)
func (t ConfidenceTier) Rank() int {
	switch t {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	case ConfidenceLow:
		return 1
	default:
		return 0
	}
}

const (
	staleAfterMinutes = 60.0
	stalePenalty      = 0.5
)

// GetConfidenceTier grades |edge|, halving it once the data is more than an
// hour old so stale quotes never grade high.
func GetConfidenceTier(edge, dataFreshnessMinutes float64) ConfidenceTier {
	adjusted := math.Abs(edge)
	if dataFreshnessMinutes > staleAfterMinutes {
		adjusted *= stalePenalty
	}

	switch {
	case adjusted >= 5:
		return ConfidenceHigh
	case adjusted >= 2.5:
		return ConfidenceMedium
	case adjusted >= 1:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// FormatOdds renders American odds with an explicit sign ("+150", "-110").
func FormatOdds(odds int) string {
	if odds == 0 {
		return "N/A"
	}
	if odds > 0 {
		return "+" + strconv.Itoa(odds)
	}
	return strconv.Itoa(odds)
}

// FormatProbability renders a probability as a percentage ("52.4%").
func FormatProbability(prob float64, decimals int32) string {
	if math.IsNaN(prob) || math.IsInf(prob, 0) {
		return "N/A"
	}
	return decimal.NewFromFloat(prob).Shift(2).StringFixed(decimals) + "%"
}
