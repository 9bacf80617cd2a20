// Package analytics derives best-line, consensus and market-derived baseline
// views from bookmaker quotes. The baseline treats the vig-free market price
// as the probability estimate; it is an analytical reference, not a pick.
package analytics

import (
	"time"

	"github.com/cypherlabdev/odds-ingestion-service/pkg/oddsmath"
)

// BaselineSource tags predictions derived from market prices rather than a model
const BaselineSource = "baseline-market-derived"

// Side names one outcome of a two-way market
type Side string

const (
	SideHome  Side = "HOME"
	SideAway  Side = "AWAY"
	SideOver  Side = "OVER"
	SideUnder Side = "UNDER"
)

// BookQuote is one bookmaker's two-way price.
// For totals, Home carries the over and Away the under.
type BookQuote struct {
	Bookmaker string `json:"bookmaker"`
	HomeOdds  int    `json:"home_odds"`
	AwayOdds  int    `json:"away_odds"`
}

// BestSide is the most favorable price found for one side
type BestSide struct {
	Odds      int    `json:"odds"`
	Bookmaker string `json:"bookmaker"`
}

// BestOdds holds the best price per side
type BestOdds struct {
	Home BestSide `json:"home"`
	Away BestSide `json:"away"`
}

// FindBestOdds selects the most favorable American odds per side.
// Higher is better; between two negative prices the one closer to zero wins.
// The first bookmaker seen keeps a tie. Empty input returns zero values.
func FindBestOdds(quotes []BookQuote) BestOdds {
	var best BestOdds
	var haveHome, haveAway bool

	for _, q := range quotes {
		if !haveHome || better(q.HomeOdds, best.Home.Odds) {
			best.Home = BestSide{Odds: q.HomeOdds, Bookmaker: q.Bookmaker}
			haveHome = true
		}
		if !haveAway || better(q.AwayOdds, best.Away.Odds) {
			best.Away = BestSide{Odds: q.AwayOdds, Bookmaker: q.Bookmaker}
			haveAway = true
		}
	}

	return best
}

func better(candidate, current int) bool {
	if candidate > current {
		return true
	}
	return candidate < 0 && current < 0 && abs(candidate) < abs(current)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Consensus is the unweighted mean of vig-free probabilities across books
type Consensus struct {
	HomeProb   float64 `json:"home_prob"`
	AwayProb   float64 `json:"away_prob"`
	AvgVig     float64 `json:"avg_vig"`
	Bookmakers int     `json:"bookmakers"`
}

// CalculateConsensus averages each bookmaker's vig-removed probabilities.
// Every book counts equally. Empty input returns an even 0.5/0.5 market.
func CalculateConsensus(quotes []BookQuote) Consensus {
	if len(quotes) == 0 {
		return Consensus{HomeProb: 0.5, AwayProb: 0.5}
	}

	var home, away, vig float64
	for _, q := range quotes {
		r := oddsmath.RemoveVig(q.HomeOdds, q.AwayOdds)
		home += r.HomeProb
		away += r.AwayProb
		vig += r.Vig
	}

	n := float64(len(quotes))
	return Consensus{
		HomeProb:   home / n,
		AwayProb:   away / n,
		AvgVig:     vig / n,
		Bookmakers: len(quotes),
	}
}

// TwoWayOdds is a single bookmaker's two-way price at a point in time
type TwoWayOdds struct {
	HomeOdds  int
	AwayOdds  int
	Timestamp time.Time
	Totals    bool // label sides OVER/UNDER instead of HOME/AWAY
}

// BaselinePrediction is the market-derived view of one side
type BaselinePrediction struct {
	Side               Side                    `json:"side"`
	ModelProbability   float64                 `json:"model_probability"`   // vig-free market probability
	ImpliedProbability float64                 `json:"implied_probability"` // raw bookmaker probability
	Edge               float64                 `json:"edge"`                // percentage points
	ConfidenceTier     oddsmath.ConfidenceTier `json:"confidence_tier"`
	Vig                float64                 `json:"vig"`
	DataFreshness      float64                 `json:"data_freshness"` // minutes since the quote
	Source             string                  `json:"source"`
}

// BaselinePair holds the baseline for both sides of a market
type BaselinePair struct {
	Home      BaselinePrediction `json:"home"`
	Away      BaselinePrediction `json:"away"`
	Anomalous bool               `json:"anomalous"`
}

// GenerateBaselinePrediction removes the vig from a two-way price and grades
// the resulting edge per side against the raw implied probability.
func GenerateBaselinePrediction(odds TwoWayOdds, now time.Time) BaselinePair {
	vig := oddsmath.RemoveVig(odds.HomeOdds, odds.AwayOdds)
	freshness := now.Sub(odds.Timestamp).Minutes()

	homeSide, awaySide := SideHome, SideAway
	if odds.Totals {
		homeSide, awaySide = SideOver, SideUnder
	}

	return BaselinePair{
		Home:      baselineSide(homeSide, vig.HomeProb, odds.HomeOdds, vig.Vig, freshness),
		Away:      baselineSide(awaySide, vig.AwayProb, odds.AwayOdds, vig.Vig, freshness),
		Anomalous: vig.Anomalous,
	}
}

func baselineSide(side Side, fair float64, odds int, vig, freshness float64) BaselinePrediction {
	edge := oddsmath.CalculateEdge(fair, odds)
	return BaselinePrediction{
		Side:               side,
		ModelProbability:   fair,
		ImpliedProbability: oddsmath.AmericanToImpliedProb(odds),
		Edge:               edge,
		ConfidenceTier:     oddsmath.GetConfidenceTier(edge, freshness),
		Vig:                vig,
		DataFreshness:      freshness,
		Source:             BaselineSource,
	}
}
