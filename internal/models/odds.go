package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// League is a tracked sports league code
type League string

const (
	LeagueNFL   League = "NFL"
	LeagueNBA   League = "NBA"
	LeagueMLB   League = "MLB"
	LeagueNHL   League = "NHL"
	LeagueNCAAF League = "NCAAF"
	LeagueNCAAB League = "NCAAB"
)

// AllLeagues lists every league the provider adapter can serve
var AllLeagues = []League{LeagueNFL, LeagueNBA, LeagueMLB, LeagueNHL, LeagueNCAAF, LeagueNCAAB}

// ParseLeague parses a league code case-insensitively
func ParseLeague(s string) (League, error) {
	code := League(strings.ToUpper(strings.TrimSpace(s)))
	for _, l := range AllLeagues {
		if l == code {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown league: %q", s)
}

// MarketType is one of the fixed market kinds
type MarketType string

const (
	MarketMoneyline MarketType = "moneyline"
	MarketSpread    MarketType = "spread"
	MarketTotal     MarketType = "total"
)

// AllMarkets is the fixed market reference set
var AllMarkets = []MarketType{MarketMoneyline, MarketSpread, MarketTotal}

// ParseMarketType parses a market type case-insensitively
func ParseMarketType(s string) (MarketType, error) {
	mt := MarketType(strings.ToLower(strings.TrimSpace(s)))
	for _, m := range AllMarkets {
		if m == mt {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown market type: %q", s)
}

// GameStatus is the lifecycle state of a game
type GameStatus string

const (
	GameScheduled  GameStatus = "scheduled"
	GameInProgress GameStatus = "in_progress"
	GameFinal      GameStatus = "final"
)

// IsTerminal reports whether no further odds are expected for the game
func (s GameStatus) IsTerminal() bool {
	return s == GameFinal
}

// BookmakerName is a normalized bookmaker identifier, used as the lookup key
type BookmakerName string

// Team belongs to exactly one league
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Abbr string `json:"abbr"`
}

// Game identifies a scheduled contest
type Game struct {
	ID         string     `json:"id"`
	League     League     `json:"league"`
	HomeTeam   Team       `json:"home_team"`
	AwayTeam   Team       `json:"away_team"`
	StartTime  time.Time  `json:"start_time"`
	Status     GameStatus `json:"status"`
	ExternalID string     `json:"external_id,omitempty"` // Provider event id
}

// Label returns the "AWAY @ HOME" form used in logs
func (g *Game) Label() string {
	return fmt.Sprintf("%s @ %s", g.AwayTeam.Abbr, g.HomeTeam.Abbr)
}

// Bookmaker is a named odds source
type Bookmaker struct {
	ID          string        `json:"id"`
	Name        BookmakerName `json:"name"`
	DisplayName string        `json:"display_name"`
	Active      bool          `json:"active"`
}

// Market is a row of the fixed market reference set
type Market struct {
	ID   string     `json:"id"`
	Type MarketType `json:"type"`
}

// Quote is one observed bookmaker price for a market.
// Moneyline and spread use home/away, totals use over/under.
type Quote struct {
	Bookmaker       BookmakerName       `json:"bookmaker"`
	BookmakerMapped bool                `json:"-"` // false when the name came from the fallback transform
	Market          MarketType          `json:"market"`
	HomeOdds        *int                `json:"home_odds,omitempty"`
	AwayOdds        *int                `json:"away_odds,omitempty"`
	OverOdds        *int                `json:"over_odds,omitempty"`
	UnderOdds       *int                `json:"under_odds,omitempty"`
	Line            decimal.NullDecimal `json:"line"`
	Timestamp       time.Time           `json:"timestamp"`
}

// SamePrices reports whether both quotes carry identical numeric fields
func (q Quote) SamePrices(other Quote) bool {
	return equalOdds(q.HomeOdds, other.HomeOdds) &&
		equalOdds(q.AwayOdds, other.AwayOdds) &&
		equalOdds(q.OverOdds, other.OverOdds) &&
		equalOdds(q.UnderOdds, other.UnderOdds) &&
		equalLine(q.Line, other.Line)
}

func equalOdds(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalLine(a, b decimal.NullDecimal) bool {
	if !a.Valid || !b.Valid {
		return a.Valid == b.Valid
	}
	return a.Decimal.Equal(b.Decimal)
}

// Odds returns a pointer to v, for building quotes
func Odds(v int) *int {
	return &v
}

// QuoteKey identifies the (game, bookmaker, market) series a quote belongs to
type QuoteKey struct {
	GameID      string
	BookmakerID string
	MarketID    string
}

func (k QuoteKey) String() string {
	return k.GameID + ":" + k.BookmakerID + ":" + k.MarketID
}

// OddsSnapshot is an immutable, append-only observation of a quote
type OddsSnapshot struct {
	ID          uuid.UUID           `json:"id"`
	GameID      string              `json:"game_id"`
	BookmakerID string              `json:"bookmaker_id"`
	MarketID    string              `json:"market_id"`
	HomeOdds    *int                `json:"home_odds,omitempty"`
	AwayOdds    *int                `json:"away_odds,omitempty"`
	OverOdds    *int                `json:"over_odds,omitempty"`
	UnderOdds   *int                `json:"under_odds,omitempty"`
	Line        decimal.NullDecimal `json:"line"`
	Timestamp   time.Time           `json:"timestamp"`
}

// NewOddsSnapshot builds a snapshot for a quote under the given key
func NewOddsSnapshot(key QuoteKey, q Quote) *OddsSnapshot {
	return &OddsSnapshot{
		ID:          uuid.New(),
		GameID:      key.GameID,
		BookmakerID: key.BookmakerID,
		MarketID:    key.MarketID,
		HomeOdds:    q.HomeOdds,
		AwayOdds:    q.AwayOdds,
		OverOdds:    q.OverOdds,
		UnderOdds:   q.UnderOdds,
		Line:        q.Line,
		Timestamp:   q.Timestamp,
	}
}

// SnapshotRecord is a snapshot joined with its bookmaker name and market type
type SnapshotRecord struct {
	OddsSnapshot
	Bookmaker  BookmakerName `json:"bookmaker"`
	MarketType MarketType    `json:"market"`
}

// SnapshotQuery filters a game's snapshot history
type SnapshotQuery struct {
	GameID    string
	Market    MarketType    // empty means all markets
	Bookmaker BookmakerName // empty means all bookmakers
	Since     time.Time
}
