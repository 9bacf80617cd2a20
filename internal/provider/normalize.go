package provider

import (
	"strings"

	"github.com/cypherlabdev/odds-ingestion-service/internal/models"
)

// Known bookmakers
const (
	BookDraftKings models.BookmakerName = "draftkings"
	BookFanDuel    models.BookmakerName = "fanduel"
	BookBetMGM     models.BookmakerName = "betmgm"
	BookCaesars    models.BookmakerName = "caesars"
	BookPointsBet  models.BookmakerName = "pointsbet"
	BookBetOnline  models.BookmakerName = "betonline"
	BookBovada     models.BookmakerName = "bovada"
	BookMyBookie   models.BookmakerName = "mybookie"
	BookBetRivers  models.BookmakerName = "betrivers"
	BookESPNBet    models.BookmakerName = "espnbet"
)

// bookmakerTable maps a provider key, after simplifyKey, to a known bookmaker
var bookmakerTable = map[string]models.BookmakerName{
	"draftkings":    BookDraftKings,
	"fanduel":       BookFanDuel,
	"betmgm":        BookBetMGM,
	"caesars":       BookCaesars,
	"williamhillus": BookCaesars,
	"pointsbet":     BookPointsBet,
	"pointsbetus":   BookPointsBet,
	"betonline":     BookBetOnline,
	"betonlineag":   BookBetOnline,
	"bovada":        BookBovada,
	"mybookie":      BookMyBookie,
	"mybookieag":    BookMyBookie,
	"betrivers":     BookBetRivers,
	"espnbet":       BookESPNBet,
}

// NormalizeBookmaker maps a provider bookmaker key to its normalized name.
// Unknown keys fall back to their lower-cased alphanumeric form with
// mapped=false so one new bookmaker never blocks a batch.
func NormalizeBookmaker(raw string) (name models.BookmakerName, mapped bool) {
	key := simplifyKey(raw)
	if known, ok := bookmakerTable[key]; ok {
		return known, true
	}
	return models.BookmakerName(key), false
}

// marketTable maps The Odds API market keys to market types
var marketTable = map[string]models.MarketType{
	"h2h":       models.MarketMoneyline,
	"moneyline": models.MarketMoneyline,
	"spreads":   models.MarketSpread,
	"spread":    models.MarketSpread,
	"totals":    models.MarketTotal,
	"total":     models.MarketTotal,
}

// marketKeys is the reverse of marketTable for outgoing requests
var marketKeys = map[models.MarketType]string{
	models.MarketMoneyline: "h2h",
	models.MarketSpread:    "spreads",
	models.MarketTotal:     "totals",
}

// NormalizeMarket maps a provider market key to a market type.
// Keys absent from the table are matched by keyword; anything else is
// reported as unmapped and the caller skips that quote.
func NormalizeMarket(raw string) (models.MarketType, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if mt, ok := marketTable[key]; ok {
		return mt, true
	}

	letters := lettersOnly(key)
	switch {
	case strings.Contains(letters, "moneyline"):
		return models.MarketMoneyline, true
	case strings.Contains(letters, "spread"), strings.Contains(letters, "handicap"):
		return models.MarketSpread, true
	case strings.Contains(letters, "total"), strings.Contains(letters, "over"):
		return models.MarketTotal, true
	}
	return "", false
}

func simplifyKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func lettersOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// sportKeys maps leagues to The Odds API sport keys
var sportKeys = map[models.League]string{
	models.LeagueNFL:   "americanfootball_nfl",
	models.LeagueNBA:   "basketball_nba",
	models.LeagueMLB:   "baseball_mlb",
	models.LeagueNHL:   "icehockey_nhl",
	models.LeagueNCAAF: "americanfootball_ncaaf",
	models.LeagueNCAAB: "basketball_ncaab",
}

// inferLeague guesses a league from an opaque event id by substring.
// Event ids rarely carry the sport, so callers should pass the league.
func inferLeague(eventID string) models.League {
	switch {
	case strings.Contains(eventID, "nfl"):
		return models.LeagueNFL
	case strings.Contains(eventID, "nba"):
		return models.LeagueNBA
	case strings.Contains(eventID, "mlb"):
		return models.LeagueMLB
	case strings.Contains(eventID, "nhl"):
		return models.LeagueNHL
	default:
		return models.LeagueNBA
	}
}
