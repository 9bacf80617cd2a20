package models

import "time"

// DateRange bounds an event listing, inclusive on both ends
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// Event is a provider-side scheduled contest
type Event struct {
	ID        string     `json:"id"`
	League    League     `json:"league"`
	HomeTeam  string     `json:"home_team"`
	AwayTeam  string     `json:"away_team"`
	StartTime time.Time  `json:"start_time"`
	Status    GameStatus `json:"status"`
}

// EventOdds holds every quote the provider returned for one event
type EventOdds struct {
	EventID string  `json:"event_id"`
	Quotes  []Quote `json:"quotes"`
}

// OddsQuery selects which events and markets to fetch
type OddsQuery struct {
	League   League // optional, inferred from the event ids when empty
	EventIDs []string
	Markets  []MarketType // defaults to all markets
	Live     bool         // include events that already started
}

// RateLimit is the provider's request quota as reported in response headers
type RateLimit struct {
	Remaining int       `json:"remaining"`
	Used      int       `json:"used"`
	Limit     int       `json:"limit"`
	Reset     time.Time `json:"reset"`
}

// EventsResponse is the result of an event listing
type EventsResponse struct {
	Data      []Event
	RateLimit *RateLimit
}

// OddsResponse is the result of an odds fetch
type OddsResponse struct {
	Data      []EventOdds
	RateLimit *RateLimit
}
