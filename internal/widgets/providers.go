package widgets

import (
	"math/rand/v2"
	"strings"
)

// CurrencyRate is one exchange rate against the Thai baht.
type CurrencyRate struct {
	Code   string  `json:"code"`
	Symbol string  `json:"symbol"`
	Rate   float64 `json:"rate"`
}

// CurrencyProvider is pluggable for an eventual live FX feed.
type CurrencyProvider interface {
	Rates() []CurrencyRate
}

type demoCurrencyProvider struct{}

func NewDemoCurrencyProvider() CurrencyProvider {
	return &demoCurrencyProvider{}
}

// Rates returns the supported currency set with a small jitter on the demo
// rates. Values are for display realism only; the shape is the contract.
func (p *demoCurrencyProvider) Rates() []CurrencyRate {
	base := []CurrencyRate{
		{Code: "USD", Symbol: "$", Rate: 35.7},
		{Code: "EUR", Symbol: "€", Rate: 38.9},
		{Code: "GBP", Symbol: "£", Rate: 45.2},
		{Code: "RUB", Symbol: "₽", Rate: 0.39},
		{Code: "CNY", Symbol: "¥", Rate: 4.95},
	}
	for i := range base {
		base[i].Rate *= 1 + (rand.Float64()-0.5)*0.02
	}
	return base
}

// RadioStation is one entry of the station directory.
type RadioStation struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StreamURL string `json:"stream_url"`
	Genre     string `json:"genre"`
	Online    bool   `json:"online"`
}

// RadioProvider is pluggable for a real stream health checker.
type RadioProvider interface {
	Stations() []RadioStation
}

type demoRadioProvider struct{}

func NewDemoRadioProvider() RadioProvider {
	return &demoRadioProvider{}
}

func (p *demoRadioProvider) Stations() []RadioStation {
	stations := []RadioStation{
		{ID: "p1-hits", Name: "Pattaya1 Hits", StreamURL: "https://stream.pattaya1.com/hits", Genre: "pop"},
		{ID: "p1-chill", Name: "Beach Chill", StreamURL: "https://stream.pattaya1.com/chill", Genre: "lounge"},
		{ID: "p1-news", Name: "City News Radio", StreamURL: "https://stream.pattaya1.com/news", Genre: "talk"},
	}
	for i := range stations {
		// Simulated stream health; callers must not rely on the value.
		stations[i].Online = rand.IntN(10) > 1
	}
	return stations
}

// ModerationVerdict is the stub moderation result.
type ModerationVerdict struct {
	Flagged bool     `json:"flagged"`
	Reasons []string `json:"reasons"`
	Score   float64  `json:"score"`
}

var flaggedKeywords = []string{"scam", "spam", "fake", "illegal", "drugs"}

// ModerateContent is a keyword-matching stub standing in for a real
// moderation service.
func Moderate(content string) ModerationVerdict {
	lower := strings.ToLower(content)
	verdict := ModerationVerdict{Reasons: []string{}}
	for _, kw := range flaggedKeywords {
		if strings.Contains(lower, kw) {
			verdict.Flagged = true
			verdict.Reasons = append(verdict.Reasons, "contains keyword: "+kw)
		}
	}
	if verdict.Flagged {
		verdict.Score = 0.3 + 0.6*float64(len(verdict.Reasons))/float64(len(flaggedKeywords))
		if verdict.Score > 1 {
			verdict.Score = 1
		}
	}
	return verdict
}
