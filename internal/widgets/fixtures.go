package widgets

import "github.com/google/uuid"

// HomepageSection describes one widget slot on the landing page.
type HomepageSection struct {
	ID       string `json:"id"`
	Widget   string `json:"widget"`
	Title    string `json:"title"`
	Position int    `json:"position"`
	Enabled  bool   `json:"enabled"`
}

var homepageConfig = []HomepageSection{
	{ID: "hero", Widget: "hero-banner", Title: "Welcome to Pattaya", Position: 1, Enabled: true},
	{ID: "news", Widget: "news-feed", Title: "Latest News", Position: 2, Enabled: true},
	{ID: "events", Widget: "event-calendar", Title: "Upcoming Events", Position: 3, Enabled: true},
	{ID: "weather", Widget: "weather", Title: "Weather", Position: 4, Enabled: true},
	{ID: "flights", Widget: "flight-tracker", Title: "Flight Board", Position: 5, Enabled: true},
	{ID: "radio", Widget: "radio-player", Title: "Live Radio", Position: 6, Enabled: false},
}

// AdminWidgetConfig is the admin-side view of a widget slot.
type AdminWidgetConfig struct {
	ID          string         `json:"id"`
	Widget      string         `json:"widget"`
	Editable    bool           `json:"editable"`
	RefreshSecs int            `json:"refresh_seconds"`
	Settings    map[string]any `json:"settings"`
}

var adminWidgets = []AdminWidgetConfig{
	{ID: "news", Widget: "news-feed", Editable: true, RefreshSecs: 300, Settings: map[string]any{"max_items": 10}},
	{ID: "weather", Widget: "weather", Editable: false, RefreshSecs: 900, Settings: map[string]any{"unit": "celsius"}},
	{ID: "flights", Widget: "flight-tracker", Editable: true, RefreshSecs: 600, Settings: map[string]any{"airport": "UTP"}},
}

// TopicSuggestion is one canned AI topic suggestion.
type TopicSuggestion struct {
	ID       string `json:"id"`
	Topic    string `json:"topic"`
	Headline string `json:"headline"`
}

// suggestionPool feeds the suggestions endpoint. IDs are generated per
// process start so repeated deploys don't collide in client-side caches.
var suggestionPool = []TopicSuggestion{
	{ID: uuid.NewString(), Topic: "food", Headline: "Hidden street food gems near Walking Street"},
	{ID: uuid.NewString(), Topic: "events", Headline: "What to expect at this year's fireworks festival"},
	{ID: uuid.NewString(), Topic: "travel", Headline: "Day trips from Pattaya worth the songthaew ride"},
	{ID: uuid.NewString(), Topic: "community", Headline: "Expat meetups happening this month"},
}
