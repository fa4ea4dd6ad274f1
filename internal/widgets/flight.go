package widgets

import "time"

// FlightStatus is the operational-status payload of the flight tracker.
// The real AviationStack integration is rate-limited out of the free tier,
// so the served data is always the cached fixture set.
type FlightStatus struct {
	Status          string `json:"status" example:"operational"`
	APILimitReached bool   `json:"api_limit_reached" example:"true"`
	Provider        string `json:"provider" example:"AviationStack"`
	Message         string `json:"message" example:"API limit exceeded"`
	CheckedAt       string `json:"checked_at"`
}

// Flight is one row of the arrivals/departures board.
type Flight struct {
	FlightNumber string `json:"flight_number"`
	Airline      string `json:"airline"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	Scheduled    string `json:"scheduled"`
	Status       string `json:"status"`
}

// FlightBoard pairs the rows with a meta block disclosing the data is cached.
type FlightBoard struct {
	Flights []Flight `json:"flights"`
	Meta    struct {
		Airport   string `json:"airport"`
		Direction string `json:"direction"`
		Message   string `json:"message"`
		Cached    bool   `json:"cached"`
	} `json:"meta"`
}

// FlightProvider is pluggable so a live tracker integration can replace the
// cached fixtures without touching the handler.
type FlightProvider interface {
	Status() FlightStatus
	Board(airport, direction string) FlightBoard
}

type cachedFlightProvider struct {
	now func() time.Time
}

// NewCachedFlightProvider returns the fixture-backed tracker.
func NewCachedFlightProvider() FlightProvider {
	return &cachedFlightProvider{now: time.Now}
}

func (p *cachedFlightProvider) Status() FlightStatus {
	return FlightStatus{
		Status:          "operational",
		APILimitReached: true,
		Provider:        "AviationStack",
		Message:         "API limit exceeded",
		CheckedAt:       p.now().Format(time.RFC3339),
	}
}

var fixtureFlights = map[string][]Flight{
	"arrivals": {
		{FlightNumber: "TG102", Airline: "Thai Airways", Origin: "BKK", Destination: "UTP", Scheduled: "08:45", Status: "landed"},
		{FlightNumber: "FD3905", Airline: "Thai AirAsia", Origin: "DMK", Destination: "UTP", Scheduled: "10:20", Status: "on time"},
		{FlightNumber: "PG205", Airline: "Bangkok Airways", Origin: "HKT", Destination: "UTP", Scheduled: "12:05", Status: "delayed"},
	},
	"departures": {
		{FlightNumber: "TG103", Airline: "Thai Airways", Origin: "UTP", Destination: "BKK", Scheduled: "09:30", Status: "boarding"},
		{FlightNumber: "VZ360", Airline: "Thai Vietjet", Origin: "UTP", Destination: "CNX", Scheduled: "11:15", Status: "on time"},
	},
}

func (p *cachedFlightProvider) Board(airport, direction string) FlightBoard {
	if airport == "" {
		airport = "UTP"
	}
	if direction != "departures" {
		direction = "arrivals"
	}

	board := FlightBoard{Flights: fixtureFlights[direction]}
	board.Meta.Airport = airport
	board.Meta.Direction = direction
	board.Meta.Message = "API limit exceeded"
	board.Meta.Cached = true
	return board
}
