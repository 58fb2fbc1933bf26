// Package game holds the session state machine for the vending
// challenge: day progression, cash accounting, commitment modes, and
// the decision processor that drives them.
package game

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/maciej-vess/business-food-truck/internal/catalog"
	"github.com/maciej-vess/business-food-truck/internal/demand"
	"github.com/maciej-vess/business-food-truck/internal/entropy"
)

// Fixed economics. The tables in catalog and the constants here are the
// whole difficulty model; nothing else tunes gameplay.
const (
	StartingCash   = 10000
	DefaultMaxDays = 35

	UnitPrice    = 12
	FoodTruckCap = 150
	TrolleyCap   = 50

	// Trolley throughput: a cart reaches only a share of raw demand.
	TrolleySampling = 0.3

	FoodTruckSpan = 7
	TrolleySpan   = 6

	ReportCost        = 500
	DefaultReportSpan = 7
)

// TypeReport is the history entry type for synthetic report days; sale
// days use the Mode string ("Food Truck", "Trolley").
const TypeReport = "Report"

// reportText is the static market insight unlocked by a report purchase.
const reportText = "W słoneczne dni największy ruch obserwujemy na Plaży i w Centrum. " +
	"Lody najlepiej sprzedają się na Plaży i Stadionie. " +
	"Mrożony jogurt dominuje na Kampusie i w Parku, podczas gdy Shake owocowy przyciąga klientów na Dworcu."

// Mode is the active commitment, if any.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeFoodTruck
	ModeTrolley
)

func (m Mode) String() string {
	switch m {
	case ModeFoodTruck:
		return "Food Truck"
	case ModeTrolley:
		return "Trolley"
	default:
		return "None"
	}
}

// DailyResult records one resolved day. Location and product are copied
// by value (display names) so history stays valid on its own; both are
// empty for report days. Never mutated after creation.
type DailyResult struct {
	Day       int    `json:"day" db:"day"`
	Type      string `json:"type" db:"type"`
	Location  string `json:"location,omitempty" db:"location"`
	Product   string `json:"product,omitempty" db:"product"`
	UnitsSold int    `json:"units_sold" db:"units_sold"`
	Profit    int    `json:"profit" db:"profit"`
	CashAfter int    `json:"cash_after" db:"cash_after"`
}

// Recorder observes every appended DailyResult (the session ledger).
type Recorder interface {
	Record(DailyResult) error
}

// Summary is the terminal report: final cash plus the full history.
type Summary struct {
	Cash    int           `json:"cash"`
	History []DailyResult `json:"history"`
}

// Session is the complete per-game state. It has exactly one writer;
// the mutex makes every decision resolve atomically so no reader ever
// observes a half-applied day.
type Session struct {
	mu sync.Mutex

	id      uuid.UUID
	weather catalog.Weather
	model   *demand.Model

	day        int
	cash       int
	maxDays    int
	reportSpan int

	history []DailyResult

	mode               Mode
	foodTruckRemaining int
	trolleyRemaining   int
	foodTruckLocation  catalog.Location
	foodTruckProduct   catalog.Product

	lastReport string
	over       bool

	recorder Recorder
}

// Options tunes session construction. Zero values select the defaults.
type Options struct {
	Weather    *catalog.Weather // pinned weather; nil draws from Entropy
	Entropy    entropy.Source   // weather roll source; nil uses crypto/rand
	MaxDays    int              // 0 → DefaultMaxDays
	ReportSpan int              // 0 → DefaultReportSpan
	Recorder   Recorder         // optional result sink
}

// New starts a fresh session: day 1, starting cash, empty history, and
// a weather condition drawn once for the whole game.
func New(opts Options) *Session {
	src := opts.Entropy
	if src == nil {
		src = entropy.CryptoSource{}
	}

	var weather catalog.Weather
	if opts.Weather != nil {
		weather = *opts.Weather
	} else {
		all := catalog.Weathers()
		weather = all[src.Intn(len(all))]
	}

	maxDays := opts.MaxDays
	if maxDays <= 0 {
		maxDays = DefaultMaxDays
	}
	span := opts.ReportSpan
	if span <= 0 {
		span = DefaultReportSpan
	}

	return &Session{
		id:         uuid.New(),
		weather:    weather,
		model:      demand.NewModel(weather),
		day:        1,
		cash:       StartingCash,
		maxDays:    maxDays,
		reportSpan: span,
		recorder:   opts.Recorder,
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Weather returns the condition drawn at session start.
func (s *Session) Weather() catalog.Weather { return s.weather }

// IsOver reports whether the session reached its terminal state.
func (s *Session) IsOver() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.over
}

// Cash returns the current balance.
func (s *Session) Cash() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cash
}

// History returns a copy of the resolved-day records in order.
func (s *Session) History() []DailyResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]DailyResult, len(s.history))
	copy(out, s.history)
	return out
}

// FinalSummary returns the closing cash and full history. Valid at any
// point; authoritative once IsOver is true.
func (s *Session) FinalSummary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	hist := make([]DailyResult, len(s.history))
	copy(hist, s.history)
	return Summary{Cash: s.cash, History: hist}
}

// Snapshot is the read model consumed by the presentation layer.
type Snapshot struct {
	SessionID          string `json:"session_id"`
	Day                int    `json:"day"`
	Week               int    `json:"week"`
	Weekday            int    `json:"weekday"`
	MaxDays            int    `json:"max_days"`
	Cash               int    `json:"cash"`
	Weather            string `json:"weather"`
	Mode               string `json:"mode"`
	FoodTruckRemaining int    `json:"food_truck_remaining"`
	TrolleyRemaining   int    `json:"trolley_remaining"`
	FoodTruckLocation  string `json:"food_truck_location,omitempty"`
	FoodTruckProduct   string `json:"food_truck_product,omitempty"`
	LastReport         string `json:"last_report,omitempty"`
	Over               bool   `json:"over"`
}

// GetSnapshot returns the current state for rendering.
func (s *Session) GetSnapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID:          s.id.String(),
		Day:                s.day,
		Week:               (s.day-1)/7 + 1,
		Weekday:            (s.day-1)%7 + 1,
		MaxDays:            s.maxDays,
		Cash:               s.cash,
		Weather:            s.weather.String(),
		Mode:               s.mode.String(),
		FoodTruckRemaining: s.foodTruckRemaining,
		TrolleyRemaining:   s.trolleyRemaining,
		LastReport:         s.lastReport,
		Over:               s.over,
	}
	if s.mode == ModeFoodTruck {
		snap.FoodTruckLocation = s.foodTruckLocation.String()
		snap.FoodTruckProduct = s.foodTruckProduct.String()
	}
	return snap
}

// append records a resolved day in history and forwards it to the
// recorder, if one is attached.
func (s *Session) append(r DailyResult) {
	s.history = append(s.history, r)
	if s.recorder != nil {
		if err := s.recorder.Record(r); err != nil {
			// The in-memory history stays authoritative.
			slog.Error("ledger record failed", "day", r.Day, "error", err)
		}
	}
}
