package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maciej-vess/business-food-truck/internal/catalog"
)

func newTestSession(opts Options) *Session {
	if opts.Weather == nil {
		w := catalog.WeatherCloudy
		opts.Weather = &w
	}
	return New(opts)
}

func sumProfits(history []DailyResult) int {
	total := 0
	for _, r := range history {
		total += r.Profit
	}
	return total
}

func TestNewSessionDefaults(t *testing.T) {
	s := newTestSession(Options{})

	snap := s.GetSnapshot()
	assert.Equal(t, 1, snap.Day)
	assert.Equal(t, 1, snap.Week)
	assert.Equal(t, 1, snap.Weekday)
	assert.Equal(t, StartingCash, snap.Cash)
	assert.Equal(t, DefaultMaxDays, snap.MaxDays)
	assert.Equal(t, "None", snap.Mode)
	assert.False(t, snap.Over)
	assert.Empty(t, s.History())
}

func TestFoodTruckCommitment(t *testing.T) {
	s := newTestSession(Options{})

	results, err := s.Submit(Decision{
		Kind:     DecisionFoodTruckStart,
		Location: "Centrum",
		Product:  "Shake owocowy",
	})
	require.NoError(t, err)
	assert.Empty(t, results, "the start call resolves no sale")

	snap := s.GetSnapshot()
	assert.Equal(t, 1, snap.Day)
	assert.Equal(t, "Food Truck", snap.Mode)
	assert.Equal(t, FoodTruckSpan, snap.FoodTruckRemaining)
	assert.Equal(t, "Centrum", snap.FoodTruckLocation)
	assert.Equal(t, "Shake owocowy", snap.FoodTruckProduct)

	for i := 0; i < FoodTruckSpan; i++ {
		r, err := s.Advance()
		require.NoError(t, err)
		assert.Equal(t, i+1, r.Day)
		assert.Equal(t, "Food Truck", r.Type)
		assert.Equal(t, "Centrum", r.Location)
		assert.LessOrEqual(t, r.UnitsSold, FoodTruckCap)
		assert.GreaterOrEqual(t, r.UnitsSold, 0)
		assert.Equal(t, r.UnitsSold*UnitPrice, r.Profit)
	}

	snap = s.GetSnapshot()
	assert.Equal(t, 8, snap.Day)
	assert.Equal(t, 0, snap.FoodTruckRemaining)
	assert.Equal(t, "None", snap.Mode)
	assert.Len(t, s.History(), FoodTruckSpan)
	assert.Equal(t, StartingCash+sumProfits(s.History()), s.Cash())
}

func TestAdvanceRequiresFoodTruck(t *testing.T) {
	s := newTestSession(Options{})

	_, err := s.Advance()
	assert.ErrorIs(t, err, ErrDecisionRequired)
	assert.Empty(t, s.History())
}

func TestTrolleyCommitment(t *testing.T) {
	s := newTestSession(Options{})

	// The start resolves the first sale without consuming a committed day.
	results, err := s.Submit(Decision{
		Kind:     DecisionTrolleyStart,
		Location: "Plaża",
		Product:  "Lody",
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Day)
	assert.Equal(t, "Trolley", results[0].Type)
	assert.LessOrEqual(t, results[0].UnitsSold, TrolleyCap)

	snap := s.GetSnapshot()
	assert.Equal(t, 2, snap.Day)
	assert.Equal(t, TrolleySpan, snap.TrolleyRemaining)
	assert.Equal(t, "Trolley", snap.Mode)

	// Six daily picks, each with a fresh pairing.
	locs := []string{"Centrum", "Kampus", "Park", "Stadion", "Dworzec", "Plaża"}
	for i, loc := range locs {
		results, err := s.Submit(Decision{
			Kind:     DecisionTrolleyDailyPick,
			Location: loc,
			Product:  "Mrożony jogurt",
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, i+2, results[0].Day)
		assert.LessOrEqual(t, results[0].UnitsSold, TrolleyCap)
		assert.GreaterOrEqual(t, results[0].UnitsSold, 0)
	}

	snap = s.GetSnapshot()
	assert.Equal(t, 8, snap.Day)
	assert.Equal(t, 0, snap.TrolleyRemaining)
	assert.Equal(t, "None", snap.Mode)
	assert.Len(t, s.History(), TrolleySpan+1)
	assert.Equal(t, StartingCash+sumProfits(s.History()), s.Cash())
}

func TestTrolleyPickRequiresCommitment(t *testing.T) {
	s := newTestSession(Options{})

	_, err := s.Submit(Decision{
		Kind:     DecisionTrolleyDailyPick,
		Location: "Park",
		Product:  "Lody",
	})
	assert.ErrorIs(t, err, ErrInvalidDecisionForState)
	assert.Empty(t, s.History())
	assert.Equal(t, StartingCash, s.Cash())
}

func TestNoFreshDecisionWhileCommitted(t *testing.T) {
	s := newTestSession(Options{})

	_, err := s.Submit(Decision{Kind: DecisionFoodTruckStart, Location: "Park", Product: "Lody"})
	require.NoError(t, err)

	cases := []Decision{
		{Kind: DecisionReport},
		{Kind: DecisionFoodTruckStart, Location: "Centrum", Product: "Lody"},
		{Kind: DecisionTrolleyStart, Location: "Centrum", Product: "Lody"},
		{Kind: DecisionTrolleyDailyPick, Location: "Centrum", Product: "Lody"},
	}
	for _, d := range cases {
		_, err := s.Submit(d)
		assert.ErrorIs(t, err, ErrInvalidDecisionForState, "kind %s", d.Kind)
	}
	assert.Empty(t, s.History(), "rejected decisions must not mutate state")
}

func TestReportPurchase(t *testing.T) {
	s := newTestSession(Options{})

	results, err := s.Submit(Decision{Kind: DecisionReport})
	require.NoError(t, err)
	require.Len(t, results, DefaultReportSpan)

	total := 0
	for i, r := range results {
		assert.Equal(t, i+1, r.Day)
		assert.Equal(t, TypeReport, r.Type)
		assert.Empty(t, r.Location)
		assert.Empty(t, r.Product)
		assert.Equal(t, 0, r.UnitsSold)
		assert.Negative(t, r.Profit)
		total += r.Profit
	}
	assert.Equal(t, -ReportCost, total, "the block must cost exactly the report price")
	assert.Equal(t, StartingCash-ReportCost, s.Cash())

	snap := s.GetSnapshot()
	assert.Equal(t, 1+DefaultReportSpan, snap.Day)
	assert.Equal(t, 2, snap.Week)
	assert.Equal(t, 1, snap.Weekday)
	assert.NotEmpty(t, snap.LastReport)
	assert.Equal(t, "None", snap.Mode)
}

func TestReportInsufficientFunds(t *testing.T) {
	s := newTestSession(Options{})
	s.cash = ReportCost - 1

	_, err := s.Submit(Decision{Kind: DecisionReport})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, ReportCost-1, s.Cash())
	assert.Empty(t, s.History())
	assert.Empty(t, s.GetSnapshot().LastReport)
}

func TestUnknownCatalogValues(t *testing.T) {
	s := newTestSession(Options{})

	_, err := s.Submit(Decision{Kind: DecisionFoodTruckStart, Location: "Rynek", Product: "Lody"})
	assert.ErrorIs(t, err, ErrUnknownLocation)

	_, err = s.Submit(Decision{Kind: DecisionTrolleyStart, Location: "Park", Product: "Gofry"})
	assert.ErrorIs(t, err, ErrUnknownProduct)

	assert.Equal(t, StartingCash, s.Cash())
	assert.Equal(t, "None", s.GetSnapshot().Mode)
}

func TestPayloadValidation(t *testing.T) {
	s := newTestSession(Options{})

	// Sale decisions without a pairing never reach the state machine.
	_, err := s.Submit(Decision{Kind: DecisionFoodTruckStart})
	assert.Error(t, err)

	_, err = s.Submit(Decision{Kind: "vacation"})
	assert.Error(t, err)

	assert.Empty(t, s.History())
}

func TestTerminalExactlyAtMaxDays(t *testing.T) {
	s := newTestSession(Options{MaxDays: 7})

	_, err := s.Submit(Decision{Kind: DecisionFoodTruckStart, Location: "Plaża", Product: "Lody"})
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		_, err := s.Advance()
		require.NoError(t, err)
		assert.False(t, s.IsOver(), "game must not end before max days")
	}

	// Day 7 resolves and hits the cap.
	_, err = s.Advance()
	require.NoError(t, err)
	assert.True(t, s.IsOver())

	// Frozen: nothing is accepted after the terminal state.
	_, err = s.Advance()
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = s.Submit(Decision{Kind: DecisionReport})
	assert.ErrorIs(t, err, ErrGameOver)

	summary := s.FinalSummary()
	assert.Len(t, summary.History, 7)
	assert.Equal(t, StartingCash+sumProfits(summary.History), summary.Cash)
}

func TestFullGameCashInvariant(t *testing.T) {
	s := newTestSession(Options{})

	// One report, then food trucks until the clock runs out.
	_, err := s.Submit(Decision{Kind: DecisionReport})
	require.NoError(t, err)

	for !s.IsOver() {
		snap := s.GetSnapshot()
		if snap.FoodTruckRemaining > 0 {
			_, err := s.Advance()
			require.NoError(t, err)
			continue
		}
		_, err := s.Submit(Decision{Kind: DecisionFoodTruckStart, Location: "Plaża", Product: "Lody"})
		require.NoError(t, err)
	}

	history := s.History()
	assert.Equal(t, StartingCash+sumProfits(history), s.Cash(), "no accounting drift")

	// History days never exceed the report block plus resolved days.
	for _, r := range history {
		if r.Type != TypeReport {
			assert.LessOrEqual(t, r.UnitsSold, FoodTruckCap)
		}
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() []DailyResult {
		s := newTestSession(Options{})
		_, err := s.Submit(Decision{Kind: DecisionTrolleyStart, Location: "Plaża", Product: "Lody"})
		require.NoError(t, err)
		for i := 0; i < TrolleySpan; i++ {
			_, err := s.Submit(Decision{Kind: DecisionTrolleyDailyPick, Location: "Kampus", Product: "Mrożony jogurt"})
			require.NoError(t, err)
		}
		return s.History()
	}

	assert.Equal(t, run(), run(), "same weather and decisions replay identically")
}
