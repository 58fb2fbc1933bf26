package game

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/maciej-vess/business-food-truck/internal/catalog"
)

// DecisionKind names the player moves accepted by Submit.
type DecisionKind string

const (
	DecisionReport           DecisionKind = "report"
	DecisionFoodTruckStart   DecisionKind = "food_truck_start"
	DecisionTrolleyStart     DecisionKind = "trolley_start"
	DecisionTrolleyDailyPick DecisionKind = "trolley_daily_pick"
)

// Decision is the payload submitted by the presentation layer.
// Location and product carry catalog display names; the report kind
// needs neither.
type Decision struct {
	Kind     DecisionKind `json:"kind" validate:"required,oneof=report food_truck_start trolley_start trolley_daily_pick"`
	Location string       `json:"location" validate:"required_unless=Kind report"`
	Product  string       `json:"product" validate:"required_unless=Kind report"`
}

var validate = validator.New()

// Validate checks payload shape before the session sees it.
func (d Decision) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("invalid decision payload: %w", err)
	}
	return nil
}

// Submit applies one player decision. Every precondition is checked
// before the first state write; on error the session is unchanged.
// The returned slice holds the day records the decision resolved:
// one for trolley moves, reportSpan for a report, none for a
// food-truck start (its first sale lands on the next Advance).
func (s *Session) Submit(d Decision) ([]DailyResult, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.over {
		return nil, ErrGameOver
	}

	switch d.Kind {
	case DecisionReport:
		return s.buyReport()
	case DecisionFoodTruckStart:
		loc, prod, err := s.resolvePair(d)
		if err != nil {
			return nil, err
		}
		return nil, s.startFoodTruck(loc, prod)
	case DecisionTrolleyStart:
		loc, prod, err := s.resolvePair(d)
		if err != nil {
			return nil, err
		}
		return s.startTrolley(loc, prod)
	case DecisionTrolleyDailyPick:
		loc, prod, err := s.resolvePair(d)
		if err != nil {
			return nil, err
		}
		return s.trolleyDailyPick(loc, prod)
	default:
		return nil, ErrInvalidDecisionForState
	}
}

// resolvePair maps payload names to catalog values.
func (s *Session) resolvePair(d Decision) (catalog.Location, catalog.Product, error) {
	loc, ok := catalog.ParseLocation(d.Location)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownLocation, d.Location)
	}
	prod, ok := catalog.ParseProduct(d.Product)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownProduct, d.Product)
	}
	return loc, prod, nil
}

// awaitingDecision reports whether the machine accepts a fresh
// top-level move (no commitment running).
func (s *Session) awaitingDecision() bool {
	return s.mode == ModeNone && s.foodTruckRemaining == 0 && s.trolleyRemaining == 0
}

// buyReport deducts the report cost, spreads it over a synthetic block
// of reportSpan days, and jumps the day counter past the block.
func (s *Session) buyReport() ([]DailyResult, error) {
	if !s.awaitingDecision() {
		return nil, ErrInvalidDecisionForState
	}
	if s.cash < ReportCost {
		return nil, fmt.Errorf("%w: report costs %d, cash is %d", ErrInsufficientFunds, ReportCost, s.cash)
	}

	s.cash -= ReportCost
	s.lastReport = reportText

	// Spread the cost over the block; the remainder lands on the last
	// entry so the block sums to exactly -ReportCost.
	perDay := ReportCost / s.reportSpan
	results := make([]DailyResult, 0, s.reportSpan)
	for i := 0; i < s.reportSpan; i++ {
		profit := -perDay
		if i == s.reportSpan-1 {
			profit = -(ReportCost - perDay*(s.reportSpan-1))
		}
		r := DailyResult{
			Day:       s.day + i,
			Type:      TypeReport,
			Profit:    profit,
			CashAfter: s.cash,
		}
		s.append(r)
		results = append(results, r)
	}

	s.day += s.reportSpan
	if s.day >= s.maxDays {
		s.over = true
	}
	return results, nil
}

// startFoodTruck opens a 7-day standing commitment. No sale is resolved
// on the start call; the first one lands on the next Advance cycle.
func (s *Session) startFoodTruck(loc catalog.Location, prod catalog.Product) error {
	if !s.awaitingDecision() {
		return ErrInvalidDecisionForState
	}
	s.mode = ModeFoodTruck
	s.foodTruckRemaining = FoodTruckSpan
	s.foodTruckLocation = loc
	s.foodTruckProduct = prod
	return nil
}

// startTrolley opens the trolley commitment and resolves the first
// day's sale immediately. The start sale does not consume one of the
// TrolleySpan committed days, so a full trolley run covers
// TrolleySpan+1 calendar days.
func (s *Session) startTrolley(loc catalog.Location, prod catalog.Product) ([]DailyResult, error) {
	if !s.awaitingDecision() {
		return nil, ErrInvalidDecisionForState
	}
	s.mode = ModeTrolley
	s.trolleyRemaining = TrolleySpan

	r := s.resolveTrolleySale(loc, prod)
	s.advanceDay()
	return []DailyResult{r}, nil
}

// trolleyDailyPick resolves one committed trolley day with a fresh
// location/product choice.
func (s *Session) trolleyDailyPick(loc catalog.Location, prod catalog.Product) ([]DailyResult, error) {
	if s.mode != ModeTrolley || s.trolleyRemaining == 0 || s.foodTruckRemaining > 0 {
		return nil, ErrInvalidDecisionForState
	}

	r := s.resolveTrolleySale(loc, prod)
	s.trolleyRemaining--
	s.advanceDay()
	return []DailyResult{r}, nil
}

// resolveTrolleySale sells at cart throughput: 30% of demand, cap 50.
func (s *Session) resolveTrolleySale(loc catalog.Location, prod catalog.Product) DailyResult {
	raw := s.model.Demand(loc, prod, s.day)
	sold := int(math.Round(float64(raw) * TrolleySampling))
	if sold > TrolleyCap {
		sold = TrolleyCap
	}
	return s.recordSale(ModeTrolley, loc, prod, sold)
}

// resolveFoodTruckSale sells at truck throughput: full demand, cap 150.
func (s *Session) resolveFoodTruckSale() DailyResult {
	sold := s.model.Demand(s.foodTruckLocation, s.foodTruckProduct, s.day)
	if sold > FoodTruckCap {
		sold = FoodTruckCap
	}
	return s.recordSale(ModeFoodTruck, s.foodTruckLocation, s.foodTruckProduct, sold)
}

// recordSale applies a resolved sale to cash and history.
func (s *Session) recordSale(mode Mode, loc catalog.Location, prod catalog.Product, sold int) DailyResult {
	profit := sold * UnitPrice
	s.cash += profit
	r := DailyResult{
		Day:       s.day,
		Type:      mode.String(),
		Location:  loc.String(),
		Product:   prod.String(),
		UnitsSold: sold,
		Profit:    profit,
		CashAfter: s.cash,
	}
	s.append(r)
	return r
}
