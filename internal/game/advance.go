package game

// Advance drives the next day while a food-truck commitment is active:
// the standing location/product resolve automatically, no fresh input
// required. With no food truck running there is nothing to auto-resolve
// and the caller gets ErrDecisionRequired (trolley days and fresh days
// go through Submit instead).
func (s *Session) Advance() (DailyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.over {
		return DailyResult{}, ErrGameOver
	}
	if s.foodTruckRemaining == 0 {
		return DailyResult{}, ErrDecisionRequired
	}

	r := s.resolveFoodTruckSale()
	s.foodTruckRemaining--
	s.advanceDay()
	return r, nil
}

// advanceDay moves the machine past a resolved day: terminal once the
// day counter reaches maxDays, otherwise increment and drop back to
// awaiting-decision when no commitment days remain.
func (s *Session) advanceDay() {
	if s.day >= s.maxDays {
		s.over = true
		return
	}
	s.day++
	if s.foodTruckRemaining == 0 && s.trolleyRemaining == 0 {
		s.mode = ModeNone
	}
}
