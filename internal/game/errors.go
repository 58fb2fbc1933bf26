package game

import "errors"

// Decision rejection reasons. Every rejection happens before any state
// write, so a failed submission never partially mutates the session.
var (
	ErrGameOver                = errors.New("game already over")
	ErrInvalidDecisionForState = errors.New("decision not valid in current state")
	ErrUnknownLocation         = errors.New("unknown location")
	ErrUnknownProduct          = errors.New("unknown product")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrDecisionRequired        = errors.New("a decision is required for this day")
)
