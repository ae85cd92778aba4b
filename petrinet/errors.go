package petrinet

import "errors"

// Construction-time errors returned by Content's builder methods. A
// well-formed Content is a precondition for everything downstream; the
// engine does not re-validate it.
var (
	ErrDuplicatePlace      = errors.New("petrinet: place already added")
	ErrDuplicateTransition = errors.New("petrinet: transition already added")
	ErrUnknownPlace        = errors.New("petrinet: unknown place")
	ErrUnknownTransition   = errors.New("petrinet: unknown transition")
	ErrNonPositiveWeight   = errors.New("petrinet: arc weight must be positive")
	ErrNonPositiveTokens   = errors.New("petrinet: token count must be positive")
)
