package sim

import "errors"

// Setup errors are detected before any simulation tick occurs and are always
// recoverable by the caller (fix the input and retry). Invariant violations
// inside the engine are programming errors and panic instead.
var (
	// ErrDuplicateID is returned when a ProcessSpec reuses an already registered ID.
	ErrDuplicateID = errors.New("duplicate process id")

	// ErrInvalidBurst is returned when a ProcessSpec has a burst time <= 0.
	ErrInvalidBurst = errors.New("invalid burst time")

	// ErrInvalidArrival is returned when a ProcessSpec has a negative arrival time.
	ErrInvalidArrival = errors.New("invalid arrival time")

	// ErrInvalidQuantum is returned when Round-Robin is configured with a quantum <= 0.
	ErrInvalidQuantum = errors.New("invalid quantum")

	// ErrStoreSealed is returned when registering after the registration phase closed.
	ErrStoreSealed = errors.New("spec store is sealed")

	// ErrUnknownPolicy is returned when a policy name is not recognized.
	ErrUnknownPolicy = errors.New("unknown policy")

	// ErrIncompleteSimulation is returned when metrics are requested before every
	// process reached the Terminated state.
	ErrIncompleteSimulation = errors.New("simulation incomplete")
)
