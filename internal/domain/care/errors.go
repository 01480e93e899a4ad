package care

import "errors"

var (
	ErrNoActivePet   = errors.New("no active pet")
	ErrUnknownAction = errors.New("unknown care action")
	ErrInvalidInput  = errors.New("invalid input")
	ErrShutdown      = errors.New("care manager shut down")

	// errRetired: el engine fue liberado por el Manager; se pide uno nuevo.
	errRetired = errors.New("engine retired")
)
