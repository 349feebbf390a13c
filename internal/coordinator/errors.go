package coordinator

import "errors"

var (
	ErrNotInitialized     = errors.New("coordinator is not initialized")
	ErrAlreadyInitialized = errors.New("coordinator is already initialized")
	ErrInvalidServiceID   = errors.New("invalid guess service id")
	ErrUnexpectedPayload  = errors.New("unexpected payload")

	ErrInvalidWord     = errors.New("invalid word")
	ErrAlreadyInGame   = errors.New("the user is already in a game")
	ErrRequestInFlight = errors.New("a request is already in flight")
	ErrNotInGame       = errors.New("the user is not in a game")
	ErrSuperseded      = errors.New("superseded by a newer start")
)
