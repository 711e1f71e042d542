package game

import "errors"

var (
	// User-visible rejections, surfaced to the client as err messages.
	ErrGameInProgress = errors.New("game already in progress")
	ErrTableFull      = errors.New("table is full")

	// Protocol violations: silently dropped by the orchestrator.
	ErrOutOfTurn    = errors.New("action out of turn")
	ErrNotHost      = errors.New("host only")
	ErrWrongState   = errors.New("wrong game state")
	ErrNoLastPlay   = errors.New("no play to contest")
	ErrNotVictim    = errors.New("not the roulette victim")
	ErrNotAlive     = errors.New("player eliminated")
	ErrUnknownSeat  = errors.New("unknown player")
	ErrEmptyPlay    = errors.New("no cards selected")
	ErrBadSelection = errors.New("invalid hand selection")
)

type InvalidStateError string

func (e InvalidStateError) Error() string { return "invalid state: " + string(e) }

func ErrInvalidState(msg string) error { return InvalidStateError(msg) }
