package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPosition = errors.New("invalid position")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrGameFinished    = errors.New("game is already finished")
	ErrAlreadyInGame   = errors.New("player is already in a game")
	ErrNotInGame       = errors.New("player is not in a game")
	ErrInvalidPlayer   = errors.New("invalid player")
	ErrFactNotFound    = errors.New("fact not found")
)

// PlayerError - ties an error to the player it is about.
type PlayerError struct {
	Name string
	Err  error
}

func NewPlayerError(name string, err error) *PlayerError {
	return &PlayerError{Name: name, Err: err}
}

func (that *PlayerError) Error() string {
	return fmt.Sprintf("%s: %v", that.Name, that.Err)
}

func (that *PlayerError) Unwrap() error {
	return that.Err
}
