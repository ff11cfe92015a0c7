package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

// Player - a participant of exactly one game. Name is the identity, Points the running
// magic square total of the cells the player has taken.
type Player struct {
	Name   string `json:"name"`
	Piece  string `json:"piece"`
	Points int    `json:"points"`
}

func NewPlayer(name, piece string) *Player {
	return &Player{
		Name:  name,
		Piece: piece,
	}
}

// Equal - two players are the same player iff their names match.
func (that *Player) Equal(other *Player) bool {
	return other != nil && that.Name == other.Name
}

// ValidatePlayers - checks that both players can share a board.
func ValidatePlayers(player1, player2 *Player) error {
	for _, player := range []*Player{player1, player2} {
		if player == nil {
			return fmt.Errorf("%w: player is missing", apperror.ErrInvalidPlayer)
		}

		if strings.TrimSpace(player.Name) == "" {
			return fmt.Errorf("%w: empty name", apperror.ErrInvalidPlayer)
		}

		if strings.TrimSpace(player.Piece) == "" {
			return apperror.NewPlayerError(player.Name, fmt.Errorf("%w: empty piece", apperror.ErrInvalidPlayer))
		}
	}

	if player1.Equal(player2) {
		return apperror.NewPlayerError(player1.Name, fmt.Errorf("%w: cannot play against yourself", apperror.ErrInvalidPlayer))
	}

	return nil
}
