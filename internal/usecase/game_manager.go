package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

type gameRegistry interface {
	StartGame(player1, player2 *entity.Player) (entity.Snapshot, error)
	WithGameByPlayer(playerName string, fn func(game *entity.Game) error) error
	QuitGame(playerName string) (entity.Player, entity.Player, error)
	Len() int
}

// GameManager - the command surface of the game core. It returns snapshots and typed
// errors; turning them into text is the transport's job.
type GameManager struct {
	logger *slog.Logger
	games  gameRegistry
}

func NewGameManager(logger *slog.Logger, games gameRegistry) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),
		games:  games,
	}
}

// StartGame - starts a game between two players that are not playing yet.
func (that *GameManager) StartGame(ctx context.Context, name1, piece1, name2, piece2 string) (entity.Snapshot, error) {
	log := that.logger.With("method", "StartGame", "player1", name1, "player2", name2)

	snapshot, err := that.games.StartGame(entity.NewPlayer(name1, piece1), entity.NewPlayer(name2, piece2))
	if err != nil {
		log.DebugContext(ctx, "game not started", "error", err)
		return entity.Snapshot{}, fmt.Errorf("failed to start game: %w", err)
	}

	log.InfoContext(ctx, "game started", "state", snapshot.State.String())

	return snapshot, nil
}

// PlaceMove - places mover's piece at positionText. The returned snapshot reflects the
// game after the attempt, also when the move was rejected.
func (that *GameManager) PlaceMove(ctx context.Context, mover, positionText string) (entity.Snapshot, error) {
	log := that.logger.With("method", "PlaceMove", "player", mover, "position", positionText)

	var (
		snapshot entity.Snapshot
		moveErr  error
	)

	err := that.games.WithGameByPlayer(mover, func(game *entity.Game) error {
		_, moveErr = game.PlaceMove(mover, positionText)
		snapshot = game.Snapshot()
		return moveErr
	})

	if err != nil {
		// moveErr is only set when the player was found
		if moveErr != nil {
			log.DebugContext(ctx, "move rejected", "error", err)
		}

		return snapshot, fmt.Errorf("failed to place move: %w", err)
	}

	if snapshot.State.IsTerminal() {
		log.InfoContext(ctx, "game finished",
			"state", snapshot.State.String(),
			"player1", snapshot.Player1.Name,
			"player2", snapshot.Player2.Name,
			"moves", snapshot.TotalMoves,
		)
	}

	return snapshot, nil
}

// QuitGame - ends the requester's game early.
func (that *GameManager) QuitGame(ctx context.Context, requester string) (entity.Player, entity.Player, error) {
	log := that.logger.With("method", "QuitGame", "player", requester)

	player1, player2, err := that.games.QuitGame(requester)
	if err != nil {
		return entity.Player{}, entity.Player{}, fmt.Errorf("failed to quit game: %w", err)
	}

	log.InfoContext(ctx, "game quit", "player1", player1.Name, "player2", player2.Name)

	return player1, player2, nil
}

// Board - current state of the player's game, for display.
func (that *GameManager) Board(_ context.Context, player string) (entity.Snapshot, error) {
	var snapshot entity.Snapshot

	err := that.games.WithGameByPlayer(player, func(game *entity.Game) error {
		snapshot = game.Snapshot()
		return nil
	})
	if err != nil {
		return entity.Snapshot{}, fmt.Errorf("failed to get board: %w", err)
	}

	return snapshot, nil
}

func (that *GameManager) ActiveGames() int {
	return that.games.Len()
}

// IsRejection - true for errors that are a normal answer to a player's command.
func IsRejection(err error) bool {
	for _, target := range []error{
		apperror.ErrInvalidPosition,
		apperror.ErrCellOccupied,
		apperror.ErrNotYourTurn,
		apperror.ErrGameFinished,
		apperror.ErrAlreadyInGame,
		apperror.ErrNotInGame,
		apperror.ErrInvalidPlayer,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
