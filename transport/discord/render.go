package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

const (
	msgUnknownCommand = "Unknown command!"
	msgNotInGame      = "You are not in a game!"
	msgUnknownFact    = "I don't know who that is! :crab:"
	msgDraw           = "You both lose! Congratulations!"
	msgFailure        = "Something went wrong, try again later."
)

// renderGrid - 3x3 table of tokens inside a code block.
func renderGrid(tokens [entity.BoardSize]string) string {
	var sb strings.Builder

	sb.WriteString("```\n")
	for row := 0; row < 3; row++ {
		sb.WriteString(strings.Join(tokens[row*3:row*3+3], " | "))
		sb.WriteString("\n")
	}
	sb.WriteString("```")

	return sb.String()
}

func renderBoard(snapshot entity.Snapshot) string {
	return renderGrid(snapshot.Board.Tokens())
}

func renderStarted(snapshot entity.Snapshot) string {
	lines := []string{
		fmt.Sprintf("Started a game between %s (%s) and %s (%s)!",
			snapshot.Player1.Name, snapshot.Player1.Piece, snapshot.Player2.Name, snapshot.Player2.Piece),
		renderGrid(entity.HelpGrid()),
	}

	if current, ok := snapshot.CurrentPlayer(); ok {
		lines = append(lines, current.Name+", you are up first!")
	}

	return strings.Join(lines, "\n")
}

// renderOutcome - board after a move and the line announcing what comes next.
func renderOutcome(snapshot entity.Snapshot) string {
	board := renderBoard(snapshot)

	if winner, ok := snapshot.Winner(); ok {
		return board + "\n" + winner.Name + " has won!"
	}

	if snapshot.State == entity.Draw {
		return board + "\n" + msgDraw
	}

	current, _ := snapshot.CurrentPlayer()

	return board + "\n" + current.Name + ", it's your turn!"
}

func renderQuit(player1, player2 entity.Player) string {
	return fmt.Sprintf("The game between %s and %s has ended early!", player1.Name, player2.Name)
}

func renderHelp(prefix string) string {
	return strings.Join([]string{
		"Positions:",
		renderGrid(entity.HelpGrid()),
		"`" + prefix + "t3 start <piece> <@opponent> <piece>` starts a game, you move with the first piece.",
		"`" + prefix + "t3 put <position>` places your piece.",
		"`" + prefix + "t3 board` shows your game.",
		"`" + prefix + "t3 quit` ends your game.",
		"`" + prefix + "fact <who>` tells you something true.",
	}, "\n")
}

// renderRejection - the warning shown when the core refuses a command. The second
// result is false for errors that are not the player's doing.
func renderRejection(err error) (string, bool) {
	var playerErr *apperror.PlayerError
	name := "That player"
	if errors.As(err, &playerErr) {
		name = playerErr.Name
	}

	switch {
	case errors.Is(err, apperror.ErrInvalidPosition):
		return fmt.Sprintf("That's not a position! Pick a number from 0 to %d.", entity.BoardSize-1), true
	case errors.Is(err, apperror.ErrCellOccupied):
		return "That cell is already taken!", true
	case errors.Is(err, apperror.ErrNotYourTurn):
		return "It's not your turn!", true
	case errors.Is(err, apperror.ErrGameFinished):
		return "That game is already over!", true
	case errors.Is(err, apperror.ErrAlreadyInGame):
		return name + " is already in a game!", true
	case errors.Is(err, apperror.ErrNotInGame):
		return msgNotInGame, true
	case errors.Is(err, apperror.ErrInvalidPlayer):
		return "A game needs two different players, each with a piece!", true
	case errors.Is(err, apperror.ErrFactNotFound):
		return msgUnknownFact, true
	default:
		return msgFailure, false
	}
}
