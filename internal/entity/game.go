package entity

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

type GameState int

const (
	TurnPlayer1 GameState = iota
	TurnPlayer2
	WinPlayer1
	WinPlayer2
	Draw
)

func (that GameState) IsTerminal() bool {
	return that == WinPlayer1 || that == WinPlayer2 || that == Draw
}

func (that GameState) String() string {
	switch that {
	case TurnPlayer1:
		return "turn_player1"
	case TurnPlayer2:
		return "turn_player2"
	case WinPlayer1:
		return "win_player1"
	case WinPlayer2:
		return "win_player2"
	case Draw:
		return "draw"
	default:
		return "unknown(" + strconv.Itoa(int(that)) + ")"
	}
}

type Game struct {
	Player1    *Player   `json:"player1"`
	Player2    *Player   `json:"player2"`
	Board      Board     `json:"board"`
	State      GameState `json:"state"`
	TotalMoves int       `json:"total_moves"`
}

// Snapshot - a copy of a game that is safe to hold after the game itself has been released.
type Snapshot struct {
	Player1    Player
	Player2    Player
	Board      Board
	State      GameState
	TotalMoves int
}

// NewGame - creates a game with a randomly chosen first mover.
func NewGame(player1, player2 *Player) *Game {
	first := TurnPlayer1
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		first = TurnPlayer2
	}

	return NewGameWithFirstMover(player1, player2, first)
}

// NewGameWithFirstMover - creates a game where first decides who moves first.
// Anything other than TurnPlayer2 starts with player1.
func NewGameWithFirstMover(player1, player2 *Player, first GameState) *Game {
	if first != TurnPlayer2 {
		first = TurnPlayer1
	}

	return &Game{
		Player1: player1,
		Player2: player2,
		State:   first,
	}
}

// CurrentPlayer - the player allowed to place the next mark, false once the game is over.
func (that *Game) CurrentPlayer() (*Player, bool) {
	switch that.State {
	case TurnPlayer1:
		return that.Player1, true
	case TurnPlayer2:
		return that.Player2, true
	default:
		return nil, false
	}
}

// Winner - the winning player, false while the game is running or ended in a draw.
func (that *Game) Winner() (*Player, bool) {
	switch that.State {
	case WinPlayer1:
		return that.Player1, true
	case WinPlayer2:
		return that.Player2, true
	default:
		return nil, false
	}
}

func (that *Game) HasPlayer(name string) bool {
	return that.Player1.Name == name || that.Player2.Name == name
}

func (that *Game) IsFinished() bool {
	return that.State.IsTerminal()
}

// ParsePosition - converts user input into a board index.
func ParsePosition(text string) (int, error) {
	position, err := strconv.Atoi(text)
	if err != nil || position < 0 || position >= BoardSize {
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidPosition, text)
	}

	return position, nil
}

// PlaceMove - marks the cell at positionText for mover and advances the state.
// A rejected move leaves the game untouched.
func (that *Game) PlaceMove(mover, positionText string) (GameState, error) {
	position, err := ParsePosition(positionText)
	if err != nil {
		return that.State, err
	}

	if !that.Board.IsEmpty(position) {
		return that.State, fmt.Errorf("%w: position %d", apperror.ErrCellOccupied, position)
	}

	player, ok := that.CurrentPlayer()
	if ok && player.Name != mover {
		return that.State, apperror.NewPlayerError(mover, apperror.ErrNotYourTurn)
	}

	if !ok {
		return that.State, apperror.ErrGameFinished
	}

	player.Points += MagicSquare[position]
	that.Board[position] = player.Piece
	that.TotalMoves++

	that.State = that.nextState(player)

	return that.State, nil
}

func (that *Game) nextState(mover *Player) GameState {
	// three distinct magic square weights sum to 15 only on a winning line
	if mover.Points == WinningSum {
		if mover == that.Player1 {
			return WinPlayer1
		}
		return WinPlayer2
	}

	if that.TotalMoves == BoardSize {
		return Draw
	}

	if that.State == TurnPlayer1 {
		return TurnPlayer2
	}
	return TurnPlayer1
}

func (that *Game) Snapshot() Snapshot {
	return Snapshot{
		Player1:    *that.Player1,
		Player2:    *that.Player2,
		Board:      that.Board,
		State:      that.State,
		TotalMoves: that.TotalMoves,
	}
}

// CurrentPlayer - see Game.CurrentPlayer.
func (that Snapshot) CurrentPlayer() (Player, bool) {
	switch that.State {
	case TurnPlayer1:
		return that.Player1, true
	case TurnPlayer2:
		return that.Player2, true
	default:
		return Player{}, false
	}
}

// Winner - see Game.Winner.
func (that Snapshot) Winner() (Player, bool) {
	switch that.State {
	case WinPlayer1:
		return that.Player1, true
	case WinPlayer2:
		return that.Player2, true
	default:
		return Player{}, false
	}
}
