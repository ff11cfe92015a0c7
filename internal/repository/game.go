package repository

import (
	"sync"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

// GameFactory - builds the game for two validated players.
type GameFactory func(player1, player2 *entity.Player) *entity.Game

type RegistryOption func(*GameRegistry)

// WithGameFactory - replaces entity.NewGame, e.g. to force the first mover.
func WithGameFactory(factory GameFactory) RegistryOption {
	return func(registry *GameRegistry) {
		registry.newGame = factory
	}
}

// gameEntry - one registered game. mu serializes every operation addressing the game;
// evicted is set, with mu held, once the game has left the registry.
type gameEntry struct {
	mu      sync.Mutex
	game    *entity.Game
	evicted bool
}

// GameRegistry - the in-progress games indexed by participant name.
//
// Lock order is entry before registry: the registry lock is only ever taken for map
// access and never held while waiting for an entry, so games do not block each other.
type GameRegistry struct {
	mu      sync.Mutex
	players map[string]*gameEntry
	newGame GameFactory
}

func NewGameRegistry(opts ...RegistryOption) *GameRegistry {
	registry := &GameRegistry{
		players: make(map[string]*gameEntry),
		newGame: entity.NewGame,
	}

	for _, opt := range opts {
		opt(registry)
	}

	return registry
}

// StartGame - registers a new game unless one of the players already has one.
// The check and the insert happen under one lock.
func (that *GameRegistry) StartGame(player1, player2 *entity.Player) (entity.Snapshot, error) {
	if err := entity.ValidatePlayers(player1, player2); err != nil {
		return entity.Snapshot{}, err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	for _, player := range []*entity.Player{player1, player2} {
		if _, ok := that.players[player.Name]; ok {
			return entity.Snapshot{}, apperror.NewPlayerError(player.Name, apperror.ErrAlreadyInGame)
		}
	}

	entry := &gameEntry{game: that.newGame(player1, player2)}
	that.players[player1.Name] = entry
	that.players[player2.Name] = entry

	return entry.game.Snapshot(), nil
}

// WithGameByPlayer - runs fn with exclusive access to the game playerName is in.
// Nothing else can observe or change that game until fn has returned and a finished
// game has been evicted. The game must not be retained after fn returns.
func (that *GameRegistry) WithGameByPlayer(playerName string, fn func(game *entity.Game) error) error {
	entry, err := that.checkout(playerName)
	if err != nil {
		return err
	}
	defer entry.mu.Unlock()

	err = fn(entry.game)

	that.EvictIfTerminal(entry.game)

	return err
}

// QuitGame - removes the game playerName is in and returns its players.
func (that *GameRegistry) QuitGame(playerName string) (entity.Player, entity.Player, error) {
	entry, err := that.checkout(playerName)
	if err != nil {
		return entity.Player{}, entity.Player{}, err
	}
	defer entry.mu.Unlock()

	that.remove(entry)

	return *entry.game.Player1, *entry.game.Player2, nil
}

// EvictIfTerminal - drops a finished game from the registry and reports whether it did.
// The caller must hold the game through WithGameByPlayer, which also calls this once fn is done.
func (that *GameRegistry) EvictIfTerminal(game *entity.Game) bool {
	if game == nil || !game.IsFinished() {
		return false
	}

	that.mu.Lock()
	entry, ok := that.players[game.Player1.Name]
	that.mu.Unlock()

	if !ok || entry.game != game {
		return false
	}

	that.remove(entry)

	return true
}

// Len - number of registered games.
func (that *GameRegistry) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.players) / 2
}

// checkout - finds the entry for playerName and returns it locked.
func (that *GameRegistry) checkout(playerName string) (*gameEntry, error) {
	for {
		that.mu.Lock()
		entry, ok := that.players[playerName]
		that.mu.Unlock()

		if !ok {
			return nil, apperror.NewPlayerError(playerName, apperror.ErrNotInGame)
		}

		entry.mu.Lock()
		if !entry.evicted {
			return entry, nil
		}

		// the previous holder removed the game, look again
		entry.mu.Unlock()
	}
}

// remove - caller holds entry.mu.
func (that *GameRegistry) remove(entry *gameEntry) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, name := range []string{entry.game.Player1.Name, entry.game.Player2.Name} {
		if that.players[name] == entry {
			delete(that.players, name)
		}
	}

	entry.evicted = true
}
