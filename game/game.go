// Package game is a small character roster built on the inject resolver.
package game

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xraph/inject"
)

var (
	// ErrNilInjector is returned by NewGame without an injector.
	ErrNilInjector = errors.New("game: dependency injector cannot be nil")

	// ErrEmptyName rejects characters without a name.
	ErrEmptyName = errors.New("game: character name is required")

	// ErrRosterFull rejects characters beyond the configured limit.
	ErrRosterFull = errors.New("game: roster is full")
)

// Game creates characters through an injector and keeps the roster.
type Game struct {
	characters    *inject.Provider[*Character]
	logger        *zap.Logger
	maxCharacters int

	mu     sync.RWMutex
	roster []*Character
}

// Option configures a Game.
type Option func(*Game)

// WithMaxCharacters limits the roster size. Zero or less means unlimited.
func WithMaxCharacters(n int) Option {
	return func(g *Game) {
		g.maxCharacters = n
	}
}

// WithLogger sets the game logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGame creates a game that builds characters with inj.
func NewGame(inj inject.Injector, opts ...Option) (*Game, error) {
	if inj == nil {
		return nil, ErrNilInjector
	}

	g := &Game{
		characters: inject.NewProvider[*Character](inj),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// CreateCharacter builds a character, names it and adds it to the roster.
// Failures are reported in the response, never returned.
func (g *Game) CreateCharacter(name string) Response[*Character] {
	name = strings.TrimSpace(name)
	if name == "" {
		return failed[*Character](ErrEmptyName)
	}

	if g.full() {
		return failed[*Character](ErrRosterFull)
	}

	character, err := g.characters.Provide()
	if err != nil {
		g.logger.Warn("character creation failed", zap.String("name", name), zap.Error(err))
		return failed[*Character](err)
	}

	if character == nil {
		return failed[*Character](fmt.Errorf("game: injector returned no character for %q", name))
	}

	character.Name = name

	g.mu.Lock()
	defer g.mu.Unlock()

	// Re-check under the write lock
	if g.maxCharacters > 0 && len(g.roster) >= g.maxCharacters {
		return failed[*Character](ErrRosterFull)
	}

	g.roster = append(g.roster, character)

	g.logger.Info("character created",
		zap.String("name", name),
		zap.Int("strength", character.Strength),
		zap.Int("dexterity", character.Dexterity),
	)

	return succeeded(character)
}

// Characters returns the roster in creation order.
func (g *Game) Characters() Response[[]*Character] {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return succeeded(slices.Clone(g.roster))
}

func (g *Game) full() bool {
	if g.maxCharacters <= 0 {
		return false
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.roster) >= g.maxCharacters
}

// Compose registers everything a Game needs to build characters. A zero seed
// seeds the dice from the clock.
func Compose(reg *inject.Registry, seed uint64) error {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return inject.RegisterAll(reg,
		inject.Bind[Roller, *SeededDice](inject.Singleton, inject.WithFactory(func() *SeededDice {
			return NewSeededDice(seed)
		})),
		inject.Bind[*Inventory, *Inventory](inject.Scoped),
		inject.Bind[*Character, *Character](inject.Transient, inject.WithConstructor(NewCharacter)),
	)
}
