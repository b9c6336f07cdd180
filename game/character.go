package game

import (
	"math/rand/v2"
	"sync"
)

// Roller rolls dice.
type Roller interface {
	// Roll returns a value in [1, sides], or 0 when sides is not positive.
	Roll(sides int) int
}

// SeededDice is a Roller backed by a deterministic PCG source. It is safe for
// concurrent use.
type SeededDice struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededDice creates dice that produce the same sequence for the same seed.
func NewSeededDice(seed uint64) *SeededDice {
	return &SeededDice{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Roll implements Roller.
func (d *SeededDice) Roll(sides int) int {
	if sides < 1 {
		return 0
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	return d.rng.IntN(sides) + 1
}

// Inventory holds the items a character carries.
type Inventory struct {
	Items []string `json:"items"`
}

// Add puts an item in the inventory.
func (i *Inventory) Add(item string) {
	i.Items = append(i.Items, item)
}

// Character is a player character.
type Character struct {
	Name      string     `json:"name"`
	Strength  int        `json:"strength"`
	Dexterity int        `json:"dexterity"`
	Inventory *Inventory `json:"inventory"`

	dice Roller
}

// NewCharacter rolls the attributes of a new, unnamed character.
func NewCharacter(dice Roller, inventory *Inventory) *Character {
	return &Character{
		Strength:  rollAttribute(dice),
		Dexterity: rollAttribute(dice),
		Inventory: inventory,
		dice:      dice,
	}
}

// Dice returns the Roller the character was built with.
func (c *Character) Dice() Roller {
	return c.dice
}

// rollAttribute sums three six-sided dice.
func rollAttribute(dice Roller) int {
	total := 0
	for range 3 {
		total += dice.Roll(6)
	}

	return total
}
