package selector

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/GaryKam/lets-eat/internal/types"
)

// Chooser picks the index of the place to display from a non-empty result list
type Chooser interface {
	Choose(places []types.Place) int
}

// ChooserFunc adapts a function to Chooser
type ChooserFunc func(places []types.Place) int

func (f ChooserFunc) Choose(places []types.Place) int {
	return f(places)
}

// FirstChooser always picks the first (closest ranked) result
type FirstChooser struct{}

func (FirstChooser) Choose(places []types.Place) int {
	return 0
}

// RandomChooser picks a uniformly random result
type RandomChooser struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomChooser(seed uint64) *RandomChooser {
	return &RandomChooser{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (c *RandomChooser) Choose(places []types.Place) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.IntN(len(places))
}

// RotatingChooser walks through successive results, one step per search
type RotatingChooser struct {
	mu   sync.Mutex
	next int
}

func (c *RotatingChooser) Choose(places []types.Place) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.next % len(places)
	c.next++
	return i
}

// NewChooser builds a chooser by its config name
func NewChooser(name string, seed uint64) (Chooser, error) {
	switch name {
	case "first":
		return FirstChooser{}, nil
	case "random", "":
		return NewRandomChooser(seed), nil
	case "rotate":
		return &RotatingChooser{}, nil
	default:
		return nil, fmt.Errorf("unknown chooser %q", name)
	}
}
