// Package city owns the simulated city's figures and the phase operations
// that move them from one year to the next.
package city

import (
	"errors"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nathoo/hamurabi/engine/mean"
	"github.com/nathoo/hamurabi/types"
)

// Domain violations. Interactive phases recover from these by re-prompting.
var (
	ErrInsufficientGrain  = errors.New("not enough grain in store")
	ErrInsufficientLand   = errors.New("not enough acres owned")
	ErrInsufficientPeople = errors.New("not enough people to tend the fields")
	ErrNoPeople           = errors.New("population is zero")
)

// Bushels and acre figures used by the phase operations.
const (
	BushelsPerPerson = 20
	AcresPerPerson   = 10
	SeedPerAcre      = 2
	MinLandPrice     = 17
	MaxLandPrice     = 26
)

// Source is the random draw stream consumed by the stochastic phases.
type Source interface {
	// Roll returns an integer in [1, sides].
	Roll(sides int) int
	// Between returns an integer in [lo, hi].
	Between(lo, hi int) int
	// Float returns a float in [0, 1).
	Float() float64
	// Chance returns true with probability p.
	Chance(p float64) bool
}

// Console is the player-facing channel the interactive phases talk through.
// ReadNumber only returns values that parsed as non-negative integers; an
// error means the channel itself failed.
type Console interface {
	Print(text string)
	ReadNumber(p types.Prompt) (int, error)
}

// numbers formats figures with thousands separators.
var numbers = message.NewPrinter(language.English)

// City holds all mutable simulation state for one term.
type City struct {
	acres       int
	babies      int
	cropYield   int
	deadTotal   int
	died        int
	eatenByRats int
	harvest     int
	landPrice   int
	population  int
	sown        int
	starved     mean.Mean
	store       int
	year        int
}

// New creates a city with the standard opening figures.
func New() *City {
	return &City{
		acres:       1000,
		babies:      5,
		cropYield:   3,
		eatenByRats: 200,
		harvest:     3000,
		landPrice:   20,
		population:  95,
		store:       2800,
		year:        1,
	}
}

// Snapshot returns a copy of the city's current figures.
func (c *City) Snapshot() types.Snapshot {
	return types.Snapshot{
		Year:        c.year,
		Population:  c.population,
		Acres:       c.acres,
		Store:       c.store,
		Sown:        c.sown,
		CropYield:   c.cropYield,
		Harvest:     c.harvest,
		EatenByRats: c.eatenByRats,
		Died:        c.died,
		DeadTotal:   c.deadTotal,
		Babies:      c.babies,
		LandPrice:   c.landPrice,
		StarvedMean: c.starved.Mean(),
	}
}

// SetYear records the year being played, for snapshots.
func (c *City) SetYear(year int) {
	c.year = year
}

// RollLandPrice draws this year's land price from rng.
func (c *City) RollLandPrice(rng Source) {
	c.landPrice = rng.Between(MinLandPrice, MaxLandPrice)
}

// Died returns this year's starvation deaths.
func (c *City) Died() int { return c.died }

func (c *City) prompt(kind types.PromptKind) types.Prompt {
	return types.Prompt{Kind: kind, City: c.Snapshot()}
}

func formatNumber(n int) string {
	return numbers.Sprintf("%d", n)
}
