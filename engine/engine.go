// Package engine drives a ten-year term: it runs the city's phases in their
// fixed order each year, stops early on famine, and decides the steward's
// fate at the end.
package engine

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nathoo/hamurabi/engine/city"
	"github.com/nathoo/hamurabi/types"
)

// TermYears is the length of a full term of office.
const TermYears = 10

const (
	banner = "\n    HAMURUSTI\n\nTry your hand at governing Ancient Sumeria successfully " +
		"for a ten-year term of office."
	farewell = "\n\n\nSo long for now."
)

// Engine owns one city for one term.
type Engine struct {
	City    *city.City
	RNG     city.Source
	Console city.Console
	Log     zerolog.Logger

	// Observer, if set, receives a snapshot after every completed year and
	// once more at term end.
	Observer func(types.Snapshot)

	year      int
	impeached bool
	done      bool
}

// New creates an engine for a fresh city.
func New(con city.Console, rng city.Source, log zerolog.Logger) *Engine {
	return &Engine{
		City:    city.New(),
		RNG:     rng,
		Console: con,
		Log:     log,
		year:    1,
	}
}

// Year returns the year currently being played, or the last one played once
// the term is over.
func (e *Engine) Year() int { return e.year }

// Impeached reports whether the term ended early.
func (e *Engine) Impeached() bool { return e.impeached }

// Done reports whether the term is over.
func (e *Engine) Done() bool { return e.done }

// Step plays one year. It returns true once the term is over, either because
// the last year was played or because a famine ended it early. An error
// means the console failed and the term cannot continue.
func (e *Engine) Step() (bool, error) {
	if e.done {
		return true, nil
	}
	c := e.City
	c.SetYear(e.year)

	// 1. Last year's figures.
	e.Console.Print(c.Summary(e.year))

	// 2. Plague, from the second year on.
	if e.year > 1 && c.Plague(e.RNG) {
		e.Console.Print(city.PlagueMessage)
	}

	// 3-4. Land price and report.
	c.RollLandPrice(e.RNG)
	e.Console.Print(c.Report())

	// 5-7. The steward's decisions.
	if err := c.Feed(e.Console); err != nil {
		return false, fmt.Errorf("year %d: %w", e.year, err)
	}
	if err := c.Trade(e.Console); err != nil {
		return false, fmt.Errorf("year %d: %w", e.year, err)
	}
	if err := c.Sow(e.Console); err != nil {
		return false, fmt.Errorf("year %d: %w", e.year, err)
	}

	// 8-9. Rats, then the harvest on what was sown.
	c.Rats(e.RNG)
	c.Harvest(e.RNG)

	// 10. Famine ends the term before anyone is born or buried.
	if c.Famine() {
		e.Console.Print(c.FamineMessage())
		e.impeached = true
		e.done = true
		e.Log.Info().Int("year", e.year).Int("died", c.Died()).Msg("famine, steward impeached")
		return true, nil
	}

	// 11. Births and deaths.
	if err := c.Populate(e.RNG); err != nil {
		return false, fmt.Errorf("year %d: %w", e.year, err)
	}
	e.logYear()
	e.observe()

	if e.year == TermYears {
		e.done = true
		return true, nil
	}
	e.year++
	return false, nil
}

// Run plays the whole term and returns the verdict. DecideFate is called
// exactly once, after the last year or the famine.
func (e *Engine) Run() (types.Verdict, error) {
	e.Console.Print(banner)
	for {
		done, err := e.Step()
		if err != nil {
			return types.Verdict{}, err
		}
		if done {
			break
		}
	}

	v := e.City.DecideFate(e.impeached, e.RNG)
	for _, line := range v.Output {
		e.Console.Print(line)
	}
	e.Console.Print(farewell)
	e.observe()

	e.Log.Info().
		Stringer("outcome", v.Outcome).
		Bool("impeached", v.Impeached).
		Float64("starved_mean", v.Mean).
		Float64("acres_per_person", v.PerCapita).
		Msg("term over")
	return v, nil
}

func (e *Engine) observe() {
	if e.Observer != nil {
		e.Observer(e.City.Snapshot())
	}
}

// positioner is implemented by sources that track their draw count.
type positioner interface {
	Position() int64
}

func (e *Engine) logYear() {
	if e.Log.GetLevel() > zerolog.DebugLevel {
		return
	}
	s := e.City.Snapshot()
	ev := e.Log.Debug().
		Int("year", s.Year).
		Int("population", s.Population).
		Int("acres", s.Acres).
		Int("store", s.Store).
		Int("sown", s.Sown).
		Int("yield", s.CropYield).
		Int("rats", s.EatenByRats).
		Int("died", s.Died).
		Int("babies", s.Babies)
	if p, ok := e.RNG.(positioner); ok {
		ev = ev.Int64("rng_position", p.Position())
	}
	ev.Msg("year complete")
}
