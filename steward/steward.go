// Package steward lets a Lua script govern the city. The script defines any
// of the global functions feed, buy, sell and sow; each receives a table of
// the city's figures and returns the number to answer with. A missing
// function answers 0.
package steward

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/hamurabi/cli"
	"github.com/nathoo/hamurabi/types"
)

// MaxRepeats is how many times in a row the same question may be asked
// before the steward is declared stuck.
const MaxRepeats = 32

// ErrStewardStuck is returned when the script keeps giving answers the city
// refuses.
var ErrStewardStuck = errors.New("steward keeps giving refused answers")

// Steward answers prompts by calling into a Lua script. It implements the
// city's Console.
type Steward struct {
	Out   io.Writer // transcript of the term
	Width int
	Log   zerolog.Logger

	vm      *lua.LState
	last    types.PromptKind
	repeats int
}

// Load reads and runs the script at path.
func Load(path string, log zerolog.Logger) (*Steward, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading steward %s: %w", path, err)
	}
	s, err := LoadString(string(src), log)
	if err != nil {
		return nil, fmt.Errorf("loading steward %s: %w", path, err)
	}
	return s, nil
}

// LoadString runs src in a fresh sandboxed VM.
func LoadString(src string, log zerolog.Logger) (*Steward, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)

	s := &Steward{Out: io.Discard, Log: log, vm: L, last: -1}
	L.SetGlobal("print", L.NewFunction(s.luaPrint))

	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the Lua VM.
func (s *Steward) Close() {
	s.vm.Close()
}

// Print writes text to the transcript.
func (s *Steward) Print(text string) {
	fmt.Fprintln(s.Out, cli.Wrap(text, s.Width))
}

// ReadNumber asks the script for an answer to p.
func (s *Steward) ReadNumber(p types.Prompt) (int, error) {
	if p.Kind == s.last {
		s.repeats++
		if s.repeats >= MaxRepeats {
			return 0, fmt.Errorf("%s: %w", p.Kind, ErrStewardStuck)
		}
	} else {
		s.last = p.Kind
		s.repeats = 0
	}

	fn := s.vm.GetGlobal(p.Kind.String())
	if fn == lua.LNil {
		s.answer(p, 0)
		return 0, nil
	}
	if err := s.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, cityTable(s.vm, p.City)); err != nil {
		return 0, fmt.Errorf("steward %s: %w", p.Kind, err)
	}
	ret := s.vm.Get(-1)
	s.vm.Pop(1)

	num, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("steward %s: expected a number, got %s", p.Kind, ret.Type())
	}
	f := math.Floor(float64(num))
	if math.IsNaN(f) || f < 0 || f > math.MaxUint32 {
		return 0, fmt.Errorf("steward %s: answer %v out of range", p.Kind, float64(num))
	}
	n := int(f)
	s.answer(p, n)
	return n, nil
}

func (s *Steward) answer(p types.Prompt, n int) {
	fmt.Fprintf(s.Out, "> %d\n", n)
	s.Log.Debug().Int("year", p.City.Year).Stringer("prompt", p.Kind).Int("answer", n).Msg("steward answered")
}

// luaPrint routes the script's print calls to the debug log.
func (s *Steward) luaPrint(L *lua.LState) int {
	var parts []string
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	s.Log.Debug().Strs("args", parts).Msg("steward print")
	return 0
}

// cityTable exposes a snapshot to the script.
func cityTable(L *lua.LState, c types.Snapshot) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("year", lua.LNumber(c.Year))
	t.RawSetString("population", lua.LNumber(c.Population))
	t.RawSetString("acres", lua.LNumber(c.Acres))
	t.RawSetString("store", lua.LNumber(c.Store))
	t.RawSetString("sown", lua.LNumber(c.Sown))
	t.RawSetString("crop_yield", lua.LNumber(c.CropYield))
	t.RawSetString("harvest", lua.LNumber(c.Harvest))
	t.RawSetString("eaten_by_rats", lua.LNumber(c.EatenByRats))
	t.RawSetString("died", lua.LNumber(c.Died))
	t.RawSetString("dead_total", lua.LNumber(c.DeadTotal))
	t.RawSetString("babies", lua.LNumber(c.Babies))
	t.RawSetString("land_price", lua.LNumber(c.LandPrice))
	t.RawSetString("starved_mean", lua.LNumber(c.StarvedMean))
	return t
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the VM or break determinism.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "require", "module",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// The engine owns the random stream.
	if mathTbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		mathTbl.RawSetString("random", lua.LNil)
		mathTbl.RawSetString("randomseed", lua.LNil)
	}
}
