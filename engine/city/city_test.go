package city

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/nathoo/hamurabi/types"
)

// fixedSource replays predetermined draws. Roll and Between share ints.
type fixedSource struct {
	ints    []int
	floats  []float64
	chances []bool
}

func (s *fixedSource) Roll(sides int) int { return s.nextInt() }

func (s *fixedSource) Between(lo, hi int) int { return s.nextInt() }

func (s *fixedSource) Float() float64 {
	if len(s.floats) == 0 {
		panic("fixedSource: out of floats")
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *fixedSource) Chance(p float64) bool {
	if len(s.chances) == 0 {
		panic("fixedSource: out of chances")
	}
	c := s.chances[0]
	s.chances = s.chances[1:]
	return c
}

func (s *fixedSource) nextInt() int {
	if len(s.ints) == 0 {
		panic("fixedSource: out of ints")
	}
	n := s.ints[0]
	s.ints = s.ints[1:]
	return n
}

// scriptConsole answers prompts from a fixed list and records output.
type scriptConsole struct {
	answers []int
	out     []string
	prompts []types.Prompt
}

func (s *scriptConsole) Print(text string) {
	s.out = append(s.out, text)
}

func (s *scriptConsole) ReadNumber(p types.Prompt) (int, error) {
	s.prompts = append(s.prompts, p)
	if len(s.answers) == 0 {
		return 0, io.ErrUnexpectedEOF
	}
	n := s.answers[0]
	s.answers = s.answers[1:]
	return n, nil
}

func (s *scriptConsole) output() string {
	return strings.Join(s.out, "\n")
}

func TestNew_OpeningFigures(t *testing.T) {
	c := New()
	s := c.Snapshot()
	want := types.Snapshot{
		Year: 1, Population: 95, Acres: 1000, Store: 2800, CropYield: 3,
		Harvest: 3000, EatenByRats: 200, Babies: 5, LandPrice: 20,
	}
	if s != want {
		t.Fatalf("opening snapshot:\n got  %+v\n want %+v", s, want)
	}
}

func TestFeedPeople(t *testing.T) {
	tests := []struct {
		name      string
		amount    int
		wantDied  int
		wantStore int
	}{
		{"exactly enough", 1900, 0, 900},
		{"nothing", 0, 95, 2800},
		{"remainder wasted", 1899, 1, 901},
		{"more than needed", 2800, 0, 0},
		{"half", 950, 48, 1850},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			if err := c.FeedPeople(tt.amount); err != nil {
				t.Fatalf("FeedPeople(%d): %v", tt.amount, err)
			}
			if c.died != tt.wantDied {
				t.Errorf("died = %d, want %d", c.died, tt.wantDied)
			}
			if c.store != tt.wantStore {
				t.Errorf("store = %d, want %d", c.store, tt.wantStore)
			}
		})
	}
}

func TestFeedPeople_MoreThanStore(t *testing.T) {
	c := New()
	before := c.Snapshot()
	if err := c.FeedPeople(2801); !errors.Is(err, ErrInsufficientGrain) {
		t.Fatalf("expected ErrInsufficientGrain, got %v", err)
	}
	if c.Snapshot() != before {
		t.Error("refused feed must not change the city")
	}
}

func TestFeed_RepromptsUntilValid(t *testing.T) {
	c := New()
	con := &scriptConsole{answers: []int{5000, 1900}}
	if err := c.Feed(con); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(con.prompts) != 2 {
		t.Fatalf("expected 2 prompts, got %d", len(con.prompts))
	}
	if con.prompts[0].Kind != types.PromptFeed {
		t.Errorf("expected feed prompt, got %v", con.prompts[0].Kind)
	}
	out := con.output()
	if !strings.Contains(out, "1,900 bushels") {
		t.Errorf("expected request for 1,900 bushels, got %q", out)
	}
	if !strings.Contains(out, "You have only 2,800 bushels") {
		t.Errorf("expected corrective message, got %q", out)
	}
	if c.died != 0 || c.store != 900 {
		t.Errorf("died=%d store=%d, want 0 and 900", c.died, c.store)
	}
}

func TestFeed_InputFailure(t *testing.T) {
	c := New()
	err := c.Feed(&scriptConsole{})
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected wrapped EOF, got %v", err)
	}
	if c.store != 2800 {
		t.Errorf("store changed on failed input: %d", c.store)
	}
}

func TestBuyLand(t *testing.T) {
	c := New()
	if err := c.BuyLand(100); err != nil {
		t.Fatalf("BuyLand: %v", err)
	}
	if c.acres != 1100 || c.store != 800 {
		t.Errorf("acres=%d store=%d, want 1100 and 800", c.acres, c.store)
	}

	before := c.Snapshot()
	if err := c.BuyLand(41); !errors.Is(err, ErrInsufficientGrain) {
		t.Fatalf("expected ErrInsufficientGrain, got %v", err)
	}
	if c.Snapshot() != before {
		t.Error("refused purchase must not change the city")
	}
}

func TestSellLand(t *testing.T) {
	c := New()
	if err := c.SellLand(10); err != nil {
		t.Fatalf("SellLand: %v", err)
	}
	if c.acres != 990 || c.store != 3000 {
		t.Errorf("acres=%d store=%d, want 990 and 3000", c.acres, c.store)
	}
	if err := c.SellLand(991); !errors.Is(err, ErrInsufficientLand) {
		t.Fatalf("expected ErrInsufficientLand, got %v", err)
	}
	if c.acres != 990 {
		t.Errorf("refused sale changed acres to %d", c.acres)
	}
}

func TestTrade_Buy(t *testing.T) {
	c := New()
	con := &scriptConsole{answers: []int{1000, 10}}
	if err := c.Trade(con); err != nil {
		t.Fatalf("Trade: %v", err)
	}
	if c.acres != 1010 || c.store != 2600 {
		t.Errorf("acres=%d store=%d, want 1010 and 2600", c.acres, c.store)
	}
	if !strings.Contains(con.output(), "Hamurusti: Think again. You have only 2,800 bushels of grain.") {
		t.Errorf("expected corrective message for unaffordable purchase, got %q", con.output())
	}
}

func TestTrade_ZeroBuyMovesToSell(t *testing.T) {
	c := New()
	con := &scriptConsole{answers: []int{0, 2000, 100}}
	if err := c.Trade(con); err != nil {
		t.Fatalf("Trade: %v", err)
	}
	kinds := []types.PromptKind{types.PromptBuy, types.PromptSell, types.PromptSell}
	for i, p := range con.prompts {
		if p.Kind != kinds[i] {
			t.Errorf("prompt %d: got %v, want %v", i, p.Kind, kinds[i])
		}
	}
	if !strings.Contains(con.output(), "Hamurusti: Think again. You own only 1,000 acres") {
		t.Errorf("expected acres complaint, got %q", con.output())
	}
	if c.acres != 900 || c.store != 4800 {
		t.Errorf("acres=%d store=%d, want 900 and 4800", c.acres, c.store)
	}
}

func TestTrade_EmptyStoreGoesStraightToSell(t *testing.T) {
	c := New()
	c.store = 0
	con := &scriptConsole{answers: []int{5}}
	if err := c.Trade(con); err != nil {
		t.Fatalf("Trade: %v", err)
	}
	if len(con.prompts) != 1 || con.prompts[0].Kind != types.PromptSell {
		t.Fatalf("expected a single sell prompt, got %v", con.prompts)
	}
	if c.store != 100 {
		t.Errorf("store = %d, want 100", c.store)
	}
}

func TestTrade_NothingToSell(t *testing.T) {
	c := New()
	c.store = 0
	c.acres = 0
	con := &scriptConsole{}
	if err := c.Trade(con); err != nil {
		t.Fatalf("Trade: %v", err)
	}
	if len(con.prompts) != 0 {
		t.Errorf("expected no prompts, got %d", len(con.prompts))
	}
}

func TestSowFields(t *testing.T) {
	tests := []struct {
		name    string
		acres   int
		store   int
		pop     int
		owned   int
		wantErr error
	}{
		{"valid", 500, 900, 95, 1000, nil},
		{"all land", 950, 900, 95, 1000, nil},
		{"more land than owned", 1001, 5000, 200, 1000, ErrInsufficientLand},
		{"seed equals store", 1000, 500, 200, 1000, ErrInsufficientGrain},
		{"not enough seed", 1000, 400, 200, 1000, ErrInsufficientGrain},
		{"too few people", 951, 900, 95, 1000, ErrInsufficientPeople},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.store, c.population, c.acres = tt.store, tt.pop, tt.owned
			c.sown = 7
			err := c.SowFields(tt.acres)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SowFields(%d) = %v, want %v", tt.acres, err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if c.sown != 7 || c.store != tt.store {
					t.Errorf("refused sowing changed sown=%d store=%d", c.sown, c.store)
				}
				return
			}
			if c.sown != tt.acres {
				t.Errorf("sown = %d, want %d", c.sown, tt.acres)
			}
			if c.store != tt.store-tt.acres/2 {
				t.Errorf("store = %d, want %d", c.store, tt.store-tt.acres/2)
			}
		})
	}
}

func TestSowFields_ZeroClears(t *testing.T) {
	c := New()
	c.store = 0
	c.sown = 300
	if err := c.SowFields(0); err != nil {
		t.Fatalf("SowFields(0): %v", err)
	}
	if c.sown != 0 || c.store != 0 {
		t.Errorf("sown=%d store=%d, want 0 and 0", c.sown, c.store)
	}
}

func TestSow_DistinctMessages(t *testing.T) {
	c := New()
	c.store = 600
	c.acres = 2000
	con := &scriptConsole{answers: []int{3000, 1200, 960, 500}}
	if err := c.Sow(con); err != nil {
		t.Fatalf("Sow: %v", err)
	}
	out := con.output()
	for _, want := range []string{
		"You own only 2,000 acres",
		"You have only 600 bushels",
		"only 95 people to tend the fields",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}
	if c.sown != 500 || c.store != 350 {
		t.Errorf("sown=%d store=%d, want 500 and 350", c.sown, c.store)
	}
}

func TestHarvest(t *testing.T) {
	c := New()
	c.sown = 400
	c.store = 100
	c.Harvest(&fixedSource{ints: []int{4}})
	if c.cropYield != 4 || c.harvest != 1600 || c.store != 1700 {
		t.Errorf("yield=%d harvest=%d store=%d", c.cropYield, c.harvest, c.store)
	}
}

func TestRats(t *testing.T) {
	c := New()
	c.store = 1000
	c.Rats(&fixedSource{chances: []bool{true}, floats: []float64{0.5}})
	if c.eatenByRats != 200 || c.store != 800 {
		t.Errorf("eaten=%d store=%d, want 200 and 800", c.eatenByRats, c.store)
	}

	c.Rats(&fixedSource{chances: []bool{false}})
	if c.eatenByRats != 0 || c.store != 800 {
		t.Errorf("no infestation: eaten=%d store=%d", c.eatenByRats, c.store)
	}
}

func TestPlague(t *testing.T) {
	c := New()
	if c.Plague(&fixedSource{chances: []bool{false}}) {
		t.Error("plague should not strike")
	}
	if c.population != 95 {
		t.Errorf("population = %d, want 95", c.population)
	}
	if !c.Plague(&fixedSource{chances: []bool{true}}) {
		t.Error("plague should strike")
	}
	if c.population != 47 {
		t.Errorf("population = %d, want 47", c.population)
	}
}

func TestPopulate(t *testing.T) {
	c := New()
	c.died = 10
	if err := c.Populate(&fixedSource{ints: []int{2}}); err != nil {
		t.Fatalf("Populate: %v", err)
	}
	// 2 * ((20*1000 + 2800) / (100*95)) + 1 = 5
	if c.babies != 5 {
		t.Errorf("babies = %d, want 5", c.babies)
	}
	if c.population != 90 {
		t.Errorf("population = %d, want 90", c.population)
	}
	if c.deadTotal != 10 {
		t.Errorf("deadTotal = %d, want 10", c.deadTotal)
	}
	if got, want := c.starved.Mean(), 10.0/95.0; got != want {
		t.Errorf("starved mean = %v, want %v", got, want)
	}
}

func TestPopulate_EmptyCity(t *testing.T) {
	c := New()
	c.population = 0
	if err := c.Populate(&fixedSource{}); !errors.Is(err, ErrNoPeople) {
		t.Fatalf("expected ErrNoPeople, got %v", err)
	}
}

func TestFamine(t *testing.T) {
	tests := []struct {
		pop, died int
		want      bool
	}{
		{100, 45, false},
		{100, 46, true},
		{95, 42, false},
		{95, 43, true},
		{0, 0, true},
		{10, 0, false},
	}
	for _, tt := range tests {
		c := New()
		c.population, c.died = tt.pop, tt.died
		if got := c.Famine(); got != tt.want {
			t.Errorf("Famine(pop=%d, died=%d) = %v, want %v", tt.pop, tt.died, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		impeached bool
		mean      float64
		perCapita float64
		want      types.Outcome
	}{
		{"success", false, 0, 12, types.OutcomeSuccess},
		{"impeached flag", true, 0, 12, types.OutcomeImpeachment},
		{"starvation impeaches", false, 40, 50, types.OutcomeImpeachment},
		{"landless impeaches", false, 0, 6.9, types.OutcomeImpeachment},
		{"infamy by mean", false, 11, 12, types.OutcomeInfamy},
		{"infamy by land", false, 0, 8, types.OutcomeInfamy},
		{"mediocrity by mean", false, 5, 11, types.OutcomeMediocrity},
		{"mediocrity by land", false, 0, 9.5, types.OutcomeMediocrity},
		{"boundary", false, 3, 10, types.OutcomeSuccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.impeached, tt.mean, tt.perCapita); got != tt.want {
				t.Errorf("Classify = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecideFate_Mediocrity(t *testing.T) {
	c := New()
	c.population = 100
	c.acres = 950
	v := c.DecideFate(false, &fixedSource{floats: []float64{0.5}})
	if v.Outcome != types.OutcomeMediocrity {
		t.Fatalf("outcome = %v, want Mediocrity", v.Outcome)
	}
	if len(v.Output) != 2 {
		t.Fatalf("expected summary and verdict, got %d lines", len(v.Output))
	}
	if !strings.Contains(v.Output[0], "10-year term") {
		t.Errorf("expected term summary, got %q", v.Output[0])
	}
	if !strings.Contains(v.Output[1], "40 people would dearly like") {
		t.Errorf("expected 40 plotters, got %q", v.Output[1])
	}
}

func TestDecideFate_ImpeachedSkipsSummary(t *testing.T) {
	c := New()
	v := c.DecideFate(true, &fixedSource{})
	if v.Outcome != types.OutcomeImpeachment || !v.Impeached {
		t.Fatalf("expected impeachment, got %+v", v)
	}
	if len(v.Output) != 1 || !strings.Contains(v.Output[0], "Impeachment!") {
		t.Errorf("unexpected output %q", v.Output)
	}
}

func TestDecideFate_EmptyCity(t *testing.T) {
	c := New()
	c.population = 0
	v := c.DecideFate(false, &fixedSource{})
	if v.Outcome != types.OutcomeImpeachment {
		t.Errorf("outcome = %v, want Impeachment", v.Outcome)
	}
	if v.PerCapita != 0 {
		t.Errorf("perCapita = %v, want 0", v.PerCapita)
	}
}

func TestReportAndSummary_Idempotent(t *testing.T) {
	c := New()
	before := c.Snapshot()
	r1, r2 := c.Report(), c.Report()
	s1, s2 := c.Summary(3), c.Summary(3)
	if r1 != r2 || s1 != s2 {
		t.Error("renderers must be deterministic")
	}
	if c.Snapshot() != before {
		t.Error("renderers must not change the city")
	}
	if !strings.Contains(r1, "Rats ate 200 bushels") {
		t.Errorf("expected rats line, got %q", r1)
	}
	if !strings.Contains(r1, "2,800 bushels of grain in store") {
		t.Errorf("expected formatted store, got %q", r1)
	}
	if !strings.Contains(s1, "Hamurusti: I beg to report to you, in year 3, 0 people starved and the population grew by 5 people") {
		t.Errorf("unexpected summary %q", s1)
	}

	c.eatenByRats = 0
	if strings.Contains(c.Report(), "Rats ate") {
		t.Error("rats line should be omitted when nothing was eaten")
	}
}

func TestScenario_FeedSowHarvest(t *testing.T) {
	c := New()
	if err := c.FeedPeople(1900); err != nil {
		t.Fatalf("FeedPeople: %v", err)
	}
	if c.died != 0 || c.store != 900 {
		t.Fatalf("died=%d store=%d, want 0 and 900", c.died, c.store)
	}

	// 95 people can tend 950 acres, so the whole holding is refused.
	if err := c.SowFields(1000); !errors.Is(err, ErrInsufficientPeople) {
		t.Fatalf("SowFields(1000): got %v, want ErrInsufficientPeople", err)
	}
	if c.sown != 0 || c.store != 900 {
		t.Fatalf("refused sowing changed the city: sown=%d store=%d", c.sown, c.store)
	}

	if err := c.SowFields(950); err != nil {
		t.Fatalf("SowFields(950): %v", err)
	}
	if c.sown != 950 || c.store != 425 {
		t.Fatalf("sown=%d store=%d, want 950 and 425", c.sown, c.store)
	}
	c.Harvest(&fixedSource{ints: []int{3}})
	if c.harvest != 2850 || c.store != 3275 {
		t.Errorf("harvest=%d store=%d, want 2850 and 3275", c.harvest, c.store)
	}
}
