// Package types defines the shared data structures for the Hamurabi engine.
// This package contains only type definitions and their string forms.
package types

// Outcome is the end-of-term classification of the steward's performance.
type Outcome int

const (
	OutcomeImpeachment Outcome = iota
	OutcomeInfamy
	OutcomeMediocrity
	OutcomeSuccess
)

func (o Outcome) String() string {
	switch o {
	case OutcomeImpeachment:
		return "Impeachment"
	case OutcomeInfamy:
		return "Infamy"
	case OutcomeMediocrity:
		return "Mediocrity"
	case OutcomeSuccess:
		return "Success"
	default:
		return "Unknown"
	}
}

// Verdict is the result of a finished term.
type Verdict struct {
	Outcome   Outcome
	Impeached bool    // term ended early
	Mean      float64 // mean starvation ratio across completed years
	PerCapita float64 // acres per person at term end
	Output    []string
}

// Snapshot is a read-only copy of the city's figures.
type Snapshot struct {
	Year        int
	Population  int
	Acres       int
	Store       int
	Sown        int
	CropYield   int
	Harvest     int
	EatenByRats int
	Died        int
	DeadTotal   int
	Babies      int
	LandPrice   int
	StarvedMean float64
}

// PromptKind identifies which question the city is asking the player.
type PromptKind int

const (
	PromptFeed PromptKind = iota
	PromptBuy
	PromptSell
	PromptSow
)

func (k PromptKind) String() string {
	switch k {
	case PromptFeed:
		return "feed"
	case PromptBuy:
		return "buy"
	case PromptSell:
		return "sell"
	case PromptSow:
		return "sow"
	default:
		return "unknown"
	}
}

// Prompt is a request for a number from the player.
type Prompt struct {
	Kind PromptKind
	City Snapshot
}
