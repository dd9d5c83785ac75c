package city

import (
	"fmt"
	"math"
	"strings"

	"github.com/nathoo/hamurabi/types"
)

// Summary renders the steward's yearly message about last year's deaths and
// births. It does not change the city.
func (c *City) Summary(year int) string {
	return fmt.Sprintf("\n\n    YEAR %d\n\nHamurusti: I beg to report to you, in year %d, "+
		"%s people starved and the population grew by %s people.",
		year, year, formatNumber(c.died), formatNumber(c.babies))
}

// Report renders the current state of the city. Rat losses only appear in
// years when the rats ate something.
func (c *City) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nOur population is now %s people.", formatNumber(c.population))
	fmt.Fprintf(&b, "\nThe city now owns %s acres.", formatNumber(c.acres))
	fmt.Fprintf(&b, "\nThe harvest was %d bushels of grain per acre.", c.cropYield)
	if c.eatenByRats > 0 {
		fmt.Fprintf(&b, "\nRats ate %s bushels of grain.", formatNumber(c.eatenByRats))
	}
	fmt.Fprintf(&b, "\nYou now have %s bushels of grain in store.", formatNumber(c.store))
	fmt.Fprintf(&b, "\nLand is trading at %d bushels of grain per acre.", c.landPrice)
	return b.String()
}

// FamineMessage renders the announcement for a famine year.
func (c *City) FamineMessage() string {
	if c.population == 0 {
		return "\nThere is no one left in the city to govern!"
	}
	return fmt.Sprintf("\nYou starved %s people in one year!", formatNumber(c.died))
}

// PlagueMessage is printed in years the plague strikes.
const PlagueMessage = "\nBut then a horrible plague struck! Half the people died."

// Classify maps the term's figures onto an outcome tier. Tiers are checked
// from worst to best and the first match wins.
func Classify(impeached bool, mean, perCapita float64) types.Outcome {
	switch {
	case impeached || mean > 33.0 || perCapita < 7.0:
		return types.OutcomeImpeachment
	case mean > 10.0 || perCapita < 9.0:
		return types.OutcomeInfamy
	case mean > 3.0 || perCapita < 10.0:
		return types.OutcomeMediocrity
	default:
		return types.OutcomeSuccess
	}
}

// DecideFate classifies the term and renders the verdict. A term that ran
// its course first gets a ten-year summary. The only draw is the
// assassination figure on the Mediocrity tier.
func (c *City) DecideFate(impeached bool, rng Source) types.Verdict {
	m := c.starved.Mean()
	perCapita := 0.0
	if c.population > 0 {
		perCapita = float64(c.acres) / float64(c.population)
	}

	v := types.Verdict{
		Outcome:   Classify(impeached || c.population == 0, m, perCapita),
		Impeached: impeached,
		Mean:      m,
		PerCapita: perCapita,
	}

	if !impeached {
		v.Output = append(v.Output, fmt.Sprintf(
			"\nIn your 10-year term of office, %.2f percent of the population starved per year "+
				"on average, i.e. a total of %s people died!\nYou started with 10 acres per "+
				"person and ended with %.2f acres per person.",
			100*m, formatNumber(c.deadTotal), perCapita))
	}

	switch v.Outcome {
	case types.OutcomeImpeachment:
		v.Output = append(v.Output, "\nImpeachment! Due to extreme mismanagement you have been "+
			"impeached and thrown out of office.")
	case types.OutcomeInfamy:
		v.Output = append(v.Output, "\nInfamy! Your heavy-handed performance smacks of Nero and "+
			"Ivan IV. The people (remaining) find you an unpleasant ruler, and frankly, hate your guts!")
	case types.OutcomeMediocrity:
		plotters := int(math.Floor(float64(c.population) * 0.8 * rng.Float()))
		v.Output = append(v.Output, fmt.Sprintf("\nMediocrity! Your performance could have been "+
			"somewhat better, but really wasn't too bad at all. %s people would dearly like to see "+
			"you assassinated but we all have our trivial problems.", formatNumber(plotters)))
	default:
		v.Output = append(v.Output, "\nSuccess! A fantastic performance! Charlemagne, Disraeli "+
			"and Jefferson combined could not have done better!")
	}
	return v
}
