package city

import "math"

// FeedPeople releases amount bushels from the store. Every 20 bushels keeps
// one person alive; the rest starve. Remainder bushels are lost.
func (c *City) FeedPeople(amount int) error {
	if amount < 0 || amount > c.store {
		return ErrInsufficientGrain
	}
	c.store -= amount
	fed := amount / BushelsPerPerson
	c.died = max(c.population-fed, 0)
	return nil
}

// BuyLand pays landPrice*acres bushels for acres. The purchase is either
// applied in full or not at all.
func (c *City) BuyLand(acres int) error {
	if acres < 0 {
		return ErrInsufficientGrain
	}
	cost := c.landPrice * acres
	if cost > c.store {
		return ErrInsufficientGrain
	}
	c.store -= cost
	c.acres += acres
	return nil
}

// SellLand trades acres back to the market at this year's price.
func (c *City) SellLand(acres int) error {
	if acres < 0 || acres > c.acres {
		return ErrInsufficientLand
	}
	c.acres -= acres
	c.store += c.landPrice * acres
	return nil
}

// SowFields plants acres, consuming two bushels of seed per acre (integer
// division). Zero always succeeds and clears last year's planting.
func (c *City) SowFields(acres int) error {
	switch {
	case acres == 0:
		c.sown = 0
		return nil
	case acres < 0 || acres > c.acres:
		return ErrInsufficientLand
	case acres/SeedPerAcre >= c.store:
		return ErrInsufficientGrain
	case acres > AcresPerPerson*c.population:
		return ErrInsufficientPeople
	}
	c.store -= acres / SeedPerAcre
	c.sown = acres
	return nil
}

// Harvest rolls this year's yield per acre and stores the crop.
func (c *City) Harvest(rng Source) {
	c.cropYield = rng.Roll(6)
	c.harvest = c.sown * c.cropYield
	c.store += c.harvest
}

// Rats rolls for an infestation that eats 10-30% of the current store.
func (c *City) Rats(rng Source) {
	c.eatenByRats = 0
	if rng.Chance(0.15) {
		fraction := 0.1 + 0.2*rng.Float()
		c.eatenByRats = int(math.Floor(float64(c.store) * fraction))
	}
	c.store -= c.eatenByRats
}

// Plague rolls for a plague that kills half the population. Reports whether
// it struck.
func (c *City) Plague(rng Source) bool {
	if !rng.Chance(0.15) {
		return false
	}
	c.population /= 2
	return true
}

// Populate applies births and starvation deaths to the population and
// records this year's starvation ratio.
func (c *City) Populate(rng Source) error {
	if c.population == 0 {
		return ErrNoPeople
	}
	c.babies = rng.Roll(6)*((20*c.acres+c.store)/(100*c.population)) + 1
	c.starved.Push(float64(c.died) / float64(c.population))
	c.deadTotal += c.died

	c.population += c.babies
	c.population = max(c.population-c.died, 0)
	return nil
}

// Famine reports whether more than 45% of the population starved this
// year, measured against the population before births and deaths. An empty
// city also counts: there is nobody left to govern.
func (c *City) Famine() bool {
	if c.population == 0 {
		return true
	}
	return float64(c.died) > 0.45*float64(c.population)
}
