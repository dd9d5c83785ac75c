package city

import (
	"errors"
	"fmt"

	"github.com/nathoo/hamurabi/types"
)

// Feed asks how much grain to release and applies it. Requests larger than
// the store are refused and asked again.
func (c *City) Feed(con Console) error {
	con.Print(fmt.Sprintf(
		"\nYour people ask for %s bushels of grain to feed themselves. "+
			"How many bushels do you wish to feed your people?",
		formatNumber(c.population*BushelsPerPerson)))
	for {
		n, err := con.ReadNumber(c.prompt(types.PromptFeed))
		if err != nil {
			return fmt.Errorf("feed: %w", err)
		}
		if err := c.FeedPeople(n); err != nil {
			c.complain(con, err)
			continue
		}
		return nil
	}
}

// Trade offers land for purchase. Buying nothing, or having no grain to buy
// with, moves on to selling.
func (c *City) Trade(con Console) error {
	if c.store == 0 {
		return c.sell(con)
	}
	for {
		con.Print("\nHow many acres of land do you wish to buy?")
		n, err := con.ReadNumber(c.prompt(types.PromptBuy))
		if err != nil {
			return fmt.Errorf("buy: %w", err)
		}
		if n == 0 {
			return c.sell(con)
		}
		if err := c.BuyLand(n); err != nil {
			c.complain(con, err)
			continue
		}
		return nil
	}
}

func (c *City) sell(con Console) error {
	if c.acres == 0 {
		return nil
	}
	for {
		con.Print("\nHow many acres of land do you wish to sell?")
		n, err := con.ReadNumber(c.prompt(types.PromptSell))
		if err != nil {
			return fmt.Errorf("sell: %w", err)
		}
		if err := c.SellLand(n); err != nil {
			c.complain(con, err)
			continue
		}
		return nil
	}
}

// Sow asks how many acres to plant.
func (c *City) Sow(con Console) error {
	con.Print("\nIt takes two bushels to plant an acre.")
	for {
		con.Print("How many acres do you wish to sow with seed?")
		n, err := con.ReadNumber(c.prompt(types.PromptSow))
		if err != nil {
			return fmt.Errorf("sow: %w", err)
		}
		if err := c.SowFields(n); err != nil {
			c.complain(con, err)
			continue
		}
		return nil
	}
}

// complain prints the corrective message for a refused request.
func (c *City) complain(con Console, err error) {
	switch {
	case errors.Is(err, ErrInsufficientGrain):
		con.Print(fmt.Sprintf("\nHamurusti: Think again. You have only %s bushels of grain. Now then...",
			formatNumber(c.store)))
	case errors.Is(err, ErrInsufficientLand):
		con.Print(fmt.Sprintf("\nHamurusti: Think again. You own only %s acres. Now then...",
			formatNumber(c.acres)))
	case errors.Is(err, ErrInsufficientPeople):
		con.Print(fmt.Sprintf("\nBut you have only %s people to tend the fields. "+
			"Each person can sow ten acres. Now then...",
			formatNumber(c.population)))
	default:
		con.Print("\nHamurusti: " + err.Error())
	}
}
