package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/Dan9191/crypto-companion/internal/converter"
	"github.com/Dan9191/crypto-companion/internal/format"
	"github.com/google/subcommands"
)

type convertCmd struct {
	env    *Env
	amount string
	from   string
	to     string
	keys   string
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert an amount between two assets at market prices" }
func (*convertCmd) Usage() string {
	return `convert [-amount <n>] [-from <asset id>] [-to <asset id>] [-keys <keys>]

  Converts using the top market quotes. Assets are CoinGecko ids and
  default to bitcoin and tether. -keys replays keypad presses, one per
  character, with "c" for clear, e.g. -keys c2.5
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "1", "Amount to convert")
	f.StringVar(&c.from, "from", converter.DefaultFrom, "Source asset id")
	f.StringVar(&c.to, "to", converter.DefaultTo, "Destination asset id")
	f.StringVar(&c.keys, "keys", "", "Keypad presses applied after -amount")
}

func (c *convertCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	quotes, err := c.env.Oracle.Markets(ctx)
	if err != nil {
		fmt.Fprintf(c.env.Err, "Error fetching markets: %v\n", err)
		return subcommands.ExitFailure
	}

	view := converter.NewView()
	view.Load(quotes)
	if !view.SelectFrom(c.from) {
		fmt.Fprintf(c.env.Err, "Error: unknown asset %q\n", c.from)
		return subcommands.ExitUsageError
	}
	if !view.SelectTo(c.to) {
		fmt.Fprintf(c.env.Err, "Error: unknown asset %q\n", c.to)
		return subcommands.ExitUsageError
	}
	view.SetAmount(c.amount)
	for _, k := range c.keys {
		key := string(k)
		if key == "c" {
			key = converter.KeyClear
		}
		view.Press(key)
	}

	fmt.Fprintf(c.env.Out, "%s %s = %s %s\n", view.Amount(), view.From().Symbol, view.Display(), view.To().Symbol)
	return subcommands.ExitSuccess
}

type priceCmd struct {
	env *Env
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "print the USD price of assets" }
func (*priceCmd) Usage() string {
	return `price <asset id>...

  Prints the current USD price of every asset id given, e.g. price bitcoin ethereum
`
}

func (*priceCmd) SetFlags(*flag.FlagSet) {}

func (c *priceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ids := f.Args()
	if len(ids) == 0 {
		fmt.Fprintln(c.env.Err, "Error: at least one asset id is required")
		return subcommands.ExitUsageError
	}

	prices, err := c.env.Oracle.SimplePrices(ctx, ids)
	if err != nil {
		fmt.Fprintf(c.env.Err, "Error fetching prices: %v\n", err)
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess
	for _, id := range ids {
		price, ok := prices[id]
		if !ok {
			fmt.Fprintf(c.env.Err, "%s: no price\n", id)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Fprintf(c.env.Out, "%-12s %s\n", id, format.Price(price))
	}
	return status
}
