package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/Dan9191/crypto-companion/internal/calculator"
	"github.com/Dan9191/crypto-companion/internal/format"
	"github.com/Dan9191/crypto-companion/internal/models"
	"github.com/google/subcommands"
)

type projectCmd struct {
	env       *Env
	start     float64
	target    float64
	rate      float64
	breakdown bool
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project daily compounding growth towards a target" }
func (*projectCmd) Usage() string {
	return `project -start <amount> -target <amount> -rate <percent> [-breakdown]

  Compounds the starting amount by the daily rate until it reaches the
  target, for at most 365 days. With -breakdown every day is printed the
  way exported plans read.
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.start, "start", 0, "Starting amount (required, > 0)")
	f.Float64Var(&c.target, "target", 0, "Target amount (required, > 0)")
	f.Float64Var(&c.rate, "rate", 0, "Daily rate in percent, may be zero or negative")
	f.BoolVar(&c.breakdown, "breakdown", false, "Print the amount at the end of every day")
}

func (c *projectCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in := models.CompoundingInput{StartingAmount: c.start, TargetAmount: c.target, DailyRate: c.rate}
	if err := calculator.ValidateCompounding(in); err != nil {
		fmt.Fprintln(c.env.Err, "Error:", err)
		return subcommands.ExitUsageError
	}

	result := calculator.Project(in.StartingAmount, in.TargetAmount, in.DailyRate)
	fmt.Fprintf(c.env.Out, "Days: %d\n", result.Days)
	fmt.Fprintf(c.env.Out, "Final amount: %s\n", format.Grouped(result.FinalAmount))
	if !result.Reached() {
		fmt.Fprintf(c.env.Out, "Target not reached within %d days\n", calculator.MaxPeriods)
	}
	if c.breakdown {
		for _, d := range result.DailyBreakdown {
			fmt.Fprintf(c.env.Out, "Day - %d: %s\n", d.Day, format.Grouped(d.Amount))
		}
	}
	return subcommands.ExitSuccess
}

type positionCmd struct {
	env        *Env
	investment float64
	leverage   float64
	direction  string
	open       float64
	closePrice string
	profit     string
}

func (*positionCmd) Name() string     { return "position" }
func (*positionCmd) Synopsis() string { return "compute target price or profit of a leveraged position" }
func (*positionCmd) Usage() string {
	return `position -investment <usd> -leverage <x> -type long|short -open <price> (-close <price> | -profit <usd>)

  With -close prints the profit of closing at that price. With -profit
  prints the price the position has to reach to earn it.
`
}

func (c *positionCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.investment, "investment", 0, "Margin put into the position (required)")
	f.Float64Var(&c.leverage, "leverage", 1, "Leverage multiplier")
	f.StringVar(&c.direction, "type", string(models.Long), "Position type: long or short")
	f.Float64Var(&c.open, "open", 0, "Open price (required)")
	f.StringVar(&c.closePrice, "close", "", "Close price")
	f.StringVar(&c.profit, "profit", "", "Required profit")
}

func (c *positionCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in := models.PositionInput{
		Investment: c.investment,
		Leverage:   c.leverage,
		Direction:  models.Direction(c.direction),
		OpenPrice:  c.open,
	}
	var err error
	if in.ClosePrice, err = optionalFloat(c.closePrice); err != nil {
		fmt.Fprintln(c.env.Err, "Error: -close:", err)
		return subcommands.ExitUsageError
	}
	if in.RequiredProfit, err = optionalFloat(c.profit); err != nil {
		fmt.Fprintln(c.env.Err, "Error: -profit:", err)
		return subcommands.ExitUsageError
	}
	if err := calculator.ValidatePosition(in); err != nil {
		fmt.Fprintln(c.env.Err, "Error:", err)
		return subcommands.ExitUsageError
	}

	res := calculator.Calculate(in)
	fmt.Fprintf(c.env.Out, "Position size: %s\n", format.USD(res.TotalPositionSize))
	fmt.Fprintf(c.env.Out, "Price change: %.2f%%\n", res.PriceChangePercent*100)
	fmt.Fprintf(c.env.Out, "Target price: %s\n", format.Price(res.TargetPrice))
	fmt.Fprintf(c.env.Out, "Expected profit: %s\n", format.USD(res.ExpectedProfit))
	return subcommands.ExitSuccess
}

func optionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
