// Package cli implements the companion command line: calculators, the
// converter and spot prices without a running server.
package cli

import (
	"context"
	"io"

	"github.com/Dan9191/crypto-companion/internal/models"
	"github.com/google/subcommands"
)

// Oracle is the part of the price client the commands need
type Oracle interface {
	Markets(ctx context.Context) ([]models.Quote, error)
	SimplePrices(ctx context.Context, ids []string) (map[string]float64, error)
}

// Env carries what commands print to and fetch from
type Env struct {
	Oracle Oracle
	Out    io.Writer
	Err    io.Writer
}

// Register the subcommands.
func Register(c *subcommands.Commander, env *Env) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&projectCmd{env: env}, "calculators")
	c.Register(&positionCmd{env: env}, "calculators")

	c.Register(&convertCmd{env: env}, "market")
	c.Register(&priceCmd{env: env}, "market")
}
