package cli

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"testing"

	"github.com/Dan9191/crypto-companion/internal/models"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOracle struct {
	err error
}

func (o fakeOracle) Markets(ctx context.Context) ([]models.Quote, error) {
	if o.err != nil {
		return nil, o.err
	}
	return []models.Quote{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", Price: 50000},
		{ID: "ethereum", Symbol: "eth", Name: "Ethereum", Price: 2500},
		{ID: "tether", Symbol: "usdt", Name: "Tether", Price: 1},
	}, nil
}

func (o fakeOracle) SimplePrices(ctx context.Context, ids []string) (map[string]float64, error) {
	if o.err != nil {
		return nil, o.err
	}
	return map[string]float64{"bitcoin": 50000, "pepe": 0.00001234}, nil
}

func run(t *testing.T, oracle Oracle, args ...string) (subcommands.ExitStatus, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer

	fs := flag.NewFlagSet("companion", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	commander := subcommands.NewCommander(fs, "companion")
	commander.Output = io.Discard
	commander.Error = io.Discard
	Register(commander, &Env{Oracle: oracle, Out: &out, Err: &errOut})

	require.NoError(t, fs.Parse(args))
	status := commander.Execute(context.Background())
	return status, out.String(), errOut.String()
}

func TestProject(t *testing.T) {
	status, out, _ := run(t, fakeOracle{}, "project", "-start", "100", "-target", "102", "-rate", "1", "-breakdown")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "Days: 2\nFinal amount: 102.01\nDay - 1: 101.00\nDay - 2: 102.01\n", out)

	status, out, _ = run(t, fakeOracle{}, "project", "-start", "100", "-target", "200", "-rate", "0")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "Days: 365")
	assert.Contains(t, out, "Target not reached within 365 days")

	status, _, errOut := run(t, fakeOracle{}, "project", "-start", "0", "-target", "200", "-rate", "1")
	assert.Equal(t, subcommands.ExitUsageError, status)
	assert.Contains(t, errOut, "Error:")
}

func TestPosition(t *testing.T) {
	status, out, _ := run(t, fakeOracle{}, "position", "-investment", "100", "-leverage", "10", "-type", "long", "-open", "100", "-profit", "50")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "Position size: $1,000.00\n")
	assert.Contains(t, out, "Price change: 5.00%\n")
	assert.Contains(t, out, "Target price: $105.00\n")

	status, out, _ = run(t, fakeOracle{}, "position", "-investment", "100", "-leverage", "10", "-type", "short", "-open", "100", "-close", "110")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "Expected profit: $100.00\n")

	status, _, _ = run(t, fakeOracle{}, "position", "-investment", "100", "-open", "100")
	assert.Equal(t, subcommands.ExitUsageError, status)

	status, _, _ = run(t, fakeOracle{}, "position", "-investment", "100", "-open", "100", "-close", "abc")
	assert.Equal(t, subcommands.ExitUsageError, status)
}

func TestConvert(t *testing.T) {
	status, out, _ := run(t, fakeOracle{}, "convert")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "1 BTC = 50000.00 USDT\n", out)

	status, out, _ = run(t, fakeOracle{}, "convert", "-from", "ethereum", "-to", "bitcoin", "-keys", "c2.5.")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "2.5 ETH = 0.125 BTC\n", out)

	status, _, errOut := run(t, fakeOracle{}, "convert", "-to", "dogecoin")
	assert.Equal(t, subcommands.ExitUsageError, status)
	assert.Contains(t, errOut, `unknown asset "dogecoin"`)

	status, _, _ = run(t, fakeOracle{err: errors.New("down")}, "convert")
	assert.Equal(t, subcommands.ExitFailure, status)
}

func TestPrice(t *testing.T) {
	status, out, errOut := run(t, fakeOracle{}, "price", "bitcoin", "pepe", "nope")
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Equal(t, "bitcoin      $50000.00\npepe         $0.0x4123400\n", out)
	assert.Equal(t, "nope: no price\n", errOut)

	status, _, _ = run(t, fakeOracle{}, "price")
	assert.Equal(t, subcommands.ExitUsageError, status)
}
