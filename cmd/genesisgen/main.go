// Command genesisgen searches for a genesis block nonce and prints the
// constants a network definition needs to reproduce it without searching.
//
// Usage:
//
//	genesisgen --network mainnet --timestamp 1527086153 --bits 1f00ffff --nonce 0
//
// Any field that is not given is taken from the named network's definition.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/stycoin/stynode/errors"
	"github.com/stycoin/stynode/ulogger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "genesisgen",
		Usage: "search a genesis block nonce",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "network",
				Usage: "network whose genesis definition is the starting point",
				Value: "mainnet",
			},
			&cli.Uint64Flag{
				Name:  "timestamp",
				Usage: "block header time",
			},
			&cli.Uint64Flag{
				Name:  "nonce",
				Usage: "first nonce to try",
			},
			&cli.StringFlag{
				Name:  "bits",
				Usage: "compact target as big endian hex, e.g. 1f00ffff",
			},
			&cli.StringFlag{
				Name:  "message",
				Usage: "coinbase message",
			},
			&cli.Uint64Flag{
				Name:  "progress",
				Usage: "nonces between progress lines",
				Value: 1 << 20,
			},
			&cli.StringFlag{
				Name:  "loglevel",
				Value: "INFO",
			},
		},
		Action: func(c *cli.Context) error {
			logger := ulogger.New("genesisgen", ulogger.WithLevel(c.String("loglevel")))

			opts := generateOptions{
				network:  c.String("network"),
				bits:     c.String("bits"),
				message:  c.String("message"),
				progress: c.Uint64("progress"),
			}

			if c.IsSet("timestamp") {
				ts := c.Uint64("timestamp")
				opts.timestamp = &ts
			}

			if c.IsSet("nonce") {
				nonce := c.Uint64("nonce")
				opts.nonce = &nonce
			}

			genesis, err := generate(c.Context, logger, opts)
			if err != nil {
				return err
			}

			return printGenesis(os.Stdout, genesis)
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.RunContext(ctx, os.Args); err != nil {
		if errors.IsContextError(err) {
			fmt.Fprintln(os.Stderr, "search interrupted")
			os.Exit(130)
		}

		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
