package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ordishs/gocore"
	"github.com/stycoin/stynode/chaincfg"
	cmdparams "github.com/stycoin/stynode/cmd/params"
	cmdsettings "github.com/stycoin/stynode/cmd/settings"
	"github.com/stycoin/stynode/settings"
	"github.com/stycoin/stynode/ulogger"
	"github.com/urfave/cli/v2"
)

// Name used by build script for the binaries. (Please keep on single line)
const progname = "stynode"

// Version & commit strings injected at build with -ldflags -X...
var version string
var commit string

func init() {
	gocore.SetInfo(progname, version, commit)
}

func main() {
	tSettings := settings.NewSettings()

	app := &cli.App{
		Name:  progname,
		Usage: "STY node network parameters",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "testnet",
				Usage: "run on the test network",
			},
			&cli.StringFlag{
				Name:  "loglevel",
				Usage: "log level (DEBUG, INFO, WARN, ERROR)",
				Value: tSettings.Log.Level,
			},
		},
		Action: func(c *cli.Context) error {
			logger := newLogger(c, tSettings)

			registry, err := cmdparams.Start(c.Context, logger, tSettings, c.Bool("testnet"))
			if err != nil {
				logger.Fatalf("[main] could not select network parameters: %v", err)
			}

			return cmdparams.Describe(os.Stdout, registry.Current())
		},
		Commands: []*cli.Command{
			{
				Name:  "settings",
				Usage: "print the configuration and the values resolved from it",
				Action: func(c *cli.Context) error {
					cmdsettings.CmdSettings(os.Stdout, tSettings, version, commit)
					return nil
				},
			},
			{
				Name:  "address",
				Usage: "encode or decode base58 addresses of the selected network",
				Subcommands: []*cli.Command{
					{
						Name:      "encode",
						Usage:     "encode a hex payload",
						ArgsUsage: "<kind> <payload hex>",
						Action: func(c *cli.Context) error {
							if c.NArg() != 2 {
								return cli.ShowSubcommandHelp(c)
							}

							params, err := selectedParams(c, tSettings)
							if err != nil {
								return err
							}

							address, err := cmdparams.EncodeAddress(params, c.Args().Get(0), c.Args().Get(1))
							if err != nil {
								return err
							}

							fmt.Println(address)

							return nil
						},
					},
					{
						Name:      "decode",
						Usage:     "decode an address into its kind and payload",
						ArgsUsage: "<address>",
						Action: func(c *cli.Context) error {
							if c.NArg() != 1 {
								return cli.ShowSubcommandHelp(c)
							}

							params, err := selectedParams(c, tSettings)
							if err != nil {
								return err
							}

							kind, payload, err := cmdparams.DecodeAddress(params, c.Args().First())
							if err != nil {
								return err
							}

							fmt.Printf("%s %s\n", kind, payload)

							return nil
						},
					},
				},
			},
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(c *cli.Context, tSettings *settings.Settings) ulogger.Logger {
	return ulogger.New(progname,
		ulogger.WithLevel(c.String("loglevel")),
		ulogger.WithLoggerType(tSettings.Log.LoggerType),
	)
}

func selectedParams(c *cli.Context, tSettings *settings.Settings) (*chaincfg.Params, error) {
	registry, err := cmdparams.Start(c.Context, newLogger(c, tSettings), tSettings, c.Bool("testnet"))
	if err != nil {
		return nil, err
	}

	return registry.Current(), nil
}
