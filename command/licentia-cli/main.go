// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/licentiad/command/licentia-cli/configuration"
)

type metadata struct {
	file             string
	config           *configuration.Configuration
	connectionOffset int
	save             bool
	testnet          bool
	verbose          bool
	e                io.Writer
	w                io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "licentia-cli"
	// app.Usage = ""
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "network, n",
			Value: "",
			Usage: " connect to licentia `NETWORK` [licentia|testing|local]",
		},
		cli.IntFlag{
			Name:  "connection, c",
			Value: 0,
			Usage: " connection offset `N`",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " identity `NAME` [default identity]",
		},
		cli.StringFlag{
			Name:  "password, p",
			Value: "",
			Usage: " identity `PASSWORD`",
		},
		cli.StringFlag{
			Name:  "use-agent, u",
			Value: "",
			Usage: " executable program that returns the password `EXE`",
		},
		cli.BoolFlag{
			Name:  "zero-agent-cache, z",
			Usage: " force re-entry of agent password",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "setup",
			Usage:     "initialise licentia-cli configuration",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "connect, c",
					Value: "",
					Usage: "*licentiad host/IP and port, `HOST:PORT`",
				},
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: " using existing seed `SEED`",
				},
				cli.BoolFlag{
					Name:  "new, n",
					Usage: " generate a new seed",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "add",
			Usage:     "add a new identity to config file, set it as default",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: " using existing seed `SEED`",
				},
				cli.BoolFlag{
					Name:  "new, n",
					Usage: " generate a new seed",
				},
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: " receive-only `ACCOUNT`",
				},
			},
			Action: runAdd,
		},
		{
			Name:      "account",
			Usage:     "display an identity's account",
			ArgsUsage: "[name]",
			Action:    runAccount,
		},
		{
			Name:   "seed",
			Usage:  "decrypt and display an identity's seed",
			Action: runSeed,
		},
		{
			Name:      "balance",
			Usage:     "display the credit balance of an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " identity name or account `ACCOUNT` default is global identity",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "allowance",
			Usage:     "display the remaining authorisation for a spender",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " identity name or account `ACCOUNT` default is global identity",
				},
				cli.StringFlag{
					Name:  "spender, s",
					Value: "",
					Usage: "*identity name or account `ACCOUNT`",
				},
			},
			Action: runAllowance,
		},
		{
			Name:      "transfer",
			Usage:     "transfer credits to another account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*identity name or account to receive the credits `ACCOUNT`",
				},
				cli.Uint64Flag{
					Name:  "quantity, q",
					Value: 0,
					Usage: "*credits to transfer `NUMBER`",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "grant",
			Usage:     "authorise a spender to draw from this account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "spender, s",
					Value: "",
					Usage: "*identity name or account of the spender `ACCOUNT`",
				},
				cli.Uint64Flag{
					Name:  "quantity, q",
					Value: 0,
					Usage: " allowance limit, zero revokes `NUMBER`",
				},
			},
			Action: runGrant,
		},
		{
			Name:      "spend",
			Usage:     "move credits from an owner using an allowance",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*identity name or account of the credit owner `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*identity name or account to receive the credits `ACCOUNT`",
				},
				cli.Uint64Flag{
					Name:  "quantity, q",
					Value: 0,
					Usage: "*credits to move `NUMBER`",
				},
			},
			Action: runSpend,
		},
		{
			Name:      "pay",
			Usage:     "approve a payment and register a license record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*license record name `STRING`",
				},
				cli.Uint64Flag{
					Name:  "quantity, q",
					Value: 0,
					Usage: " credits offered, must cover the creation fee `NUMBER`",
				},
			},
			Action: runPay,
		},
		{
			Name:   "fees",
			Usage:  "display the current fee schedule",
			Action: runFees,
		},
		{
			Name:      "setfees",
			Usage:     "replace the fee schedule, root only",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "create-fee, c",
					Value: 0,
					Usage: "*credits per registration `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "update-fee, u",
					Value: 0,
					Usage: "*credits per amendment `NUMBER`",
				},
			},
			Action: runSetFees,
		},
		{
			Name:      "bind",
			Usage:     "bind the dispatcher account, root only, one time",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dispatcher, d",
					Value: "",
					Usage: "*identity name or account of the dispatcher `ACCOUNT`",
				},
			},
			Action: runBind,
		},
		{
			Name:      "amend",
			Usage:     "rename a license record through the dispatcher",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "recordid, r",
					Value: "",
					Usage: "*record id to rename `RECORD_ID`",
				},
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*replacement name `STRING`",
				},
			},
			Action: runAmend,
		},
		{
			Name:      "modify",
			Usage:     "rename a license record directly, dispatcher or root",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "recordid, r",
					Value: "",
					Usage: "*record id to rename `RECORD_ID`",
				},
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*replacement name `STRING`",
				},
			},
			Action: runModify,
		},
		{
			Name:      "creator",
			Usage:     "display the account that paid for a registration",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "recordid, r",
					Value: "",
					Usage: "*record id to look up `RECORD_ID`",
				},
			},
			Action: runCreator,
		},
		{
			Name:      "get",
			Usage:     "display a stored license record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "recordid, r",
					Value: "",
					Usage: "*record id to fetch `RECORD_ID`",
				},
			},
			Action: runGet,
		},
		{
			Name:   "info",
			Usage:  "display licentia-cli status",
			Action: runInfo,
		},
		{
			Name:   "nodeinfo",
			Usage:  "display licentiad status",
			Action: runNodeInfo,
		},
		{
			Name:   "password",
			Usage:  "change an identity's password",
			Action: runChangePassword,
		},
		{
			Name:  "version",
			Usage: "display licentia-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		if command == "version" {
			return nil
		}

		// only want one of these
		network := c.GlobalString("network")
		switch network {
		case "licentia", "live":
			network = "licentia"
		case "testing", "test":
			network = "testing"
		case "local", "regression":
			network = "local"
		default:
			return fmt.Errorf("network: %q can only be licentia/testing/local", network)
		}

		p := os.Getenv("XDG_CONFIG_HOME")
		if p == "" {
			return fmt.Errorf("XDG_CONFIG_HOME environment is not set")
		}
		dir, err := checkFileExists(p)
		if err != nil {
			return err
		}
		if !dir {
			return fmt.Errorf("not a directory: %q", p)
		}
		file := path.Join(p, app.Name, network+"-"+app.Name+".json")

		if verbose {
			fmt.Fprintf(e, "file: %q\n", file)
		}

		if command == "setup" {
			// do not run setup if there is an existing configuration
			if _, err := checkFileExists(file); err == nil {
				return fmt.Errorf("not overwriting existing configuration: %q", file)
			}

			c.App.Metadata["config"] = &metadata{
				file:    file,
				save:    false,
				testnet: network != "licentia",
				verbose: verbose,
				e:       e,
				w:       w,
			}

		} else {

			if verbose {
				fmt.Fprintf(e, "reading config file: %s\n", file)
			}

			configuration, err := configuration.Load(file)
			if err != nil {
				return err
			}

			offset := c.GlobalInt("connection")
			if offset < 0 || offset >= len(configuration.Connections) {
				return fmt.Errorf("connection: %d outside: 0 to %d", offset, len(configuration.Connections)-1)
			}

			c.App.Metadata["config"] = &metadata{
				file:             file,
				config:           configuration,
				connectionOffset: offset,
				testnet:          configuration.TestNet,
				save:             false,
				verbose:          verbose,
				e:                e,
				w:                w,
			}
		}

		return nil
	}

	// update the configuration if required
	app.After = func(c *cli.Context) error {
		e := c.App.ErrWriter
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		if m.save {
			if c.GlobalBool("verbose") {
				fmt.Fprintf(e, "updating config file: %s\n", m.file)
			}
			err := configuration.Save(m.file, m.config)
			if err != nil {
				return err
			}
		}
		return nil
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
