// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/licentiad/command/licentia-cli/rpccalls"
)

// the signing identity must be the root account
func runSetFees(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	createFee := c.Uint64("create-fee")
	updateFee := c.Uint64("update-fee")

	from, root, err := checkOwnerWithPasswordPrompt(c.GlobalString("identity"), m.config, c)
	if err != nil {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "root: %s\n", from)
		fmt.Fprintf(m.e, "create fee: %d\n", createFee)
		fmt.Fprintf(m.e, "update fee: %d\n", updateFee)
	}

	client, err := rpccalls.NewClient(m.testnet, m.config.Connections[m.connectionOffset], m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	feesConfig := &rpccalls.SetFeesData{
		Root:      root.PrivateKey,
		CreateFee: createFee,
		UpdateFee: updateFee,
	}

	response, err := client.SetFees(feesConfig)
	if err != nil {
		return err
	}

	printJson(m.w, response)
	return nil
}
