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

func runGrant(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	to, spender, err := checkRecipient(c, "spender", m.config)
	if err != nil {
		return err
	}

	// zero revokes any existing authorisation
	quantity := c.Uint64("quantity")

	from, owner, err := checkOwnerWithPasswordPrompt(c.GlobalString("identity"), m.config, c)
	if err != nil {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "spender: %s\n", to)
		fmt.Fprintf(m.e, "owner: %s\n", from)
		fmt.Fprintf(m.e, "quantity: %d\n", quantity)
	}

	client, err := rpccalls.NewClient(m.testnet, m.config.Connections[m.connectionOffset], m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	grantConfig := &rpccalls.GrantData{
		Owner:    owner.PrivateKey,
		Spender:  spender,
		Quantity: quantity,
	}

	response, err := client.Grant(grantConfig)
	if err != nil {
		return err
	}

	printJson(m.w, response)
	return nil
}
