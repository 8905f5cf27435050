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

func runAllowance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner := c.String("owner")
	if owner == "" {
		owner = c.GlobalString("identity")
	}
	if owner == "" {
		owner = m.config.DefaultIdentity
	}

	ownerAccount, err := checkAccount(owner, m.config)
	if err != nil {
		return err
	}

	_, spenderAccount, err := checkRecipient(c, "spender", m.config)
	if err != nil {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", ownerAccount)
		fmt.Fprintf(m.e, "spender: %s\n", spenderAccount)
	}

	client, err := rpccalls.NewClient(m.testnet, m.config.Connections[m.connectionOffset], m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.Allowance(ownerAccount, spenderAccount)
	if err != nil {
		return err
	}

	printJson(m.w, response)
	return nil
}
