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

func runPay(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, err := checkRecordName(c.String("name"))
	if err != nil {
		return err
	}

	// zero is allowed so a zero fee schedule still works
	quantity := c.Uint64("quantity")

	from, owner, err := checkOwnerWithPasswordPrompt(c.GlobalString("identity"), m.config, c)
	if err != nil {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "name: %s\n", name)
		fmt.Fprintf(m.e, "payer: %s\n", from)
		fmt.Fprintf(m.e, "quantity: %d\n", quantity)
	}

	client, err := rpccalls.NewClient(m.testnet, m.config.Connections[m.connectionOffset], m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	payConfig := &rpccalls.PayData{
		Owner:    owner.PrivateKey,
		Name:     name,
		Quantity: quantity,
	}

	response, err := client.Pay(payConfig)
	if err != nil {
		return err
	}

	printJson(m.w, response)
	return nil
}
