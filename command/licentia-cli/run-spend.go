// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/licentiad/command/licentia-cli/rpccalls"
	"github.com/bitmark-inc/licentiad/fault"
)

func runSpend(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	creditOwner, ownerAccount, err := checkRecipient(c, "owner", m.config)
	if err != nil {
		return err
	}

	to, recipient, err := checkRecipient(c, "receiver", m.config)
	if err != nil {
		return err
	}

	quantity := c.Uint64("quantity")
	if quantity == 0 {
		return fault.QuantityTooSmall
	}

	from, spender, err := checkOwnerWithPasswordPrompt(c.GlobalString("identity"), m.config, c)
	if err != nil {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", creditOwner)
		fmt.Fprintf(m.e, "receiver: %s\n", to)
		fmt.Fprintf(m.e, "spender: %s\n", from)
		fmt.Fprintf(m.e, "quantity: %d\n", quantity)
	}

	client, err := rpccalls.NewClient(m.testnet, m.config.Connections[m.connectionOffset], m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	spendConfig := &rpccalls.SpendData{
		Spender:   spender.PrivateKey,
		Owner:     ownerAccount,
		Recipient: recipient,
		Quantity:  quantity,
	}

	response, err := client.Spend(spendConfig)
	if err != nil {
		return err
	}

	printJson(m.w, response)
	return nil
}
