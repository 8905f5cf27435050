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

func runTransfer(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	to, recipient, err := checkRecipient(c, "receiver", m.config)
	if err != nil {
		return err
	}

	quantity := c.Uint64("quantity")
	if quantity == 0 {
		return fault.QuantityTooSmall
	}

	from, owner, err := checkOwnerWithPasswordPrompt(c.GlobalString("identity"), m.config, c)
	if err != nil {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "receiver: %s\n", to)
		fmt.Fprintf(m.e, "sender: %s\n", from)
		fmt.Fprintf(m.e, "quantity: %d\n", quantity)
	}

	client, err := rpccalls.NewClient(m.testnet, m.config.Connections[m.connectionOffset], m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	transferConfig := &rpccalls.TransferData{
		Owner:     owner.PrivateKey,
		Recipient: recipient,
		Quantity:  quantity,
	}

	response, err := client.Transfer(transferConfig)
	if err != nil {
		return err
	}

	printJson(m.w, response)
	return nil
}
