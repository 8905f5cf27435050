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
// the node only ever accepts one binding
func runBind(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	to, dispatcher, err := checkRecipient(c, "dispatcher", m.config)
	if err != nil {
		return err
	}

	from, root, err := checkOwnerWithPasswordPrompt(c.GlobalString("identity"), m.config, c)
	if err != nil {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "dispatcher: %s\n", to)
		fmt.Fprintf(m.e, "root: %s\n", from)
	}

	client, err := rpccalls.NewClient(m.testnet, m.config.Connections[m.connectionOffset], m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	bindConfig := &rpccalls.BindData{
		Root:       root.PrivateKey,
		Dispatcher: dispatcher,
	}

	response, err := client.Bind(bindConfig)
	if err != nil {
		return err
	}

	printJson(m.w, response)
	return nil
}
